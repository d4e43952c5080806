// cubesolver - CLI application for solving and studying Rubik's Cube states.
package main

import (
	"github.com/SeamusWaldron/cubesolver/internal/cli"
)

func main() {
	cli.Execute()
}
