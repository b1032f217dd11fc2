// Command gm8run runs a GameMaker 8 game described by a YAML game data file.
package main

import (
	"fmt"
	"os"

	"github.com/OpenGMK/OpenGMK-sub000/pkg/app"
)

func main() {
	application := app.New()
	if err := application.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
