package main

import (
	"fmt"
	"os"
)

func main() {
	app := NewApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
