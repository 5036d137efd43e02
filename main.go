package main

import (
	"os"

	"github.com/abhisek/owllearn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
