// Package main is the entry point for the jjz CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jjzio/jjz/cmd/jjz/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "there was an error: %v\n", err)
		os.Exit(1)
	}
}
