// Package main provides the CLI entrypoint for schema-generator.
//
// schema-generator turns documented API resources into schema declarations:
//   - Reads a resource document (YAML/JSON) or scrapes the HTML reference page
//   - Normalizes documented field types
//   - Orders resources so that every dependency comes first
//   - Generates Go types, or a declaration document
package main

import (
	"errors"
	"fmt"
	"os"

	"schema-generator/internal/cli"
)

func main() {
	err := cli.Run(os.Args[1:], cli.IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr})
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, exitErr.Message)
		os.Exit(exitErr.Code)
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
