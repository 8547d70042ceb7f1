// Package main implements the meetdocs command, which turns meeting metadata
// into a notice, a staff email, a minutes template and a follow-up task list
// using the OpenAI and Gemini text-generation APIs.
package main

import (
	"fmt"
	"os"
)

// Version is set at build time.
var Version = "dev"

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
