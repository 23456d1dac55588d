// Package main is the entry point for the infradraft CLI.
//
// infradraft turns natural-language infrastructure requests into Terraform
// source and drives it through terraform init, plan and apply. A companion
// name command generates storage bucket names and stores them in the
// configuration so requests can reference them.
//
// Commands: init, name, apply, plan, doctor, version, completion.
//
// For detailed usage information, run:
//
//	infradraft --help
package main

import (
	"fmt"
	"os"

	"github.com/infradraft/infradraft/cmd/infradraft/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
