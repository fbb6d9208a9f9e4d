// Package main is the entry point for the sheetmon CLI.
//
// sheetmon is an interactive terminal walkthrough for building a price
// monitoring spreadsheet in Google Sheets. It can also print the guide,
// list the example formulas and export a ready-made starter workbook.
//
// For detailed usage information, run:
//
//	sheetmon --help
package main

import (
	"fmt"
	"os"

	"github.com/vanderheijden86/sheetmon/cmd/sheetmon/commands"
	"github.com/vanderheijden86/sheetmon/pkg/debug"
)

func main() {
	err := commands.Root().Execute()
	debug.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
