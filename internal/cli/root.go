// Package cli implements the command-line interface for cutstock.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
)

// Run parses arguments and executes the selected command. With no
// recognized subcommand as the first argument, it falls back to solve so
// `cutstock --stock 100x100 --cuts 50x50:4` behaves as spec.md describes.
func Run(args []string) error {
	args = withImplicitSolve(args)

	var root struct{}
	parser := flags.NewParser(&root, flags.Default)
	parser.Name = filepath.Base(os.Args[0])
	prog := parser.Name

	if _, err := parser.AddCommand(
		"solve",
		"Pack a demand list onto stock sheets",
		fmt.Sprintf(
			`Pack a cut list onto copies of one stock sheet and print the layout.

Examples:
  %s solve --stock 2440x1220 --cuts 600x400:4 --kerf 3
  %s solve --stock 2440x1220 --cuts 600x400:4 --no-rotate --algorithm branch-and-bound`,
			prog, prog,
		),
		&CmdSolve{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"import",
		"Import a demand list from CSV/XLSX and solve it",
		fmt.Sprintf(
			`Read parts from a CSV or Excel file, then pack them onto stock.

Examples:
  %s import parts.csv --stock 2440x1220
  %s import parts.xlsx --stock 2440x1220 --kerf 3`,
			prog, prog,
		),
		&CmdImport{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"export",
		"Render a solved cut list to PDF, labels, or GCode",
		fmt.Sprintf(
			`Solve a demand list and export the result as a PDF, label sheet, or GCode.

Examples:
  %s export pdf --stock 2440x1220 --cuts 600x400:4 --out layout.pdf
  %s export labels --stock 2440x1220 --cuts 600x400:4 --out labels.pdf
  %s export gcode --stock 2440x1220 --cuts 600x400:4 --out sheet`,
			prog, prog, prog,
		),
		&CmdExport{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"compare",
		"Compare solving settings side by side",
		fmt.Sprintf(
			`Solve a demand list under several CutSettings variations and print a
side-by-side table of sheets used, cuts, waste, and unplaced parts.

Examples:
  %s compare --stock 2440x1220 --cuts 600x400:4
  %s compare --stock 2440x1220 --cuts 600x400:4 --algorithm branch-and-bound`,
			prog, prog,
		),
		&CmdCompare{},
	); err != nil {
		return err
	}

	if _, err := parser.AddCommand(
		"project",
		"Save or load a full project file",
		fmt.Sprintf(
			`Persist or restore a project (parts, stock, settings, last result).

Examples:
  %s project save myproject.json --stock 2440x1220 --cuts 600x400:4
  %s project load myproject.json`,
			prog, prog,
		),
		&CmdProject{},
	); err != nil {
		return err
	}

	_, err := parser.ParseArgs(args)
	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return nil
		}
		return err
	}

	return nil
}

// knownCommands lists every top-level subcommand name handled by Run.
var knownCommands = map[string]bool{
	"solve":   true,
	"import":  true,
	"export":  true,
	"project": true,
	"compare": true,
	"help":    true,
}

// withImplicitSolve prepends "solve" when the first non-flag argument isn't
// a known subcommand, so bare "--stock ... --cuts ..." invocations work.
func withImplicitSolve(args []string) []string {
	for _, a := range args {
		if len(a) == 0 || a[0] == '-' {
			continue
		}
		if knownCommands[a] {
			return args
		}
		break
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, "solve")
	out = append(out, args...)
	return out
}
