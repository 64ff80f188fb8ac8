// Command typewell is a demo CLI that runs the checker core against a
// handful of built-in fixtures and prints whatever diagnostics fall
// out, formatted with source-line context the way escalier's
// cmd/escalier build command formats its own type errors. There is no
// source parser in this repository (parsing is a host responsibility,
// out of scope for the solver itself), so "loading a file" here means
// selecting one of the fixtures demo.Names lists rather than reading
// arbitrary source text from disk.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/typewell-lang/typewell/internal/demo"
	"github.com/typewell-lang/typewell/internal/diag"
)

func main() {
	listFlag := flag.Bool("list", false, "list available fixtures and exit")
	flag.Parse()

	if *listFlag {
		listFixtures(os.Stdout)
		return
	}

	name := "bad-assignment"
	if args := flag.Args(); len(args) > 0 {
		name = args[0]
	}

	if err := run(os.Stdout, os.Stderr, name); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func listFixtures(w io.Writer) {
	for _, n := range demo.Names() {
		fmt.Fprintln(w, n)
	}
}

func run(stdout, stderr io.Writer, name string) error {
	scenario, err := demo.Build(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "checking fixture %q...\n", scenario.Name)
	fmt.Fprintln(stdout, scenario.Description)

	errs := demo.Run(scenario)
	if len(errs) == 0 {
		fmt.Fprintln(stdout, "no diagnostics")
		return nil
	}

	lines := strings.Split(scenario.Source, "\n")
	for _, e := range errs {
		fmt.Fprint(stderr, formatDiagnostic(e, lines))
	}
	return nil
}

// formatDiagnostic renders one diagnostic with a caret under the span
// it covers, the same shape escalier's formatTypeError produces for a
// parsed source file.
func formatDiagnostic(e diag.Error, lines []string) string {
	span := e.Span()

	var msg strings.Builder
	fmt.Fprintf(&msg, "%s:%d:%d: %s: %s\n", "demo.py", span.Start.Line, span.Start.Column, e.Kind(), e.Message())

	if span.Start.Line < 1 || span.Start.Line > len(lines) {
		return msg.String()
	}
	lineNum := fmt.Sprintf("%d:", span.Start.Line)
	msg.WriteString(fmt.Sprintf("%-4s", lineNum))
	msg.WriteString(lines[span.Start.Line-1] + "\n")

	for range 4 + span.Start.Column - 1 {
		msg.WriteString(" ")
	}
	width := span.End.Column - span.Start.Column
	if width < 1 {
		width = 1
	}
	for range width {
		msg.WriteString("^")
	}
	msg.WriteString("\n")
	return msg.String()
}
