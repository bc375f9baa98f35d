// Package diag prints errors with an excerpt of the offending source line.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/ava12/nabu"
	"github.com/ava12/nabu/source"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	gutter     = color.New(color.FgCyan)
	squiggle   = color.New(color.FgRed)
)

// Flatten returns leaf errors of e, expanding errors that wrap several errors.
func Flatten(e error) []error {
	if e == nil {
		return nil
	}
	if multi, ok := e.(interface{ Unwrap() []error }); ok {
		var result []error
		for _, x := range multi.Unwrap() {
			result = append(result, Flatten(x)...)
		}
		return result
	}
	return []error{e}
}

// Write prints every error contained in e. Positioned errors get the source line from src
// with the offending fragment underlined.
func Write(w io.Writer, e error, src *source.Source) {
	for _, x := range Flatten(e) {
		errorLabel.Fprint(w, "error:")
		fmt.Fprintln(w, " "+x.Error())

		var ne *nabu.Error
		if src != nil && errors.As(x, &ne) && ne.Line > 0 && ne.SourceName == src.Name() {
			excerpt(w, src, ne)
		}
	}
}

func excerpt(w io.Writer, src *source.Source, e *nabu.Error) {
	line := src.Line(e.Line)
	gutter.Fprintf(w, "%5d | ", e.Line)
	fmt.Fprintln(w, line)

	col := e.Col - 1
	runes := []rune(line)
	if col > len(runes) {
		col = len(runes)
	}
	var indent strings.Builder
	for _, r := range runes[:col] {
		if r == '\t' {
			indent.WriteByte('\t')
		} else {
			indent.WriteByte(' ')
		}
	}

	width := utf8.RuneCountInString(e.Text)
	if rest := len(runes) - col; width > rest {
		width = rest
	}
	mark := "^"
	if width > 1 {
		mark += strings.Repeat("~", width-1)
	}

	gutter.Fprint(w, "      | ")
	fmt.Fprint(w, indent.String())
	squiggle.Fprintln(w, mark)
}
