package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	labelStyle   = color.New(color.Faint)
	nameStyle    = color.New(color.FgGreen, color.Bold)
	addressStyle = color.New(color.FgWhite)
	chainHeader  = color.New(color.BgCyan, color.FgBlack, color.Bold)
	warnStyle    = color.New(color.FgYellow)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return warnStyle.Sprintf("⚠️  %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// Title turns identifiers like "already-recorded" into "Already Recorded"
func Title(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(s)
}

// JSON writes v as indented JSON
func JSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func field(out io.Writer, label string, value any) {
	labelStyle.Fprintf(out, "  %-16s", label+":")
	fmt.Fprintln(out, value)
}
