package pipeline

import (
	"fmt"
	"path/filepath"
	"time"
)

// commentStyle is the comment syntax of one file family. A zero close means
// line comments.
type commentStyle struct {
	open  string
	close string
}

// headerStyles maps file extensions to comment syntax. Unrecognized
// extensions get no provenance header.
var headerStyles = map[string]commentStyle{
	".ts":   {open: "//"},
	".tsx":  {open: "//"},
	".mts":  {open: "//"},
	".cts":  {open: "//"},
	".js":   {open: "//"},
	".jsx":  {open: "//"},
	".mjs":  {open: "//"},
	".go":   {open: "//"},
	".sh":   {open: "#"},
	".py":   {open: "#"},
	".yaml": {open: "#"},
	".yml":  {open: "#"},
	".css":  {open: "/*", close: "*/"},
	".html": {open: "<!--", close: "-->"},
	".md":   {open: "<!--", close: "-->"},
}

// Header returns the provenance comment for a file name, or "" when the
// extension has no known comment syntax. The timestamp is ISO-8601 in UTC.
func Header(file string, now time.Time) string {
	style, ok := headerStyles[filepath.Ext(file)]
	if !ok {
		return ""
	}
	text := fmt.Sprintf("Generated by zodgen at %s. Do not edit.", now.UTC().Format(time.RFC3339))
	if style.close == "" {
		return fmt.Sprintf("%s %s\n\n", style.open, text)
	}
	return fmt.Sprintf("%s %s %s\n\n", style.open, text, style.close)
}
