// Package format normalizes rendered changeset documents before they are
// written to disk. Normalization covers line endings, trailing whitespace,
// and the final newline, driven by the formatting options discovered in the
// project configuration.
package format

import (
	"fmt"
	"strings"
)

// Line ending identifiers accepted in configuration.
const (
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

// Options controls how a rendered document is normalized.
type Options struct {
	// LineEnding selects the output line ending: "lf" (default) or "crlf".
	LineEnding string
	// FinalNewline ensures the document ends with exactly one line ending.
	FinalNewline bool
	// TrimTrailingSpace removes trailing spaces and tabs from each line.
	TrimTrailingSpace bool
}

// DefaultOptions returns the formatting applied when no configuration is
// discovered: LF line endings with a final newline.
func DefaultOptions() Options {
	return Options{
		LineEnding:   LineEndingLF,
		FinalNewline: true,
	}
}

// Apply normalizes text according to opts. Malformed options are reported as
// errors rather than silently ignored, so a broken formatting configuration
// fails the write instead of producing an unformatted file.
func Apply(text string, opts Options) (string, error) {
	ending, err := resolveLineEnding(opts.LineEnding)
	if err != nil {
		return "", err
	}

	// Normalize to LF first so CRLF input doesn't double-convert.
	text = strings.ReplaceAll(text, "\r\n", "\n")

	if opts.TrimTrailingSpace {
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight(line, " \t")
		}
		text = strings.Join(lines, "\n")
	}

	if opts.FinalNewline {
		text = strings.TrimRight(text, "\n") + "\n"
	}

	if ending != "\n" {
		text = strings.ReplaceAll(text, "\n", ending)
	}

	return text, nil
}

// resolveLineEnding maps a configured line ending name to its byte sequence.
// An empty value defaults to LF.
func resolveLineEnding(name string) (string, error) {
	switch name {
	case "", LineEndingLF:
		return "\n", nil
	case LineEndingCRLF:
		return "\r\n", nil
	default:
		return "", fmt.Errorf("unknown line ending %q (expected %q or %q)", name, LineEndingLF, LineEndingCRLF)
	}
}
