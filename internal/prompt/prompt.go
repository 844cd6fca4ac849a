// Package prompt defines the interactive prompt boundary for the changeset
// CLI. The Builder drives its decision procedure through the Prompter
// interface; the production implementation wraps the survey toolkit, and
// tests substitute a scripted prompter.
package prompt

import "errors"

// ErrNoEditor is returned by InputWithEditor when no external editor can be
// located via $VISUAL, $EDITOR, or well-known fallbacks.
var ErrNoEditor = errors.New("no external editor available")

// Option is a selectable entry in a multi-select prompt. Key is the value
// returned on selection; Label is what the user sees.
type Option struct {
	Key   string
	Label string
}

// Group is a named set of options presented together in a multi-select
// prompt, such as "changed packages" and "unchanged packages".
type Group struct {
	Name    string
	Options []Option
}

// SelectionFormatter renders the current selection for display once a
// multi-select prompt completes.
type SelectionFormatter func(keys []string) string

// Prompter is the synchronous prompt contract the Builder suspends on. Every
// call blocks until the user answers; implementations must not run prompts
// concurrently.
type Prompter interface {
	// Input asks a free-text question and returns the (possibly empty) answer.
	Input(message string) (string, error)

	// InputWithEditor opens an external editor seeded with the given text and
	// returns the edited content. Returns ErrNoEditor when no editor exists.
	InputWithEditor(seed string) (string, error)

	// Confirm asks a yes/no question with the given default.
	Confirm(message string, def bool) (bool, error)

	// Select asks the user to pick exactly one of options. The first option
	// is the default.
	Select(message string, options []string) (string, error)

	// MultiSelect asks the user to pick any number of options, presented in
	// groups. Returns the keys of the selected options; an empty result is
	// valid and left to the caller to handle. The formatter, when non-nil,
	// renders the final selection for display.
	MultiSelect(message string, groups []Group, formatSelected SelectionFormatter) ([]string, error)
}
