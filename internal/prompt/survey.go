package prompt

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/AlecAivazis/survey/v2"
)

// editorFallbacks are probed in order when $VISUAL and $EDITOR are unset.
var editorFallbacks = []string{"vim", "vi", "nano"}

// SurveyPrompter implements Prompter on top of the survey toolkit. Output
// (the post-selection summary line) goes to Out, defaulting to stdout.
type SurveyPrompter struct {
	Out io.Writer
}

// NewSurveyPrompter returns a SurveyPrompter writing to stdout.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{Out: os.Stdout}
}

// Input asks a free-text question.
func (p *SurveyPrompter) Input(message string) (string, error) {
	var answer string
	if err := survey.AskOne(&survey.Input{Message: message}, &answer); err != nil {
		return "", fmt.Errorf("asking %q: %w", message, err)
	}
	return answer, nil
}

// InputWithEditor opens the user's editor seeded with the given text.
func (p *SurveyPrompter) InputWithEditor(seed string) (string, error) {
	if !editorAvailable() {
		return "", ErrNoEditor
	}

	var answer string
	editor := &survey.Editor{
		Message:       "Open editor to write the summary",
		Default:       seed,
		AppendDefault: true,
		HideDefault:   true,
	}
	if err := survey.AskOne(editor, &answer); err != nil {
		return "", fmt.Errorf("editing summary: %w", err)
	}
	return answer, nil
}

// Confirm asks a yes/no question.
func (p *SurveyPrompter) Confirm(message string, def bool) (bool, error) {
	var answer bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &answer); err != nil {
		return false, fmt.Errorf("asking %q: %w", message, err)
	}
	return answer, nil
}

// Select asks the user to pick one option; the first option is the default.
func (p *SurveyPrompter) Select(message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("select %q: no options", message)
	}

	var answer string
	sel := &survey.Select{
		Message: message,
		Options: options,
		Default: options[0],
	}
	if err := survey.AskOne(sel, &answer); err != nil {
		return "", fmt.Errorf("asking %q: %w", message, err)
	}
	return answer, nil
}

// MultiSelect flattens the groups into a single checkbox list, using the
// option description to carry the group name. Selected labels are mapped
// back to option keys in presentation order.
func (p *SurveyPrompter) MultiSelect(message string, groups []Group, formatSelected SelectionFormatter) ([]string, error) {
	var labels []string
	keyByLabel := make(map[string]string)
	groupByLabel := make(map[string]string)

	for _, g := range groups {
		for _, opt := range g.Options {
			labels = append(labels, opt.Label)
			keyByLabel[opt.Label] = opt.Key
			groupByLabel[opt.Label] = g.Name
		}
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("multi-select %q: no options", message)
	}

	var selected []string
	ms := &survey.MultiSelect{
		Message: message,
		Options: labels,
		Description: func(value string, _ int) string {
			return groupByLabel[value]
		},
	}
	if err := survey.AskOne(ms, &selected); err != nil {
		return nil, fmt.Errorf("asking %q: %w", message, err)
	}

	keys := make([]string, 0, len(selected))
	for _, label := range selected {
		keys = append(keys, keyByLabel[label])
	}

	if formatSelected != nil && len(keys) > 0 && p.Out != nil {
		fmt.Fprintln(p.Out, formatSelected(keys))
	}

	return keys, nil
}

// editorAvailable reports whether an external editor can be launched.
func editorAvailable() bool {
	if os.Getenv("VISUAL") != "" || os.Getenv("EDITOR") != "" {
		return true
	}
	for _, name := range editorFallbacks {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
