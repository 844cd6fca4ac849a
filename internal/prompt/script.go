package prompt

import "fmt"

// EditorAnswer is one scripted response to InputWithEditor.
type EditorAnswer struct {
	Text string
	Err  error
}

// ScriptedPrompter replays canned answers in FIFO order per prompt kind and
// records every message asked. It backs Builder tests, where the interactive
// session is simulated end to end.
type ScriptedPrompter struct {
	InputAnswers   []string
	EditorAnswers  []EditorAnswer
	ConfirmAnswers []bool
	SelectAnswers  []string
	MultiAnswers   [][]string

	// Asked records each prompt message in the order it was asked.
	Asked []string
}

var _ Prompter = (*ScriptedPrompter)(nil)

// Input pops the next scripted free-text answer.
func (s *ScriptedPrompter) Input(message string) (string, error) {
	s.Asked = append(s.Asked, message)
	if len(s.InputAnswers) == 0 {
		return "", fmt.Errorf("unscripted input prompt: %q", message)
	}
	answer := s.InputAnswers[0]
	s.InputAnswers = s.InputAnswers[1:]
	return answer, nil
}

// InputWithEditor pops the next scripted editor answer.
func (s *ScriptedPrompter) InputWithEditor(seed string) (string, error) {
	s.Asked = append(s.Asked, "editor")
	if len(s.EditorAnswers) == 0 {
		return "", fmt.Errorf("unscripted editor prompt (seed %q)", seed)
	}
	answer := s.EditorAnswers[0]
	s.EditorAnswers = s.EditorAnswers[1:]
	return answer.Text, answer.Err
}

// Confirm pops the next scripted yes/no answer.
func (s *ScriptedPrompter) Confirm(message string, def bool) (bool, error) {
	s.Asked = append(s.Asked, message)
	if len(s.ConfirmAnswers) == 0 {
		return false, fmt.Errorf("unscripted confirm prompt: %q", message)
	}
	answer := s.ConfirmAnswers[0]
	s.ConfirmAnswers = s.ConfirmAnswers[1:]
	return answer, nil
}

// Select pops the next scripted single-choice answer.
func (s *ScriptedPrompter) Select(message string, options []string) (string, error) {
	s.Asked = append(s.Asked, message)
	if len(s.SelectAnswers) == 0 {
		return "", fmt.Errorf("unscripted select prompt: %q", message)
	}
	answer := s.SelectAnswers[0]
	s.SelectAnswers = s.SelectAnswers[1:]
	return answer, nil
}

// MultiSelect pops the next scripted multi-choice answer.
func (s *ScriptedPrompter) MultiSelect(message string, groups []Group, formatSelected SelectionFormatter) ([]string, error) {
	s.Asked = append(s.Asked, message)
	if len(s.MultiAnswers) == 0 {
		return nil, fmt.Errorf("unscripted multi-select prompt: %q", message)
	}
	answer := s.MultiAnswers[0]
	s.MultiAnswers = s.MultiAnswers[1:]
	return answer, nil
}
