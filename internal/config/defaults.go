package config

// GetDefaultConfigTemplate returns a fully commented config template that
// helps users understand all available options. Written by 'changeset init'.
func GetDefaultConfigTemplate() string {
	return `# Changeset Configuration
# Environment overrides use the CHANGESET_ prefix (CHANGESET_BASE_BRANCH,
# CHANGESET_FORMAT__LINE_ENDING, ...)

base_branch: main          # Branch to diff against when pre-marking changed packages
changeset_dir: .changeset  # Directory changeset files are written to
ask_categories: true       # Offer category-of-change selection for multi-package workspaces

# Formatting applied to changeset documents before writing
format:
  line_ending: lf          # lf | crlf
  final_newline: true      # End documents with exactly one newline
  trim_trailing_space: false
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"base_branch":    "main",
		"changeset_dir":  ".changeset",
		"ask_categories": true,
		"format": map[string]interface{}{
			"line_ending":         "lf",
			"final_newline":       true,
			"trim_trailing_space": false,
		},
	}
}
