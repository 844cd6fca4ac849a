package changeset

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const blockDelimiter = "---"

// categoryLine matches serialized category entries: "- [ Added ] text".
var categoryLine = regexp.MustCompile(`^- \[ (.+?) \] ?(.*)$`)

// ParseFile reads a serialized changeset document from disk.
func ParseFile(path string) (*Changeset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changeset file: %w", err)
	}

	cs, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cs, nil
}

// Parse reconstructs a Changeset from its serialized document. Release
// order within each header block is preserved; unknown bump types map to
// major. Category lines following a block are scoped to that block's
// severity; remaining free text becomes the summary.
func Parse(doc string) (*Changeset, error) {
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")

	cs := &Changeset{}
	var summaryLines []string

	i := 0
	for i < len(lines) {
		line := lines[i]

		if strings.TrimSpace(line) == blockDelimiter {
			releases, next, err := parseHeaderBlock(lines, i+1)
			if err != nil {
				return nil, err
			}
			blockBump := uniformBump(releases)
			cs.Releases = append(cs.Releases, releases...)
			i = next

			// Category lines directly following the block belong to it.
			for i < len(lines) {
				m := categoryLine.FindStringSubmatch(lines[i])
				if m == nil {
					break
				}
				cs.Categories = append(cs.Categories, CategoryOfChange{
					Category:    m[1],
					Description: m[2],
					Bump:        blockBump,
				})
				i++
			}
			continue
		}

		summaryLines = append(summaryLines, line)
		i++
	}

	if len(cs.Releases) == 0 {
		return nil, fmt.Errorf("document has no release header block")
	}

	cs.Summary = strings.TrimSpace(strings.Join(summaryLines, "\n"))
	return cs, nil
}

// parseHeaderBlock parses the YAML frontmatter between an opening delimiter
// (already consumed) and its closing delimiter. Returns the releases and the
// index of the line after the closing delimiter. A yaml.Node is used instead
// of a map so the release order in the document survives.
func parseHeaderBlock(lines []string, start int) ([]Release, int, error) {
	end := -1
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == blockDelimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, 0, fmt.Errorf("unterminated release header block")
	}

	front := strings.Join(lines[start:end], "\n")

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(front), &node); err != nil {
		return nil, 0, fmt.Errorf("parsing release header: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, 0, fmt.Errorf("empty release header block")
	}

	mapping := node.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, 0, fmt.Errorf("release header is not a mapping")
	}

	releases := make([]Release, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		name := mapping.Content[i].Value
		if name == "" {
			return nil, 0, fmt.Errorf("release with empty package name")
		}
		releases = append(releases, Release{
			Name: name,
			Type: ParseBump(mapping.Content[i+1].Value),
		})
	}

	return releases, end + 1, nil
}

// uniformBump returns the shared severity of a block's releases, or empty
// when the block mixes severities (the ungrouped single-block form).
func uniformBump(releases []Release) Bump {
	if len(releases) == 0 {
		return ""
	}
	bump := releases[0].Type
	for _, rel := range releases[1:] {
		if rel.Type != bump {
			return ""
		}
	}
	return bump
}
