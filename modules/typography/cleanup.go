package typography

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var spaces = regexp.MustCompile(`[ \t\f\v]+`)

// CleanupInput defines the arguments of the TextCleanup node.
type CleanupInput struct {
	Text               string `fggo:"text"`
	CollapseWhitespace bool   `fggo:"collapse_whitespace"`
	StripLines         bool   `fggo:"strip_lines"`
	RemoveEmptyLines   bool   `fggo:"remove_empty_lines"`
	DedupeLines        bool   `fggo:"dedupe_lines"`
	Lowercase          bool   `fggo:"lowercase"`
	RemovePattern      string `fggo:"remove_pattern"`
}

// CleanupOutput holds the cleaned text.
type CleanupOutput struct {
	Text      string `fggo:"text"`
	LineCount int    `fggo:"line_count"`
}

// OnRunTextCleanup applies the enabled steps in a fixed order: pattern
// removal, lowercasing, then per line stripping, whitespace collapsing,
// empty line removal and de-duplication (first occurrence wins).
func OnRunTextCleanup(_ context.Context, _ *Deps, in *CleanupInput) (*CleanupOutput, error) {
	s := strings.ReplaceAll(in.Text, "\r\n", "\n")
	if in.RemovePattern != "" {
		re, err := regexp.Compile(in.RemovePattern)
		if err != nil {
			return nil, fmt.Errorf("remove_pattern: %w", err)
		}
		s = re.ReplaceAllString(s, "")
	}
	if in.Lowercase {
		s = strings.ToLower(s)
	}

	seen := make(map[string]struct{})
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if in.StripLines {
			line = strings.TrimSpace(line)
		}
		if in.CollapseWhitespace {
			line = spaces.ReplaceAllString(line, " ")
		}
		if in.RemoveEmptyLines && strings.TrimSpace(line) == "" {
			continue
		}
		if in.DedupeLines {
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
		}
		lines = append(lines, line)
	}
	return &CleanupOutput{Text: strings.Join(lines, "\n"), LineCount: len(lines)}, nil
}
