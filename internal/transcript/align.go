package transcript

import (
	"strings"

	"vocab-annotator-go/internal/types"
)

// Align returns the start of the first segment whose lowercased text contains
// term as whole whitespace-separated tokens. Phrases must appear as consecutive
// tokens within a single segment.
func Align(term string, segments []types.TranscriptSegment) (float64, bool) {
	want := strings.Fields(strings.ToLower(term))
	if len(want) == 0 {
		return 0, false
	}
	for _, s := range segments {
		if containsRun(strings.Fields(strings.ToLower(s.Text)), want) {
			return s.Start, true
		}
	}
	return 0, false
}

func containsRun(tokens, want []string) bool {
	for i := 0; i+len(want) <= len(tokens); i++ {
		match := true
		for j := range want {
			if tokens[i+j] != want[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
