package transcript

import (
	"strings"

	"vocab-annotator-go/internal/types"
)

// Filter keeps the segments overlapping w, in source order, and joins their text.
// It returns ErrEmptyWindow when the joined text is blank.
func Filter(segments []types.TranscriptSegment, w types.TimeWindow) (string, []types.TranscriptSegment, error) {
	var kept []types.TranscriptSegment
	var texts []string
	for _, s := range segments {
		if w.Overlaps(s) {
			kept = append(kept, s)
			texts = append(texts, s.Text)
		}
	}
	text := strings.TrimSpace(strings.Join(texts, " "))
	if text == "" {
		return "", nil, ErrEmptyWindow
	}
	return text, kept, nil
}
