package types

import (
	"fmt"
	"math"
	"strings"
)

// TranscriptSegment is one timed caption unit as delivered by the transcript source.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End is the exclusive end offset of the segment.
func (s TranscriptSegment) End() float64 {
	return s.Start + s.Duration
}

// TimeWindow is the caller-requested [Start, End) range in seconds.
type TimeWindow struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (w TimeWindow) Validate() error {
	if math.IsNaN(w.Start) || math.IsNaN(w.End) || math.IsInf(w.Start, 0) || math.IsInf(w.End, 0) {
		return fmt.Errorf("window bounds must be finite numbers")
	}
	if w.Start < 0 {
		return fmt.Errorf("window start must not be negative")
	}
	if w.Start >= w.End {
		return fmt.Errorf("window start (%.2f) must be before end (%.2f)", w.Start, w.End)
	}
	return nil
}

// Overlaps reports whether the segment shares any time with the window (half-open test).
func (w TimeWindow) Overlaps(s TranscriptSegment) bool {
	return s.Start < w.End && s.End() > w.Start
}

// ChunkWindows splits [0, total) into consecutive windows of the given size.
// The last window is clipped to total.
func ChunkWindows(total, size float64) []TimeWindow {
	if total <= 0 || size <= 0 {
		return nil
	}
	var out []TimeWindow
	for start := 0.0; start < total; start += size {
		out = append(out, TimeWindow{Start: start, End: math.Min(start+size, total)})
	}
	return out
}

// VocabAnnotation is a difficult word anchored to the first segment that says it.
type VocabAnnotation struct {
	Term        string   `json:"term"`
	Explanation string   `json:"explanation"`
	Synonyms    []string `json:"synonyms"`
	Timestamp   float64  `json:"timestamp"`
}

type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityEvent        EntityType = "event"
	EntityOrganization EntityType = "organization"
	EntityConcept      EntityType = "concept"
	EntityUnknown      EntityType = "unknown"
)

// ParseEntityType maps free-form model output onto the known entity types.
func ParseEntityType(s string) EntityType {
	switch t := EntityType(strings.ToLower(strings.TrimSpace(s))); t {
	case EntityPerson, EntityEvent, EntityOrganization, EntityConcept:
		return t
	default:
		return EntityUnknown
	}
}

// ContextEntity is a named person/event/organization/concept mentioned in the window.
// Timestamp is estimated by the model, not aligned against segments.
type ContextEntity struct {
	Entity    string     `json:"entity"`
	Type      EntityType `json:"type"`
	Timestamp float64    `json:"timestamp"`
	Summary   string     `json:"summary"`
}

// PipelineResult is the output of one pipeline run. Both lists are always non-nil.
type PipelineResult struct {
	VocabExplanations []VocabAnnotation `json:"vocab_explanations"`
	ContextEntities   []ContextEntity   `json:"context_entities"`
}

// RoundTimestamp rounds seconds to two decimal places.
func RoundTimestamp(v float64) float64 {
	return math.Round(v*100) / 100
}
