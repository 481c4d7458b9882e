package segments

import (
	"fmt"
	"strings"
)

// Segment is one utterance-level unit of the transcript. Start, End, and
// SourceText are fixed at creation; the remaining fields are filled in by
// later pipeline stages. A segment's index in its sequence is its identity;
// segments are never reordered.
type Segment struct {
	Start      float64 // seconds from the beginning of the source
	End        float64 // seconds; End > Start
	SourceText string

	// TranslatedText is set once by the translation stage; empty until then
	// and left empty when translation fails for this segment.
	TranslatedText string

	// SynthesizedClip is the raw speech clip path; empty until synthesis
	// runs, and permanently empty if synthesis failed for this segment.
	SynthesizedClip string

	// AlignedClip is the time-fitted clip path derived from SynthesizedClip.
	AlignedClip string
}

// TimeBudget is the duration the segment's dubbed audio must fit into.
func (s Segment) TimeBudget() float64 {
	return s.End - s.Start
}

// HasClip reports whether the segment produced a clip usable for mixing.
func (s Segment) HasClip() bool {
	return strings.TrimSpace(s.AlignedClip) != ""
}

// Sequence is the ordered segment collection one job works on.
type Sequence []Segment

// Validate checks the structural invariants: positive time budgets and
// monotonically non-decreasing start offsets.
func (seq Sequence) Validate() error {
	prev := 0.0
	for i, seg := range seq {
		if seg.Start < 0 {
			return fmt.Errorf("segment %d: negative start %.3f", i, seg.Start)
		}
		if seg.End <= seg.Start {
			return fmt.Errorf("segment %d: end %.3f not after start %.3f", i, seg.End, seg.Start)
		}
		if seg.Start < prev {
			return fmt.Errorf("segment %d: start %.3f before previous segment's %.3f", i, seg.Start, prev)
		}
		prev = seg.Start
	}
	return nil
}

// Clone returns an independent deep copy. Batch runs take one copy per target
// language so no language's stages can mutate another's text or clip paths.
func (seq Sequence) Clone() Sequence {
	if seq == nil {
		return nil
	}
	out := make(Sequence, len(seq))
	copy(out, seq)
	return out
}

// Translated counts segments that have a non-empty translation.
func (seq Sequence) Translated() int {
	n := 0
	for _, seg := range seq {
		if strings.TrimSpace(seg.TranslatedText) != "" {
			n++
		}
	}
	return n
}

// WithClips counts segments that produced a mixable clip.
func (seq Sequence) WithClips() int {
	n := 0
	for _, seg := range seq {
		if seg.HasClip() {
			n++
		}
	}
	return n
}
