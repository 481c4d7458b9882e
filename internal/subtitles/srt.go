package subtitles

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"dubber/internal/segments"
)

// Variant selects which text a generated subtitle file carries.
type Variant int

const (
	// Original writes the transcribed source text.
	Original Variant = iota
	// Translated writes the per-language translated text.
	Translated
)

// WriteSRT renders the sequence as a standard SRT file at path. Segments
// whose selected text is empty still get a cue (with empty text) so indices
// stay aligned with the sequence.
func WriteSRT(path string, seq segments.Sequence, variant Variant) error {
	var b strings.Builder
	for i, seg := range seq {
		text := seg.SourceText
		if variant == Translated {
			text = seg.TranslatedText
		}
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(seg.Start), FormatTimestamp(seg.End))
		b.WriteString(strings.TrimSpace(text))
		b.WriteString("\n\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write srt: %w", err)
	}
	return nil
}

// ParseSRT reads an SRT file back into a sequence. Only start, end, and text
// survive the round trip; derived artifact paths do not appear in subtitles.
func ParseSRT(path string) (segments.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(content), "\n\n")

	var seq segments.Sequence
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}
		// lines[0] is the cue index; the time range is on the next line.
		rangeLine := lines[1]
		parts := strings.Split(rangeLine, "-->")
		if len(parts) != 2 {
			return nil, fmt.Errorf("parse srt: malformed time range %q", rangeLine)
		}
		start, err := ParseTimestamp(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("parse srt: %w", err)
		}
		end, err := ParseTimestamp(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("parse srt: %w", err)
		}
		text := ""
		if len(lines) > 2 {
			text = strings.Join(lines[2:], "\n")
		}
		seq = append(seq, segments.Segment{Start: start, End: end, SourceText: strings.TrimSpace(text)})
	}
	return seq, nil
}

// FormatTimestamp renders seconds as the SRT HH:MM:SS,mmm form.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(math.Round(seconds * 1000))
	h := millis / 3_600_000
	m := millis % 3_600_000 / 60_000
	s := millis % 60_000 / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// ParseTimestamp converts an SRT timestamp back to seconds. Periods are
// accepted in place of the standard comma.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ".", ","))
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
