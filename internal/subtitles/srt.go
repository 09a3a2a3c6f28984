package subtitles

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSRT parses SRT content into cues. Blocks that are missing an index,
// timing line, or text are skipped.
func ParseSRT(data []byte) []Cue {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\uFEFF")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	blocks := strings.Split(content, "\n\n")
	var cues []Cue

	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}

		if _, err := strconv.Atoi(strings.TrimSpace(lines[0])); err != nil {
			continue
		}

		parts := strings.Split(lines[1], "-->")
		if len(parts) != 2 {
			continue
		}
		start, err := ParseSRTTimestamp(parts[0])
		if err != nil {
			continue
		}
		end, err := ParseSRTTimestamp(parts[1])
		if err != nil {
			continue
		}

		cues = append(cues, Cue{
			Start: start,
			End:   end,
			Text:  strings.Join(lines[2:], "\n"),
		})
	}

	return cues
}

// FormatSRT renders cues as SRT content, renumbering from 1.
func FormatSRT(cues []Cue) []byte {
	var sb strings.Builder
	for i, cue := range cues {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d\n", i+1)
		fmt.Fprintf(&sb, "%s --> %s\n", FormatSRTTimestamp(cue.Start), FormatSRTTimestamp(cue.End))
		sb.WriteString(cue.Text)
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

// ParseSRTTimestamp converts "HH:MM:SS,mmm" (or the period variant) to
// milliseconds.
func ParseSRTTimestamp(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(strings.TrimSpace(hms[0]))
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return int64(hours)*3_600_000 + int64(minutes)*60_000 + int64(seconds)*1_000 + int64(millis), nil
}

// FormatSRTTimestamp renders milliseconds as "HH:MM:SS,mmm".
func FormatSRTTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	secs := ms / 1_000
	millis := ms % 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
