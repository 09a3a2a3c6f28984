package subtitles

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseASS parses the [Events] section of an ASS/SSA file. Only Dialogue
// lines are considered; styles, fonts, and script metadata are ignored.
func ParseASS(data []byte) ([]Cue, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\uFEFF")

	var (
		inEvents   bool
		fieldNames []string
		cues       []Cue
	)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			inEvents = strings.EqualFold(trimmed, "[Events]")
			continue
		}
		if !inEvents {
			continue
		}
		if value, ok := strings.CutPrefix(trimmed, "Format:"); ok {
			fieldNames = splitASSFields(value, -1)
			continue
		}
		value, ok := strings.CutPrefix(trimmed, "Dialogue:")
		if !ok {
			continue
		}
		if len(fieldNames) == 0 {
			fieldNames = defaultASSFields
		}
		cue, err := parseASSDialogue(value, fieldNames)
		if err != nil {
			continue
		}
		cues = append(cues, cue)
	}

	if cues == nil {
		return nil, errors.New("no dialogue events found")
	}
	return cues, nil
}

// Standard v4+ event field order, used when a file omits its Format line.
var defaultASSFields = []string{
	"Layer", "Start", "End", "Style", "Name",
	"MarginL", "MarginR", "MarginV", "Effect", "Text",
}

func parseASSDialogue(value string, fieldNames []string) (Cue, error) {
	fields := splitASSFields(value, len(fieldNames))
	if len(fields) != len(fieldNames) {
		return Cue{}, fmt.Errorf("dialogue has %d fields, want %d", len(fields), len(fieldNames))
	}

	var cue Cue
	var haveStart, haveEnd, haveText bool
	for i, name := range fieldNames {
		switch name {
		case "Start":
			start, err := parseASSTimestamp(fields[i])
			if err != nil {
				return Cue{}, err
			}
			cue.Start = start
			haveStart = true
		case "End":
			end, err := parseASSTimestamp(fields[i])
			if err != nil {
				return Cue{}, err
			}
			cue.End = end
			haveEnd = true
		case "Text":
			cue.Text = fields[i]
			haveText = true
		}
	}
	if !haveStart || !haveEnd || !haveText {
		return Cue{}, errors.New("dialogue missing Start, End, or Text field")
	}
	return cue, nil
}

// splitASSFields splits a comma-separated event line. The final field (Text)
// may itself contain commas, so the split is capped at the format's width.
func splitASSFields(value string, limit int) []string {
	parts := strings.SplitN(value, ",", limit)
	for i := range parts {
		if i < len(parts)-1 || limit < 0 {
			parts[i] = strings.TrimSpace(parts[i])
		} else {
			parts[i] = strings.TrimLeft(parts[i], " \t")
		}
	}
	return parts
}

// parseASSTimestamp converts "H:MM:SS.cc" (centiseconds) to milliseconds.
func parseASSTimestamp(value string) (int64, error) {
	value = strings.TrimSpace(value)
	main, frac, ok := strings.Cut(value, ".")
	if !ok {
		return 0, fmt.Errorf("invalid ass timestamp %q", value)
	}
	hms := strings.Split(main, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid ass timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	centis, errC := strconv.Atoi(frac)
	if errH != nil || errM != nil || errS != nil || errC != nil {
		return 0, fmt.Errorf("invalid ass timestamp %q", value)
	}
	return int64(hours)*3_600_000 + int64(minutes)*60_000 + int64(seconds)*1_000 + int64(centis)*10, nil
}
