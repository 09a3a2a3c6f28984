package subtitles

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PlainTextWindowMS is the dummy time window given to cues loaded from plain
// text files. It is large enough (100 hours) that every line stays inside
// any realistic alignment window.
const PlainTextWindowMS = 360_000_000

// Load reads a subtitle file and returns its cues. The format is chosen by
// file extension: .srt, .ass/.ssa, or .txt.
func Load(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subtitle file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".srt":
		cues := ParseSRT(data)
		if len(cues) == 0 {
			return nil, fmt.Errorf("no cues found in %s", filepath.Base(path))
		}
		return cues, nil
	case ".ass", ".ssa":
		cues, err := ParseASS(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
		return cues, nil
	case ".txt":
		cues := ParsePlainText(data)
		if len(cues) == 0 {
			return nil, fmt.Errorf("no text lines found in %s", filepath.Base(path))
		}
		return cues, nil
	default:
		return nil, fmt.Errorf("unsupported subtitle format %q", filepath.Ext(path))
	}
}

// ParsePlainText turns each non-empty line into a cue spanning the full
// plain-text window, so line-per-line scripts can act as an alignment pool
// even without timing information.
func ParsePlainText(data []byte) []Cue {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimPrefix(content, "\uFEFF")

	var cues []Cue
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cues = append(cues, Cue{Start: 0, End: PlainTextWindowMS, Text: line})
	}
	return cues
}
