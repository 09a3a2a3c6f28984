package main

import (
	"fmt"

	"sublint/internal/align"
	"sublint/internal/subtitles"
)

const (
	masterSource = "source"
	masterTarget = "target"
)

// loadTracks reads both subtitle files into cue sequences.
func loadTracks(sourcePath, targetPath string) (source, target []subtitles.Cue, err error) {
	source, err = subtitles.Load(sourcePath)
	if err != nil {
		return nil, nil, fmt.Errorf("source track: %w", err)
	}
	target, err = subtitles.Load(targetPath)
	if err != nil {
		return nil, nil, fmt.Errorf("target track: %w", err)
	}
	return source, target, nil
}

// alignedLines produces equal-length source/target line slices. When the two
// tracks already agree on line count no alignment runs; otherwise the track
// named by master keeps its segmentation and the other track is re-cut onto
// it by time overlap.
func alignedLines(source, target []subtitles.Cue, master string) (sourceLines, targetLines []string, aligned bool, err error) {
	switch master {
	case masterSource, masterTarget:
	default:
		return nil, nil, false, fmt.Errorf("master must be %q or %q, got %q", masterSource, masterTarget, master)
	}

	if len(source) == len(target) {
		return subtitles.Texts(source), subtitles.Texts(target), false, nil
	}

	if master == masterSource {
		pairs := align.Pairs(source, target)
		sourceLines = make([]string, len(pairs))
		targetLines = make([]string, len(pairs))
		for i, p := range pairs {
			sourceLines[i] = p.MasterText
			targetLines[i] = p.MatchedText
		}
	} else {
		pairs := align.Pairs(target, source)
		sourceLines = make([]string, len(pairs))
		targetLines = make([]string, len(pairs))
		for i, p := range pairs {
			sourceLines[i] = p.MatchedText
			targetLines[i] = p.MasterText
		}
	}
	return sourceLines, targetLines, true, nil
}
