// Package subtitles loads timed subtitle cues from SRT, ASS/SSA, and plain
// text files and normalizes their text for comparison and review.
//
// Parsing is deliberately lenient: malformed cue blocks are skipped rather
// than failing the whole file, matching how real-world subtitle files tend
// to degrade.
package subtitles
