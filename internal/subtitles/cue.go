package subtitles

// Cue is a single timed subtitle line. Times are integer milliseconds from
// the start of the track. A track is ordered by Start ascending; loaders in
// this package preserve file order, which is ascending for well-formed files.
type Cue struct {
	Start int64
	End   int64
	Text  string
}

// DurationMS returns the cue's span in milliseconds, floored at 1 so that
// zero-length cues never produce a zero divisor in ratio math.
func (c Cue) DurationMS() int64 {
	d := c.End - c.Start
	if d < 1 {
		return 1
	}
	return d
}

// Texts extracts the cleaned text of every cue, in order.
func Texts(cues []Cue) []string {
	lines := make([]string, len(cues))
	for i, cue := range cues {
		lines[i] = CleanText(cue.Text)
	}
	return lines
}
