package subtitles

import "testing"

const sampleASS = `[Script Info]
Title: sample
ScriptType: v4.00+

[V4+ Styles]
Format: Name, Fontname, Fontsize
Style: Default,Arial,20

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.50,0:00:03.00,Default,,0,0,0,,{\i1}Hello{\i0} there
Dialogue: 0,0:00:04.00,0:00:05.25,Default,,0,0,0,,Second line, with a comma
Comment: 0,0:00:06.00,0:00:07.00,Default,,0,0,0,,ignored
`

func TestParseASS(t *testing.T) {
	cues, err := ParseASS([]byte(sampleASS))
	if err != nil {
		t.Fatalf("ParseASS: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Start != 1_500 || cues[0].End != 3_000 {
		t.Errorf("cue 0 window = [%d, %d], want [1500, 3000]", cues[0].Start, cues[0].End)
	}
	if cues[0].Text != `{\i1}Hello{\i0} there` {
		t.Errorf("cue 0 text = %q", cues[0].Text)
	}
	if cues[1].Text != "Second line, with a comma" {
		t.Errorf("cue 1 text = %q", cues[1].Text)
	}
}

func TestParseASSWithoutFormatLine(t *testing.T) {
	content := "[Events]\nDialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,plain text\n"
	cues, err := ParseASS([]byte(content))
	if err != nil {
		t.Fatalf("ParseASS: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "plain text" {
		t.Fatalf("unexpected cues: %+v", cues)
	}
}

func TestParseASSNoEvents(t *testing.T) {
	if _, err := ParseASS([]byte("[Script Info]\nTitle: empty\n")); err == nil {
		t.Fatal("expected error for file without dialogue events")
	}
}

func TestParseASSTimestamp(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"0:00:01.50", 1_500, false},
		{"1:02:03.04", 3_723_040, false},
		{"0:00:00.00", 0, false},
		{"0:00:01", 0, true},
		{"bad", 0, true},
	}
	for _, tt := range tests {
		got, err := parseASSTimestamp(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseASSTimestamp(%q) expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseASSTimestamp(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseASSTimestamp(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
