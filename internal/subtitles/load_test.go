package subtitles

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadSRT(t *testing.T) {
	path := writeFixture(t, "track.srt", "1\n00:00:01,000 --> 00:00:02,000\nhello\n")
	cues, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cues) != 1 || cues[0].Text != "hello" {
		t.Fatalf("unexpected cues: %+v", cues)
	}
}

func TestLoadTxt(t *testing.T) {
	path := writeFixture(t, "script.txt", "line one\nline two\n")
	cues, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFixture(t, "video.mkv", "not a subtitle")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestLoadEmptySRT(t *testing.T) {
	path := writeFixture(t, "empty.srt", "\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty srt")
	}
}
