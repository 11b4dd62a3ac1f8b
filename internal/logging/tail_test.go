package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeLog(t *testing.T, lines int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retroai.log")
	var b strings.Builder
	for i := 1; i <= lines; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestTail_ReturnsLastLines(t *testing.T) {
	lines, err := Tail(writeLog(t, 10), 3)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if strings.Join(lines, ",") != "line 8,line 9,line 10" {
		t.Fatalf("Tail = %v, want last three lines", lines)
	}
}

func TestTail_ShortFile(t *testing.T) {
	lines, err := Tail(writeLog(t, 2), 5)
	if err != nil {
		t.Fatalf("Tail returned error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "line 1" {
		t.Fatalf("Tail = %v, want both lines", lines)
	}
}

func TestTail_MissingFileAndZero(t *testing.T) {
	lines, err := Tail(filepath.Join(t.TempDir(), "nope.log"), 5)
	if err != nil || lines != nil {
		t.Fatalf("Tail(missing) = %v, %v; want nil, nil", lines, err)
	}
	if lines, _ := Tail(writeLog(t, 3), 0); lines != nil {
		t.Fatalf("Tail(n=0) = %v, want nil", lines)
	}
}

func TestPretty_FormatsJSONAndPassesThroughText(t *testing.T) {
	var out bytes.Buffer
	err := Pretty(&out, []string{
		`{"level":"warn","run":"abc","query":"amiga","time":"2026-01-02T03:04:05Z","message":"archive search failed"}`,
		"plain text line",
	}, false)
	if err != nil {
		t.Fatalf("Pretty returned error: %v", err)
	}
	got := out.String()
	for _, want := range []string{"WRN", "archive search failed", "query=amiga", "plain text line"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Pretty output = %q, want it to contain %q", got, want)
		}
	}
	if strings.Contains(got, `"message"`) {
		t.Fatalf("Pretty output = %q, want JSON reformatted", got)
	}
}
