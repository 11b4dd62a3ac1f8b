package ai

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/five82/retroai/internal/archive"
)

func TestBuildPrompt_OrdersPreambleModeQuestion(t *testing.T) {
	question := "What is the Amiga 1200?"
	prompt := BuildPrompt(ModeFactSheet, question)

	preamble := strings.Index(prompt, "You are Darkelf Retro AI.")
	label := strings.Index(prompt, "FACT_SHEET")
	body := strings.Index(prompt, question)
	if preamble < 0 || label < 0 || body < 0 {
		t.Fatalf("prompt = %q, want preamble, mode label and question", prompt)
	}
	if !(preamble < label && label < body) {
		t.Fatalf("prompt order = %d/%d/%d, want preamble < label < question", preamble, label, body)
	}
	if !strings.HasSuffix(prompt, "\n\n"+question) {
		t.Fatalf("prompt = %q, want question verbatim after a blank line", prompt)
	}
}

func TestBuildPrompt_UnknownModeFallsBack(t *testing.T) {
	prompt := BuildPrompt(Mode("POETRY"), "hi")
	if !strings.Contains(prompt, "Output Mode: FREEFORM") {
		t.Fatalf("prompt = %q, want default mode label", prompt)
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
		ok   bool
	}{
		{"FREEFORM", ModeFreeform, true},
		{" fact_sheet ", ModeFactSheet, true},
		{"fact-sheet", ModeFactSheet, true},
		{"Timeline", ModeTimeline, true},
		{"", "", false},
		{"essay", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseMode(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestModesIsClosedSet(t *testing.T) {
	got := Modes()
	if len(got) != 3 || got[0] != ModeFreeform || got[1] != ModeFactSheet || got[2] != ModeTimeline {
		t.Fatalf("Modes() = %v, want [FREEFORM FACT_SHEET TIMELINE]", got)
	}
	got[0] = "MUTATED"
	if Modes()[0] != ModeFreeform {
		t.Fatalf("Modes() should return a copy")
	}
}

func TestItemPrompt(t *testing.T) {
	prompt := ItemPrompt(archive.Result{Title: "Workbench 1.3", Identifier: "wb13"})
	for _, want := range []string{
		"Title: Workbench 1.3",
		"Year: unknown",
		"Type: unknown",
		"URL: https://archive.org/details/wb13",
		"historical relevance",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("ItemPrompt = %q, want it to contain %q", prompt, want)
		}
	}
}

// byteReader hands out one byte per Read to force rune splits.
type byteReader struct{ data []byte }

func (r *byteReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func TestPump_KeepsRunesWhole(t *testing.T) {
	text := "Amiga → Workbench ✓ 日本"
	var chunks []string
	if err := pump(&byteReader{data: []byte(text)}, func(s string) { chunks = append(chunks, s) }); err != nil {
		t.Fatalf("pump returned error: %v", err)
	}
	for _, c := range chunks {
		if !utf8.ValidString(c) {
			t.Fatalf("chunk %q is not valid UTF-8", c)
		}
	}
	if got := strings.Join(chunks, ""); got != text {
		t.Fatalf("pump output = %q, want %q", got, text)
	}
}

func TestPump_ReturnsReadErrors(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(bytes.NewReader([]byte("abc")), &failingReader{err: boom})
	var got string
	err := pump(r, func(s string) { got += s })
	if !errors.Is(err, boom) {
		t.Fatalf("pump error = %v, want boom", err)
	}
	if got != "abc" {
		t.Fatalf("pump output = %q, want abc before the error", got)
	}
}

type failingReader struct{ err error }

func (r *failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestCompletePrefix(t *testing.T) {
	arrow := []byte("→") // 3 bytes
	cases := []struct {
		name string
		in   []byte
		want int
	}{
		{"ascii", []byte("abc"), 3},
		{"full rune", append([]byte("a"), arrow...), 4},
		{"one byte of rune", append([]byte("a"), arrow[0]), 1},
		{"two bytes of rune", append([]byte("a"), arrow[:2]...), 1},
		{"empty", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := completePrefix(tc.in); got != tc.want {
				t.Fatalf("completePrefix(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}
