package ui

import (
	"strings"
	"testing"

	"github.com/five82/retroai/internal/archive"
)

func amigaResults() []archive.Result {
	return []archive.Result{
		{Identifier: "amiga1986", Title: "Amiga 1000 Launch", Year: "1986", MediaType: "movies"},
		{Identifier: "wb13", Title: "Workbench 1.3"},
	}
}

func TestResultRows_ProjectsInOrder(t *testing.T) {
	rows := ResultRows(amigaResults())
	if len(rows) != 2 {
		t.Fatalf("ResultRows returned %d rows, want 2", len(rows))
	}
	want := [][]string{
		{"1", "Amiga 1000 Launch", "1986", "movies"},
		{"2", "Workbench 1.3", "", ""},
	}
	for i := range want {
		if strings.Join(rows[i], "|") != strings.Join(want[i], "|") {
			t.Fatalf("rows[%d] = %q, want %q", i, rows[i], want[i])
		}
	}
}

func TestResultRows_Empty(t *testing.T) {
	if rows := ResultRows(nil); len(rows) != 0 {
		t.Fatalf("ResultRows(nil) = %v, want empty", rows)
	}
}

func TestResults_EmptyShowsNoticeWithoutTable(t *testing.T) {
	r := NewRenderer("Dracula", 80)
	out := r.Results(nil)
	if !strings.Contains(out, "NO RESULTS FOUND") {
		t.Fatalf("Results(nil) = %q, want notice", out)
	}
	if strings.Contains(out, "Title") || strings.Contains(out, "Shortcuts") {
		t.Fatalf("Results(nil) = %q, want no table", out)
	}
	if lines := strings.Split(strings.TrimSpace(out), "\n"); len(lines) != 3 {
		t.Fatalf("Results(nil) has %d lines, want notice plus two hints", len(lines))
	}
}

func TestResults_RendersTableAndShortcuts(t *testing.T) {
	r := NewRenderer("Slate", 100)
	out := r.Results(amigaResults())
	for _, want := range []string{"#", "Title", "Year", "Type", "Amiga 1000 Launch", "Workbench 1.3", "1986", "movies", resultShortcuts} {
		if !strings.Contains(out, want) {
			t.Fatalf("Results = %q, want it to contain %q", out, want)
		}
	}
	if strings.Index(out, "Amiga 1000 Launch") > strings.Index(out, "Workbench 1.3") {
		t.Fatalf("Results reordered rows: %q", out)
	}
}

func TestResults_TruncatesLongTitles(t *testing.T) {
	r := NewRenderer("Dracula", 60)
	long := strings.Repeat("Commodore ", 20)
	out := r.Results([]archive.Result{{Identifier: "x", Title: long}})
	if strings.Contains(out, strings.TrimSpace(long)) {
		t.Fatalf("Results kept the full long title")
	}
	if !strings.Contains(out, "...") {
		t.Fatalf("Results = %q, want ellipsis", out)
	}
}

func TestMenu_ShowsOptionsAndNetwork(t *testing.T) {
	r := NewRenderer("Dracula", 80)
	online := r.Menu(true)
	for _, want := range []string{"[1] Search Internet Archive", "[2] Ask Retro AI", "[3] Repeat Last Search", "[t] Cycle Theme", "[q] Quit", "Network: ONLINE"} {
		if !strings.Contains(online, want) {
			t.Fatalf("Menu(true) missing %q", want)
		}
	}
	if offline := r.Menu(false); !strings.Contains(offline, "Network: OFFLINE") {
		t.Fatalf("Menu(false) missing OFFLINE status")
	}
}

func TestDetail_ShowsFields(t *testing.T) {
	r := NewRenderer("Dracula", 80)
	out := r.Detail(archive.ItemDetail{
		Identifier:  "amiga1986",
		Title:       "Amiga 1000 Launch",
		Description: "Launch event at Lincoln Center.",
		Year:        "1985",
	})
	for _, want := range []string{"Amiga 1000 Launch", "1985", "unknown", "https://archive.org/details/amiga1986", "Lincoln Center"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Detail = %q, want it to contain %q", out, want)
		}
	}
}

func TestBoot(t *testing.T) {
	out := NewRenderer("", 0).Boot()
	if !strings.Contains(out, "Darkelf Retro AI initializing…") {
		t.Fatalf("Boot = %q, want initializing line", out)
	}
}

func TestRenderer_Defaults(t *testing.T) {
	r := NewRenderer("Nope", 10)
	if r.ThemeName() != "Dracula" {
		t.Fatalf("ThemeName = %q, want Dracula", r.ThemeName())
	}
	if r.width != defaultWidth {
		t.Fatalf("width = %d, want %d", r.width, defaultWidth)
	}
}

func TestThemeCycle(t *testing.T) {
	for _, name := range themeOrder {
		if _, ok := themes[name]; !ok {
			t.Fatalf("theme %q in cycle order is not registered", name)
		}
	}
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  padded  ", 10, "padded"},
		{"Workbench 1.3", 8, "Workb..."},
		{"abcdef", 3, "abc"},
		{"日本語テキスト", 7, "日本..."},
		{"anything", 0, "anything"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestTailLines(t *testing.T) {
	if got := tailLines("a\nb\nc", 2); got != "b\nc" {
		t.Fatalf("tailLines = %q, want b\\nc", got)
	}
	if got := tailLines("a", 5); got != "a" {
		t.Fatalf("tailLines = %q, want a", got)
	}
	if got := tailLines("a", 0); got != "" {
		t.Fatalf("tailLines n=0 = %q, want empty", got)
	}
}
