package ai

import (
	"fmt"
	"strings"

	"github.com/five82/retroai/internal/archive"
)

// Mode steers the structure of the model's reply.
type Mode string

const (
	ModeFreeform  Mode = "FREEFORM"
	ModeFactSheet Mode = "FACT_SHEET"
	ModeTimeline  Mode = "TIMELINE"
)

// DefaultMode is used when a caller does not pick one.
const DefaultMode = ModeFreeform

var modes = []Mode{ModeFreeform, ModeFactSheet, ModeTimeline}

// Modes returns the closed set of output modes in menu order.
func Modes() []Mode {
	return append([]Mode(nil), modes...)
}

// ParseMode matches value against the known modes, ignoring case and
// surrounding space. Dashes and spaces are accepted in place of underscores.
func ParseMode(value string) (Mode, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for _, m := range modes {
		if string(m) == normalized {
			return m, true
		}
	}
	return "", false
}

func (m Mode) orDefault() Mode {
	if _, ok := ParseMode(string(m)); ok {
		return m
	}
	return DefaultMode
}

const (
	persona   = "You are Darkelf Retro AI."
	focus     = "Focus on retro computing, emulation, and digital preservation."
	styleLine = "Be concise, factual, and structured when possible."
)

// BuildPrompt composes the identity preamble, the mode label and question
// into the text handed to the model.
func BuildPrompt(mode Mode, question string) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n")
	b.WriteString(focus)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Output Mode: %s\n", mode.orDefault())
	b.WriteString(styleLine)
	b.WriteString("\n\n")
	b.WriteString(question)
	return b.String()
}

// ItemPrompt builds the question asked about a search result.
func ItemPrompt(r archive.Result) string {
	var b strings.Builder
	b.WriteString("Analyze this archival item:\n\n")
	fmt.Fprintf(&b, "Title: %s\n", r.Title)
	fmt.Fprintf(&b, "Year: %s\n", valueOr(r.Year, "unknown"))
	fmt.Fprintf(&b, "Type: %s\n", valueOr(r.MediaType, "unknown"))
	fmt.Fprintf(&b, "URL: %s\n\n", r.URL())
	b.WriteString("Explain its historical relevance and technical context.")
	return b.String()
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
