package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/five82/retroai/internal/ai"
	"github.com/five82/retroai/internal/archive"
	"github.com/five82/retroai/internal/state"
	"github.com/five82/retroai/internal/ui"
)

// State is a node of the session state machine.
type State int

const (
	StateMenu State = iota
	StateResults
	StateExit
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "MENU"
	case StateResults:
		return "RESULTS"
	case StateExit:
		return "EXIT"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Console is the terminal surface the loop drives.
type Console interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
	Pause(ctx context.Context, prompt string) error
	Show(block string)
	Clear()
	Status(label string, fn func() error) error
}

// Asker sends one question to the model.
type Asker interface {
	Dispatch(ctx context.Context, question string, mode ai.Mode) error
}

// Options wire a Loop to its collaborators.
type Options struct {
	Catalog   archive.Catalog
	AI        Asker
	Console   Console
	Renderer  *ui.Renderer
	Session   *state.Session // nil starts a fresh session
	Rows      int
	Open      func(url string) error  // nil uses OpenBrowser
	Copy      func(text string) error // nil uses CopyToClipboard
	SaveTheme func(name string) error // nil skips persistence
	Logger    zerolog.Logger
}

type stepFunc func(ctx context.Context) (State, error)

// Loop is the interactive session state machine.
type Loop struct {
	catalog   archive.Catalog
	asker     Asker
	console   Console
	render    *ui.Renderer
	session   *state.Session
	rows      int
	open      func(string) error
	copy      func(string) error
	saveTheme func(string) error
	log       zerolog.Logger

	steps map[State]stepFunc
}

// New builds a Loop from opts.
func New(opts Options) *Loop {
	l := &Loop{
		catalog:   opts.Catalog,
		asker:     opts.AI,
		console:   opts.Console,
		render:    opts.Renderer,
		session:   opts.Session,
		rows:      opts.Rows,
		open:      opts.Open,
		copy:      opts.Copy,
		saveTheme: opts.SaveTheme,
		log:       opts.Logger,
	}
	if l.session == nil {
		l.session = &state.Session{}
	}
	if l.render == nil {
		l.render = ui.NewRenderer("", 0)
	}
	if l.open == nil {
		l.open = OpenBrowser
	}
	if l.copy == nil {
		l.copy = CopyToClipboard
	}
	l.steps = map[State]stepFunc{
		StateMenu:    l.menu,
		StateResults: l.results,
	}
	return l
}

// Session returns the state owned by the loop.
func (l *Loop) Session() *state.Session { return l.session }

// Run drives the state machine from MENU until EXIT. End of input and
// Ctrl+C at a prompt end the loop cleanly; context cancellation returns
// the context error.
func (l *Loop) Run(ctx context.Context) error {
	current := StateMenu
	for current != StateExit {
		if err := ctx.Err(); err != nil {
			return err
		}
		step, ok := l.steps[current]
		if !ok {
			return fmt.Errorf("no transition for state %s", current)
		}
		next, err := step(ctx)
		if err != nil {
			return err
		}
		if next != current {
			l.log.Debug().Stringer("from", current).Stringer("to", next).Msg("session transition")
		}
		current = next
	}
	return nil
}

func (l *Loop) menu(ctx context.Context) (State, error) {
	l.session.SetOnline(l.catalog.Probe(ctx))

	l.console.Clear()
	l.console.Show(l.render.Menu(l.session.Online))

	choice, err := l.console.ReadLine(ctx, "Select: ")
	if err != nil {
		return endOfInput(ctx, err)
	}

	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "1":
		return l.search(ctx)
	case "2":
		return l.askFreeform(ctx)
	case "3":
		return l.repeat(ctx)
	case "t":
		l.cycleTheme()
		return StateMenu, nil
	case "q":
		l.console.Show(l.render.Success("Goodbye."))
		return StateExit, nil
	default:
		l.report(ErrInvalidOption)
		return l.pause(ctx, StateMenu, "")
	}
}

func (l *Loop) search(ctx context.Context) (State, error) {
	if !l.session.Online {
		l.report(ErrOffline)
		return l.pause(ctx, StateMenu, "")
	}

	query, err := l.console.ReadLine(ctx, "Search query: ")
	if err != nil {
		return endOfInput(ctx, err)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		l.report(fmt.Errorf("search query: %w", ErrEmptyInput))
		return l.pause(ctx, StateMenu, "")
	}
	l.session.RecordQuery(query)

	results, err := l.runSearch(ctx, "Searching archive...", query)
	if err != nil {
		if ctx.Err() != nil {
			return StateExit, ctx.Err()
		}
		l.report(fmt.Errorf("search failed: %w", err))
		return l.pause(ctx, StateMenu, "")
	}

	if len(results) == 0 {
		return l.pause(ctx, StateMenu, "Press Enter to return to menu")
	}
	return StateResults, nil
}

func (l *Loop) repeat(ctx context.Context) (State, error) {
	if !l.session.HasQuery() || !l.session.Online {
		l.console.Show(l.render.Notice(message(ErrNoPrevious)))
		return l.pause(ctx, StateMenu, "")
	}

	results, err := l.runSearch(ctx, "Repeating last search...", l.session.LastQuery)
	if err != nil {
		if ctx.Err() != nil {
			return StateExit, ctx.Err()
		}
		l.report(fmt.Errorf("search failed: %w", err))
		return l.pause(ctx, StateMenu, "")
	}
	if len(results) == 0 {
		return l.pause(ctx, StateMenu, "Press Enter to return to menu")
	}
	return l.pause(ctx, StateMenu, "")
}

// runSearch queries the catalog, stores results and renders them. A failed
// search leaves the previous results in place.
func (l *Loop) runSearch(ctx context.Context, label, query string) ([]archive.Result, error) {
	var results []archive.Result
	err := l.console.Status(label, func() error {
		var err error
		results, err = l.catalog.Search(ctx, query, l.rows)
		return err
	})
	if err != nil {
		l.log.Warn().Err(err).Str("query", query).Msg("archive search failed")
		return nil, err
	}
	l.log.Debug().Str("query", query).Int("results", len(results)).Msg("archive search")

	l.session.ReplaceResults(results)
	l.console.Show(l.render.Results(results))
	return results, nil
}

func (l *Loop) askFreeform(ctx context.Context) (State, error) {
	question, err := l.console.ReadLine(ctx, "Ask Darkelf Retro AI: ")
	if err != nil {
		return endOfInput(ctx, err)
	}
	question = strings.TrimSpace(question)
	if question == "" {
		l.report(fmt.Errorf("question: %w", ErrEmptyInput))
		return l.pause(ctx, StateMenu, "")
	}
	l.ask(ctx, question, ai.ModeFreeform)
	return l.pause(ctx, StateMenu, "")
}

// ask records question and streams the model's answer, reporting failures
// inline.
func (l *Loop) ask(ctx context.Context, question string, mode ai.Mode) {
	l.session.Remember(question)
	err := l.asker.Dispatch(ctx, question, mode)
	if err == nil || ctx.Err() != nil {
		return
	}
	l.report(err)
	l.log.Warn().Err(err).Str("mode", string(mode)).Msg("model dispatch failed")
}

func (l *Loop) cycleTheme() {
	next := ui.NextTheme(l.render.ThemeName())
	l.render.SetTheme(next)
	if l.saveTheme == nil {
		return
	}
	if err := l.saveTheme(next); err != nil {
		l.log.Warn().Err(err).Str("theme", next).Msg("save theme preference")
	}
}

func (l *Loop) results(ctx context.Context) (State, error) {
	line, err := l.console.ReadLine(ctx, "Action: ")
	if err != nil {
		return endOfInput(ctx, err)
	}
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return StateMenu, nil
	}

	switch fields[0] {
	case "q", "back":
		return StateMenu, nil
	case "a":
		return l.askAboutResult(ctx, fields[1:])
	case "o":
		return l.openResult(ctx, fields[1:])
	case "c":
		return l.copyResult(ctx, fields[1:])
	}

	if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
		return l.showDetail(ctx, n)
	}
	l.report(ErrUnknownCommand)
	return StateResults, nil
}

func (l *Loop) showDetail(ctx context.Context, n int) (State, error) {
	res, err := l.session.Result(n - 1)
	if err != nil {
		l.report(err)
		return StateResults, nil
	}

	var detail archive.ItemDetail
	err = l.console.Status("Fetching item...", func() error {
		var err error
		detail, err = l.catalog.Item(ctx, res.Identifier)
		return err
	})
	if err != nil {
		if ctx.Err() != nil {
			return StateExit, ctx.Err()
		}
		l.log.Warn().Err(err).Str("identifier", res.Identifier).Msg("item detail failed")
		l.report(fmt.Errorf("detail fetch failed: %w", err))
		return StateResults, nil
	}

	l.console.Show(l.render.Detail(detail))
	if err := l.console.Pause(ctx, "Press Enter to return to results"); err != nil {
		return endOfInput(ctx, err)
	}
	l.showResults()
	return StateResults, nil
}

func (l *Loop) askAboutResult(ctx context.Context, args []string) (State, error) {
	res, ok, err := l.pickResult(ctx, args)
	if err != nil || !ok {
		return l.afterPick(ctx, err)
	}
	mode, err := l.pickMode(ctx)
	if err != nil {
		return endOfInput(ctx, err)
	}
	l.ask(ctx, ai.ItemPrompt(res), mode)
	if err := l.console.Pause(ctx, "Press Enter to return to results"); err != nil {
		return endOfInput(ctx, err)
	}
	l.showResults()
	return StateResults, nil
}

func (l *Loop) openResult(ctx context.Context, args []string) (State, error) {
	res, ok, err := l.pickResult(ctx, args)
	if err != nil || !ok {
		return l.afterPick(ctx, err)
	}
	if err := l.open(res.URL()); err != nil {
		l.log.Warn().Err(err).Str("url", res.URL()).Msg("open browser")
		l.report(fmt.Errorf("open browser: %w", err))
		return StateResults, nil
	}
	l.console.Show(l.render.Notice("Opening " + res.URL()))
	return StateResults, nil
}

func (l *Loop) copyResult(ctx context.Context, args []string) (State, error) {
	res, ok, err := l.pickResult(ctx, args)
	if err != nil || !ok {
		return l.afterPick(ctx, err)
	}
	if err := l.copy(res.URL()); err != nil {
		l.log.Warn().Err(err).Msg("copy to clipboard")
		l.report(fmt.Errorf("copy link: %w", err))
		return StateResults, nil
	}
	l.console.Show(l.render.Success("Copied " + res.URL()))
	return StateResults, nil
}

// pickResult resolves the item number from args or, when absent, by asking.
// ok is false when the number was reported as invalid.
func (l *Loop) pickResult(ctx context.Context, args []string) (archive.Result, bool, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		line, err := l.console.ReadLine(ctx, "Item number: ")
		if err != nil {
			return archive.Result{}, false, err
		}
		raw = strings.TrimSpace(line)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		l.report(fmt.Errorf("%w: %q is not a number", state.ErrInvalidIndex, raw))
		return archive.Result{}, false, nil
	}
	res, err := l.session.Result(n - 1)
	if err != nil {
		l.report(err)
		return archive.Result{}, false, nil
	}
	return res, true, nil
}

func (l *Loop) afterPick(ctx context.Context, err error) (State, error) {
	if err != nil {
		return endOfInput(ctx, err)
	}
	return StateResults, nil
}

// pickMode asks for an output mode until a valid one is given. Blank input
// selects FACT_SHEET.
func (l *Loop) pickMode(ctx context.Context) (ai.Mode, error) {
	names := make([]string, 0, len(ai.Modes()))
	for _, m := range ai.Modes() {
		names = append(names, string(m))
	}
	prompt := fmt.Sprintf("AI Mode [%s] (%s): ", strings.Join(names, "/"), ai.ModeFactSheet)
	for {
		line, err := l.console.ReadLine(ctx, prompt)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			return ai.ModeFactSheet, nil
		}
		if mode, ok := ai.ParseMode(line); ok {
			return mode, nil
		}
		l.report(fmt.Errorf("unknown mode %q", strings.TrimSpace(line)))
	}
}

func (l *Loop) showResults() {
	l.console.Clear()
	l.console.Show(l.render.Results(l.session.Results))
}

func (l *Loop) report(err error) {
	l.console.Show(l.render.Error(message(err)))
}

// message renders err as a sentence-case inline message.
func message(err error) string {
	text := err.Error()
	r, size := utf8.DecodeRuneInString(text)
	if size == 0 {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}

func (l *Loop) pause(ctx context.Context, next State, prompt string) (State, error) {
	if err := ctx.Err(); err != nil {
		return StateExit, err
	}
	if err := l.console.Pause(ctx, prompt); err != nil {
		return endOfInput(ctx, err)
	}
	return next, nil
}

// endOfInput maps a read failure to a transition. Exhausted input and
// Ctrl+C end the session; cancellation and anything else are returned.
func endOfInput(ctx context.Context, err error) (State, error) {
	if ctx.Err() != nil {
		return StateExit, ctx.Err()
	}
	if errors.Is(err, io.EOF) || errors.Is(err, ui.ErrAborted) {
		return StateExit, nil
	}
	return StateExit, fmt.Errorf("read input: %w", err)
}
