package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrAborted reports Ctrl+C at a prompt.
var ErrAborted = errors.New("input aborted")

// Console owns terminal input and output for the session. On a terminal it
// uses liner for line editing and bubbletea for transient regions; otherwise
// it falls back to a line scanner and plain writes.
type Console struct {
	in       io.Reader
	out      io.Writer
	tty      bool
	line     *liner.State
	scanner  *bufio.Scanner
	renderer *Renderer
	pending  chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// NewConsole wires a console to in and out. Line editing is only enabled
// when both are the process terminal.
func NewConsole(in io.Reader, out io.Writer, renderer *Renderer) *Console {
	c := &Console{in: in, out: out, renderer: renderer}
	inFile, inOK := in.(*os.File)
	outFile, outOK := out.(*os.File)
	c.tty = inOK && outOK &&
		inFile == os.Stdin &&
		term.IsTerminal(int(inFile.Fd())) &&
		term.IsTerminal(int(outFile.Fd()))

	if c.tty {
		c.line = liner.NewLiner()
		c.line.SetCtrlCAborts(true)
		if w, _, err := term.GetSize(int(outFile.Fd())); err == nil && renderer != nil {
			renderer.SetWidth(w)
		}
	} else {
		c.scanner = bufio.NewScanner(in)
	}
	return c
}

// Interactive reports whether the console drives a real terminal.
func (c *Console) Interactive() bool { return c.tty }

// ReadLine prompts for one line of input. It returns io.EOF when input is
// exhausted, ErrAborted on Ctrl+C and the context error once ctx is done.
// A read interrupted by ctx stays pending and feeds the next call.
func (c *Console) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.pending == nil {
		pending := make(chan lineResult, 1)
		c.pending = pending
		go func() {
			text, err := c.read(prompt)
			pending <- lineResult{text: text, err: err}
		}()
	}
	select {
	case res := <-c.pending:
		c.pending = nil
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *Console) read(prompt string) (string, error) {
	if c.line != nil {
		value, err := c.line.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			return "", ErrAborted
		case err != nil:
			return "", err
		}
		if strings.TrimSpace(value) != "" {
			c.line.AppendHistory(value)
		}
		return value, nil
	}

	fmt.Fprint(c.out, prompt)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.scanner.Text(), nil
}

// Pause waits for Enter.
func (c *Console) Pause(ctx context.Context, prompt string) error {
	if prompt == "" {
		prompt = "Press Enter to continue"
	}
	_, err := c.ReadLine(ctx, prompt+" ")
	return err
}

// Show writes a rendered block followed by a newline.
func (c *Console) Show(block string) {
	fmt.Fprintln(c.out, block)
}

// Clear wipes the terminal. It is a no-op when output is not a terminal.
func (c *Console) Clear() {
	if !c.tty {
		return
	}
	termenv.NewOutput(c.out).ClearScreen()
}

// Status runs fn while a spinner labelled label is shown.
func (c *Console) Status(label string, fn func() error) error {
	if !c.tty {
		fmt.Fprintln(c.out, label)
		return fn()
	}

	result := make(chan error, 1)
	model := newStatusModel(label, c.styles())
	program := tea.NewProgram(model, tea.WithInput(nil), tea.WithOutput(c.out))
	go func() {
		err := fn()
		result <- err
		program.Send(doneMsg{err: err})
	}()
	_, _ = program.Run()
	return <-result
}

// Stream returns the live output region for model responses.
func (c *Console) Stream() *Stream {
	return &Stream{in: c.in, out: c.out, interactive: c.tty, styles: c.styles}
}

// Close restores the terminal.
func (c *Console) Close() error {
	if c.line != nil {
		return c.line.Close()
	}
	return nil
}

func (c *Console) styles() Styles {
	if c.renderer == nil {
		return GetTheme("").Styles()
	}
	return c.renderer.styles
}

type statusModel struct {
	label  string
	spin   spinner.Model
	styles Styles
	done   bool
}

func newStatusModel(label string, styles Styles) *statusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.AccentText
	return &statusModel{label: label, spin: s, styles: styles}
}

func (m *statusModel) Init() tea.Cmd { return m.spin.Tick }

func (m *statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(doneMsg); ok {
		m.done = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m *statusModel) View() string {
	if m.done {
		return ""
	}
	return m.spin.View() + " " + m.styles.MutedText.Render(m.label)
}
