package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/retroai/internal/ai"
)

var stopKeys = key.NewBinding(
	key.WithKeys("ctrl+c", "esc"),
	key.WithHelp("esc", "stop"),
)

type chunkMsg string

type doneMsg struct{ err error }

// streamModel is the bubbletea model behind the live output region. It
// keeps the full text and shows the tail that fits the terminal.
type streamModel struct {
	title   string
	spin    spinner.Model
	styles  Styles
	cancel  context.CancelFunc
	text    strings.Builder
	width   int
	height  int
	stopped bool
	done    bool
}

func newStreamModel(title string, styles Styles, cancel context.CancelFunc) *streamModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.AccentText
	return &streamModel{
		title:  title,
		spin:   s,
		styles: styles,
		cancel: cancel,
		width:  defaultWidth,
		height: 24,
	}
}

func (m *streamModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m *streamModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, stopKeys) && !m.stopped {
			m.stopped = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil
	case chunkMsg:
		m.text.WriteString(string(msg))
		return m, nil
	case doneMsg:
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spin, cmd = m.spin.Update(msg)
	return m, cmd
}

func (m *streamModel) View() string {
	if m.done {
		return ""
	}
	status := m.spin.View() + " " + m.styles.AccentText.Render(m.title)
	if m.stopped {
		status += m.styles.WarningText.Render("  stopping...")
	} else {
		status += m.styles.MutedText.Render("  " + stopKeys.Help().Key + " to " + stopKeys.Help().Desc)
	}
	body := wordwrap.String(m.text.String(), max(m.width-1, 10))
	return status + "\n" + tailLines(body, max(m.height-2, 1))
}

// Stream is the live output region for model responses. It satisfies
// ai.Display.
type Stream struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	styles      func() Styles
}

var _ ai.Display = (*Stream)(nil)

// OpenStream starts a new region titled title. On a terminal this runs a
// bubbletea program until the returned sink is closed; otherwise chunks are
// written straight to the output.
func (s *Stream) OpenStream(title string, cancel context.CancelFunc) ai.Sink {
	if !s.interactive {
		fmt.Fprintf(s.out, "── %s ──\n", title)
		return &passthroughSink{out: s.out}
	}

	model := newStreamModel(title, s.styles(), cancel)
	program := tea.NewProgram(model, tea.WithInput(s.in), tea.WithOutput(s.out))
	sink := &programSink{program: program, model: model, out: s.out, finished: make(chan struct{})}
	go func() {
		defer close(sink.finished)
		_, _ = program.Run()
	}()
	return sink
}

// programSink feeds a running bubbletea program and prints the full text to
// the normal output once the program is torn down.
type programSink struct {
	program  *tea.Program
	model    *streamModel
	out      io.Writer
	finished chan struct{}
	once     sync.Once
}

func (s *programSink) Append(chunk string) {
	s.program.Send(chunkMsg(chunk))
}

func (s *programSink) Close(err error) {
	s.once.Do(func() {
		s.program.Send(doneMsg{err: err})
		<-s.finished
		text := s.model.text.String()
		if text != "" {
			fmt.Fprint(s.out, text)
			if !strings.HasSuffix(text, "\n") {
				fmt.Fprintln(s.out)
			}
		}
	})
}

// passthroughSink writes chunks directly for non-terminal output.
type passthroughSink struct {
	out  io.Writer
	last string
	once sync.Once
}

func (s *passthroughSink) Append(chunk string) {
	if chunk == "" {
		return
	}
	fmt.Fprint(s.out, chunk)
	s.last = chunk
}

func (s *passthroughSink) Close(error) {
	s.once.Do(func() {
		if s.last != "" && !strings.HasSuffix(s.last, "\n") {
			fmt.Fprintln(s.out)
		}
	})
}
