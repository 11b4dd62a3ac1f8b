package ai

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrLaunch reports that the model process could not be started.
	ErrLaunch = errors.New("model process failed to start")
	// ErrProcess reports that the model process ran but did not exit cleanly.
	ErrProcess = errors.New("model process failed")
)

const (
	DefaultBinary = "ollama"
	DefaultModel  = "llama3"
)

// Sink receives model output as it is produced. Close is called exactly once,
// with the error that ended the stream or nil.
type Sink interface {
	Append(chunk string)
	Close(err error)
}

// Display opens a live output region for one invocation. cancel stops the
// model process; displays wire it to their own teardown keys.
type Display interface {
	OpenStream(title string, cancel context.CancelFunc) Sink
}

// Options configure a Dispatcher.
type Options struct {
	Binary  string // executable name or path; empty uses DefaultBinary
	Model   string // model name passed to "run"; empty uses DefaultModel
	Args    []string
	Display Display
	Logger  zerolog.Logger
}

// Dispatcher sends prompts to a local model process and streams its stdout.
type Dispatcher struct {
	binary  string
	model   string
	args    []string
	display Display
	log     zerolog.Logger
}

// NewDispatcher builds a Dispatcher from opts.
func NewDispatcher(opts Options) *Dispatcher {
	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = DefaultBinary
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Dispatcher{
		binary:  binary,
		model:   model,
		args:    append([]string(nil), opts.Args...),
		display: opts.Display,
		log:     opts.Logger,
	}
}

// Model returns the model name the dispatcher runs.
func (d *Dispatcher) Model() string {
	return d.model
}

// Dispatch builds the prompt for question and mode, runs the model and
// streams its output into a fresh display region. The region is always
// closed before Dispatch returns.
func (d *Dispatcher) Dispatch(ctx context.Context, question string, mode Mode) (err error) {
	if d == nil || d.display == nil {
		return fmt.Errorf("dispatcher has no display")
	}
	mode = mode.orDefault()

	path, err := exec.LookPath(d.binary)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := d.display.OpenStream(fmt.Sprintf("%s · %s", d.model, mode), cancel)
	defer func() { sink.Close(err) }()

	prompt := BuildPrompt(mode, question)
	args := append(append([]string(nil), d.args...), "run", d.model, prompt)
	cmd := exec.CommandContext(ctx, path, args...)
	// Stderr stays nil so the child's diagnostics go to the null device.
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	started := time.Now()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrLaunch, err)
	}
	d.log.Debug().Str("model", d.model).Str("mode", string(mode)).Int("prompt_len", len(prompt)).Msg("model process started")

	var chunks int
	readErr := pump(stdout, func(chunk string) {
		chunks++
		sink.Append(chunk)
	})
	waitErr := cmd.Wait()

	d.log.Debug().Dur("elapsed", time.Since(started)).Int("chunks", chunks).Msg("model process finished")

	switch {
	case ctx.Err() != nil && waitErr != nil:
		return fmt.Errorf("%w: cancelled", ErrProcess)
	case waitErr != nil:
		return fmt.Errorf("%w: %v", ErrProcess, waitErr)
	case readErr != nil:
		return fmt.Errorf("%w: read output: %v", ErrProcess, readErr)
	}
	return nil
}
