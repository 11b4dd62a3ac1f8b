package logging

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Tail returns at most n trailing lines of the log at path. A missing file
// yields no lines.
func Tail(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lines := make([]string, 0, n)
	for scanner.Scan() {
		if len(lines) == n {
			copy(lines, lines[1:])
			lines = lines[:n-1]
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

// Pretty writes JSON log lines to out in zerolog's console format. Lines
// that are not JSON are written unchanged.
func Pretty(out io.Writer, lines []string, color bool) error {
	console := zerolog.ConsoleWriter{Out: out, NoColor: !color, TimeFormat: "15:04:05"}
	for _, line := range lines {
		if len(line) == 0 || line[0] != '{' {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
			continue
		}
		if _, err := console.Write([]byte(line)); err != nil {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}
	}
	return nil
}
