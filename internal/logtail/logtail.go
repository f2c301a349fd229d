package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Read returns at most maxLines from the end of the file at path, or every
// line when maxLines is not positive. A missing file yields no lines and no
// error.
func Read(path string, maxLines int) ([]string, error) {
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

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Filter keeps the JSON log lines at or above threshold. Lines that are not
// JSON or carry no level are kept.
func Filter(lines []string, threshold zerolog.Level) []string {
	if threshold <= zerolog.TraceLevel {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var entry struct {
			Level string `json:"level"`
		}
		if err := json.Unmarshal([]byte(line), &entry); err != nil || entry.Level == "" {
			out = append(out, line)
			continue
		}
		lvl, err := zerolog.ParseLevel(entry.Level)
		if err != nil || lvl >= threshold {
			out = append(out, line)
		}
	}
	return out
}

// Render writes lines to w. With pretty set, JSON lines go through
// zerolog's console formatter; other lines are written as they are.
func Render(w io.Writer, lines []string, pretty, color bool) error {
	if !pretty {
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}
	console := zerolog.ConsoleWriter{Out: w, NoColor: !color, TimeFormat: "2006-01-02 15:04:05"}
	for _, line := range lines {
		if !json.Valid([]byte(line)) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			continue
		}
		if _, err := console.Write([]byte(line + "\n")); err != nil {
			return fmt.Errorf("format log line: %w", err)
		}
	}
	return nil
}
