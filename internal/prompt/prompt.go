// Package prompt asks the user for a file path when none was given on
// the command line, with filename tab-completion.
package prompt

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// ErrAborted is returned when the user quits the prompt (q, quit,
// empty input, Ctrl-C, or Ctrl-D).
var ErrAborted = errors.New("no file provided")

// ForPath prompts until the user enters a path to an existing file.
// ~ is expanded.
func ForPath(text string) (string, error) {
	l := liner.NewLiner()
	defer l.Close()

	l.SetCtrlCAborts(true)
	l.SetCompleter(completePath)

	for {
		line, err := l.Prompt(text)
		if err == liner.ErrPromptAborted || err == io.EOF {
			return "", ErrAborted
		}
		if err != nil {
			return "", err
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "", "q", "quit":
			return "", ErrAborted
		}

		path := expandUser(line)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		os.Stderr.WriteString("File not found: " + line + ". Try again or press q to quit.\n")
	}
}

func completePath(line string) []string {
	matches, err := filepath.Glob(expandUser(line) + "*")
	if err != nil {
		return nil
	}
	completions := make([]string, 0, len(matches))
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			m += string(os.PathSeparator)
		}
		completions = append(completions, m)
	}
	return completions
}

func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
