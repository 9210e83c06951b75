package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoInput is returned when no input source was provided.
	ErrNoInput = errors.New("either text, an input file, or piped stdin must be provided")
	// ErrMultipleInputs is returned when more than one input source was provided.
	ErrMultipleInputs = errors.New("cannot provide multiple input sources")
)

// Resolve returns the text to synthesize from exactly one input
// source: a literal text argument, a .txt/.md file, or piped stdin.
// Pass a nil stdin when the process is attached to a terminal; stdin
// only counts as a source when it carries non-whitespace text.
func Resolve(literal, filePath string, stdin io.Reader) (string, error) {
	stdinText, err := readStdin(stdin)
	if err != nil {
		return "", err
	}

	sources := 0
	if literal != "" {
		sources++
	}
	if filePath != "" {
		sources++
	}
	if stdinText != "" {
		sources++
	}
	if sources == 0 {
		return "", ErrNoInput
	}
	if sources > 1 {
		return "", ErrMultipleInputs
	}

	switch {
	case stdinText != "":
		return stdinText, nil
	case filePath != "":
		return ReadFile(filePath)
	default:
		return literal, nil
	}
}

func readStdin(r io.Reader) (string, error) {
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadFile loads a .txt file verbatim or a .md file converted to
// plain text.
func ReadFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md":
	default:
		return "", fmt.Errorf("input file must be .txt or .md, got %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}
	if ext == ".md" {
		return MarkdownToText(data)
	}
	return string(data), nil
}

// Stem returns the file name without its directory or extension, used
// as the default base filename for saved audio.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
