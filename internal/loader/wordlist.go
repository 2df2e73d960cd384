package loader

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadWordList reads a JSON array of strings (.json) or a newline-delimited
// list in which blank lines and "#" comments are skipped.
func ReadWordList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return parseJSON(file)
	}
	return parseLines(file)
}

func parseJSON(r io.Reader) ([]string, error) {
	var words []string
	if err := json.NewDecoder(r).Decode(&words); err != nil {
		return nil, fmt.Errorf("failed to decode word list: %w", err)
	}
	return words, nil
}

func parseLines(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}

	return words, scanner.Err()
}
