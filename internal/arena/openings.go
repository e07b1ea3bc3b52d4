package arena

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadOpenings reads an opening file: the first line is a header and is
// skipped, every further line is one opening of space-separated move
// tokens. A blank line is the empty opening ("no forced opening"); by
// convention it is the first entry. An empty path yields a single empty
// opening, so the harness always plays at least one game pair from the
// start position.
func LoadOpenings(path string) ([][]string, error) {
	if strings.TrimSpace(path) == "" {
		return [][]string{{}}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open openings file: %w", err)
	}
	defer f.Close()

	var openings [][]string
	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		if first {
			first = false
			continue
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			openings = append(openings, []string{})
			continue
		}
		openings = append(openings, strings.Fields(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read openings file: %w", err)
	}
	if len(openings) == 0 {
		return nil, fmt.Errorf("openings file %s has no openings", path)
	}
	return openings, nil
}
