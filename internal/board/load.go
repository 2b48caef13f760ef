package board

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineBytes bounds a single row of a board file.
const maxLineBytes = 1 << 20

// Parse reads a board in the text format
//
//	FILE ::= LINE+
//	LINE ::= (VAL " ")* VAL "\n"
//	VAL  ::= "0" | "1"
//
// where "1" marks a hazard. The grid must be square.
func Parse(r io.Reader) (*Board, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)

	var layout [][]bool
	for scanner.Scan() {
		lineNo := len(layout) + 1
		tokens := strings.Split(scanner.Text(), " ")
		if len(layout) > 0 && len(tokens) != len(layout[0]) {
			return nil, fmt.Errorf("%w: line %d has %d values, want %d", ErrMalformedBoard, lineNo, len(tokens), len(layout[0]))
		}
		row := make([]bool, len(tokens))
		for i, tok := range tokens {
			switch tok {
			case "0":
			case "1":
				row[i] = true
			default:
				return nil, fmt.Errorf("%w: line %d value %d is %q", ErrMalformedBoard, lineNo, i+1, tok)
			}
		}
		layout = append(layout, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	if len(layout) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedBoard)
	}
	if len(layout) != len(layout[0]) {
		return nil, fmt.Errorf("%w: %d rows but %d columns", ErrMalformedBoard, len(layout), len(layout[0]))
	}
	return New(layout)
}

// Load parses the board file at path.
func Load(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open board %s: %w", path, err)
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load board %s: %w", path, err)
	}
	return b, nil
}
