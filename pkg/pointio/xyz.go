package pointio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseXYZ reads a text point file, one point per line
func ParseXYZ(filename string) (*Cloud, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	cloud, err := ReadXYZ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	cloud.Source = filename
	return cloud, nil
}

// ReadXYZ reads points as "x y z" or "x,y,z" lines. Blank lines and lines
// starting with '#' are skipped; columns after the third are ignored.
func ReadXYZ(r io.Reader) (*Cloud, error) {
	scanner := bufio.NewScanner(r)
	cloud := &Cloud{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected 3 coordinates, got %d", lineNo, len(fields))
		}
		p, err := parseCoords(fields[:3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		cloud.Points = append(cloud.Points, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading points: %w", err)
	}

	return cloud, nil
}
