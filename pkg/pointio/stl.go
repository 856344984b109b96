package pointio

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gobounds/pkg/geometry"
)

// ParseSTL reads an STL file and returns the vertices of all facets in file
// order. It detects whether the file is ASCII or binary.
func ParseSTL(filename string) (*Cloud, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	cloud, err := ReadSTL(file)
	if err != nil {
		return nil, err
	}
	cloud.Source = filename
	return cloud, nil
}

// ReadSTL reads ASCII or binary STL data from r
func ReadSTL(r io.Reader) (*Cloud, error) {
	br := bufio.NewReader(r)

	// Check if it's ASCII format (starts with "solid ")
	header, err := br.Peek(6)
	if err != nil && len(header) == 0 {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	if len(header) >= 5 && string(header[:5]) == "solid" {
		return readASCIISTL(br)
	}

	return readBinarySTL(br)
}

// readASCIISTL parses an ASCII STL stream
func readASCIISTL(reader io.Reader) (*Cloud, error) {
	scanner := bufio.NewScanner(reader)
	cloud := &Cloud{}

	var facet []geometry.Vector3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				cloud.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			v, err := parseCoords(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			facet = append(facet, v)

		case "endfacet":
			if len(facet) == 3 {
				cloud.Points = append(cloud.Points, facet...)
			}
			facet = facet[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return cloud, nil
}

// readBinarySTL parses a binary STL stream
func readBinarySTL(reader io.Reader) (*Cloud, error) {
	cloud := &Cloud{}

	// Read 80-byte header
	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cloud.Name = string(bytes.TrimRight(header, "\x00 "))

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	// normal, three vertices, attribute byte count
	var facet struct {
		Normal    [3]float32
		Vertices  [3][3]float32
		Attribute uint16
	}

	cloud.Points = make([]geometry.Vector3, 0, 3*int(min(triangleCount, 1<<20)))
	for i := uint32(0); i < triangleCount; i++ {
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		for _, v := range facet.Vertices {
			cloud.Points = append(cloud.Points, geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2])))
		}
	}

	return cloud, nil
}

func parseCoords(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", f, err)
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}
