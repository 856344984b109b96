// Package pointio loads 3-D point sets from STL meshes, XYZ text files and
// OpenSCAD sources.
package pointio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/gobounds/pkg/geometry"
	"github.com/philipparndt/gobounds/pkg/openscad"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions
var ErrUnsupportedFormat = errors.New("unsupported point file format")

// Cloud is a loaded point set
type Cloud struct {
	Name   string
	Source string
	Points []geometry.Vector3
}

// Len returns the number of points
func (c *Cloud) Len() int {
	return len(c.Points)
}

// Load reads a point set from path, choosing the reader by extension:
// .stl, .xyz/.txt/.csv, or .scad (rendered through the openscad binary).
func Load(path string) (*Cloud, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".stl":
		return ParseSTL(path)

	case ".xyz", ".txt", ".csv":
		return ParseXYZ(path)

	case ".scad":
		renderer := openscad.NewRenderer(filepath.Dir(path))
		tempFile := filepath.Join(os.TempDir(), fmt.Sprintf("gobounds_temp_%d.stl", time.Now().UnixNano()))
		defer os.Remove(tempFile)

		if err := renderer.RenderToSTL(path, tempFile); err != nil {
			return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
		}
		cloud, err := ParseSTL(tempFile)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
		}
		cloud.Source = path
		return cloud, nil

	default:
		return nil, fmt.Errorf("%w: %q (expected .stl, .xyz, .txt, .csv or .scad)", ErrUnsupportedFormat, ext)
	}
}

// WatchList returns the files whose changes affect the point set at path:
// the file itself, plus every use/include dependency for OpenSCAD sources.
func WatchList(path string) ([]string, error) {
	if strings.ToLower(filepath.Ext(path)) != ".scad" {
		return []string{path}, nil
	}
	renderer := openscad.NewRenderer(filepath.Dir(path))
	deps, err := renderer.ResolveDependencies(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}
	return deps, nil
}
