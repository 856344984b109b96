package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gobounds/pkg/analysis"
	"github.com/philipparndt/gobounds/pkg/config"
	"github.com/philipparndt/gobounds/pkg/geometry"
)

type vec [3]float64

func toVec(v geometry.Vector3) vec {
	return vec{v.X, v.Y, v.Z}
}

type aabbReport struct {
	Source string  `json:"source,omitempty" yaml:"source,omitempty"`
	Points int     `json:"points" yaml:"points"`
	Empty  bool    `json:"empty" yaml:"empty"`
	Min    vec     `json:"min" yaml:"min,flow"`
	Max    vec     `json:"max" yaml:"max,flow"`
	Center vec     `json:"center" yaml:"center,flow"`
	Extent vec     `json:"extent" yaml:"extent,flow"`
	Volume float64 `json:"volume" yaml:"volume"`
}

func newAABBReport(box geometry.AxisAlignedBoundingBox) aabbReport {
	return aabbReport{
		Empty:  box.IsEmpty(),
		Min:    toVec(box.MinBound),
		Max:    toVec(box.MaxBound),
		Center: toVec(box.GetCenter()),
		Extent: toVec(box.GetExtent()),
		Volume: box.Volume(),
	}
}

func (r aabbReport) writeText(w io.Writer) {
	if r.Source != "" {
		writeHeader(w, "Axis-Aligned Bounding Box", r.Source, r.Points)
	}
	fmt.Fprintf(w, "  Min: %s\n", formatVec(r.Min))
	fmt.Fprintf(w, "  Max: %s\n", formatVec(r.Max))
	fmt.Fprintf(w, "  Center: %s\n", formatVec(r.Center))
	fmt.Fprintf(w, "  Extent: %s\n", formatVec(r.Extent))
	fmt.Fprintf(w, "  Volume: %.6f cubic units\n", r.Volume)
	fmt.Fprintf(w, "  Empty: %t\n", r.Empty)
}

type obbReport struct {
	Source  string  `json:"source,omitempty" yaml:"source,omitempty"`
	Points  int     `json:"points" yaml:"points"`
	Empty   bool    `json:"empty" yaml:"empty"`
	Center  vec     `json:"center" yaml:"center,flow"`
	Extent  vec     `json:"extent" yaml:"extent,flow"`
	Axes    [3]vec  `json:"axes" yaml:"axes"`
	Volume  float64 `json:"volume" yaml:"volume"`
	Corners [8]vec  `json:"corners" yaml:"corners"`
}

func newOBBReport(box geometry.OrientedBoundingBox) obbReport {
	r := obbReport{
		Empty:  box.IsEmpty(),
		Center: toVec(box.Center),
		Extent: toVec(box.Extent),
		Volume: box.Volume(),
	}
	for i := range r.Axes {
		r.Axes[i] = toVec(geometry.Axis(box.R, i))
	}
	for i, p := range box.GetBoxPoints() {
		r.Corners[i] = toVec(p)
	}
	return r
}

func (r obbReport) writeText(w io.Writer) {
	if r.Source != "" {
		writeHeader(w, "Oriented Bounding Box", r.Source, r.Points)
	}
	fmt.Fprintf(w, "  Center: %s\n", formatVec(r.Center))
	fmt.Fprintf(w, "  Extent: %s\n", formatVec(r.Extent))
	for i, name := range []string{"X", "Y", "Z"} {
		fmt.Fprintf(w, "  %s axis: %s\n", name, formatVec(r.Axes[i]))
	}
	fmt.Fprintf(w, "  Volume: %.6f cubic units\n", r.Volume)
	fmt.Fprintf(w, "  Empty: %t\n", r.Empty)
	fmt.Fprintln(w, "  Corners:")
	for i, c := range r.Corners {
		fmt.Fprintf(w, "    %d: %s\n", i, formatVec(c))
	}
}

type infoReport struct {
	Source      string     `json:"source" yaml:"source"`
	Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
	Points      int        `json:"points" yaml:"points"`
	AABB        aabbReport `json:"aabb" yaml:"aabb"`
	OBB         obbReport  `json:"obb" yaml:"obb"`
	VolumeRatio float64    `json:"volume_ratio" yaml:"volume_ratio"`
}

func newInfoReport(source, name string, result *analysis.BoundsResult) infoReport {
	return infoReport{
		Source:      source,
		Name:        name,
		Points:      result.PointCount,
		AABB:        newAABBReport(result.AABB),
		OBB:         newOBBReport(result.OBB),
		VolumeRatio: result.VolumeRatio,
	}
}

func (r infoReport) writeText(w io.Writer) {
	fmt.Fprintln(w, "Bounds Information")
	fmt.Fprintln(w, "==================")
	if r.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", r.Name)
	}
	fmt.Fprintf(w, "File: %s\n", r.Source)
	fmt.Fprintf(w, "Points: %d\n\n", r.Points)

	fmt.Fprintln(w, "Axis-Aligned Bounding Box:")
	r.AABB.writeText(w)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Oriented Bounding Box:")
	r.OBB.writeText(w)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "OBB/AABB volume ratio: %.6f\n", r.VolumeRatio)
}

type cropReport struct {
	Source   string `json:"source" yaml:"source"`
	Points   int    `json:"points" yaml:"points"`
	Box      string `json:"box" yaml:"box"`
	Parallel bool   `json:"parallel" yaml:"parallel"`
	Count    int    `json:"count" yaml:"count"`
	Indices  []int  `json:"indices" yaml:"indices,flow"`
}

func (r cropReport) writeText(w io.Writer) {
	fmt.Fprintln(w, "Containment Query")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "File: %s\n", r.Source)
	fmt.Fprintf(w, "Box: %s\n", r.Box)
	fmt.Fprintf(w, "Points: %d\n", r.Points)
	fmt.Fprintf(w, "Contained: %d\n", r.Count)
	if r.Count > 0 {
		fmt.Fprintf(w, "Indices: %v\n", r.Indices)
	}
}

type textWriter interface {
	writeText(w io.Writer)
}

// writeReport renders report in the configured format
func writeReport(w io.Writer, format string, report textWriter) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)

	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()

	default:
		report.writeText(w)
		return nil
	}
}

// writeHeader prints a standalone report title
func writeHeader(w io.Writer, title, source string, points int) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintf(w, "File: %s\n", source)
	fmt.Fprintf(w, "Points: %d\n\n", points)
}

func formatVec(v vec) string {
	return analysis.FormatVector(geometry.NewVector3(v[0], v[1], v[2]))
}
