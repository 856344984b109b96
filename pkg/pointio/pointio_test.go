package pointio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gobounds/pkg/geometry"
)

const asciiSTL = `solid cube corner
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 1 0 0
    endloop
  endfacet
endsolid cube corner
`

func binarySTL(t *testing.T, name string, facets [][3][3]float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, name)
	buf.Write(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len(facets))))
	for _, f := range facets {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, [3]float32{}))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, f))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(0)))
	}
	return buf.Bytes()
}

func TestReadASCIISTL(t *testing.T) {
	cloud, err := ReadSTL(strings.NewReader(asciiSTL))
	require.NoError(t, err)

	assert.Equal(t, "cube corner", cloud.Name)
	assert.Equal(t, []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 0, 0),
		geometry.NewVector3(0, 1, 0),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(1, 0, 0),
	}, cloud.Points)
}

func TestReadASCIISTLBadVertex(t *testing.T) {
	_, err := ReadSTL(strings.NewReader("solid x\nfacet normal 0 0 1\nouter loop\nvertex 1 two 3\n"))
	assert.ErrorContains(t, err, "line 4")
}

func TestReadBinarySTL(t *testing.T) {
	data := binarySTL(t, "part", [][3][3]float32{
		{{0, 0, 0}, {2, 0, 0}, {0, 3, 0}},
		{{0, 0, 4}, {1, 1, 1}, {-1, 0.5, 0}},
	})

	cloud, err := ReadSTL(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "part", cloud.Name)
	require.Equal(t, 6, cloud.Len())
	assert.Equal(t, geometry.NewVector3(0, 3, 0), cloud.Points[2])
	assert.Equal(t, geometry.NewVector3(-1, 0.5, 0), cloud.Points[5])

	box := geometry.CreateAxisAlignedBoundingBoxFromPoints(cloud.Points)
	assert.Equal(t, geometry.NewVector3(-1, 0, 0), box.MinBound)
	assert.Equal(t, geometry.NewVector3(2, 3, 4), box.MaxBound)
}

func TestReadBinarySTLTruncated(t *testing.T) {
	data := binarySTL(t, "part", [][3][3]float32{{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}})
	_, err := ReadSTL(bytes.NewReader(data[:len(data)-10]))
	assert.Error(t, err)
}

func TestReadXYZ(t *testing.T) {
	input := `# x y z
0 0 0
1.5,2,3

-1	0.25	7 255 0 0
`
	cloud, err := ReadXYZ(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1.5, 2, 3),
		geometry.NewVector3(-1, 0.25, 7),
	}, cloud.Points)
}

func TestReadXYZErrors(t *testing.T) {
	_, err := ReadXYZ(strings.NewReader("0 0 0\n1 2\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = ReadXYZ(strings.NewReader("0 0 zero\n"))
	assert.ErrorContains(t, err, "line 1")
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()

	xyz := filepath.Join(dir, "points.xyz")
	require.NoError(t, os.WriteFile(xyz, []byte("1 2 3\n4 5 6\n"), 0o644))
	cloud, err := Load(xyz)
	require.NoError(t, err)
	assert.Equal(t, 2, cloud.Len())
	assert.Equal(t, xyz, cloud.Source)

	stl := filepath.Join(dir, "part.STL")
	require.NoError(t, os.WriteFile(stl, []byte(asciiSTL), 0o644))
	cloud, err = Load(stl)
	require.NoError(t, err)
	assert.Equal(t, 6, cloud.Len())

	_, err = Load(filepath.Join(dir, "mesh.obj"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWatchListPlainFile(t *testing.T) {
	files, err := WatchList("points.xyz")
	require.NoError(t, err)
	assert.Equal(t, []string{"points.xyz"}, files)
}
