package scene

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/spatial/internal/core/systems/physics"
	"github.com/zeusync/spatial/pkg/spatial"
)

func TestLoadYAML(t *testing.T) {
	doc, err := LoadYAML(strings.NewReader(`
name: tiny
bodies:
  - name: ball
    tags: [x]
    shape: {type: sphere, radius: 2}
    transform:
      translation: [1, 2, 3]
      rotation: {quaternion: [0, 0, 0, 1]}
`))
	require.NoError(t, err)
	assert.Equal(t, "tiny", doc.Name)
	require.Len(t, doc.Bodies, 1)

	b := doc.Bodies[0]
	assert.Equal(t, "ball", b.Name)
	assert.Equal(t, []string{"x"}, b.Tags)
	assert.Equal(t, "sphere", b.Shape.Type)
	assert.Equal(t, 2.0, b.Shape.Radius)
	assert.Equal(t, []float64{1, 2, 3}, b.Transform.Translation)
	require.NotNil(t, b.Transform.Rotation)
	assert.Equal(t, []float64{0, 0, 0, 1}, b.Transform.Rotation.Quaternion)
}

func TestLoadYAMLUnknownField(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("name: x\ncolour: red\n"))
	assert.Error(t, err)
}

func TestLoadJSON(t *testing.T) {
	doc, err := LoadJSON(strings.NewReader(`{"name":"j","bodies":[{"name":"b","shape":{"type":"box","half_extent":[1,2,3]}}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Bodies, 1)
	assert.Equal(t, []float64{1, 2, 3}, doc.Bodies[0].Shape.HalfExtent)

	_, err = LoadJSON(strings.NewReader(`{"name":"j","extra":1}`))
	assert.Error(t, err)

	_, err = LoadJSON(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "arena.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "arena", doc.Name)
	assert.Len(t, doc.Bodies, 4)

	doc, err = LoadFile(filepath.Join("testdata", "turret.json"))
	require.NoError(t, err)
	assert.Equal(t, "turret", doc.Name, "name falls back to the file name")
	assert.Len(t, doc.Bodies, 2)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "broken.yaml"))
	assert.ErrorIs(t, err, ErrUnknownShapeType)
	assert.Contains(t, err.Error(), "broken.yaml")

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadFile("scene.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFiles(t *testing.T) {
	docs, err := LoadFiles(context.Background(),
		filepath.Join("testdata", "turret.json"),
		filepath.Join("testdata", "arena.yaml"),
	)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "turret", docs[0].Name)
	assert.Equal(t, "arena", docs[1].Name)

	_, err = LoadFiles(context.Background(),
		filepath.Join("testdata", "arena.yaml"),
		filepath.Join("testdata", "broken.yaml"),
	)
	assert.ErrorIs(t, err, ErrUnknownShapeType)
}

func TestArenaScene(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "arena.yaml"))
	require.NoError(t, err)

	w := physics.NewWorld()
	_, err = doc.Populate(w)
	require.NoError(t, err)

	forward := spatial.NewRay(spatial.ZeroVector3, spatial.UnitZ)

	hit, ok := w.Cast(forward, 100, nil)
	require.True(t, ok)
	assert.Equal(t, "ball", hit.Hit.Name)
	assert.InDelta(t, 5.0, hit.TIn, eps)

	hit, ok = w.Cast(forward, 100, physics.All(physics.WithTag("solid"), func(b physics.Body) bool { return !b.HasTag("round") }))
	require.True(t, ok)
	assert.Equal(t, "crate", hit.Hit.Name)
	assert.InDelta(t, 9.0, hit.TIn, eps)

	down := spatial.NewRay(spatial.NewVector3(0, 5, 0), spatial.UnitY.Neg())
	hit, ok = w.Cast(down, 100, nil)
	require.True(t, ok)
	assert.Equal(t, "floor", hit.Hit.Name)
	assert.InDelta(t, 6.0, hit.TIn, eps)
	assert.True(t, hit.Normal.ApproxEqual(spatial.UnitY, eps))

	side := spatial.NewRay(spatial.NewVector3(5, 2, -10), spatial.UnitZ)
	hit, ok = w.Cast(side, 100, nil)
	require.True(t, ok)
	assert.Equal(t, "pillar", hit.Hit.Name)
	assert.InDelta(t, 9.5, hit.TIn, eps)
}
