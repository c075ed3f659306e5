package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "perro", Normalize("  PERRO \n"))
	assert.Equal(t, "árbol", Normalize("Árbol"))
	// decomposed a + combining acute composes to á
	assert.Equal(t, "árbol", Normalize("a\u0301rbol"))
	assert.Equal(t, "niño", Normalize("NIÑO"))
	assert.Equal(t, "", Normalize("   "))
}

func TestSet_Contains(t *testing.T) {
	s := NewSet("es", []string{"Perro", "árbol", "", "  gato  "})

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "es", s.Name())
	assert.True(t, s.Contains("perro"))
	assert.True(t, s.Contains("PERRO"))
	assert.True(t, s.Contains("gato"))
	assert.True(t, s.Contains("a\u0301rbol"))
	assert.False(t, s.Contains("arbol"))
	assert.False(t, s.Contains(""))

	var nilSet *Set
	assert.False(t, nilSet.Contains("perro"))
	assert.Zero(t, nilSet.Len())
}

func TestUnion(t *testing.T) {
	u := Union{NewSet("es", []string{"perro"}), nil, NewSet("en", []string{"dog"})}
	assert.True(t, u.Contains("perro"))
	assert.True(t, u.Contains("dog"))
	assert.False(t, u.Contains("gato"))
	assert.False(t, Union{}.Contains("perro"))
}

func TestLoad_Embedded(t *testing.T) {
	c, err := Load(Sources{})
	require.NoError(t, err)

	es, en := c.Stats()
	assert.Greater(t, es, 100)
	assert.Greater(t, en, 50)

	d := c.Dictionary()
	assert.True(t, d.Contains("perro"))
	assert.True(t, d.Contains("oso"))
	assert.True(t, d.Contains("árbol"))
	assert.True(t, d.Contains("robot"))
	assert.False(t, d.Contains("xyzzy"))
	assert.Equal(t, []string{"es", "en"}, c.Embedded())
}

func TestLoad_Files(t *testing.T) {
	dir := t.TempDir()
	esPath := filepath.Join(dir, "es.txt")
	require.NoError(t, os.WriteFile(esPath, []byte("# comment\nCasa\n\nluz\n"), 0o644))

	c, err := Load(Sources{SpanishFile: esPath})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Spanish.Len())
	assert.True(t, c.Dictionary().Contains("casa"))
	assert.True(t, c.Dictionary().Contains("robot"), "english falls back to embedded list")
	assert.Equal(t, []string{"en"}, c.Embedded())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(Sources{EnglishFile: filepath.Join(t.TempDir(), "nope.txt")})
	assert.Error(t, err)
}

func TestLoad_BothEmpty(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0o644))

	_, err := Load(Sources{SpanishFile: empty, EnglishFile: empty})
	assert.Error(t, err)
}
