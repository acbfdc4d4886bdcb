package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_Defaults(t *testing.T) {
	file := NewFileNode("a.txt", "hello")
	assert.Equal(t, DefaultFileMode, file.Mode())
	assert.False(t, file.IsDir())
	assert.Equal(t, "hello", file.Content())

	dir := NewDirNode("docs")
	assert.Equal(t, DefaultDirMode, dir.Mode())
	assert.True(t, dir.IsDir())
}

func TestNode_AddChild(t *testing.T) {
	parent := NewDirNode("parent")
	child := NewFileNode("child.txt", "")

	parent.AddChild(child)

	retrieved, exists := parent.GetChild("child.txt")
	require.True(t, exists)
	assert.Equal(t, child, retrieved)
	assert.Equal(t, parent, child.Parent())
}

func TestNode_RemoveChild(t *testing.T) {
	parent := NewDirNode("parent")
	child := NewFileNode("child.txt", "")
	parent.AddChild(child)

	assert.True(t, parent.RemoveChild("child.txt"))
	_, exists := parent.GetChild("child.txt")
	assert.False(t, exists)
	assert.Nil(t, child.Parent())

	assert.False(t, parent.RemoveChild("nonexistent.txt"))
}

func TestNode_ChildOfFileIsAbsent(t *testing.T) {
	file := NewFileNode("a.txt", "")
	_, exists := file.GetChild("anything")
	assert.False(t, exists)
	assert.Equal(t, 0, file.NumChildren())
}

func TestNode_ChildNamesSorted(t *testing.T) {
	dir := NewDirNode("d")
	for _, name := range []string{"zeta", "alpha", "mid"} {
		dir.AddChild(NewFileNode(name, ""))
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, dir.ChildNames())
}

func TestNode_Path(t *testing.T) {
	root := NewDirNode("")
	dir := NewDirNode("dir")
	file := NewFileNode("file.txt", "")
	root.AddChild(dir)
	dir.AddChild(file)

	assert.Equal(t, "/", root.Path())
	assert.Equal(t, "/dir", dir.Path())
	assert.Equal(t, "/dir/file.txt", file.Path())
	assert.True(t, root.IsRoot())
	assert.False(t, dir.IsRoot())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "rwxr-xr-x", Mode(0o755).String())
	assert.Equal(t, "rw-r--r--", Mode(0o644).String())
	assert.Equal(t, "---------", Mode(0).String())
	assert.Equal(t, "rwxrwxrwx", Mode(0o777).String())
}

func TestParseMode_Octal(t *testing.T) {
	m, err := ParseMode("644")
	require.NoError(t, err)
	assert.Equal(t, Mode(0o644), m)

	m, err = ParseMode("0o755")
	require.NoError(t, err)
	assert.Equal(t, Mode(0o755), m)

	m, err = ParseMode("0")
	require.NoError(t, err)
	assert.Equal(t, Mode(0), m)
}

func TestParseMode_Symbolic(t *testing.T) {
	m, err := ParseMode("rwxr-xr-x")
	require.NoError(t, err)
	assert.Equal(t, Mode(0o755), m)

	m, err = ParseMode("rw-r--r--")
	require.NoError(t, err)
	assert.Equal(t, Mode(0o644), m)
}

func TestParseMode_Invalid(t *testing.T) {
	for _, spec := range []string{"", "abc", "rwx", "rwxrwxrw", "rwxrwxrwxx", "888", "1000", "rwzr-xr-x"} {
		_, err := ParseMode(spec)
		assert.ErrorIs(t, err, ErrInvalidMode, "spec %q", spec)
	}
}
