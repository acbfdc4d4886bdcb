package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_Basic(t *testing.T) {
	assert.Equal(t, "/", Clean(""))
	assert.Equal(t, "/", Clean("/"))
	assert.Equal(t, "/a/b", Clean("/a/b"))
	assert.Equal(t, "/a/b", Clean("/a//b/"))
	assert.Equal(t, "/a/b", Clean("a/./b"))
}

func TestClean_ParentSegments(t *testing.T) {
	assert.Equal(t, "/a", Clean("/a/b/.."))
	assert.Equal(t, "/", Clean("/a/.."))
	// ".." never climbs above root
	assert.Equal(t, "/", Clean("/.."))
	assert.Equal(t, "/b", Clean("/../../b"))
}

func TestClean_Backslashes(t *testing.T) {
	assert.Equal(t, "/a/b", Clean("\\a\\b"))
	assert.Equal(t, "/a/b", Clean("/a\\b"))
}

func TestResolve_EmptyIsCwd(t *testing.T) {
	assert.Equal(t, "/a/b", Resolve("", "/a/b"))
	assert.Equal(t, "/", Resolve("", "/"))
}

func TestResolve_Absolute(t *testing.T) {
	assert.Equal(t, "/x", Resolve("/x", "/a/b"))
}

func TestResolve_RelativeJoinsUnderCwd(t *testing.T) {
	assert.Equal(t, "/a/b/c", Resolve("c", "/a/b"))
	assert.Equal(t, "/a", Resolve("..", "/a/b"))
	assert.Equal(t, "/a/b", Resolve(".", "/a/b"))
	assert.Equal(t, "/c", Resolve("c", "/"))
}

func TestSplit(t *testing.T) {
	dir, base := Split("/a/b.txt")
	assert.Equal(t, "/a", dir)
	assert.Equal(t, "b.txt", base)

	dir, base = Split("/a")
	assert.Equal(t, "/", dir)
	assert.Equal(t, "a", base)

	dir, base = Split("/")
	assert.Equal(t, "/", dir)
	assert.Equal(t, "", base)
}
