package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                "/",
		"/":               "/",
		"a/b":             "/a/b",
		"/a//b/":          "/a/b",
		"/a/./b":          "/a/b",
		"/a/b/..":         "/a",
		"/a/../../b":      "/b",
		"../..":           "/",
		"/docs/../notes/": "/notes",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "/a/b", Join("/a", "b"))
	assert.Equal(t, "/b", Join("/a", "/b"))
	assert.Equal(t, "/", Join("/a", ".."))
	assert.Equal(t, "/a/c", Join("/a/b", "../c"))
	assert.Equal(t, "/x", Join("", "x"))
}

func TestDirBase(t *testing.T) {
	assert.Equal(t, "/a", Dir("/a/b"))
	assert.Equal(t, "/", Dir("/a"))
	assert.Equal(t, "/", Dir("/"))
	assert.Equal(t, "b", Base("/a/b"))
	assert.Equal(t, "/", Base("/"))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "a/b", Display("/a/b"))
	assert.Equal(t, ".", Display("/"))
}

func TestIsUnder(t *testing.T) {
	assert.True(t, IsUnder("/a/b", "/a"))
	assert.True(t, IsUnder("/a", "/"))
	assert.False(t, IsUnder("/a", "/a"))
	assert.False(t, IsUnder("/ab", "/a"))
	assert.False(t, IsUnder("/", "/"))
}
