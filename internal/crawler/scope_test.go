package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeGuardInScope(t *testing.T) {
	guard, err := NewScopeGuard("https://x/files/")
	require.NoError(t, err)

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"base itself", "https://x/files/", true},
		{"subdirectory", "https://x/files/sub/", true},
		{"nested file", "https://x/files/sub/b.zip", true},
		{"sibling path", "https://x/other/", false},
		{"other host", "https://evil.com/files/", false},
		{"parent escape", "https://x/files/../secret/", false},
		{"deep parent escape", "https://x/files/a/../../secret/", false},
		{"scheme mismatch", "http://x/files/sub/", false},
		{"relative URL", "/files/sub/", false},
		{"host case insensitive", "https://X/files/sub/", true},
		{"unparseable", "https://x/files/%zz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, guard.InScope(tt.candidate))
		})
	}
}

func TestScopeGuardDirectoryBoundary(t *testing.T) {
	guard, err := NewScopeGuard("https://x/files/a")
	require.NoError(t, err)

	// /files/ab shares a string prefix with /files/a but is a
	// different directory.
	assert.False(t, guard.InScope("https://x/files/ab"))
	assert.False(t, guard.InScope("https://x/files/ab/"))
	assert.True(t, guard.InScope("https://x/files/a/"))
	assert.True(t, guard.InScope("https://x/files/a/c.zip"))
}

func TestScopeGuardRootBase(t *testing.T) {
	guard, err := NewScopeGuard("https://x/")
	require.NoError(t, err)

	assert.True(t, guard.InScope("https://x/anything/"))
	assert.True(t, guard.InScope("https://x/"))
	assert.False(t, guard.InScope("https://y/"))
}

func TestNewScopeGuardRejectsRelative(t *testing.T) {
	_, err := NewScopeGuard("/files/")
	assert.Error(t, err)
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fragment stripped", "https://x/files/#row", "https://x/files/"},
		{"query stripped", "https://x/files/?C=N&O=D", "https://x/files/"},
		{"dot segments resolved", "https://x/files/sub/../other/", "https://x/other/"},
		{"trailing slash kept", "https://x/files/sub/", "https://x/files/sub/"},
		{"no trailing slash kept", "https://x/files/a.zip", "https://x/files/a.zip"},
		{"case folding", "HTTPS://X/files/", "https://x/files/"},
		{"already normal", "https://x/files/", "https://x/files/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.in))
		})
	}
}
