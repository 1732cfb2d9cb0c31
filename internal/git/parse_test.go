package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"git status", []string{"git", "status"}},
		{`git commit -m "first commit"`, []string{"git", "commit", "-m", "first commit"}},
		{`echo ""`, []string{"echo", ""}},
		{`a  "b c"  d`, []string{"a", "b c", "d"}},
		{`"unterminated quote`, []string{"unterminated quote"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Tokenize(tc.in), "input %q", tc.in)
	}
}

func TestParseRedirect(t *testing.T) {
	rd := ParseRedirect(`echo "# Hello" > README.md`)
	require.NotNil(t, rd)
	assert.Equal(t, "# Hello", rd.Text)
	assert.Equal(t, "README.md", rd.Target)

	rd = ParseRedirect(`echo line1\nline2 > notes.txt`)
	require.NotNil(t, rd)
	assert.Equal(t, "line1\nline2", rd.Text)

	rd = ParseRedirect(`echo "x" > "my file.txt"`)
	require.NotNil(t, rd)
	assert.Equal(t, "my file.txt", rd.Target)

	assert.Nil(t, ParseRedirect("echo hello"))
	assert.Nil(t, ParseRedirect("cat file > out"))
	assert.Nil(t, ParseRedirect("echo x >"))
}
