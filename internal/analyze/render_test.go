package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"happy", "happy"},
		{"", ""},
		{"line one.<br>line two.", "line one.\nline two."},
		{"<b>bold</b> text", "bold text"},
		{"<p>one</p><p>two</p>", "one\ntwo"},
		{"a &amp; b", "a & b"},
		{"<script>alert(1)</script>safe", "safe"},
	}

	for _, tc := range cases {
		got, err := RenderText(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
