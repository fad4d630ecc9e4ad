package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Springfield, Greene County, Missouri", "Springfield, Missouri"},
		{"Springfield, Missouri", "Springfield, Missouri"},
		{"  Springfield , Greene County ,Missouri ", "Springfield, Missouri"},
		{" Athens ", "Athens"},
		{"a, b, c, d", "a, b, c, d"},
		{"", ""},
		{",,", ", "},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSuffixed(t *testing.T) {
	got := suffixed("Athens, Clarke, Georgia", []string{" city", " CDP"})
	assert.Equal(t, []string{"Athens city, Clarke, Georgia", "Athens CDP, Clarke, Georgia"}, got)

	got = suffixed("Athens", []string{" town"})
	assert.Equal(t, []string{"Athens town"}, got)
}
