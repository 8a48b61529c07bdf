package logg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskIdentity(t *testing.T) {
	cases := []struct {
		name     string
		identity string
		want     string
	}{
		{"empty", "", ""},
		{"email", "reader@example.com", "r*****@example.com"},
		{"single rune local part", "a@example.com", "a@example.com"},
		{"no at sign", "username", "u*******"},
		{"unicode local part", "čitatelj@example.com", "č*******@example.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MaskIdentity(tc.identity))
		})
	}
}
