package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	t.Parallel()

	c := &Character{Name: "Char 1", World: "Lich"}
	assert.Equal(t, "Char 1 @ Lich", c.DisplayName())
}
