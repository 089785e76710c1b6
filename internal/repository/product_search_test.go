package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeEscaperMatchesLiterally(t *testing.T) {
	assert.Equal(t, "phone", likeEscaper.Replace("phone"))
	assert.Equal(t, `100\% cotton`, likeEscaper.Replace("100% cotton"))
	assert.Equal(t, `usb\_c`, likeEscaper.Replace("usb_c"))
	assert.Equal(t, `back\\slash`, likeEscaper.Replace(`back\slash`))
}
