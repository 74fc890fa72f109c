package assets

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunFrameRect(t *testing.T) {
	assert.Equal(t, image.Rect(0, 0, 24, 24), RunFrameRect(0))
	assert.Equal(t, image.Rect(24, 0, 48, 24), RunFrameRect(1))
	assert.Equal(t, image.Rect(144, 0, 168, 24), RunFrameRect(6))

	for i := 0; i < RunFrameCount; i++ {
		r := RunFrameRect(i)
		assert.Equal(t, RunFrameSize, r.Dx())
		assert.Equal(t, RunFrameSize, r.Dy())
	}
}
