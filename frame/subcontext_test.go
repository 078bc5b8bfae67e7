package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubContext_IndependentFromParentResults(t *testing.T) {
	ctx := New()
	cam := ctx.Camera("front")

	ctx.Result("shared-name").Set(1)
	cam.Result("shared-name").Set(2)

	parentVal, _ := ResultAs[int](ctx.Result("shared-name"))
	camVal, _ := ResultAs[int](cam.Result("shared-name"))
	assert.Equal(t, 1, parentVal)
	assert.Equal(t, 2, camVal)
}

func TestSubContext_ClearDoesNotAffectParent(t *testing.T) {
	ctx := New()
	cam := ctx.Camera("front")
	ctx.Result("r").Set(5)
	cam.Result("r").Set(9)

	cam.Clear()

	assert.True(t, ctx.Result("r").HasValue())
	assert.False(t, cam.Result("r").HasValue())
}

func TestSubContext_GraphicsNotFoundUntouched(t *testing.T) {
	ctx := New()
	cam := ctx.Camera("front")
	_, err := cam.Graphics("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
