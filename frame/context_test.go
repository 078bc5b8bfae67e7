package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"framepipe/imagebuf"
)

func TestContext_ResultDefaultsToNoValue(t *testing.T) {
	ctx := New()
	v, err := ResultAs[int](ctx.Result("missing"))
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.False(t, ctx.Result("missing").HasValue())
}

func TestContext_ResultSetAndRead(t *testing.T) {
	ctx := New()
	ctx.Result("count").Set(42)
	v, err := ResultAs[int](ctx.Result("count"))
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestContext_ResultTypeMismatch(t *testing.T) {
	ctx := New()
	ctx.Result("count").Set("not an int")
	_, err := ResultAs[int](ctx.Result("count"))
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestContext_ClearResetsResultsAndImages(t *testing.T) {
	ctx := New()
	ctx.Result("x").Set(7)
	ctx.Image("main").Resize(4, 4)

	ctx.Clear()

	assert.False(t, ctx.Result("x").HasValue())
	assert.Equal(t, 4, ctx.Image("main").Width, "clear keeps the allocated slot size")
}

func TestContext_ClearIsIdempotent(t *testing.T) {
	ctx := New()
	ctx.Result("x").Set(1)
	ctx.Clear()
	assert.NotPanics(t, func() { ctx.Clear() })
	assert.False(t, ctx.Result("x").HasValue())
}

func TestContext_SetFrameIDPropagatesToCameras(t *testing.T) {
	ctx := New()
	cam := ctx.Camera("front")
	ctx.SetFrameID(9)
	assert.EqualValues(t, 9, cam.FrameID())
}

func TestContext_SetTimePropagatesToCameras(t *testing.T) {
	ctx := New()
	cam := ctx.Camera("front")
	now := time.Unix(1000, 0)
	ctx.SetTime(now)
	assert.Equal(t, now, cam.Time())
}

func TestContext_CameraIsStableAcrossCalls(t *testing.T) {
	ctx := New()
	a := ctx.Camera("front")
	b := ctx.Camera("front")
	assert.Same(t, a, b)
}

func TestContext_CamerasPreserveInsertionOrder(t *testing.T) {
	ctx := New()
	ctx.Camera("b")
	ctx.Camera("a")
	ctx.Camera("c")

	names := make([]string, 0, 3)
	for _, cam := range ctx.Cameras() {
		names = append(names, cam.Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
}

func TestContext_GraphicsNotFoundUntouched(t *testing.T) {
	ctx := New()
	_, err := ctx.Graphics("never-touched")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContext_GraphicsFoundAfterImageAccess(t *testing.T) {
	ctx := New()
	ctx.Image("main")
	gs, err := ctx.Graphics("main")
	require.NoError(t, err)
	assert.Empty(t, gs)
}

func TestContext_PushGraphicsAccumulates(t *testing.T) {
	ctx := New()
	ctx.PushGraphics("main", NewPoint(Color{R: 255}, Pt{X: 1, Y: 2}))
	ctx.PushGraphics("main", NewText(Color{}, Pt{}, "hi"))

	gs, err := ctx.Graphics("main")
	require.NoError(t, err)
	require.Len(t, gs, 2)
	assert.Equal(t, KindPoint, gs[0].Kind)
	assert.Equal(t, KindText, gs[1].Kind)
}

func TestContext_ClearEmptiesGraphicsButKeepsSlot(t *testing.T) {
	ctx := New()
	ctx.PushGraphics("main", NewPoint(Color{}, Pt{}))
	ctx.Clear()

	gs, err := ctx.Graphics("main")
	require.NoError(t, err)
	assert.Empty(t, gs)
}

func TestContext_ForEachImageVisitsAllSlots(t *testing.T) {
	ctx := New()
	ctx.Image("a")
	ctx.Image("b")

	seen := map[string]bool{}
	ctx.ForEachImage(func(name string, _ *imagebuf.Buffer) { seen[name] = true })
	assert.True(t, seen["a"])
	assert.True(t, seen["b"])
}
