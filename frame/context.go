// Package frame implements the per-frame working set (FrameContext) that
// every pipeline stage receives: frame id, timestamp, a named result map,
// named image slots with vector-graphic overlays, and an ordered set of
// per-camera sub-contexts. One Context is allocated per worker and
// reused across frames via Clear.
package frame

import (
	"time"

	"framepipe/imagebuf"
)

// Camera pairs a name with its lazily-created sub-context. Cameras are
// stored in insertion order inside a Context.
type Camera struct {
	Name string
	Sub  *SubContext
}

// Context is the per-frame working set passed to every stage's Process
// method. A single Context is owned by one worker for that worker's
// lifetime and must never be shared across workers concurrently.
type Context struct {
	core    coreState
	cameras []*Camera
	index   map[string]int
}

// New returns an empty Context with frame id 0 and an unstamped
// (zero-value) timestamp.
func New() *Context {
	return &Context{
		core:  newCoreState(),
		index: make(map[string]int),
	}
}

// Clear resets the result map to "no value", empties every image slot,
// and recursively clears every camera sub-context. Slot and camera keys
// persist; clearing twice in a row is indistinguishable from once.
func (c *Context) Clear() {
	c.core.clear()
	for _, cam := range c.cameras {
		cam.Sub.Clear()
	}
}

// SetTime sets the frame's timestamp and propagates it to every existing
// camera sub-context before returning.
func (c *Context) SetTime(t time.Time) {
	c.core.setTime(t)
	for _, cam := range c.cameras {
		cam.Sub.SetTime(t)
	}
}

// Time returns the frame's timestamp.
func (c *Context) Time() time.Time { return c.core.time() }

// SetFrameID sets the frame id and propagates it to every existing
// camera sub-context before returning, so observers at any level see the
// same id.
func (c *Context) SetFrameID(id uint64) {
	c.core.setFrameID(id)
	for _, cam := range c.cameras {
		cam.Sub.SetFrameID(id)
	}
}

// FrameID returns the frame id.
func (c *Context) FrameID() uint64 { return c.core.frameIDVal() }

// Result returns a handle to the named result, creating it in the
// "no value" state on first access.
func (c *Context) Result(name string) *Result { return c.core.result(name) }

// Image returns the named image slot's buffer, creating an empty one on
// first access.
func (c *Context) Image(name string) *imagebuf.Buffer { return c.core.image(name) }

// ForEachImage applies visit to every (name, image) pair in the
// context's own image map; it does not recurse into cameras.
func (c *Context) ForEachImage(visit func(name string, buf *imagebuf.Buffer)) {
	c.core.forEachImage(visit)
}

// ForEachImageMut is ForEachImage (see SubContext.ForEachImageMut).
func (c *Context) ForEachImageMut(visit func(name string, buf *imagebuf.Buffer)) {
	c.core.forEachImage(visit)
}

// PushGraphics appends gs to the named image slot's overlay list,
// creating the slot if absent.
func (c *Context) PushGraphics(imageName string, gs ...VectorGraphic) {
	c.core.pushGraphics(imageName, gs...)
}

// Graphics returns the overlay list for imageName, or ErrNotFound if the
// slot has never been touched.
func (c *Context) Graphics(imageName string) ([]VectorGraphic, error) {
	return c.core.graphics(imageName)
}

// Camera returns the existing sub-context for name, or lazily creates
// and appends one, inheriting the parent's current frame id and
// timestamp at creation time.
func (c *Context) Camera(name string) *SubContext {
	if i, ok := c.index[name]; ok {
		return c.cameras[i].Sub
	}
	sub := newSubContext(c.core.frameIDVal(), c.core.time())
	c.index[name] = len(c.cameras)
	c.cameras = append(c.cameras, &Camera{Name: name, Sub: sub})
	return sub
}

// Cameras returns the ordered list of (name, sub-context) pairs, in
// insertion order.
func (c *Context) Cameras() []*Camera {
	return c.cameras
}
