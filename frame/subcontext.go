package frame

import (
	"time"

	"go.uber.org/zap"

	"framepipe/imagebuf"
)

// imageSlot holds one named image plus its vector-graphic overlays.
// Presence of a key in coreState.images is what "touched" means for
// Graphics' NotFound check — Clear resets the slot's contents but never
// drops the key.
type imageSlot struct {
	buf      *imagebuf.Buffer
	graphics []VectorGraphic
}

// coreState is the shape shared by a top-level FrameContext and by each
// camera's sub-context: frame id, timestamp, result map, image map.
// Cameras themselves are only held by Context, never by coreState, which
// is what keeps a sub-context from recursively holding sub-contexts.
type coreState struct {
	frameID   uint64
	timestamp time.Time
	results   map[string]*Result
	images    map[string]*imageSlot
}

func newCoreState() coreState {
	return coreState{
		results: make(map[string]*Result),
		images:  make(map[string]*imageSlot),
	}
}

func (c *coreState) clear() {
	for _, r := range c.results {
		r.clear()
	}
	for _, s := range c.images {
		s.buf.Reset()
		s.graphics = s.graphics[:0]
	}
}

func (c *coreState) setTime(t time.Time) { c.timestamp = t }
func (c *coreState) time() time.Time     { return c.timestamp }

func (c *coreState) setFrameID(id uint64) { c.frameID = id }
func (c *coreState) frameIDVal() uint64   { return c.frameID }

func (c *coreState) result(name string) *Result {
	r, ok := c.results[name]
	if !ok {
		r = &Result{}
		c.results[name] = r
	}
	return r
}

func (c *coreState) ensureSlot(name string) *imageSlot {
	s, ok := c.images[name]
	if !ok {
		s = &imageSlot{buf: imagebuf.Empty()}
		c.images[name] = s
	}
	return s
}

func (c *coreState) image(name string) *imagebuf.Buffer {
	return c.ensureSlot(name).buf
}

func (c *coreState) forEachImage(visit func(name string, buf *imagebuf.Buffer)) {
	for name, slot := range c.images {
		visit(name, slot.buf)
	}
}

func (c *coreState) pushGraphics(imageName string, gs ...VectorGraphic) {
	slot := c.ensureSlot(imageName)
	slot.graphics = append(slot.graphics, gs...)
}

func (c *coreState) graphics(imageName string) ([]VectorGraphic, error) {
	slot, ok := c.images[imageName]
	if !ok {
		logger().Debug("image slot not found", zap.String("slot", imageName))
		return nil, ErrNotFound
	}
	return slot.graphics, nil
}

// SubContext is a camera's per-frame working set: same shape as a
// FrameContext (results, image slots, timestamp, frame id) but without
// its own nested cameras.
type SubContext struct {
	core coreState
}

func newSubContext(frameID uint64, t time.Time) *SubContext {
	sc := &SubContext{core: newCoreState()}
	sc.core.frameID = frameID
	sc.core.timestamp = t
	return sc
}

// Clear resets every result to "no value" and empties every image slot.
func (sc *SubContext) Clear() { sc.core.clear() }

// SetTime sets the sub-context's timestamp.
func (sc *SubContext) SetTime(t time.Time) { sc.core.setTime(t) }

// Time returns the sub-context's timestamp.
func (sc *SubContext) Time() time.Time { return sc.core.time() }

// SetFrameID sets the sub-context's frame id.
func (sc *SubContext) SetFrameID(id uint64) { sc.core.setFrameID(id) }

// FrameID returns the sub-context's frame id.
func (sc *SubContext) FrameID() uint64 { return sc.core.frameIDVal() }

// Result returns a handle to the named result, creating it in the
// "no value" state on first access.
func (sc *SubContext) Result(name string) *Result { return sc.core.result(name) }

// Image returns the named image slot's buffer, creating an empty one on
// first access.
func (sc *SubContext) Image(name string) *imagebuf.Buffer { return sc.core.image(name) }

// ForEachImage applies visit to every (name, image) pair in this
// sub-context's own image map.
func (sc *SubContext) ForEachImage(visit func(name string, buf *imagebuf.Buffer)) {
	sc.core.forEachImage(visit)
}

// ForEachImageMut is ForEachImage; Go pointers don't distinguish
// read-only access, so the two are identical here, kept separate only to
// mirror the source API's naming.
func (sc *SubContext) ForEachImageMut(visit func(name string, buf *imagebuf.Buffer)) {
	sc.core.forEachImage(visit)
}

// PushGraphics appends gs to the named image slot's overlay list,
// creating the slot if absent.
func (sc *SubContext) PushGraphics(imageName string, gs ...VectorGraphic) {
	sc.core.pushGraphics(imageName, gs...)
}

// Graphics returns the overlay list for imageName, or ErrNotFound if the
// slot has never been touched.
func (sc *SubContext) Graphics(imageName string) ([]VectorGraphic, error) {
	return sc.core.graphics(imageName)
}
