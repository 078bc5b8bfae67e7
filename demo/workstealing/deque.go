// Package workstealing provides the lock-free work-stealing deque used
// by demo's tiled convolution stage to split one frame's image into
// tiles and spread them across the stage's own goroutines, independent
// of the pipeline's own worker/executor scheduling. Adapted from the
// teacher's WorkStealing package (WorkStealing/UDEqueue.go,
// CircularArray.go, Worker.go): the CAS-based top/bottom cursor scheme
// is unchanged, renamed from image-editing "Task" terminology to
// "Tile" terminology.
package workstealing

import (
	"math/rand"
	"sync/atomic"
	"unsafe"
)

// Tile is one unit of work a convolution worker can execute or steal.
type Tile interface {
	Run(workerID int)
}

// CircularArray holds tiles addressable by modular arithmetic so the
// owner and thieves can keep using stable indices across a resize.
type CircularArray struct {
	logCapacity int
	tiles       []Tile
}

// NewCircularArray returns an array with capacity 2^logCapacity.
func NewCircularArray(logCapacity int) *CircularArray {
	return &CircularArray{logCapacity: logCapacity, tiles: make([]Tile, 1<<logCapacity)}
}

// Capacity returns the array's current capacity.
func (c *CircularArray) Capacity() int { return 1 << c.logCapacity }

// Get returns the tile at index i, wrapped modulo capacity.
func (c *CircularArray) Get(i int) Tile { return c.tiles[i%c.Capacity()] }

// Put stores a tile at index i, wrapped modulo capacity.
func (c *CircularArray) Put(i int, t Tile) { c.tiles[i%c.Capacity()] = t }

// Resize doubles capacity and copies every live entry in [top, bottom)
// into the new array.
func (c *CircularArray) Resize(bottom, top int) *CircularArray {
	next := NewCircularArray(c.logCapacity + 1)
	for i := top; i < bottom; i++ {
		next.Put(i, c.Get(i))
	}
	return next
}

// Deque is an unbounded double-ended queue of Tiles. One goroutine (the
// owner) pushes and pops from the bottom; any other goroutine may steal
// from the top via a CAS loop.
type Deque struct {
	tiles  unsafe.Pointer // *CircularArray, swapped atomically on resize
	bottom int64
	top    int64
}

// NewDeque returns an empty Deque with the given initial log-capacity.
func NewDeque(initialLogCapacity int) *Deque {
	arr := NewCircularArray(initialLogCapacity)
	return &Deque{tiles: unsafe.Pointer(arr)}
}

// IsEmpty reports whether the deque currently holds no tiles. Cheap and
// safe to call from the owner or any thief; a thief may see a false
// negative under concurrent pushes, which only costs a retried steal.
func (d *Deque) IsEmpty() bool {
	oldTop := atomic.LoadInt64(&d.top)
	return d.bottom <= oldTop
}

// pushBottom appends t. Only the owning goroutine may call this.
func (d *Deque) pushBottom(t Tile) {
	oldTop := atomic.LoadInt64(&d.top)
	arr := (*CircularArray)(d.tiles)
	if int(d.bottom-oldTop) >= arr.Capacity()-1 {
		atomic.StorePointer(&d.tiles, unsafe.Pointer(arr.Resize(int(d.bottom), int(oldTop))))
	}
	(*CircularArray)(d.tiles).Put(int(d.bottom), t)
	atomic.AddInt64(&d.bottom, 1)
}

// popBottom removes and returns the most recently pushed tile, or nil
// if the deque is empty. Only the owning goroutine may call this. When
// exactly one tile remains, the owner races a concurrent thief's PopTop
// for it via CAS on top; the loser gets nil and the queue resets empty.
func (d *Deque) popBottom() Tile {
	atomic.AddInt64(&d.bottom, -1)
	bottom := atomic.LoadInt64(&d.bottom)
	oldTop := atomic.LoadInt64(&d.top)

	size := bottom - oldTop
	if size < 0 {
		atomic.StoreInt64(&d.bottom, oldTop)
		return nil
	}

	t := (*CircularArray)(d.tiles).Get(int(bottom))
	if size > 0 {
		return t
	}

	// size == 0: this is the last tile; resolve the race against any
	// thief concurrently calling PopTop by CASing top forward. The
	// loser (whichever of owner/thief loses the CAS) returns nil.
	if !atomic.CompareAndSwapInt64(&d.top, oldTop, oldTop+1) {
		t = nil
	}
	atomic.StoreInt64(&d.bottom, oldTop+1)
	return t
}

// PopTop steals the oldest tile. Safe to call from any goroutine; may
// spuriously return nil when it loses a race with another thief or the
// owner, in which case the caller should retry or pick another victim.
func (d *Deque) PopTop() Tile {
	oldTop := atomic.LoadInt64(&d.top)
	if d.bottom <= oldTop {
		return nil
	}
	t := (*CircularArray)(d.tiles).Get(int(oldTop))
	if atomic.CompareAndSwapInt64(&d.top, oldTop, oldTop+1) {
		return t
	}
	return nil
}

// Pool owns one Deque per worker and runs the steal loop. Adapted from
// the teacher's Worker (WorkStealing/Worker.go): SelectRandomVictim and
// the own-queue-then-steal ordering are unchanged.
type Pool struct {
	queues []*Deque
}

// NewPool returns a Pool with n per-worker deques.
func NewPool(n int) *Pool {
	queues := make([]*Deque, n)
	for i := range queues {
		queues[i] = NewDeque(4)
	}
	return &Pool{queues: queues}
}

// Submit pushes t onto worker id's own queue.
func (p *Pool) Submit(id int, t Tile) { p.queues[id].pushBottom(t) }

// RunWorker drains worker id's own queue, then steals from random
// victims until every queue is empty, then returns. Used when the
// caller knows the total tile count up front and just needs all of
// them executed once (no long-lived done channel is needed, unlike the
// teacher's continuously-running scheduler workers).
func (p *Pool) RunWorker(id int, remaining *int64) {
	task := p.queues[id].popBottom()
	for {
		for task != nil {
			task.Run(id)
			atomic.AddInt64(remaining, -1)
			task = nil
			if !p.queues[id].IsEmpty() {
				task = p.queues[id].popBottom()
			}
		}
		if atomic.LoadInt64(remaining) <= 0 {
			return
		}
		victim := p.selectVictim(id)
		if !p.queues[victim].IsEmpty() {
			task = p.queues[victim].PopTop()
		}
	}
}

func (p *Pool) selectVictim(self int) int {
	if len(p.queues) == 1 {
		return self
	}
	victim := rand.Intn(len(p.queues))
	for victim == self {
		victim = rand.Intn(len(p.queues))
	}
	return victim
}
