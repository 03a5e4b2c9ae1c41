package differ

import "sync"

// changeBufferCap is the starting capacity of a scratch buffer. Most
// snapshot pairs change only a handful of entities per release.
const changeBufferCap = 16

// maxPooledChanges keeps buffers grown by one very large diff out of the pool.
const maxPooledChanges = 256

// changeBuffer collects the changes of one diff pass before they are copied
// into the result, so the result never aliases pooled memory.
type changeBuffer struct {
	changes []Change
}

var changeBuffers = sync.Pool{
	New: func() any {
		return &changeBuffer{changes: make([]Change, 0, changeBufferCap)}
	},
}

func acquireChangeBuffer() *changeBuffer {
	b := changeBuffers.Get().(*changeBuffer)
	b.changes = b.changes[:0]
	return b
}

// release returns b to the pool. b must not be used afterwards.
func (b *changeBuffer) release() {
	if b == nil || cap(b.changes) > maxPooledChanges {
		return
	}
	clear(b.changes)
	changeBuffers.Put(b)
}
