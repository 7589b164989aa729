// ============================================================================
// PENDING-INTERRUPT FIFO
// ============================================================================
//
// Fixed-capacity SPSC ring holding pended IRQ vector numbers. Sequence-based
// slot signaling: no atomic read-modify-write on the cursors, producer and
// consumer each own one cursor on an isolated cache line.
//
// Slot protocol:
//   - Producer writes when slot.seq == tail, publishes with seq = tail+1
//   - Consumer reads when slot.seq == head+1, recycles with seq = head+size
//
// Safety model:
//   - One producer (whoever pends), one consumer (the core's delivery loop).
//   - Push returns false when full; the caller counts the drop.

package cpu

import "sync/atomic"

// pendSlot pairs a vector number with its availability sequence.
type pendSlot struct {
	seq uint64
	irq uint32
	_   [52]byte // pad to a full cache line
}

// pendRing is the pending FIFO. Head and tail cursors sit on separate cache
// lines so a storming producer never bounces the consumer's line.
type pendRing struct {
	_    [64]byte
	head uint64 // consumer cursor
	_    [56]byte
	tail uint64 // producer cursor
	_    [56]byte
	mask uint64
	step uint64
	buf  []pendSlot
}

func newPendRing(size int) *pendRing {
	if size <= 0 || size&(size-1) != 0 {
		panic("cpu: pending ring size must be >0 and power of two")
	}
	r := &pendRing{
		mask: uint64(size - 1),
		step: uint64(size),
		buf:  make([]pendSlot, size),
	}
	for i := range r.buf {
		r.buf[i].seq = uint64(i)
	}
	return r
}

// push enqueues an IRQ number. False means the FIFO is full.
//
//go:nosplit
//go:inline
func (r *pendRing) push(irq uint32) bool {
	t := atomic.LoadUint64(&r.tail)
	s := &r.buf[t&r.mask]
	if atomic.LoadUint64(&s.seq) != t {
		return false
	}
	s.irq = irq
	atomic.StoreUint64(&s.seq, t+1)
	atomic.StoreUint64(&r.tail, t+1)
	return true
}

// pop dequeues the oldest pended IRQ, FIFO order.
//
//go:nosplit
//go:inline
func (r *pendRing) pop() (uint32, bool) {
	h := atomic.LoadUint64(&r.head)
	s := &r.buf[h&r.mask]
	if atomic.LoadUint64(&s.seq) != h+1 {
		return 0, false
	}
	irq := s.irq
	atomic.StoreUint64(&s.seq, h+r.step)
	atomic.StoreUint64(&r.head, h+1)
	return irq, true
}

// reset drops any queued requests and reinitializes the slot sequences.
// Part of power-on Reset; never raced against a live producer.
func (r *pendRing) reset() {
	atomic.StoreUint64(&r.head, 0)
	atomic.StoreUint64(&r.tail, 0)
	for i := range r.buf {
		atomic.StoreUint64(&r.buf[i].seq, uint64(i))
	}
}
