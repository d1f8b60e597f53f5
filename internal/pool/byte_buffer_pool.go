package pool

import (
	"io"
	"sync"
)

// ConvBufferDefaultSize is the default size of the ByteBuffer obtained from the pool.
const (
	ConvBufferDefaultSize  = 1024 * 16  // 16KiB
	ConvBufferMaxThreshold = 1024 * 512 // 512KiB
)

// ByteBuffer is the growable byte buffer the conversion engine drives:
// it supplies capacity, append, and shrink-from-front. The engine writes
// converted bytes at the end and consumes raw bytes from the front.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Avail returns the number of bytes that can be appended without growing.
func (bb *ByteBuffer) Avail() int {
	return cap(bb.B) - len(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Tail returns the unused region between the buffer's length and its
// capacity. Converters write produced bytes here; the caller commits
// them with AddLen.
func (bb *ByteBuffer) Tail() []byte {
	return bb.B[len(bb.B):cap(bb.B)]
}

// AddLen extends the buffer length by n bytes previously written into
// Tail. Panics if n exceeds the available capacity.
func (bb *ByteBuffer) AddLen(n int) {
	if n < 0 || n > bb.Avail() {
		panic("AddLen: invalid length")
	}
	bb.B = bb.B[:len(bb.B)+n]
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// ShrinkFront discards the first n bytes of the buffer, moving the
// remainder to the start. The conversion engine calls this after a
// chunk is consumed so unconsumed bytes are retried on the next call.
// Panics if n exceeds the buffer length.
func (bb *ByteBuffer) ShrinkFront(n int) {
	if n < 0 || n > len(bb.B) {
		panic("ShrinkFront: invalid length")
	}
	if n == 0 {
		return
	}
	m := copy(bb.B, bb.B[n:])
	bb.B = bb.B[:m]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<64KB), grow by ConvBufferDefaultSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if bb.Avail() >= requiredBytes {
		return
	}

	growBy := ConvBufferDefaultSize
	if cap(bb.B) > 4*ConvBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int // Optional maximum size threshold for buffers
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var convDefaultPool = NewByteBufferPool(ConvBufferDefaultSize, ConvBufferMaxThreshold)

// GetConvBuffer retrieves a ByteBuffer from the default conversion pool.
func GetConvBuffer() *ByteBuffer {
	return convDefaultPool.Get()
}

// PutConvBuffer returns a ByteBuffer to the default conversion pool.
func PutConvBuffer(bb *ByteBuffer) {
	convDefaultPool.Put(bb)
}
