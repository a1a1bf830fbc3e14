// Package wire holds the big-endian read cursor shared by the layer decoders.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/Yi-Tseng/Ryu-vRouter/internal/protocol"
)

// Reader is a forward-only cursor over a network byte order buffer.
//
// A read past the end of the buffer records ErrTruncated, returns a zero value
// and leaves the cursor in place; every later read is a no-op. Callers check Err
// once after a run of reads.
type Reader struct {
	buf []byte
	off int
	err error
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.Len() < n {
		r.err = fmt.Errorf("%w: need %d bytes, have %d", protocol.ErrTruncated, n, r.Len())
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) Uint8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// Next returns the next n bytes without copying them.
func (r *Reader) Next(n int) []byte {
	return r.take(n)
}

// Skip advances the cursor by up to n bytes, stopping at the end of the buffer.
func (r *Reader) Skip(n int) {
	if r.err != nil || n <= 0 {
		return
	}
	r.off += min(n, r.Len())
}

// Rest returns the unread bytes.
func (r *Reader) Rest() []byte {
	return r.buf[r.off:]
}

// Align rounds n up to the next multiple of to, which must be a power of two.
func Align(n, to int) int {
	return (n + to - 1) &^ (to - 1)
}
