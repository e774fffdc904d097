// Package strings provides pooled string building utilities used by the SQL
// script renderer. Scripts for large tables are assembled from hundreds of
// thousands of small writes, so builders are reused through size-classed pools.
package strings

import (
	"fmt"
	"sync"
	"unsafe"
)

// BytesToString converts a byte slice to a string without allocation.
// WARNING: The returned string shares memory with the byte slice.
// Do not modify the byte slice after calling this function.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// StringToBytes converts a string to a byte slice without allocation.
// WARNING: The returned slice shares memory with the string and must
// not be modified.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Clone returns a copy of s backed by freshly allocated memory. Use it
// before returning a string built on top of a pooled buffer.
func Clone(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := make([]byte, len(s))
	copy(b, s)
	return BytesToString(b)
}

// Builder accumulates string fragments in a growable byte buffer.
type Builder struct {
	buf []byte
}

// NewBuilder creates a builder with the given initial capacity.
func NewBuilder(capacity int) *Builder {
	return &Builder{buf: make([]byte, 0, capacity)}
}

// WriteString appends a string to the builder.
func (b *Builder) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// WriteByte appends a single byte.
func (b *Builder) WriteByte(c byte) {
	b.buf = append(b.buf, c)
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (n int, err error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// String returns the built string without copying. The result is only
// valid until the builder is reset or returned to a pool; Clone it when
// it must outlive the builder.
func (b *Builder) String() string {
	return BytesToString(b.buf)
}

// Bytes returns the underlying byte slice.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Len returns the number of bytes accumulated.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Cap returns the capacity of the underlying buffer.
func (b *Builder) Cap() int {
	return cap(b.buf)
}

// Reset truncates the builder to zero length, keeping the buffer.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

// Grow ensures capacity for at least n additional bytes.
func (b *Builder) Grow(n int) {
	if cap(b.buf)-len(b.buf) < n {
		grown := make([]byte, len(b.buf), 2*cap(b.buf)+n)
		copy(grown, b.buf)
		b.buf = grown
	}
}

// Size selects a builder pool size class.
type Size int

const (
	// Small builders suit single value literals and file names.
	Small Size = iota
	// Medium builders suit single INSERT rows.
	Medium
	// Large builders suit whole batch scripts.
	Large
)

var pools = [...]*sync.Pool{
	Small:  newPool(256),
	Medium: newPool(4 * 1024),
	Large:  newPool(256 * 1024),
}

func newPool(capacity int) *sync.Pool {
	return &sync.Pool{
		New: func() interface{} {
			return NewBuilder(capacity)
		},
	}
}

// GetBuilder fetches a builder of the given size class from its pool.
func GetBuilder(size Size) *Builder {
	b := pools[size].Get().(*Builder)
	b.Reset()
	return b
}

// PutBuilder returns a builder to its pool. The builder must not be used
// after this call.
func PutBuilder(b *Builder, size Size) {
	pools[size].Put(b)
}

// Sprintf formats using a pooled builder and returns an owned copy.
func Sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}

	size := Small
	if estimated := len(format) + len(args)*16; estimated > 4*1024 {
		size = Large
	} else if estimated > 256 {
		size = Medium
	}

	b := GetBuilder(size)
	defer PutBuilder(b, size)

	fmt.Fprintf(b, format, args...)
	return Clone(b.String())
}

// JoinPooled joins elems with delim using a pooled builder.
func JoinPooled(elems []string, delim string) string {
	if len(elems) == 0 {
		return ""
	}
	if len(elems) == 1 {
		return elems[0]
	}

	total := (len(elems) - 1) * len(delim)
	for _, s := range elems {
		total += len(s)
	}

	size := Small
	if total > 4*1024 {
		size = Large
	} else if total > 256 {
		size = Medium
	}

	b := GetBuilder(size)
	defer PutBuilder(b, size)

	b.WriteString(elems[0])
	for _, s := range elems[1:] {
		b.WriteString(delim)
		b.WriteString(s)
	}
	return Clone(b.String())
}
