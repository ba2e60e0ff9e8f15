package runner

import (
	"fmt"
	"unsafe"

	"github.com/notargets/gocca"
)

const float64Bytes = 8

// Buffer is a device-resident float64 array with synchronous host copies in
// both directions. A Buffer is exclusively owned by the Runner that allocated
// it and never aliases another Buffer.
type Buffer struct {
	mem *gocca.OCCAMemory
	n   int
}

// AllocFloat64 allocates a device buffer of n float64 values and registers it
// under name.
func (r *Runner) AllocFloat64(name string, n int) *Buffer {
	buf := &Buffer{
		mem: r.Device.Malloc(int64(n)*float64Bytes, nil, nil),
		n:   n,
	}
	r.Buffers[name] = buf
	return buf
}

// CopyFrom copies host into the device buffer and blocks until done.
func (b *Buffer) CopyFrom(host []float64) error {
	if len(host) != b.n {
		return fmt.Errorf("buffer copy size mismatch: host %d, device %d", len(host), b.n)
	}
	b.mem.CopyFrom(unsafe.Pointer(&host[0]), int64(b.n)*float64Bytes)
	return nil
}

// CopyTo copies the device buffer into host and blocks until done.
func (b *Buffer) CopyTo(host []float64) error {
	if len(host) != b.n {
		return fmt.Errorf("buffer copy size mismatch: host %d, device %d", len(host), b.n)
	}
	b.mem.CopyTo(unsafe.Pointer(&host[0]), int64(b.n)*float64Bytes)
	return nil
}

// Mem exposes the underlying device memory for use as a kernel argument.
func (b *Buffer) Mem() *gocca.OCCAMemory {
	return b.mem
}

// Len returns the element count.
func (b *Buffer) Len() int {
	return b.n
}

// Free releases the device memory.
func (b *Buffer) Free() {
	if b.mem != nil {
		b.mem.Free()
		b.mem = nil
	}
}
