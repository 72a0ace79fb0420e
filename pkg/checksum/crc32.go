// Package checksum provides an incremental CRC32 accumulator used to guard
// record payloads against corruption.
//
// The accumulator keeps the raw CRC register: the zero value is the checksum
// of empty input, and appending data in any chunking yields the same value as
// appending it in one call:
//
//	var a checksum.Crc32
//	a.Append([]byte("foo"))
//	a.Append([]byte("bar"))
//
//	var b checksum.Crc32
//	b.Append([]byte("foobar"))
//
//	a.Get() == b.Get() // true
//
// Values are the raw IEEE polynomial register, without the pre and post
// inversion that crc32.ChecksumIEEE applies. Seeding an accumulator with
// ^crc32.ChecksumIEEE(a) and appending b gives ^crc32.ChecksumIEEE(a+b).
package checksum

import (
	"github.com/klauspost/crc32"
)

// Crc32 accumulates a checksum over a sequence of appended byte slices.
// The zero value is ready to use.
type Crc32 struct {
	crc uint32
}

// New returns an accumulator seeded with init.
func New(init uint32) Crc32 {
	return Crc32{crc: init}
}

// Get returns the checksum of all data appended so far.
func (c *Crc32) Get() uint32 {
	return c.crc
}

// Append updates the checksum to reflect p being appended to the data seen
// so far and returns the new value.
func (c *Crc32) Append(p []byte) uint32 {
	if len(p) > 0 {
		// crc32.Update inverts on the way in and out
		c.crc = ^crc32.Update(^c.crc, crc32.IEEETable, p)
	}
	return c.crc
}

// Equal reports whether both accumulators hold the same checksum.
func (c Crc32) Equal(other Crc32) bool {
	return c.crc == other.crc
}

// Sum returns the checksum of p from the empty state.
func Sum(p []byte) uint32 {
	var c Crc32
	return c.Append(p)
}
