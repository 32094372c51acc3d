// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package dwarf

import (
	"encoding/binary"

	"github.com/dwarfkit/dwarfdecode/dwarf/leb128"
	"github.com/dwarfkit/dwarfdecode/logger"
)

// cursor is a movable position over a bounded byte range. every read
// primitive spec.md §4.1 asks for is a method here; every dispatch site in
// the attribute, line, aranges, loclist and expression decoders is a call
// to one of them.
type cursor struct {
	data  []uint8
	pos   int
	order binary.ByteOrder
}

func newCursor(data []uint8, order binary.ByteOrder) *cursor {
	return &cursor{data: data, order: order}
}

// offset returns the cursor's current position relative to the start of
// its buffer.
func (c *cursor) offset() int {
	return c.pos
}

// remaining returns the number of unread bytes left in the buffer.
func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

// done reports whether the cursor has consumed its entire buffer.
func (c *cursor) done() bool {
	return c.pos >= len(c.data)
}

func (c *cursor) need(n int) error {
	if c.remaining() < n {
		return ErrUnexpectedEOF
	}
	return nil
}

// u8 reads one unsigned byte.
func (c *cursor) u8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

// s8 reads one signed byte.
func (c *cursor) s8() (int8, error) {
	v, err := c.u8()
	return int8(v), err
}

// u16 reads a 2-byte unsigned integer in the cursor's byte order.
func (c *cursor) u16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := c.order.Uint16(c.data[c.pos:])
	c.pos += 2
	return v, nil
}

// u32 reads a 4-byte unsigned integer in the cursor's byte order.
func (c *cursor) u32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := c.order.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

// u64 reads an 8-byte unsigned integer in the cursor's byte order.
func (c *cursor) u64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := c.order.Uint64(c.data[c.pos:])
	c.pos += 8
	return v, nil
}

// u24 reads a 3-byte unsigned integer in the cursor's byte order. this
// primitive exists for DW_FORM_strx3/addrx3 (spec.md §9, open question:
// the originating tool skips these three bytes unread; this decoder reads
// them as the DWARF Standard requires).
func (c *cursor) u24() (uint32, error) {
	if err := c.need(3); err != nil {
		return 0, err
	}
	var v uint32
	if isBigEndian(c.order) {
		v = uint32(c.data[c.pos])<<16 | uint32(c.data[c.pos+1])<<8 | uint32(c.data[c.pos+2])
	} else {
		v = uint32(c.data[c.pos]) | uint32(c.data[c.pos+1])<<8 | uint32(c.data[c.pos+2])<<16
	}
	c.pos += 3
	return v, nil
}

// uleb128 reads an unsigned LEB128 value.
func (c *cursor) uleb128() (uint64, error) {
	if c.done() {
		return 0, ErrUnexpectedEOF
	}
	v, n, ok := leb128.DecodeULEB128(c.data[c.pos:])
	if !ok {
		return 0, ErrUnexpectedEOF
	}
	c.pos += n
	return v, nil
}

// sleb128 reads a signed LEB128 value.
func (c *cursor) sleb128() (int64, error) {
	if c.done() {
		return 0, ErrUnexpectedEOF
	}
	v, n, ok := leb128.DecodeSLEB128(c.data[c.pos:])
	if !ok {
		return 0, ErrUnexpectedEOF
	}
	c.pos += n
	return v, nil
}

// cstring reads a null-terminated UTF-8 string and advances past the
// terminator. fails with ErrUnexpectedEOF when no terminator is found
// within the remaining range.
func (c *cursor) cstring() (string, error) {
	start := c.pos
	for i := c.pos; i < len(c.data); i++ {
		if c.data[i] == 0 {
			s := string(c.data[start:i])
			c.pos = i + 1
			return s, nil
		}
	}
	return "", ErrUnexpectedEOF
}

// bytes reads n raw bytes, copied out of the source buffer — the decoder
// never retains borrows into the object file's original bytes (§3
// Ownership).
func (c *cursor) bytes(n int) ([]uint8, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	out := make([]uint8, n)
	copy(out, c.data[c.pos:c.pos+n])
	c.pos += n
	return out, nil
}

// skip advances the cursor by n bytes without interpreting them.
func (c *cursor) skip(n int) error {
	if err := c.need(n); err != nil {
		return err
	}
	c.pos += n
	return nil
}

// initialLength reads a DWARF "initial length": a 32-bit value that either
// is the length directly (format32), or signals 64-bit format and is
// followed by the real 64-bit length. spec.md §4.1 / §8.
func (c *cursor) initialLength() (length uint64, format64 bool, err error) {
	v, err := c.u32()
	if err != nil {
		return 0, false, err
	}
	switch {
	case v <= 0xfffffff0:
		return uint64(v), false, nil
	case v == 0xffffffff:
		v64, err := c.u64()
		if err != nil {
			return 0, false, err
		}
		return v64, true, nil
	default:
		// 0xfffffff1 .. 0xfffffffe are reserved trap values.
		return 0, false, ErrInvalidInitialLength
	}
}

// sectionOffset reads an offset into another section, 4 bytes wide in the
// 32-bit DWARF format and 8 bytes wide in the 64-bit format.
func (c *cursor) sectionOffset(format64 bool) (uint64, error) {
	if format64 {
		return c.u64()
	}
	v, err := c.u32()
	return uint64(v), err
}

// address reads an integer of the given address size. widths other than
// 2/4/8 are not directly representable by a fixed-width read; spec.md §4.1
// says to log a diagnostic and advance the cursor by the declared size, so
// the bytes are still consumed byte-by-byte in the cursor's order.
func (c *cursor) address(addrSize int) (uint64, error) {
	switch addrSize {
	case 2:
		v, err := c.u16()
		return uint64(v), err
	case 4:
		v, err := c.u32()
		return uint64(v), err
	case 8:
		return c.u64()
	default:
		if err := c.need(addrSize); err != nil {
			return 0, err
		}
		parseLog.Logf(logger.Allow, "dwarf", "unsupported address size %d, reading raw bytes", addrSize)
		raw := c.data[c.pos : c.pos+addrSize]
		var v uint64
		if isBigEndian(c.order) {
			for _, b := range raw {
				v = v<<8 | uint64(b)
			}
		} else {
			for i := len(raw) - 1; i >= 0; i-- {
				v = v<<8 | uint64(raw[i])
			}
		}
		c.pos += addrSize
		return v, nil
	}
}

func isBigEndian(order binary.ByteOrder) bool {
	return order == binary.BigEndian
}
