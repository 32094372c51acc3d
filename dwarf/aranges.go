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
	"fmt"
)

// AddressRange is one (address, length) pair within an address-range set.
type AddressRange struct {
	Address uint64
	Length  uint64
}

// ArangeSet is one decoded .debug_aranges table: the compilation unit it
// indexes (by .debug_info offset) plus the ranges covering that unit's
// code.
type ArangeSet struct {
	Offset         uint64 // section offset of this set's initial length
	Format64       bool
	Version        uint16
	DebugInfoOffset uint64
	AddressSize    uint8
	SegmentSize    uint8
	Ranges         []AddressRange
}

// ParseAranges decodes .debug_aranges (spec.md §4.6): a sequence of sets,
// each a small header followed by (address, length) pairs terminated by a
// (0,0) pair, with the cursor aligned before the pairs begin.
func ParseAranges(data []uint8, order binary.ByteOrder) ([]*ArangeSet, error) {
	var sets []*ArangeSet

	c := newCursor(data, order)
	for !c.done() {
		setStart := uint64(c.offset())

		length, format64, err := c.initialLength()
		if err != nil {
			return sets, err
		}
		setEnd := c.offset() + int(length)

		version, err := c.u16()
		if err != nil {
			return sets, err
		}
		if version != 2 {
			return sets, fmt.Errorf("%w: .debug_aranges version %d", ErrUnsupportedVersion, version)
		}

		infoOffset, err := c.sectionOffset(format64)
		if err != nil {
			return sets, err
		}

		addrSize, err := c.u8()
		if err != nil {
			return sets, err
		}
		if addrSize == 0 {
			return sets, fmt.Errorf("%w: zero address_size in .debug_aranges", ErrInvariantViolation)
		}

		segSize, err := c.u8()
		if err != nil {
			return sets, err
		}

		set := &ArangeSet{
			Offset:          setStart,
			Format64:        format64,
			Version:         version,
			DebugInfoOffset: infoOffset,
			AddressSize:     addrSize,
			SegmentSize:     segSize,
		}

		// the header read above is the initial length (4 or 12 bytes) + 2
		// (version) + format-width (debug_info_offset) + 1 (address_size) +
		// 1 (segment_size) bytes; align to the next multiple of
		// 2*address_size measured from the set start.
		entryAlign := 2 * int(addrSize)
		headerLen := c.offset() - int(setStart)
		if pad := (entryAlign - headerLen%entryAlign) % entryAlign; pad > 0 {
			if err := c.skip(pad); err != nil {
				return sets, err
			}
		}

		for {
			if c.offset() >= setEnd {
				break
			}
			addr, err := c.address(int(addrSize))
			if err != nil {
				return sets, err
			}
			rangeLen, err := c.address(int(addrSize))
			if err != nil {
				return sets, err
			}
			if addr == 0 && rangeLen == 0 {
				break
			}
			set.Ranges = append(set.Ranges, AddressRange{Address: addr, Length: rangeLen})
		}

		if c.offset() < setEnd {
			if err := c.skip(setEnd - c.offset()); err != nil {
				return sets, err
			}
		}

		sets = append(sets, set)
	}

	return sets, nil
}
