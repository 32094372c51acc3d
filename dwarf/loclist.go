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

import "encoding/binary"

// LocEntry is one range of a location list: the instruction-address span
// it covers and the raw DWARF expression bytes describing where the
// variable lives over that span. Expression is never evaluated by this
// decoder (spec.md §4.8); a caller wanting operations calls ParseExpression
// on it.
type LocEntry struct {
	Start      uint64
	End        uint64
	Expression []uint8
}

// LocList is one location list: every range entry between two (0,0)
// terminators, keyed by the section offset of its first entry.
type LocList struct {
	Offset  uint64
	Entries []LocEntry
}

// ParseLocLists decodes .debug_loc (spec.md §4.7): a flat sequence of
// entries, each either a range, a base-address selector, or a list
// terminator, with no higher-level framing between lists.
func ParseLocLists(data []uint8, order binary.ByteOrder, addressSize int) ([]*LocList, error) {
	var lists []*LocList

	c := newCursor(data, order)
	maxAddr := maxValueForWidth(addressSize)

	var current *LocList
	base := uint64(0)

	for !c.done() {
		entryOffset := uint64(c.offset())
		if current == nil {
			current = &LocList{Offset: entryOffset}
		}

		start, err := c.address(addressSize)
		if err != nil {
			return lists, err
		}
		end, err := c.address(addressSize)
		if err != nil {
			return lists, err
		}

		switch {
		case start == 0 && end == 0:
			lists = append(lists, current)
			current = nil
			base = 0

		case start == maxAddr:
			base = end

		default:
			length, err := c.u16()
			if err != nil {
				return lists, err
			}
			expr, err := c.bytes(int(length))
			if err != nil {
				return lists, err
			}
			current.Entries = append(current.Entries, LocEntry{
				Start:      start + base,
				End:        end + base,
				Expression: expr,
			})
		}
	}

	if current != nil {
		lists = append(lists, current)
	}

	return lists, nil
}

func maxValueForWidth(width int) uint64 {
	switch width {
	case 2:
		return 0xffff
	case 4:
		return 0xffffffff
	case 8:
		return 0xffffffffffffffff
	default:
		if width <= 0 || width >= 8 {
			return 0xffffffffffffffff
		}
		return (uint64(1) << (uint(width) * 8)) - 1
	}
}
