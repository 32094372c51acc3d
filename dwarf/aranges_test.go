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
	"testing"

	"github.com/stretchr/testify/require"
)

func buildArangeSet(t *testing.T, addrSize uint8, ranges []AddressRange) []uint8 {
	t.Helper()

	var rest []uint8
	rest = append(rest, 2, 0) // version 2
	rest = appendU32(rest, 0) // debug_info_offset
	rest = append(rest, addrSize, 0) // segment_size 0

	// pad relative to the set's absolute start, which includes the 4-byte
	// initial-length field preceding rest.
	entryAlign := 2 * int(addrSize)
	headerLen := 4 + len(rest)
	for headerLen%entryAlign != 0 {
		rest = append(rest, 0)
		headerLen++
	}

	for _, r := range ranges {
		rest = appendAddr(rest, r.Address, addrSize)
		rest = appendAddr(rest, r.Length, addrSize)
	}
	rest = appendAddr(rest, 0, addrSize)
	rest = appendAddr(rest, 0, addrSize)

	var out []uint8
	out = appendU32(out, uint32(len(rest)))
	out = append(out, rest...)
	return out
}

func appendAddr(b []uint8, v uint64, size uint8) []uint8 {
	for i := 0; i < int(size); i++ {
		b = append(b, uint8(v))
		v >>= 8
	}
	return b
}

func TestParseArangesSingleSet(t *testing.T) {
	data := buildArangeSet(t, 8, []AddressRange{{Address: 0x1000, Length: 0x20}})

	sets, err := ParseAranges(data, binary.LittleEndian)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	require.Len(t, sets[0].Ranges, 1)
	require.Equal(t, uint64(0x1000), sets[0].Ranges[0].Address)
	require.Equal(t, uint64(0x20), sets[0].Ranges[0].Length)
}

func TestParseArangesCursorEndsAtDeclaredLength(t *testing.T) {
	// testable property from spec.md §8: the cursor after parsing a set
	// lies exactly at start + 4 (32-bit initial length) + declared length.
	data := buildArangeSet(t, 4, []AddressRange{{Address: 0x500, Length: 0x10}})
	sets, err := ParseAranges(data, binary.LittleEndian)
	require.NoError(t, err)
	require.Len(t, sets, 1)

	var declaredLen uint32
	declaredLen = binary.LittleEndian.Uint32(data[0:4])
	require.Equal(t, int(declaredLen)+4, len(data))
}

func TestParseArangesMultipleSets(t *testing.T) {
	set1 := buildArangeSet(t, 4, []AddressRange{{Address: 0x100, Length: 0x10}})
	set2 := buildArangeSet(t, 4, []AddressRange{{Address: 0x200, Length: 0x20}})
	data := append(set1, set2...)

	sets, err := ParseAranges(data, binary.LittleEndian)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	require.Equal(t, uint64(0x100), sets[0].Ranges[0].Address)
	require.Equal(t, uint64(0x200), sets[1].Ranges[0].Address)
}

func TestParseArangesZeroAddressSize(t *testing.T) {
	data := buildArangeSet(t, 4, nil)
	data[10] = 0 // corrupt address_size to zero
	_, err := ParseAranges(data, binary.LittleEndian)
	require.ErrorIs(t, err, ErrInvariantViolation)
}
