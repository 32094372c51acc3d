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

func TestParseLocListsSingleRange(t *testing.T) {
	var data []uint8
	data = appendAddr(data, 0x1000, 8)
	data = appendAddr(data, 0x1010, 8)
	data = appendU16(data, 2)
	data = append(data, 0x91, 0x00) // fbreg 0 (arbitrary expression bytes)
	data = appendAddr(data, 0, 8)
	data = appendAddr(data, 0, 8)

	lists, err := ParseLocLists(data, binary.LittleEndian, 8)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Len(t, lists[0].Entries, 1)
	require.Equal(t, uint64(0x1000), lists[0].Entries[0].Start)
	require.Equal(t, uint64(0x1010), lists[0].Entries[0].End)
	require.Equal(t, []uint8{0x91, 0x00}, lists[0].Entries[0].Expression)
}

func TestParseLocListsBaseAddressSelector(t *testing.T) {
	var data []uint8
	// base-address entry: start = max for 8-byte address
	data = appendAddr(data, 0xffffffffffffffff, 8)
	data = appendAddr(data, 0x5000, 8)
	// range relative to the new base
	data = appendAddr(data, 0x10, 8)
	data = appendAddr(data, 0x20, 8)
	data = appendU16(data, 1)
	data = append(data, 0x9f) // stack_value (arbitrary single-byte expression)
	data = appendAddr(data, 0, 8)
	data = appendAddr(data, 0, 8)

	lists, err := ParseLocLists(data, binary.LittleEndian, 8)
	require.NoError(t, err)
	require.Len(t, lists, 1)
	require.Len(t, lists[0].Entries, 1)
	require.Equal(t, uint64(0x5010), lists[0].Entries[0].Start)
	require.Equal(t, uint64(0x5020), lists[0].Entries[0].End)
}

func TestParseLocListsMultipleLists(t *testing.T) {
	var data []uint8
	data = appendAddr(data, 0x100, 4)
	data = appendAddr(data, 0x110, 4)
	data = appendU16(data, 1)
	data = append(data, 0x50)
	data = appendAddr(data, 0, 4)
	data = appendAddr(data, 0, 4)

	secondListOffset := uint64(len(data))

	data = appendAddr(data, 0x200, 4)
	data = appendAddr(data, 0x210, 4)
	data = appendU16(data, 1)
	data = append(data, 0x51)
	data = appendAddr(data, 0, 4)
	data = appendAddr(data, 0, 4)

	lists, err := ParseLocLists(data, binary.LittleEndian, 4)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	require.Equal(t, uint64(0), lists[0].Offset)
	require.Equal(t, secondListOffset, lists[1].Offset)
}

func appendU16(b []uint8, v uint16) []uint8 {
	return append(b, uint8(v), uint8(v>>8))
}
