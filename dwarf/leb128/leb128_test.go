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

package leb128_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dwarfkit/dwarfdecode/dwarf/leb128"
)

func TestDecodeULEB128(t *testing.T) {
	// tests from page 162 of the "DWARF4 Standard"
	r, n, ok := leb128.DecodeULEB128([]uint8{0x7f, 0x00})
	require.True(t, ok)
	require.Equal(t, 1, n)
	require.Equal(t, uint64(127), r)

	r, n, ok = leb128.DecodeULEB128([]uint8{0x80, 0x01, 0x00})
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, uint64(128), r)

	r, n, ok = leb128.DecodeULEB128([]uint8{0x81, 0x01, 0x00})
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, uint64(129), r)

	r, n, ok = leb128.DecodeULEB128([]uint8{0x82, 0x01, 0x00})
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, uint64(130), r)

	r, n, ok = leb128.DecodeULEB128([]uint8{0xb9, 0x64, 0x00})
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, uint64(12857), r)

	// scenario 2 from spec.md §8
	r, n, ok = leb128.DecodeULEB128([]uint8{0xE5, 0x8E, 0x26})
	require.True(t, ok)
	require.Equal(t, 3, n)
	require.Equal(t, uint64(624485), r)

	// no byte with the continuation bit clear: truncated
	_, n, ok = leb128.DecodeULEB128([]uint8{0x80, 0x80})
	require.False(t, ok)
	require.Equal(t, 2, n)

	_, _, ok = leb128.DecodeULEB128(nil)
	require.False(t, ok)
}

func TestDecodeSLEB128(t *testing.T) {
	// tests from page 163 of the "DWARF4 Standard"
	r, n, ok := leb128.DecodeSLEB128([]uint8{0x02, 0x00})
	require.True(t, ok)
	require.Equal(t, 1, n)
	require.Equal(t, int64(2), r)

	r, n, ok = leb128.DecodeSLEB128([]uint8{0x7e, 0x00})
	require.True(t, ok)
	require.Equal(t, 1, n)
	require.Equal(t, int64(-2), r)

	r, n, ok = leb128.DecodeSLEB128([]uint8{0xff, 0x00, 0x00})
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, int64(127), r)

	r, n, ok = leb128.DecodeSLEB128([]uint8{0x81, 0x7f, 0x00})
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, int64(-127), r)

	r, n, ok = leb128.DecodeSLEB128([]uint8{0x80, 0x01, 0x00})
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, int64(128), r)

	r, n, ok = leb128.DecodeSLEB128([]uint8{0x80, 0x7f, 0x00})
	require.True(t, ok)
	require.Equal(t, 2, n)
	require.Equal(t, int64(-128), r)

	// no byte with the continuation bit clear: truncated
	_, n, ok = leb128.DecodeSLEB128([]uint8{0x80, 0x80})
	require.False(t, ok)
	require.Equal(t, 2, n)

	_, _, ok = leb128.DecodeSLEB128(nil)
	require.False(t, ok)
}
