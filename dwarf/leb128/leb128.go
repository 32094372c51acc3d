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

// Package leb128 decodes the little-endian base-128 variable-length integer
// encoding DWARF uses throughout its section formats.
package leb128

// DecodeULEB128 decodes an unsigned LEB128 value from the front of encoded
// (algorithm per the DWARF4 standard, figure 46).
//
// It returns the decoded value, the number of bytes consumed, and ok. ok is
// false when encoded runs out before a byte with the continuation bit
// (0x80) clear turns up; a caller reading from a bounded cursor should treat
// that as a truncated field rather than trust the partial value.
func DecodeULEB128(encoded []uint8) (value uint64, consumed int, ok bool) {
	var shift uint64

	for _, b := range encoded {
		consumed++
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0x00 {
			return value, consumed, true
		}
		shift += 7
	}

	return value, consumed, false
}

// DecodeSLEB128 decodes a signed LEB128 value from the front of encoded
// (algorithm per the DWARF4 standard, figure 47). Return values carry the
// same meaning as DecodeULEB128's.
func DecodeSLEB128(encoded []uint8) (value int64, consumed int, ok bool) {
	const width = 64

	var shift uint64

	for _, b := range encoded {
		consumed++
		value |= int64(b&0x7f) << shift
		if b&0x80 == 0x00 {
			if shift+7 < width && b&0x40 != 0 {
				value |= -(1 << (shift + 7))
			}
			return value, consumed, true
		}
		shift += 7
	}

	return value, consumed, false
}
