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

func TestExecSpecialOpcode(t *testing.T) {
	// scenario 5 from spec.md §8
	header := &LineProgramHeader{
		OpcodeBase:           13,
		LineBase:             -5,
		LineRange:            14,
		MinInstructionLength: 1,
		MaxOpsPerInstruction: 1,
	}
	regs := newLineRegisters(true)
	execSpecialOpcode(header, 0xfa, &regs)
	require.Equal(t, uint64(16), regs.address)
	require.Equal(t, int64(1+8), regs.line) // line starts at 1; the opcode adds 8
}

func TestLineSequenceTermination(t *testing.T) {
	// scenario 6 from spec.md §8: header followed by one extended
	// end_sequence opcode, by itself.
	header := buildLineHeaderV4(t, 1, -1, 2, 1, 1)
	body := []uint8{0x00, 0x01, byte(LineExtEndSequence)}
	data := append(header, body...)
	binary.LittleEndian.PutUint32(data[0:4], uint32(len(data)-4)) // unit_length covers the opcodes

	prog, err := ParseLineProgram(data, binary.LittleEndian, 8, "", nil)
	require.NoError(t, err)
	require.Len(t, prog.Samples, 1)
	require.Equal(t, int64(0), prog.Samples[0].Line)
	require.True(t, prog.Samples[0].EndSequence)
}

func TestLineProgramCopyAndAdvance(t *testing.T) {
	header := buildLineHeaderV4(t, 1, -1, 2, 1, 1)
	body := []uint8{
		LineOpAdvancePC, 0x04, // uleb128 4
		LineOpAdvanceLine, 0x02, // sleb128 +2
		LineOpCopy,
		0x00, 0x01, byte(LineExtEndSequence),
	}
	data := append(header, body...)
	binary.LittleEndian.PutUint32(data[0:4], uint32(len(data)-4)) // unit_length covers the opcodes

	prog, err := ParseLineProgram(data, binary.LittleEndian, 8, "", nil)
	require.NoError(t, err)
	require.Len(t, prog.Samples, 2)
	require.Equal(t, uint64(4), prog.Samples[0].Address)
	require.Equal(t, int64(3), prog.Samples[0].Line)
}

func TestLineProgramHeaderRejectsZeroMinInstructionLength(t *testing.T) {
	header := buildLineHeaderV4(t, 0, -1, 2, 1, 1)
	_, err := ParseLineProgram(header, binary.LittleEndian, 8, "", nil)
	require.ErrorIs(t, err, ErrInvariantViolation)
}

func TestLineProgramHeaderRejectsZeroLineRange(t *testing.T) {
	header := buildLineHeaderV4(t, 1, -1, 0, 1, 1)
	_, err := ParseLineProgram(header, binary.LittleEndian, 8, "", nil)
	require.ErrorIs(t, err, ErrInvariantViolation)
}

func TestLineProgramLegacyFileTable(t *testing.T) {
	dirs := [][]byte{[]byte("/usr/include")}
	files := []legacyFileEntry{{name: "main.c", dirIndex: 0}}
	header := buildLineHeaderV4WithTables(t, 1, -1, 2, 1, 1, dirs, files)
	body := []uint8{0x00, 0x01, byte(LineExtEndSequence)}
	data := append(header, body...)
	binary.LittleEndian.PutUint32(data[0:4], uint32(len(data)-4)) // unit_length covers the opcodes

	prog, err := ParseLineProgram(data, binary.LittleEndian, 8, "/home/build", nil)
	require.NoError(t, err)
	require.Len(t, prog.Header.Files, 1)
	require.Equal(t, "main.c", prog.Header.Files[0].Name)
}

// -- test fixture builders --

func buildLineHeaderV4(t *testing.T, minInst uint8, lineBase int8, lineRange, maxOps, defaultIsStmt uint8) []uint8 {
	t.Helper()
	return buildLineHeaderV4WithTables(t, minInst, lineBase, lineRange, maxOps, defaultIsStmt, nil, nil)
}

type legacyFileEntry struct {
	name     string
	dirIndex uint64
}

func buildLineHeaderV4WithTables(t *testing.T, minInst uint8, lineBase int8, lineRange, maxOps, defaultIsStmt uint8, dirs [][]byte, files []legacyFileEntry) []uint8 {
	t.Helper()

	var rest []uint8
	rest = append(rest, minInst, maxOps, defaultIsStmt, uint8(lineBase), lineRange, 13)
	// opcode_base-1 == 12 standard opcode lengths (real DWARF4 values)
	rest = append(rest, 0, 1, 1, 1, 1, 0, 0, 0, 1, 0, 0, 1)

	for _, d := range dirs {
		rest = append(rest, d...)
		rest = append(rest, 0)
	}
	rest = append(rest, 0) // end of directory table

	for _, f := range files {
		rest = append(rest, []byte(f.name)...)
		rest = append(rest, 0)
		rest = appendULEB128(rest, f.dirIndex)
		rest = appendULEB128(rest, 0)
		rest = appendULEB128(rest, 0)
	}
	rest = append(rest, 0) // end of file table

	headerLength := len(rest)

	var afterVersion []uint8
	afterVersion = append(afterVersion, 4, 0) // version 4, little endian
	afterVersion = appendU32(afterVersion, uint32(headerLength))
	afterVersion = append(afterVersion, rest...)

	unitLength := len(afterVersion)

	var out []uint8
	out = appendU32(out, uint32(unitLength))
	out = append(out, afterVersion...)
	return out
}

func appendU32(b []uint8, v uint32) []uint8 {
	return append(b, uint8(v), uint8(v>>8), uint8(v>>16), uint8(v>>24))
}

func appendULEB128(b []uint8, v uint64) []uint8 {
	for {
		c := uint8(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		b = append(b, c)
		if v == 0 {
			return b
		}
	}
}

