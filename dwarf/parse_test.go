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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeSectionProvider is an in-memory SectionProvider for exercising Parse
// without an ELF file (ELFSectionProvider's own substring-matching shape
// is covered directly in elf_shim_test.go).
type fakeSectionProvider struct {
	sections map[string][]uint8
	order    binary.ByteOrder
	addrSize int
}

func (f *fakeSectionProvider) Section(fragment string) ([]uint8, bool) {
	if data, ok := f.sections[fragment]; ok {
		return data, true
	}
	for name, data := range f.sections {
		if strings.Contains(name, fragment) {
			return data, true
		}
	}
	return nil, false
}

func (f *fakeSectionProvider) ByteOrder() binary.ByteOrder { return f.order }
func (f *fakeSectionProvider) AddressSize() int            { return f.addrSize }

// buildParseFixture assembles a minimal but complete set of DWARF4
// sections: one compilation unit whose root DIE carries DW_AT_comp_dir and
// DW_AT_stmt_list, a matching .debug_line program with one row, one
// .debug_aranges set, and one .debug_loc list.
func buildParseFixture(t *testing.T) *fakeSectionProvider {
	t.Helper()

	var abbrev []uint8
	abbrev = append(abbrev, 0x01, byte(TagCompileUnit), 0x01) // code 1, has children
	abbrev = append(abbrev, byte(AttrCompDir), byte(FormString))
	abbrev = append(abbrev, byte(AttrStmtList), byte(FormSecOffset))
	abbrev = append(abbrev, 0x00, 0x00, 0x00) // end of attr list, end of set

	var body []uint8
	body = append(body, 0x01) // root DIE, abbrev code 1
	body = append(body, []uint8("/src")...)
	body = append(body, 0x00)
	lineOff := make([]uint8, 4)
	binary.LittleEndian.PutUint32(lineOff, 0)
	body = append(body, lineOff...)
	body = append(body, 0x00) // terminate root's (empty) child list

	info := buildUnit(4, 0, 8, body)

	line := buildLineHeaderV4(t, 1, -5, 14, 1, 1)
	line = append(line, 0x00, 0x01, byte(LineExtEndSequence))
	binary.LittleEndian.PutUint32(line[0:4], uint32(len(line)-4)) // unit_length covers the opcodes

	var aranges []uint8
	var arest []uint8
	arest = append(arest, 2, 0) // version 2
	arest = appendU32(arest, 0) // debug_info_offset
	arest = append(arest, 8, 0) // address_size 8, segment_size 0
	headerLen := 4 + len(arest)
	for headerLen%16 != 0 {
		arest = append(arest, 0)
		headerLen++
	}
	arest = appendAddr(arest, 0x1000, 8)
	arest = appendAddr(arest, 0x20, 8)
	arest = appendAddr(arest, 0, 8)
	arest = appendAddr(arest, 0, 8)
	aranges = appendU32(aranges, uint32(len(arest)))
	aranges = append(aranges, arest...)

	var loc []uint8
	loc = appendAddr(loc, 0x1000, 8)
	loc = appendAddr(loc, 0x1010, 8)
	loc = appendU16(loc, 1)
	loc = append(loc, 0x50) // reg0
	loc = appendAddr(loc, 0, 8)
	loc = appendAddr(loc, 0, 8)

	return &fakeSectionProvider{
		order:    binary.LittleEndian,
		addrSize: 8,
		sections: map[string][]uint8{
			"debug_abbrev":   abbrev,
			"debug_info":     info,
			"debug_line":     line,
			"debug_aranges":  aranges,
			"debug_loc":      loc,
			"debug_str":      nil,
			"debug_line_str": nil,
		},
	}
}

func TestParseRunsEverySubParserInOrder(t *testing.T) {
	src := buildParseFixture(t)

	result := Parse(src, DefaultOptions())

	require.NotNil(t, result.Abbrevs)
	require.Len(t, result.Units, 1)
	require.Equal(t, TagCompileUnit, result.Units[0].DIEs[0].Tag)

	require.Len(t, result.Aranges, 1)
	require.Equal(t, uint64(0x1000), result.Aranges[0].Ranges[0].Address)

	require.Len(t, result.LocLists, 1)
	require.Equal(t, uint64(0x1000), result.LocLists[0].Entries[0].Start)

	require.Len(t, result.Lines, 1)
	prog, ok := result.Lines[0]
	require.True(t, ok)
	require.NotEmpty(t, prog.Samples)
}

func TestParseHonorsDisabledFlags(t *testing.T) {
	src := buildParseFixture(t)

	result := Parse(src, Options{Flags: FlagAbbrevs, AddressSize: 8})

	require.NotNil(t, result.Abbrevs)
	require.Nil(t, result.Units)
	require.Nil(t, result.Lines)
	require.Nil(t, result.Aranges)
	require.Nil(t, result.LocLists)
}

func TestParseSkipsInfoWithoutAbbrevs(t *testing.T) {
	src := buildParseFixture(t)

	result := Parse(src, Options{Flags: FlagInfo, AddressSize: 8})

	require.Nil(t, result.Abbrevs)
	require.Nil(t, result.Units)
}

func TestParseReturnsResultOnMissingSections(t *testing.T) {
	src := &fakeSectionProvider{order: binary.LittleEndian, addrSize: 8, sections: map[string][]uint8{}}

	result := Parse(src, DefaultOptions())

	require.NotNil(t, result)
	require.Nil(t, result.Abbrevs)
	require.Nil(t, result.Units)
}
