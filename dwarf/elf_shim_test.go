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
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildMinimalELF64 assembles a tiny little-endian ELF64 object in memory
// with a null section, a .shstrtab, and one section per name in
// sectionNames holding the matching bytes from sectionData, so elf.NewFile
// can open it without touching disk.
func buildMinimalELF64(t *testing.T, sectionNames []string, sectionData [][]uint8) []uint8 {
	t.Helper()
	require.Equal(t, len(sectionNames), len(sectionData))

	const ehsize = 64
	const shentsize = 64

	// Section name string table: leading NUL, then each name NUL-terminated.
	var shstrtab []uint8
	shstrtab = append(shstrtab, 0)
	nameOffsets := make([]uint32, len(sectionNames))
	for i, n := range sectionNames {
		nameOffsets[i] = uint32(len(shstrtab))
		shstrtab = append(shstrtab, []uint8(n)...)
		shstrtab = append(shstrtab, 0)
	}

	// Section 0 is always the null section; then one per entry; then shstrtab.
	numSections := 1 + len(sectionNames) + 1
	shstrndx := uint16(numSections - 1)

	// Lay out section payloads right after the header.
	offset := uint64(ehsize)
	payloadOffsets := make([]uint64, len(sectionNames))
	for i, d := range sectionData {
		payloadOffsets[i] = offset
		offset += uint64(len(d))
	}
	shstrtabOffset := offset
	offset += uint64(len(shstrtab))
	shoff := offset

	var buf bytes.Buffer

	ident := make([]uint8, 16)
	copy(ident, elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	buf.Write(ident)

	write16 := func(v uint16) { binary.Write(&buf, binary.LittleEndian, v) }
	write32 := func(v uint32) { binary.Write(&buf, binary.LittleEndian, v) }
	write64 := func(v uint64) { binary.Write(&buf, binary.LittleEndian, v) }

	write16(uint16(elf.ET_EXEC))  // e_type
	write16(uint16(elf.EM_X86_64)) // e_machine
	write32(uint32(elf.EV_CURRENT))
	write64(0) // e_entry
	write64(0) // e_phoff
	write64(shoff)
	write32(0) // e_flags
	write16(ehsize)
	write16(0) // e_phentsize
	write16(0) // e_phnum
	write16(shentsize)
	write16(uint16(numSections))
	write16(shstrndx)

	require.Equal(t, ehsize, buf.Len())

	for _, d := range sectionData {
		buf.Write(d)
	}
	buf.Write(shstrtab)

	writeSectionHeader := func(nameOff uint32, typ elf.SectionType, off, size uint64) {
		write32(nameOff)
		write32(uint32(typ))
		write64(0) // flags
		write64(0) // addr
		write64(off)
		write64(size)
		write32(0) // link
		write32(0) // info
		write64(1) // addralign
		write64(0) // entsize
	}

	writeSectionHeader(0, elf.SHT_NULL, 0, 0)
	for i := range sectionNames {
		writeSectionHeader(nameOffsets[i], elf.SHT_PROGBITS, payloadOffsets[i], uint64(len(sectionData[i])))
	}
	writeSectionHeader(0, elf.SHT_STRTAB, shstrtabOffset, uint64(len(shstrtab)))

	return buf.Bytes()
}

func TestELFSectionProviderExactNamePreferredOverSubstring(t *testing.T) {
	raw := buildMinimalELF64(t, []string{".debug_line_str", ".debug_line"}, [][]uint8{{0xaa}, {0xbb}})

	ef, err := elf.NewFile(bytes.NewReader(raw))
	require.NoError(t, err)

	p := NewELFSectionProvider(ef)

	data, ok := p.Section("debug_line")
	require.True(t, ok)
	require.Equal(t, []uint8{0xbb}, data)

	data, ok = p.Section("debug_line_str")
	require.True(t, ok)
	require.Equal(t, []uint8{0xaa}, data)
}

func TestELFSectionProviderMissingSection(t *testing.T) {
	raw := buildMinimalELF64(t, []string{".debug_info"}, [][]uint8{{0x01}})
	ef, err := elf.NewFile(bytes.NewReader(raw))
	require.NoError(t, err)

	p := NewELFSectionProvider(ef)

	_, ok := p.Section("debug_aranges")
	require.False(t, ok)
}

func TestELFSectionProviderByteOrderAndAddressSize(t *testing.T) {
	raw := buildMinimalELF64(t, []string{".debug_info"}, [][]uint8{{0x01}})
	ef, err := elf.NewFile(bytes.NewReader(raw))
	require.NoError(t, err)

	p := NewELFSectionProvider(ef)
	require.Equal(t, binary.LittleEndian, p.ByteOrder())
	require.Equal(t, 8, p.AddressSize())
}
