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
	"debug/elf"
	"encoding/binary"
	"strings"
)

// ELFSectionProvider is a SectionProvider backed by a real elf.File. It is
// the concrete, swappable host adapter spec.md §6 describes as an external
// collaborator, not part of the decoder's core.
type ELFSectionProvider struct {
	ef *elf.File
}

// NewELFSectionProvider wraps an already-open elf.File.
func NewELFSectionProvider(ef *elf.File) *ELFSectionProvider {
	return &ELFSectionProvider{ef: ef}
}

// OpenELFSectionProvider opens path as an ELF file and wraps it.
func OpenELFSectionProvider(path string) (*ELFSectionProvider, error) {
	ef, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	return &ELFSectionProvider{ef: ef}, nil
}

// Section returns the bytes of the first section whose name contains
// fragment, matched with or without a leading dot (spec.md §6: "Section
// names may appear with or without a leading dot; lookup is by substring
// containment"). An exact name match (".debug_line" for fragment
// "debug_line") is preferred over a looser substring match, so that a
// fragment naming one section isn't shadowed by another section whose name
// happens to contain it as a prefix (".debug_line_str" contains
// "debug_line").
func (p *ELFSectionProvider) Section(fragment string) ([]uint8, bool) {
	needle := strings.TrimPrefix(fragment, ".")

	var loose *elf.Section
	for _, s := range p.ef.Sections {
		name := strings.TrimPrefix(s.Name, ".")
		if name == needle {
			return sectionData(s)
		}
		if loose == nil && strings.Contains(name, needle) {
			loose = s
		}
	}
	if loose != nil {
		return sectionData(loose)
	}
	return nil, false
}

func sectionData(s *elf.Section) ([]uint8, bool) {
	d, err := s.Data()
	if err != nil {
		return nil, false
	}
	return d, true
}

// ByteOrder reports the ELF file's endianness.
func (p *ELFSectionProvider) ByteOrder() binary.ByteOrder {
	return p.ef.ByteOrder
}

// AddressSize reports the ELF file's address width in bytes, used as the
// fallback address size for DWARF versions below 5.
func (p *ELFSectionProvider) AddressSize() int {
	switch p.ef.Class {
	case elf.ELFCLASS64:
		return 8
	case elf.ELFCLASS32:
		return 4
	default:
		return 4
	}
}

// Close releases the underlying ELF file.
func (p *ELFSectionProvider) Close() error {
	return p.ef.Close()
}
