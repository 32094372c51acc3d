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

// DIE is one Debugging Information Entry: a tag, a nesting depth within its
// compilation unit's tree, and the attribute values its abbreviation
// declaration named. a DIE with Null set is the sibling-list terminator
// the DWARF encoding threads through the tree; it carries no tag or attrs.
type DIE struct {
	Offset      uint64
	Tag         Tag
	HasChildren bool
	Depth       int
	Null        bool
	Attrs       []AttrValue
}

// Attr returns the decoded value of the named attribute on this DIE, if
// present.
func (d DIE) Attr(name Attr) (AttrValue, bool) {
	for _, a := range d.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return AttrValue{}, false
}

// CompilationUnit is one parsed unit header plus its flattened DIE tree
// (depth-first, matching section offset order — the shape spec.md §4.3
// describes; a consumer walking Depth transitions reconstructs the tree).
type CompilationUnit struct {
	Offset       uint64 // section offset of the unit's initial length field
	Length       uint64 // unit_length value (bytes following the length field)
	Format64     bool
	Version      uint16
	UnitType     UnitType
	AddressSize  uint8
	AbbrevOffset uint64
	HeaderSize   int // bytes from Offset to the first DIE's abbreviation code

	HasDWOID         bool
	DWOID            uint64
	HasTypeSignature bool
	TypeSignature    uint64
	HasTypeOffset    bool
	TypeOffset       uint64

	DIEs []DIE
}

// Root returns the unit's first DIE (its compile_unit/partial_unit/
// type_unit entry), if the unit has at least one.
func (cu *CompilationUnit) Root() (DIE, bool) {
	if len(cu.DIEs) == 0 {
		return DIE{}, false
	}
	return cu.DIEs[0], true
}

// ParseCompilationUnits decodes .debug_info (spec.md §4.3): every unit
// header followed by its DIE tree, back to back until the section is
// exhausted. abbrevs must already hold the declarations from the matching
// .debug_abbrev section; debugStr resolves DW_FORM_strp inline.
//
// A unit whose header or DIE tree cannot be decoded aborts the whole
// section: once a unit's framing is suspect there is no reliable way to
// locate the next unit's start, so units already parsed are returned
// alongside the error rather than guessing at a resync point.
func ParseCompilationUnits(data []uint8, order binary.ByteOrder, abbrevs *AbbrevTable, addressSize int, debugStr []uint8) ([]*CompilationUnit, map[uint64]string, error) {
	var units []*CompilationUnit
	lineOffsetToCompDir := make(map[uint64]string)

	c := newCursor(data, order)
	for !c.done() {
		cu, err := parseUnitHeader(c, addressSize)
		if err != nil {
			return units, lineOffsetToCompDir, err
		}

		ctx := attrContext{
			addressSize: int(cu.AddressSize),
			format64:    cu.Format64,
			version:     int(cu.Version),
			unitStart:   cu.Offset,
			order:       order,
			debugStr:    debugStr,
		}

		dies, err := parseDIETree(c, abbrevs, cu.AbbrevOffset, ctx)
		cu.DIEs = dies
		units = append(units, cu)
		if err != nil {
			return units, lineOffsetToCompDir, err
		}

		if root, ok := cu.Root(); ok {
			compDir, hasDir := root.Attr(AttrCompDir)
			lineOff, hasLine := root.Attr(AttrStmtList)
			if hasDir && hasLine && compDir.Class == ClassString {
				lineOffsetToCompDir[lineOff.SecOffset] = compDir.Str
			}
		}
	}

	return units, lineOffsetToCompDir, nil
}

// parseUnitHeader reads one compilation-unit header starting at the
// cursor's current position (spec.md §4.3, first paragraph).
func parseUnitHeader(c *cursor, fallbackAddressSize int) (*CompilationUnit, error) {
	start := uint64(c.offset())

	length, format64, err := c.initialLength()
	if err != nil {
		return nil, err
	}

	version, err := c.u16()
	if err != nil {
		return nil, err
	}
	if version < 2 || version > 5 {
		return nil, fmt.Errorf("%w: DWARF version %d", ErrUnsupportedVersion, version)
	}

	cu := &CompilationUnit{
		Offset:   start,
		Length:   length,
		Format64: format64,
		Version:  version,
	}

	if version >= 5 {
		ut, err := c.u8()
		if err != nil {
			return nil, err
		}
		cu.UnitType = UnitType(ut)

		addrSize, err := c.u8()
		if err != nil {
			return nil, err
		}
		cu.AddressSize = addrSize

		abbrevOff, err := c.sectionOffset(format64)
		if err != nil {
			return nil, err
		}
		cu.AbbrevOffset = abbrevOff
	} else {
		cu.UnitType = UnitTypeCompile

		abbrevOff, err := c.sectionOffset(format64)
		if err != nil {
			return nil, err
		}
		cu.AbbrevOffset = abbrevOff

		addrSize, err := c.u8()
		if err != nil {
			return nil, err
		}
		if addrSize == 0 {
			addrSize = uint8(fallbackAddressSize)
		}
		cu.AddressSize = addrSize
	}

	switch cu.UnitType {
	case UnitTypeSkeleton, UnitTypeSplitCompile:
		dwoID, err := c.u64()
		if err != nil {
			return nil, err
		}
		cu.HasDWOID = true
		cu.DWOID = dwoID

	case UnitTypeType, UnitTypeSplitType:
		sig, err := c.u64()
		if err != nil {
			return nil, err
		}
		cu.HasTypeSignature = true
		cu.TypeSignature = sig

		typeOff, err := c.sectionOffset(format64)
		if err != nil {
			return nil, err
		}
		cu.HasTypeOffset = true
		cu.TypeOffset = typeOff
	}

	cu.HeaderSize = c.offset() - int(start)
	return cu, nil
}

// parseDIETree reads the DIE body following a unit header (spec.md §4.3,
// "DIE body"). setOffset is the .debug_abbrev offset the unit header named;
// every abbreviation code in the tree is looked up within that one set.
func parseDIETree(c *cursor, abbrevs *AbbrevTable, setOffset uint64, ctx attrContext) ([]DIE, error) {
	var dies []DIE
	depth := 0

	for {
		dieOffset := uint64(c.offset())

		code, err := c.uleb128()
		if err != nil {
			return dies, err
		}

		if code == 0 {
			dies = append(dies, DIE{Offset: dieOffset, Null: true, Depth: depth - 1})
			depth--
			if depth <= 0 {
				return dies, nil
			}
			continue
		}

		decl, ok := abbrevs.Lookup(setOffset, code)
		if !ok {
			return dies, fmt.Errorf("%w: code %d in set at offset %#x", ErrMissingAbbreviation, code, setOffset)
		}

		die := DIE{
			Offset:      dieOffset,
			Tag:         decl.Tag,
			HasChildren: decl.HasChildren,
			Depth:       depth,
		}

		for _, spec := range decl.Attrs {
			val, err := decodeAttribute(c, spec, ctx)
			if err != nil {
				die.Attrs = append(die.Attrs, val)
				dies = append(dies, die)
				return dies, err
			}
			die.Attrs = append(die.Attrs, val)
		}

		dies = append(dies, die)

		if decl.HasChildren {
			depth++
		} else if depth == 0 {
			return dies, nil
		}
	}
}
