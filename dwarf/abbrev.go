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

// AttrSpec is one (name, form) pair of an abbreviation declaration. when
// Form is FormImplicitConst, ImplicitConstant carries the value the
// specification stored inline — no bytes are read from .debug_info for it.
type AttrSpec struct {
	Name             Attr
	Form             Form
	ImplicitConstant int64
}

// AbbrevDecl is one template shared by every DIE that names its Code in a
// compilation unit using this declaration's abbreviation set. spec.md §3.
type AbbrevDecl struct {
	// SetOffset is the section offset of the first declaration of the set
	// this declaration belongs to — the value a compilation-unit header's
	// abbreviation offset points to.
	SetOffset uint64

	// Offset is this declaration's own section offset (where its code
	// ULEB128 begins).
	Offset uint64

	Code        uint64
	Tag         Tag
	HasChildren bool
	Attrs       []AttrSpec
}

// AbbrevTable is the decoded form of .debug_abbrev: every declaration
// across every abbreviation set in the section, plus the indexes needed to
// resolve a (set offset, code) pair to a declaration in O(1). §3
// "Abbreviation set / dictionary".
type AbbrevTable struct {
	Decls []AbbrevDecl

	// bySet maps a set's starting offset to code -> index into Decls.
	bySet map[uint64]map[uint64]int

	// byOffset maps a declaration's own offset to its index into Decls —
	// the "declaration-by-section-offset" index spec.md §4.2 names.
	byOffset map[uint64]int
}

// Lookup resolves the declaration with the given code in the abbreviation
// set starting at setOffset.
func (t *AbbrevTable) Lookup(setOffset, code uint64) (AbbrevDecl, bool) {
	set, ok := t.bySet[setOffset]
	if !ok {
		return AbbrevDecl{}, false
	}
	idx, ok := set[code]
	if !ok {
		return AbbrevDecl{}, false
	}
	return t.Decls[idx], true
}

// ByOffset resolves the declaration whose own section offset is offset.
func (t *AbbrevTable) ByOffset(offset uint64) (AbbrevDecl, bool) {
	idx, ok := t.byOffset[offset]
	if !ok {
		return AbbrevDecl{}, false
	}
	return t.Decls[idx], true
}

// ParseAbbrevTable decodes .debug_abbrev (spec.md §4.2). it reads until the
// cursor is exhausted; a code of 0 is a within-set separator (and starts a
// new set at the following offset). any read error aborts the entire
// section, but declarations already parsed remain valid and are returned
// alongside the error.
func ParseAbbrevTable(data []uint8) (*AbbrevTable, error) {
	t := &AbbrevTable{
		bySet:    make(map[uint64]map[uint64]int),
		byOffset: make(map[uint64]int),
	}

	// .debug_abbrev has no byte-order-sensitive fields beyond the LEB128
	// integers, which are endian-agnostic, so any binary.ByteOrder works.
	c := newCursor(data, binary.LittleEndian)

	setOffset := uint64(0)
	atSetStart := true

	for !c.done() {
		declOffset := uint64(c.offset())

		code, err := c.uleb128()
		if err != nil {
			return t, err
		}

		if code == 0 {
			// within-set separator: the next declaration, if any, starts a
			// new set.
			atSetStart = true
			continue
		}

		if atSetStart {
			setOffset = declOffset
			atSetStart = false
		}

		tag, err := c.uleb128()
		if err != nil {
			return t, err
		}

		hasChildrenByte, err := c.u8()
		if err != nil {
			return t, err
		}
		if hasChildrenByte != 0 && hasChildrenByte != 1 {
			return t, ErrInvariantViolation
		}
		hasChildren := hasChildrenByte == 1

		var attrs []AttrSpec
		for {
			name, err := c.uleb128()
			if err != nil {
				return t, err
			}
			form, err := c.uleb128()
			if err != nil {
				return t, err
			}
			if name == 0 && form == 0 {
				break
			}

			spec := AttrSpec{Name: Attr(name), Form: Form(form)}
			if Form(form) == FormImplicitConst {
				v, err := c.sleb128()
				if err != nil {
					return t, err
				}
				spec.ImplicitConstant = v
			}
			attrs = append(attrs, spec)
		}

		decl := AbbrevDecl{
			SetOffset:   setOffset,
			Offset:      declOffset,
			Code:        code,
			Tag:         Tag(tag),
			HasChildren: hasChildren,
			Attrs:       attrs,
		}

		idx := len(t.Decls)
		t.Decls = append(t.Decls, decl)
		t.byOffset[declOffset] = idx

		if _, ok := t.bySet[setOffset]; !ok {
			t.bySet[setOffset] = make(map[uint64]int)
		}
		t.bySet[setOffset][code] = idx
	}

	return t, nil
}
