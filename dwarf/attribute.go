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

// AttrClass is the decoded kind of an attribute value — the union spec.md
// §3 describes. the Form that produced a value is always retained
// alongside its Class so a consumer never needs to re-derive the class
// from the form table itself.
type AttrClass int

const (
	ClassAddress AttrClass = iota
	ClassBlock
	ClassConstant
	ClassFlag
	ClassReference
	ClassString
	ClassLocListPtr
	ClassRangeListPtr
	ClassLinePtr
	ClassMacPtr
	ClassExprLoc
)

func (c AttrClass) String() string {
	switch c {
	case ClassAddress:
		return "address"
	case ClassBlock:
		return "block"
	case ClassConstant:
		return "constant"
	case ClassFlag:
		return "flag"
	case ClassReference:
		return "reference"
	case ClassString:
		return "string"
	case ClassLocListPtr:
		return "loclistptr"
	case ClassRangeListPtr:
		return "rangelistptr"
	case ClassLinePtr:
		return "lineptr"
	case ClassMacPtr:
		return "macptr"
	case ClassExprLoc:
		return "exprloc"
	}
	return "unknown"
}

// AttrValue is one decoded attribute value. only the fields relevant to
// Class are meaningful; §3 Invariant: "the kind matches the form per the
// DWARF form-class table."
type AttrValue struct {
	Name Attr
	Form Form
	Class AttrClass

	Addr uint64 // ClassAddress

	Block []uint8 // ClassBlock, ClassExprLoc (a defensive copy, never a
	// borrow into the section's original bytes — §3 Ownership)

	// ClassConstant: Signed selects which of Uint/Int is meaningful.
	// data16 (a 128-bit constant) fills both Uint (low 64 bits) and High
	// (high 64 bits) and sets Is128 — spec.md §3's "128-bit pair".
	Uint   uint64
	Int    int64
	High   uint64
	Signed bool
	Is128  bool

	Flag bool // ClassFlag

	// ClassReference: an absolute .debug_info offset, already adjusted by
	// the containing unit's start where the form is unit-relative
	// (ref1/2/4/8/ref_udata). ref_sig8 instead fills Signature.
	Ref       uint64
	Signature uint64 // DW_FORM_ref_sig8: a type-unit signature, not an offset

	// ClassString: either the inline string (form "string") or, when the
	// form is an indirection form (strx..strx4), the table index — the
	// decoder records the index and leaves resolution to a later pass that
	// has .debug_str_offsets, per spec.md §4.4 "resolution is deferred".
	Str         string
	StrIndex    uint64
	HasStrIndex bool

	// strx/addrx share the same deferred-index shape; AddrIndex is set
	// when Form is one of addrx/addrx1..4.
	AddrIndex    uint64
	HasAddrIndex bool

	// ClassLocListPtr/ClassRangeListPtr/ClassLinePtr/ClassMacPtr: a section
	// offset (sec_offset family) or, for loclistx/rnglistx, a table index
	// (carried in Uint with HasIndex set).
	SecOffset uint64
	HasIndex  bool
}

// attrContext carries everything the attribute parser needs beyond the
// attribute specification itself: the encoding of the containing
// compilation unit (or line-program header, for v5 entry-format decoding)
// plus the string-table bytes used to resolve DW_FORM_strp inline.
type attrContext struct {
	addressSize int
	format64    bool
	version     int
	unitStart   uint64
	order       binary.ByteOrder
	debugStr    []uint8
}

// decodeAttribute decodes one attribute value per spec.md §4.4's
// form-dispatch table. c must be positioned at the first byte of the
// attribute's encoding.
func decodeAttribute(c *cursor, spec AttrSpec, ctx attrContext) (AttrValue, error) {
	v := AttrValue{Name: spec.Name, Form: spec.Form}

	switch spec.Form {
	case FormAddr:
		addr, err := c.address(ctx.addressSize)
		if err != nil {
			return v, err
		}
		v.Class = ClassAddress
		v.Addr = addr

	case FormData1:
		b, err := c.u8()
		if err != nil {
			return v, err
		}
		v.Class = ClassConstant
		v.Uint = uint64(b)

	case FormData2:
		x, err := c.u16()
		if err != nil {
			return v, err
		}
		v.Class = ClassConstant
		v.Uint = uint64(x)

	case FormData4:
		x, err := c.u32()
		if err != nil {
			return v, err
		}
		v.Class = ClassConstant
		v.Uint = uint64(x)

	case FormData8:
		x, err := c.u64()
		if err != nil {
			return v, err
		}
		v.Class = ClassConstant
		v.Uint = x

	case FormData16:
		hi, err := c.u64()
		if err != nil {
			return v, err
		}
		lo, err := c.u64()
		if err != nil {
			return v, err
		}
		v.Class = ClassConstant
		v.Is128 = true
		v.High = hi
		v.Uint = lo

	case FormSdata:
		x, err := c.sleb128()
		if err != nil {
			return v, err
		}
		v.Class = ClassConstant
		v.Signed = true
		v.Int = x

	case FormUdata:
		x, err := c.uleb128()
		if err != nil {
			return v, err
		}
		v.Class = ClassConstant
		v.Uint = x

	case FormBlock1:
		n, err := c.u8()
		if err != nil {
			return v, err
		}
		block, err := c.bytes(int(n))
		if err != nil {
			return v, err
		}
		v.Class = ClassBlock
		v.Block = block

	case FormBlock2:
		n, err := c.u16()
		if err != nil {
			return v, err
		}
		block, err := c.bytes(int(n))
		if err != nil {
			return v, err
		}
		v.Class = ClassBlock
		v.Block = block

	case FormBlock4:
		n, err := c.u32()
		if err != nil {
			return v, err
		}
		block, err := c.bytes(int(n))
		if err != nil {
			return v, err
		}
		v.Class = ClassBlock
		v.Block = block

	case FormBlock:
		n, err := c.uleb128()
		if err != nil {
			return v, err
		}
		block, err := c.bytes(int(n))
		if err != nil {
			return v, err
		}
		v.Class = ClassBlock
		v.Block = block

	case FormExprloc:
		n, err := c.uleb128()
		if err != nil {
			return v, err
		}
		block, err := c.bytes(int(n))
		if err != nil {
			return v, err
		}
		v.Class = ClassExprLoc
		v.Block = block

	case FormString:
		s, err := c.cstring()
		if err != nil {
			return v, err
		}
		if len(s) == 0 {
			return v, fmt.Errorf("dwarf: %w: empty inline string", ErrInvariantViolation)
		}
		v.Class = ClassString
		v.Str = s

	case FormStrp:
		off, err := c.sectionOffset(ctx.format64)
		if err != nil {
			return v, err
		}
		v.Class = ClassString
		v.SecOffset = off
		if off < uint64(len(ctx.debugStr)) {
			v.Str = readCStringAt(ctx.debugStr, off)
		}

	case FormLineStrp, FormStrpSup:
		off, err := c.sectionOffset(ctx.format64)
		if err != nil {
			return v, err
		}
		v.Class = ClassString
		v.SecOffset = off

	case FormFlag:
		b, err := c.u8()
		if err != nil {
			return v, err
		}
		v.Class = ClassFlag
		v.Flag = b != 0

	case FormFlagPresent:
		v.Class = ClassFlag
		v.Flag = true

	case FormRefAddr:
		off, err := c.sectionOffset(ctx.format64)
		if err != nil {
			return v, err
		}
		v.Class = ClassReference
		v.Ref = off

	case FormRef1:
		b, err := c.u8()
		if err != nil {
			return v, err
		}
		v.Class = ClassReference
		v.Ref = ctx.unitStart + uint64(b)

	case FormRef2:
		x, err := c.u16()
		if err != nil {
			return v, err
		}
		v.Class = ClassReference
		v.Ref = ctx.unitStart + uint64(x)

	case FormRef4:
		x, err := c.u32()
		if err != nil {
			return v, err
		}
		v.Class = ClassReference
		v.Ref = ctx.unitStart + uint64(x)

	case FormRef8:
		x, err := c.u64()
		if err != nil {
			return v, err
		}
		v.Class = ClassReference
		v.Ref = ctx.unitStart + x

	case FormRefUdata:
		x, err := c.uleb128()
		if err != nil {
			return v, err
		}
		v.Class = ClassReference
		v.Ref = ctx.unitStart + x

	case FormRefSup4:
		x, err := c.u32()
		if err != nil {
			return v, err
		}
		v.Class = ClassReference
		v.Ref = uint64(x)

	case FormRefSup8:
		x, err := c.u64()
		if err != nil {
			return v, err
		}
		v.Class = ClassReference
		v.Ref = x

	case FormRefSig8:
		// spec.md §9 open question: the originating tool returns a
		// nullable slot on read failure here, unlike every other
		// reference form. this decoder propagates the same error as its
		// siblings instead.
		x, err := c.u64()
		if err != nil {
			return v, err
		}
		v.Class = ClassReference
		v.Signature = x

	case FormIndirect:
		formCode, err := c.uleb128()
		if err != nil {
			return v, err
		}
		return decodeAttribute(c, AttrSpec{Name: spec.Name, Form: Form(formCode)}, ctx)

	case FormSecOffset:
		off, err := c.sectionOffset(ctx.format64)
		if err != nil {
			return v, err
		}
		v.Class = classForSecOffset(spec.Name)
		v.SecOffset = off

	case FormLoclistx:
		x, err := c.uleb128()
		if err != nil {
			return v, err
		}
		v.Class = ClassLocListPtr
		v.Uint = x
		v.HasIndex = true

	case FormRnglistx:
		x, err := c.uleb128()
		if err != nil {
			return v, err
		}
		v.Class = ClassRangeListPtr
		v.Uint = x
		v.HasIndex = true

	case FormImplicitConst:
		v.Class = ClassConstant
		v.Signed = true
		v.Int = spec.ImplicitConstant

	case FormStrx:
		// spec.md §9 open question: the originating tool leaves this form
		// unset (index unread). this decoder reads the ULEB128 index, as
		// a conforming implementation must.
		x, err := c.uleb128()
		if err != nil {
			return v, err
		}
		v.Class = ClassString
		v.StrIndex = x
		v.HasStrIndex = true

	case FormStrx1:
		x, err := c.u8()
		if err != nil {
			return v, err
		}
		v.Class = ClassString
		v.StrIndex = uint64(x)
		v.HasStrIndex = true

	case FormStrx2:
		x, err := c.u16()
		if err != nil {
			return v, err
		}
		v.Class = ClassString
		v.StrIndex = uint64(x)
		v.HasStrIndex = true

	case FormStrx3:
		// spec.md §9 open question: decode the 3-byte index rather than
		// skipping it.
		x, err := c.u24()
		if err != nil {
			return v, err
		}
		v.Class = ClassString
		v.StrIndex = uint64(x)
		v.HasStrIndex = true

	case FormStrx4:
		x, err := c.u32()
		if err != nil {
			return v, err
		}
		v.Class = ClassString
		v.StrIndex = uint64(x)
		v.HasStrIndex = true

	case FormAddrx:
		x, err := c.uleb128()
		if err != nil {
			return v, err
		}
		v.Class = ClassAddress
		v.AddrIndex = x
		v.HasAddrIndex = true

	case FormAddrx1:
		x, err := c.u8()
		if err != nil {
			return v, err
		}
		v.Class = ClassAddress
		v.AddrIndex = uint64(x)
		v.HasAddrIndex = true

	case FormAddrx2:
		x, err := c.u16()
		if err != nil {
			return v, err
		}
		v.Class = ClassAddress
		v.AddrIndex = uint64(x)
		v.HasAddrIndex = true

	case FormAddrx3:
		x, err := c.u24()
		if err != nil {
			return v, err
		}
		v.Class = ClassAddress
		v.AddrIndex = uint64(x)
		v.HasAddrIndex = true

	case FormAddrx4:
		x, err := c.u32()
		if err != nil {
			return v, err
		}
		v.Class = ClassAddress
		v.AddrIndex = uint64(x)
		v.HasAddrIndex = true

	default:
		return v, fmt.Errorf("%w: %#x", ErrUnknownForm, uint32(spec.Form))
	}

	return v, nil
}

// classForSecOffset resolves which pointer class a DW_FORM_sec_offset
// value has, which depends on the attribute it's attached to (the form
// itself is ambiguous — see the DWARF5 Standard §7.5.5).
func classForSecOffset(name Attr) AttrClass {
	switch name {
	case AttrLocation, AttrStringLength, AttrReturnAddr, AttrDataMemberLoc,
		AttrFrameBase, AttrSegment, AttrStaticLink, AttrUseLocation,
		AttrVtableElemLoc, AttrLoclistsBase:
		return ClassLocListPtr
	case AttrRanges, AttrStartScope, AttrRnglistsBase:
		return ClassRangeListPtr
	case AttrStmtList:
		return ClassLinePtr
	case AttrMacroInfo, AttrMacros:
		return ClassMacPtr
	default:
		return ClassLocListPtr
	}
}

// readCStringAt reads a null-terminated string out of a string-table
// buffer (.debug_str / .debug_line_str) at the given offset, copying it
// (§3 Ownership: attribute values never borrow into the section's
// original bytes).
func readCStringAt(table []uint8, offset uint64) string {
	end := offset
	for end < uint64(len(table)) && table[end] != 0 {
		end++
	}
	return string(table[offset:end])
}
