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

// OperationKind is the decoded shape of one DWARF expression opcode — the
// union spec.md §4.8 describes. it mirrors the opcode's operand layout,
// not its evaluation semantics: this decoder never evaluates.
type OperationKind int

const (
	OpDeref OperationKind = iota
	OpDrop
	OpPick
	OpSwap
	OpRot
	OpAbs
	OpAnd
	OpDiv
	OpMinus
	OpMod
	OpMul
	OpNeg
	OpNot
	OpOr
	OpPlus
	OpPlusConstant
	OpShl
	OpShr
	OpShra
	OpXor
	OpBra
	OpEq
	OpGe
	OpGt
	OpLe
	OpLt
	OpNe
	OpSkip
	OpUnsignedConstant
	OpSignedConstant
	OpRegister
	OpRegisterOffset
	OpFrameOffset
	OpNop
	OpPushObjectAddress
	OpCall
	OpTLS
	OpCallFrameCFA
	OpPiece
	OpImplicitValue
	OpStackValue
	OpImplicitPointer
	OpEntryValue
	OpParameterRef
	OpAddress
	OpAddressIndex
	OpConstantIndex
	OpTypedLiteral
	OpConvert
	OpReinterpret
	OpWasmLocal
	OpWasmGlobal
	OpWasmStack
	OpUnsupported
)

// Operation is one decoded DWARF expression opcode. the fields populated
// depend on Kind; see the dispatch table in ParseOperation for which
// fields each opcode sets.
type Operation struct {
	Opcode uint8
	Kind   OperationKind

	Address uint64 // OpAddress

	DerefSize     uint8  // OpDeref: the explicit size, or the address size for deref/xderef
	DerefBaseType uint64 // deref_type/xderef_type
	DerefSpace    bool   // xderef family: address-space argument taken from stack

	PickIndex uint8 // OpPick (covers pick/dup/over)

	PlusConstant uint64 // OpPlusConstant

	BranchTarget int16 // OpBra, OpSkip

	UConst uint64 // OpUnsignedConstant
	SConst int64  // OpSignedConstant

	Register         uint16 // OpRegister, OpRegisterOffset
	RegisterOffset   int64  // OpRegisterOffset
	RegisterBaseType uint64 // regval_type's base-type offset

	FrameOffset int64 // OpFrameOffset (fbreg)

	CallOffset      uint64 // OpCall (call2/call4/call_ref)
	CallOffsetWidth int    // 2, 4, or 0 meaning format-width (call_ref)

	PieceSizeBits     uint64
	PieceHasBitOffset bool
	PieceBitOffset    uint64

	Block []uint8 // OpImplicitValue, OpEntryValue, OpTypedLiteral's value

	ImplicitPointerRef    uint64 // OpImplicitPointer: a reference offset
	ImplicitPointerOffset int64

	ParameterRef uint64 // OpParameterRef (GNU_parameter_ref width is fixed at 32-bit)

	AddressIndex  uint64 // OpAddressIndex
	ConstantIndex uint64 // OpConstantIndex

	BaseType uint64 // const_type/convert/reinterpret/OpTypedLiteral's base type

	WasmSubOp uint8  // OpWasmLocal/Global/Stack sub-opcode (0 local,1 global,2 stack,3 global32)
	WasmIndex uint64

	// UnsupportedReason carries a short note for OpUnsupported results
	// (reserved vendor extension ranges the decoder recognizes but does
	// not further interpret).
	UnsupportedReason string
}

const (
	opAddr      = 0x03
	opDeref     = 0x06
	opConst1u   = 0x08
	opConst1s   = 0x09
	opConst2u   = 0x0a
	opConst2s   = 0x0b
	opConst4u   = 0x0c
	opConst4s   = 0x0d
	opConst8u   = 0x0e
	opConst8s   = 0x0f
	opConstu    = 0x10
	opConsts    = 0x11
	opDup       = 0x12
	opDrop      = 0x13
	opOver      = 0x14
	opPick      = 0x15
	opSwap      = 0x16
	opRot       = 0x17
	opXderef    = 0x18
	opAbs       = 0x19
	opAnd       = 0x1a
	opDiv       = 0x1b
	opMinus     = 0x1c
	opMod       = 0x1d
	opMul       = 0x1e
	opNeg       = 0x1f
	opNot       = 0x20
	opOr        = 0x21
	opPlus      = 0x22
	opPlusUconst = 0x23
	opShl       = 0x24
	opShr       = 0x25
	opShra      = 0x26
	opXor       = 0x27
	opBra       = 0x28
	opEq        = 0x29
	opGe        = 0x2a
	opGt        = 0x2b
	opLe        = 0x2c
	opLt        = 0x2d
	opNe        = 0x2e
	opSkip      = 0x2f
	opLit0      = 0x30
	opLit31     = 0x4f
	opReg0      = 0x50
	opReg31     = 0x6f
	opBreg0     = 0x70
	opBreg31    = 0x8f
	opRegx      = 0x90
	opFbreg     = 0x91
	opBregx     = 0x92
	opPiece     = 0x93
	opDerefSize = 0x94
	opXderefSize = 0x95
	opNop       = 0x96
	opPushObjectAddress = 0x97
	opCall2     = 0x98
	opCall4     = 0x99
	opCallRef   = 0x9a
	opFormTLSAddress = 0x9b
	opCallFrameCFA = 0x9c
	opBitPiece  = 0x9d
	opImplicitValue = 0x9e
	opStackValue = 0x9f
	opImplicitPointer = 0xa0
	opAddrx     = 0xa1
	opConstx    = 0xa2
	opEntryValue = 0xa3
	opConstType = 0xa4
	opRegvalType = 0xa5
	opDerefType = 0xa6
	opXderefType = 0xa7
	opConvert   = 0xa8
	opReinterpret = 0xa9

	opLoUser = 0xe0
	opHiUser = 0xff

	opGNUPushTLSAddress  = 0xe0
	opGNUUninit          = 0xf0
	opGNUEncodedAddr     = 0xf1
	opGNUImplicitPointer = 0xf2
	opGNUEntryValue      = 0xf3
	opGNUConstType       = 0xf4
	opGNURegvalType       = 0xf5
	opGNUDerefType       = 0xf6
	opGNUConvert         = 0xf7
	opGNUReinterpret     = 0xf9
	opGNUParameterRef    = 0xfa
	opGNUAddrIndex       = 0xfb
	opGNUConstIndex      = 0xfc

	opWasmLocation = 0xed
)

// ParseOperation decodes one DWARF expression opcode starting at the
// cursor's current position (spec.md §4.8). it is pure: no evaluation
// stack is maintained and nothing outside the cursor's buffer is touched.
func ParseOperation(c *cursor, ctx attrContext) (Operation, error) {
	opcode, err := c.u8()
	if err != nil {
		return Operation{}, err
	}
	op := Operation{Opcode: opcode}

	switch {
	case opcode >= opLit0 && opcode <= opLit31:
		op.Kind = OpUnsignedConstant
		op.UConst = uint64(opcode - opLit0)
		return op, nil

	case opcode >= opReg0 && opcode <= opReg31:
		op.Kind = OpRegister
		op.Register = uint16(opcode - opReg0)
		return op, nil

	case opcode >= opBreg0 && opcode <= opBreg31:
		off, err := c.sleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpRegisterOffset
		op.Register = uint16(opcode - opBreg0)
		op.RegisterOffset = off
		return op, nil
	}

	switch opcode {
	case opAddr:
		addr, err := c.address(ctx.addressSize)
		if err != nil {
			return op, err
		}
		op.Kind = OpAddress
		op.Address = addr

	case opDeref:
		op.Kind = OpDeref
		op.DerefSize = uint8(ctx.addressSize)

	case opXderef:
		op.Kind = OpDeref
		op.DerefSize = uint8(ctx.addressSize)
		op.DerefSpace = true

	case opDerefSize:
		sz, err := c.u8()
		if err != nil {
			return op, err
		}
		op.Kind = OpDeref
		op.DerefSize = sz

	case opXderefSize:
		sz, err := c.u8()
		if err != nil {
			return op, err
		}
		op.Kind = OpDeref
		op.DerefSize = sz
		op.DerefSpace = true

	case opDerefType, opGNUDerefType:
		sz, err := c.u8()
		if err != nil {
			return op, err
		}
		bt, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpDeref
		op.DerefSize = sz
		op.DerefBaseType = bt

	case opXderefType:
		sz, err := c.u8()
		if err != nil {
			return op, err
		}
		bt, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpDeref
		op.DerefSize = sz
		op.DerefBaseType = bt
		op.DerefSpace = true

	case opConst1u:
		v, err := c.u8()
		if err != nil {
			return op, err
		}
		op.Kind = OpUnsignedConstant
		op.UConst = uint64(v)

	case opConst1s:
		v, err := c.s8()
		if err != nil {
			return op, err
		}
		op.Kind = OpSignedConstant
		op.SConst = int64(v)

	case opConst2u:
		v, err := c.u16()
		if err != nil {
			return op, err
		}
		op.Kind = OpUnsignedConstant
		op.UConst = uint64(v)

	case opConst2s:
		v, err := c.u16()
		if err != nil {
			return op, err
		}
		op.Kind = OpSignedConstant
		op.SConst = int64(int16(v))

	case opConst4u:
		v, err := c.u32()
		if err != nil {
			return op, err
		}
		op.Kind = OpUnsignedConstant
		op.UConst = uint64(v)

	case opConst4s:
		v, err := c.u32()
		if err != nil {
			return op, err
		}
		op.Kind = OpSignedConstant
		op.SConst = int64(int32(v))

	case opConst8u:
		v, err := c.u64()
		if err != nil {
			return op, err
		}
		op.Kind = OpUnsignedConstant
		op.UConst = v

	case opConst8s:
		v, err := c.u64()
		if err != nil {
			return op, err
		}
		op.Kind = OpSignedConstant
		op.SConst = int64(v)

	case opConstu:
		v, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpUnsignedConstant
		op.UConst = v

	case opConsts:
		v, err := c.sleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpSignedConstant
		op.SConst = v

	case opDup:
		op.Kind = OpPick
		op.PickIndex = 0

	case opOver:
		op.Kind = OpPick
		op.PickIndex = 1

	case opPick:
		idx, err := c.u8()
		if err != nil {
			return op, err
		}
		op.Kind = OpPick
		op.PickIndex = idx

	case opDrop:
		op.Kind = OpDrop

	case opSwap:
		op.Kind = OpSwap

	case opRot:
		op.Kind = OpRot

	case opAbs:
		op.Kind = OpAbs
	case opAnd:
		op.Kind = OpAnd
	case opDiv:
		op.Kind = OpDiv
	case opMinus:
		op.Kind = OpMinus
	case opMod:
		op.Kind = OpMod
	case opMul:
		op.Kind = OpMul
	case opNeg:
		op.Kind = OpNeg
	case opNot:
		op.Kind = OpNot
	case opOr:
		op.Kind = OpOr
	case opPlus:
		op.Kind = OpPlus

	case opPlusUconst:
		v, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpPlusConstant
		op.PlusConstant = v

	case opShl:
		op.Kind = OpShl
	case opShr:
		op.Kind = OpShr
	case opShra:
		op.Kind = OpShra
	case opXor:
		op.Kind = OpXor

	case opBra:
		v, err := c.u16()
		if err != nil {
			return op, err
		}
		op.Kind = OpBra
		op.BranchTarget = int16(v)

	case opEq:
		op.Kind = OpEq
	case opGe:
		op.Kind = OpGe
	case opGt:
		op.Kind = OpGt
	case opLe:
		op.Kind = OpLe
	case opLt:
		op.Kind = OpLt
	case opNe:
		op.Kind = OpNe

	case opSkip:
		v, err := c.u16()
		if err != nil {
			return op, err
		}
		op.Kind = OpSkip
		op.BranchTarget = int16(v)

	case opRegx:
		r, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpRegister
		op.Register = uint16(r)

	case opFbreg:
		off, err := c.sleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpFrameOffset
		op.FrameOffset = off

	case opBregx:
		r, err := c.uleb128()
		if err != nil {
			return op, err
		}
		off, err := c.sleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpRegisterOffset
		op.Register = uint16(r)
		op.RegisterOffset = off

	case opRegvalType, opGNURegvalType:
		r, err := c.uleb128()
		if err != nil {
			return op, err
		}
		bt, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpRegisterOffset
		op.Register = uint16(r)
		op.RegisterBaseType = bt

	case opPiece:
		size, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpPiece
		op.PieceSizeBits = size * 8

	case opBitPiece:
		sizeBits, err := c.uleb128()
		if err != nil {
			return op, err
		}
		bitOff, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpPiece
		op.PieceSizeBits = sizeBits
		op.PieceHasBitOffset = true
		op.PieceBitOffset = bitOff

	case opNop:
		op.Kind = OpNop

	case opPushObjectAddress:
		op.Kind = OpPushObjectAddress

	case opCall2:
		off, err := c.u16()
		if err != nil {
			return op, err
		}
		op.Kind = OpCall
		op.CallOffset = uint64(off)
		op.CallOffsetWidth = 2

	case opCall4:
		off, err := c.u32()
		if err != nil {
			return op, err
		}
		op.Kind = OpCall
		op.CallOffset = uint64(off)
		op.CallOffsetWidth = 4

	case opCallRef:
		off, err := c.sectionOffset(ctx.format64)
		if err != nil {
			return op, err
		}
		op.Kind = OpCall
		op.CallOffset = off
		op.CallOffsetWidth = 0

	case opFormTLSAddress:
		op.Kind = OpTLS

	case opCallFrameCFA:
		op.Kind = OpCallFrameCFA

	case opImplicitValue:
		n, err := c.uleb128()
		if err != nil {
			return op, err
		}
		b, err := c.bytes(int(n))
		if err != nil {
			return op, err
		}
		op.Kind = OpImplicitValue
		op.Block = b

	case opStackValue:
		op.Kind = OpStackValue

	case opImplicitPointer, opGNUImplicitPointer:
		var ref uint64
		if ctx.version <= 2 {
			ref, err = c.address(ctx.addressSize)
		} else {
			ref, err = c.sectionOffset(ctx.format64)
		}
		if err != nil {
			return op, err
		}
		byteOff, err := c.sleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpImplicitPointer
		op.ImplicitPointerRef = ref
		op.ImplicitPointerOffset = byteOff

	case opEntryValue, opGNUEntryValue:
		n, err := c.uleb128()
		if err != nil {
			return op, err
		}
		b, err := c.bytes(int(n))
		if err != nil {
			return op, err
		}
		op.Kind = OpEntryValue
		op.Block = b

	case opGNUParameterRef:
		v, err := c.u32()
		if err != nil {
			return op, err
		}
		op.Kind = OpParameterRef
		op.ParameterRef = uint64(v)

	case opAddrx, opGNUAddrIndex:
		idx, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpAddressIndex
		op.AddressIndex = idx

	case opConstx, opGNUConstIndex:
		idx, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpConstantIndex
		op.ConstantIndex = idx

	case opConstType, opGNUConstType:
		bt, err := c.uleb128()
		if err != nil {
			return op, err
		}
		n, err := c.u8()
		if err != nil {
			return op, err
		}
		b, err := c.bytes(int(n))
		if err != nil {
			return op, err
		}
		op.Kind = OpTypedLiteral
		op.BaseType = bt
		op.Block = b

	case opConvert, opGNUConvert:
		bt, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpConvert
		op.BaseType = bt

	case opReinterpret, opGNUReinterpret:
		bt, err := c.uleb128()
		if err != nil {
			return op, err
		}
		op.Kind = OpReinterpret
		op.BaseType = bt

	case opWasmLocation:
		sub, err := c.u8()
		if err != nil {
			return op, err
		}
		op.WasmSubOp = sub
		switch sub {
		case 0:
			idx, err := c.uleb128()
			if err != nil {
				return op, err
			}
			op.Kind = OpWasmLocal
			op.WasmIndex = idx
		case 1:
			idx, err := c.uleb128()
			if err != nil {
				return op, err
			}
			op.Kind = OpWasmGlobal
			op.WasmIndex = idx
		case 2:
			idx, err := c.uleb128()
			if err != nil {
				return op, err
			}
			op.Kind = OpWasmStack
			op.WasmIndex = idx
		case 3:
			idx, err := c.u32()
			if err != nil {
				return op, err
			}
			op.Kind = OpWasmGlobal
			op.WasmIndex = uint64(idx)
		default:
			return op, fmt.Errorf("%w: WASM_location sub-opcode %d", ErrUnknownOpcode, sub)
		}

	case opGNUUninit, opGNUEncodedAddr, opGNUPushTLSAddress:
		op.Kind = OpUnsupported
		op.UnsupportedReason = "recognized GNU vendor extension, not further decoded"

	default:
		if opcode >= opLoUser && opcode <= opHiUser {
			op.Kind = OpUnsupported
			op.UnsupportedReason = "vendor-extension opcode range"
			return op, nil
		}
		return op, fmt.Errorf("%w: %#x", ErrUnknownOpcode, opcode)
	}

	return op, nil
}

// ParseExpression decodes every operation in a complete DWARF expression
// block (the payload of an exprloc/block attribute, or a location-list
// entry's expression bytes).
func ParseExpression(data []uint8, order binary.ByteOrder, ctx attrContext) ([]Operation, error) {
	c := newCursor(data, order)
	var ops []Operation
	for !c.done() {
		op, err := ParseOperation(c, ctx)
		if err != nil {
			return ops, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}
