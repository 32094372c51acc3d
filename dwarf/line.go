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
	"strings"
)

// LineFileEntry is one row of a line-program's file-name table.
type LineFileEntry struct {
	Name      string
	DirIndex  uint64
	Mtime     uint64
	Length    uint64
	MD5       [16]uint8
	HasMD5    bool
}

// LineProgramHeader is the decoded preamble of a .debug_line program
// (spec.md §4.5, "Header parsing").
type LineProgramHeader struct {
	Format64                bool
	Version                 uint16
	AddressSize             uint8
	SegmentSelectorSize     uint8
	HeaderLength            uint64
	MinInstructionLength    uint8
	MaxOpsPerInstruction    uint8
	DefaultIsStmt           bool
	LineBase                int8
	LineRange               uint8
	OpcodeBase              uint8
	StandardOpcodeLengths   []uint8
	Directories             []string
	Files                   []LineFileEntry
}

// LineSample is one emitted row of the line-number matrix.
type LineSample struct {
	Address        uint64
	File           string
	FileIndex      uint64
	Line           int64
	Column         uint64
	IsStmt         bool
	BasicBlock     bool
	EndSequence    bool
	PrologueEnd    bool
	EpilogueBegin  bool
	ISA            uint64
	Discriminator  uint64
}

// LineProgram is one decoded .debug_line program: its header and the
// sequence of samples its opcode stream produced.
type LineProgram struct {
	Header  LineProgramHeader
	Samples []LineSample
}

type lineRegisters struct {
	address       uint64
	opIndex       uint64
	file          uint64
	line          int64
	column        uint64
	isStmt        bool
	basicBlock    bool
	endSequence   bool
	prologueEnd   bool
	epilogueBegin bool
	isa           uint64
	discriminator uint64
}

func newLineRegisters(defaultIsStmt bool) lineRegisters {
	return lineRegisters{file: 1, line: 1, isStmt: defaultIsStmt}
}

// ParseLineProgram decodes one .debug_line program starting at the
// cursor's current position (spec.md §4.5). compDir is consulted to
// resolve a file's directory when that directory is relative; it
// typically comes from the line_offset -> comp_dir cache ParseCompilationUnits
// produces. fallbackAddressSize is used for v<5 headers, which do not
// carry their own address size.
func ParseLineProgram(data []uint8, order binary.ByteOrder, fallbackAddressSize int, compDir string, debugLineStr []uint8) (*LineProgram, error) {
	// the program ends where its own initial length says it does; bytes
	// past that belong to the next program in the section and are not read.
	lc := newCursor(data, order)
	unitLength, _, err := lc.initialLength()
	if err != nil {
		return nil, err
	}
	if end := uint64(lc.offset()) + unitLength; end < uint64(len(data)) {
		data = data[:end]
	}

	c := newCursor(data, order)

	header, err := parseLineProgramHeader(c, fallbackAddressSize, debugLineStr)
	if err != nil {
		return nil, err
	}

	prog := &LineProgram{Header: *header}

	regs := newLineRegisters(header.DefaultIsStmt)

	emit := func() {
		prog.Samples = append(prog.Samples, LineSample{
			Address:       regs.address,
			File:          resolveFileName(*header, regs.file, compDir),
			FileIndex:     regs.file,
			Line:          regs.line,
			Column:        regs.column,
			IsStmt:        regs.isStmt,
			BasicBlock:    regs.basicBlock,
			EndSequence:   regs.endSequence,
			PrologueEnd:   regs.prologueEnd,
			EpilogueBegin: regs.epilogueBegin,
			ISA:           regs.isa,
			Discriminator: regs.discriminator,
		})
	}

	for !c.done() {
		opcode, err := c.u8()
		if err != nil {
			return prog, err
		}

		switch {
		case opcode == 0:
			if err := execExtendedOpcode(c, header, &regs, emit); err != nil {
				return prog, err
			}

		case int(opcode) < int(header.OpcodeBase):
			if err := execStandardOpcode(c, header, opcode, &regs, emit); err != nil {
				return prog, err
			}

		default:
			execSpecialOpcode(header, opcode, &regs)
			emit()
			regs.basicBlock = false
			regs.prologueEnd = false
			regs.epilogueBegin = false
			regs.discriminator = 0
		}
	}

	return prog, nil
}

func execExtendedOpcode(c *cursor, header *LineProgramHeader, regs *lineRegisters, emit func()) error {
	length, err := c.uleb128()
	if err != nil {
		return err
	}
	if length == 0 {
		return fmt.Errorf("%w: zero-length extended opcode", ErrInvariantViolation)
	}
	endOffset := c.offset() + int(length)

	sub, err := c.u8()
	if err != nil {
		return err
	}

	switch sub {
	case LineExtSetAddress:
		addr, err := c.address(int(header.AddressSize))
		if err != nil {
			return err
		}
		regs.address = addr
		regs.opIndex = 0

	case LineExtEndSequence:
		regs.endSequence = true
		regs.line = 0
		emit()
		*regs = newLineRegisters(header.DefaultIsStmt)

	case LineExtSetDiscriminator:
		v, err := c.uleb128()
		if err != nil {
			return err
		}
		regs.discriminator = v

	case LineExtDefineFile:
		if header.Version > 4 {
			break
		}
		name, err := c.cstring()
		if err != nil {
			return err
		}
		dirIdx, err := c.uleb128()
		if err != nil {
			return err
		}
		mtime, err := c.uleb128()
		if err != nil {
			return err
		}
		flen, err := c.uleb128()
		if err != nil {
			return err
		}
		header.Files = append(header.Files, LineFileEntry{Name: name, DirIndex: dirIdx, Mtime: mtime, Length: flen})

	default:
		// unknown extended opcode: skip the remaining declared bytes.
	}

	if c.offset() < endOffset {
		if err := c.skip(endOffset - c.offset()); err != nil {
			return err
		}
	}
	return nil
}

func execStandardOpcode(c *cursor, header *LineProgramHeader, opcode uint8, regs *lineRegisters, emit func()) error {
	switch int(opcode) {
	case LineOpCopy:
		emit()
		regs.basicBlock = false
		regs.prologueEnd = false
		regs.epilogueBegin = false
		regs.discriminator = 0

	case LineOpAdvancePC:
		adv, err := c.uleb128()
		if err != nil {
			return err
		}
		regs.address += adv * uint64(header.MinInstructionLength)

	case LineOpAdvanceLine:
		adv, err := c.sleb128()
		if err != nil {
			return err
		}
		regs.line += adv

	case LineOpSetFile:
		v, err := c.uleb128()
		if err != nil {
			return err
		}
		regs.file = v

	case LineOpSetColumn:
		v, err := c.uleb128()
		if err != nil {
			return err
		}
		regs.column = v

	case LineOpNegateStmt:
		regs.isStmt = !regs.isStmt

	case LineOpSetBasicBlock:
		regs.basicBlock = true

	case LineOpConstAddPC:
		adv := adjustedOpcodeAdvance(header, 255)
		regs.address += adv

	case LineOpFixedAdvancePC:
		v, err := c.u16()
		if err != nil {
			return err
		}
		regs.address += uint64(v)
		regs.opIndex = 0

	case LineOpSetPrologueEnd:
		regs.prologueEnd = true

	case LineOpSetEpilogueBegin:
		regs.epilogueBegin = true

	case LineOpSetISA:
		v, err := c.uleb128()
		if err != nil {
			return err
		}
		regs.isa = v

	default:
		n := 0
		if int(opcode)-1 < len(header.StandardOpcodeLengths) {
			n = int(header.StandardOpcodeLengths[opcode-1])
		}
		for i := 0; i < n; i++ {
			if _, err := c.uleb128(); err != nil {
				return err
			}
		}
	}
	return nil
}

func execSpecialOpcode(header *LineProgramHeader, opcode uint8, regs *lineRegisters) {
	adj := int(opcode) - int(header.OpcodeBase)
	lineRange := int(header.LineRange)
	if lineRange == 0 {
		lineRange = 1
	}

	regs.address += adjustedOpcodeAdvance(header, opcode)
	regs.line += header.lineBaseValue() + int64(adj%lineRange)
}

// adjustedOpcodeAdvance computes the address advance for a special opcode
// (or the opcode-255 proxy const_add_pc uses), per spec.md §4.5.
func adjustedOpcodeAdvance(header *LineProgramHeader, opcode uint8) uint64 {
	adj := int(opcode) - int(header.OpcodeBase)
	if adj < 0 {
		adj = 0
	}
	lineRange := int(header.LineRange)
	if lineRange == 0 {
		lineRange = 1
	}
	opAdv := adj / lineRange

	maxOps := int(header.MaxOpsPerInstruction)
	if maxOps == 0 {
		maxOps = 1
	}
	if maxOps == 1 {
		return uint64(header.MinInstructionLength) * uint64(opAdv)
	}
	return uint64(header.MinInstructionLength) * uint64(opAdv/maxOps)
}

func (h *LineProgramHeader) lineBaseValue() int64 {
	return int64(h.LineBase)
}

// parseLineProgramHeader reads the line-program preamble (spec.md §4.5,
// "Header parsing" and "Directory and file-name tables").
func parseLineProgramHeader(c *cursor, fallbackAddressSize int, debugLineStr []uint8) (*LineProgramHeader, error) {
	_, format64, err := c.initialLength()
	if err != nil {
		return nil, err
	}

	version, err := c.u16()
	if err != nil {
		return nil, err
	}
	if version < 2 || version > 5 {
		return nil, fmt.Errorf("%w: DWARF line version %d", ErrUnsupportedVersion, version)
	}

	h := &LineProgramHeader{Format64: format64, Version: version}

	if version >= 5 {
		addrSize, err := c.u8()
		if err != nil {
			return nil, err
		}
		h.AddressSize = addrSize

		segSel, err := c.u8()
		if err != nil {
			return nil, err
		}
		h.SegmentSelectorSize = segSel
		if segSel != 0 {
			return nil, fmt.Errorf("%w: non-zero segment_selector_size %d", ErrUnsupportedFeature, segSel)
		}
	} else {
		h.AddressSize = uint8(fallbackAddressSize)
		if h.AddressSize == 0 {
			h.AddressSize = 4
		}
	}

	headerLength, err := c.sectionOffset(format64)
	if err != nil {
		return nil, err
	}
	h.HeaderLength = headerLength
	programStart := c.offset() + int(headerLength)

	minInst, err := c.u8()
	if err != nil {
		return nil, err
	}
	if minInst == 0 {
		return nil, fmt.Errorf("%w: zero minimum_instruction_length", ErrInvariantViolation)
	}
	h.MinInstructionLength = minInst

	if version >= 4 {
		maxOps, err := c.u8()
		if err != nil {
			return nil, err
		}
		if maxOps == 0 {
			return nil, fmt.Errorf("%w: zero maximum_operations_per_instruction", ErrInvariantViolation)
		}
		h.MaxOpsPerInstruction = maxOps
	} else {
		h.MaxOpsPerInstruction = 1
	}

	defaultIsStmt, err := c.u8()
	if err != nil {
		return nil, err
	}
	h.DefaultIsStmt = defaultIsStmt != 0

	lineBase, err := c.s8()
	if err != nil {
		return nil, err
	}
	h.LineBase = lineBase

	lineRange, err := c.u8()
	if err != nil {
		return nil, err
	}
	if lineRange == 0 {
		return nil, fmt.Errorf("%w: zero line_range", ErrInvariantViolation)
	}
	h.LineRange = lineRange

	opcodeBase, err := c.u8()
	if err != nil {
		return nil, err
	}
	h.OpcodeBase = opcodeBase

	h.StandardOpcodeLengths = make([]uint8, 0, int(opcodeBase)-1)
	for i := 0; i < int(opcodeBase)-1; i++ {
		n, err := c.u8()
		if err != nil {
			return nil, err
		}
		h.StandardOpcodeLengths = append(h.StandardOpcodeLengths, n)
	}

	if version >= 5 {
		if err := parseLineTablesV5(c, h, debugLineStr); err != nil {
			return nil, err
		}
	} else {
		if err := parseLineTablesLegacy(c, h); err != nil {
			return nil, err
		}
	}

	if c.offset() < programStart {
		if err := c.skip(programStart - c.offset()); err != nil {
			return nil, err
		}
	}

	return h, nil
}

func parseLineTablesLegacy(c *cursor, h *LineProgramHeader) error {
	for {
		s, err := c.cstring()
		if err != nil {
			return err
		}
		if s == "" {
			break
		}
		h.Directories = append(h.Directories, s)
	}

	for {
		name, err := c.cstring()
		if err != nil {
			return err
		}
		if name == "" {
			break
		}
		dirIdx, err := c.uleb128()
		if err != nil {
			return err
		}
		mtime, err := c.uleb128()
		if err != nil {
			return err
		}
		flen, err := c.uleb128()
		if err != nil {
			return err
		}
		h.Files = append(h.Files, LineFileEntry{Name: name, DirIndex: dirIdx, Mtime: mtime, Length: flen})
	}

	return nil
}

type lineEntryFormat struct {
	contentType LineContentType
	form        Form
}

func parseLineTablesV5(c *cursor, h *LineProgramHeader, debugLineStr []uint8) error {
	dirFormats, err := readEntryFormats(c)
	if err != nil {
		return err
	}
	if !hasPathFormat(dirFormats) {
		return fmt.Errorf("%w: directory_entry_format without a path entry", ErrUnsupportedFeature)
	}
	dirCount, err := c.uleb128()
	if err != nil {
		return err
	}
	ctx := attrContext{addressSize: int(h.AddressSize), format64: h.Format64, version: int(h.Version), order: c.order, debugStr: debugLineStr}
	for i := uint64(0); i < dirCount; i++ {
		path, _, _, _, err := readLineEntry(c, dirFormats, ctx)
		if err != nil {
			return err
		}
		h.Directories = append(h.Directories, path)
	}

	fileFormats, err := readEntryFormats(c)
	if err != nil {
		return err
	}
	if !hasPathFormat(fileFormats) {
		return fmt.Errorf("%w: file_name_entry_format without a path entry", ErrUnsupportedFeature)
	}
	fileCount, err := c.uleb128()
	if err != nil {
		return err
	}
	for i := uint64(0); i < fileCount; i++ {
		path, dirIdx, md5, hasMD5, err := readLineEntry(c, fileFormats, ctx)
		if err != nil {
			return err
		}
		h.Files = append(h.Files, LineFileEntry{Name: path, DirIndex: dirIdx, MD5: md5, HasMD5: hasMD5})
	}

	return nil
}

func readEntryFormats(c *cursor) ([]lineEntryFormat, error) {
	count, err := c.u8()
	if err != nil {
		return nil, err
	}
	formats := make([]lineEntryFormat, 0, count)
	for i := 0; i < int(count); i++ {
		ct, err := c.uleb128()
		if err != nil {
			return nil, err
		}
		form, err := c.uleb128()
		if err != nil {
			return nil, err
		}
		formats = append(formats, lineEntryFormat{contentType: LineContentType(ct), form: Form(form)})
	}
	return formats, nil
}

func hasPathFormat(formats []lineEntryFormat) bool {
	for _, f := range formats {
		if f.contentType == LNCTPath {
			return true
		}
	}
	return false
}

// readLineEntry decodes one row of a v5 directory or file-name table
// according to its entry format, returning the path, directory index (if
// a DW_LNCT_directory_index column was present) and an MD5 digest (if a
// DW_LNCT_MD5 column was present).
func readLineEntry(c *cursor, formats []lineEntryFormat, ctx attrContext) (path string, dirIndex uint64, md5 [16]uint8, hasMD5 bool, err error) {
	for _, f := range formats {
		spec := AttrSpec{Form: f.form}
		val, derr := decodeAttribute(c, spec, ctx)
		if derr != nil {
			return "", 0, md5, false, derr
		}
		switch f.contentType {
		case LNCTPath:
			path = val.Str
		case LNCTDirectoryIndex:
			dirIndex = val.Uint
		case LNCTMD5:
			if len(val.Block) == 16 {
				copy(md5[:], val.Block)
				hasMD5 = true
			} else if val.Is128 {
				binary.BigEndian.PutUint64(md5[0:8], val.High)
				binary.BigEndian.PutUint64(md5[8:16], val.Uint)
				hasMD5 = true
			}
		}
	}
	return path, dirIndex, md5, hasMD5, nil
}

// resolveFileName resolves a line-program file index into a full path
// (spec.md §4.5, last paragraph of "Opcode execution"): index 0 is
// "unknown"; otherwise the file-name table entry at index-1, for every
// version. an index past the end of the table also resolves to "unknown".
func resolveFileName(h LineProgramHeader, index uint64, compDir string) string {
	if index == 0 {
		return "unknown"
	}

	fileIdx := int(index) - 1
	if fileIdx < 0 || fileIdx >= len(h.Files) {
		return "unknown"
	}
	entry := h.Files[fileIdx]

	dir := ""
	dirIdx := int(entry.DirIndex)
	if h.Version < 5 {
		dirIdx--
	}
	if dirIdx >= 0 && dirIdx < len(h.Directories) {
		dir = h.Directories[dirIdx]
	}

	if dir == "" {
		return entry.Name
	}
	if !strings.HasPrefix(dir, "/") && compDir != "" {
		dir = compDir + "/" + dir
	}
	return dir + "/" + entry.Name
}
