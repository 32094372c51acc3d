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

	"github.com/dwarfkit/dwarfdecode/logger"
)

// SectionProvider is the object-file collaborator this package consumes
// (spec.md §6): a host that can hand back a named section's bytes along
// with the encoding facts a v<5 line-program header cannot recover on its
// own. Lookup is by substring so that a caller backed by an object format
// that does or doesn't prefix section names with a dot (".debug_info" vs
// "debug_info") need not normalize first.
type SectionProvider interface {
	// Section returns the bytes of the first section whose name contains
	// name as a substring, and whether one was found.
	Section(name string) ([]uint8, bool)

	// ByteOrder is the object file's endianness.
	ByteOrder() binary.ByteOrder

	// AddressSize is the object file's address width in bytes, used as
	// the fallback for DWARF versions below 5, which do not carry their
	// own address size in the line-program header.
	AddressSize() int
}

// ParseFlags selects which sub-parsers Parse runs (spec.md §4.9).
type ParseFlags uint8

const (
	FlagAbbrevs ParseFlags = 1 << iota
	FlagInfo
	FlagLoc
	FlagLines
	FlagAranges

	FlagAll = FlagAbbrevs | FlagInfo | FlagLoc | FlagLines | FlagAranges
)

// LineMask selects what a line program retains once decoded (spec.md §4.9,
// "a line-info detail mask {raw opcodes, synthesized samples, both}"). This
// decoder always synthesizes samples; LineMaskRaw is reserved for a future
// raw-opcode trace and currently only causes Parse to log that it was
// asked for and is not honored, so a caller relying on it notices.
type LineMask uint8

const (
	LineMaskSamples LineMask = 1 << iota
	LineMaskRaw

	LineMaskBoth = LineMaskSamples | LineMaskRaw
)

// Options configures Parse (spec.md §4.9 / §6, "options = { flags: bitset,
// addr_size: u8, line_mask: bitset }").
type Options struct {
	Flags ParseFlags

	// AddressSize is used by the location-list parser, which has no other
	// source of address width: it is not anchored to one compilation unit.
	AddressSize int

	LineMask LineMask
}

// DefaultOptions runs every sub-parser with an 8-byte default address size
// and sample-only line output.
func DefaultOptions() Options {
	return Options{Flags: FlagAll, AddressSize: 8, LineMask: LineMaskSamples}
}

// ParsedDwarf is the aggregate result of one Parse call (spec.md §3
// "Parsed DWARF", §4.9). Every field is independently optional: a section
// that was absent, disabled by Options, or that failed partway through
// leaves its field nil/empty rather than failing the whole call (spec.md
// §7, "the top-level result is always returned").
type ParsedDwarf struct {
	Abbrevs *AbbrevTable
	Units   []*CompilationUnit

	// Lines is keyed by the DW_AT_stmt_list offset that named the program,
	// since .debug_line packs one program per compilation unit back to
	// back with no section-level index of its own.
	Lines map[uint64]*LineProgram

	Aranges  []*ArangeSet
	LocLists []*LocList
}

// parseLog is the ring buffer decode-time anomalies are recorded to when
// the error taxonomy in errors.go does not already cover them (an
// individual section failing while others succeed is expected and
// unexceptional; spec.md §7 "partial results already committed remain
// valid").
var parseLog = logger.NewLogger(256)

// Log returns the package's log, so a host can Write or Tail it after a
// Parse call.
func Log() *logger.Logger {
	return parseLog
}

// Parse drives the sub-parsers named in spec.md §4.9 over the sections a
// SectionProvider exposes, in the dependency order abbreviations →
// compilation units → location lists → line info → address ranges. A
// failing sub-parser logs and leaves its ParsedDwarf field at whatever it
// managed to commit; Parse itself never returns an error.
func Parse(src SectionProvider, opts Options) *ParsedDwarf {
	result := &ParsedDwarf{}
	order := src.ByteOrder()

	if opts.Flags&FlagAbbrevs != 0 {
		if data, ok := src.Section("debug_abbrev"); ok {
			abbrevs, err := ParseAbbrevTable(data)
			if err != nil {
				parseLog.Logf(logger.Allow, "dwarf", "debug_abbrev: %v", err)
			}
			result.Abbrevs = abbrevs
		}
	}

	var lineOffsetToCompDir map[uint64]string

	if opts.Flags&FlagInfo != 0 && result.Abbrevs != nil {
		if data, ok := src.Section("debug_info"); ok {
			debugStr, _ := src.Section("debug_str")
			units, cache, err := ParseCompilationUnits(data, order, result.Abbrevs, opts.AddressSize, debugStr)
			if err != nil {
				parseLog.Logf(logger.Allow, "dwarf", "debug_info: %v", err)
			}
			result.Units = units
			lineOffsetToCompDir = cache
		}
	}

	if opts.Flags&FlagLoc != 0 {
		if data, ok := src.Section("debug_loc"); ok {
			lists, err := ParseLocLists(data, order, opts.AddressSize)
			if err != nil {
				parseLog.Logf(logger.Allow, "dwarf", "debug_loc: %v", err)
			}
			result.LocLists = lists
		}
	}

	if opts.Flags&FlagLines != 0 {
		if opts.LineMask&LineMaskRaw != 0 {
			parseLog.Logf(logger.Allow, "dwarf", "raw line-opcode retention requested but not implemented; returning synthesized samples only")
		}
		if data, ok := src.Section("debug_line"); ok && len(lineOffsetToCompDir) > 0 {
			debugLineStr, _ := src.Section("debug_line_str")
			result.Lines = parseLinePrograms(data, order, src.AddressSize(), lineOffsetToCompDir, debugLineStr)
		}
	}

	if opts.Flags&FlagAranges != 0 {
		if data, ok := src.Section("debug_aranges"); ok {
			sets, err := ParseAranges(data, order)
			if err != nil {
				parseLog.Logf(logger.Allow, "dwarf", "debug_aranges: %v", err)
			}
			result.Aranges = sets
		}
	}

	return result
}

// parseLinePrograms decodes one line program per offset in compDirs, the
// line_offset -> comp_dir cache, which holds the DW_AT_stmt_list of every
// unit whose root DIE also carries DW_AT_comp_dir; a unit naming a
// stmt_list without a comp_dir gets no line program. Each program's own initial
// length says how much of the section it occupies, so handing it the
// section tail starting at its offset is sufficient; bytes belonging to
// the next program are simply never read.
func parseLinePrograms(data []uint8, order binary.ByteOrder, fallbackAddressSize int, compDirs map[uint64]string, debugLineStr []uint8) map[uint64]*LineProgram {
	programs := make(map[uint64]*LineProgram, len(compDirs))
	for offset, compDir := range compDirs {
		if offset >= uint64(len(data)) {
			parseLog.Logf(logger.Allow, "dwarf", "debug_line: stmt_list offset %#x out of range", offset)
			continue
		}
		prog, err := ParseLineProgram(data[offset:], order, fallbackAddressSize, compDir, debugLineStr)
		if err != nil {
			parseLog.Logf(logger.Allow, "dwarf", "debug_line offset %#x: %v", offset, err)
		}
		if prog != nil {
			programs[offset] = prog
		}
	}
	if len(programs) == 0 {
		return nil
	}
	return programs
}
