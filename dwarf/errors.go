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

import "errors"

// Sentinel errors. every sub-parser aborts the smallest enclosing record
// (attribute, DIE, unit, set, list) on one of these and preserves whatever
// was already committed; see Parse and the per-section parsers.
var (
	// ErrUnexpectedEOF means a read crossed its buffer's end.
	ErrUnexpectedEOF = errors.New("dwarf: unexpected end of section")

	// ErrInvalidInitialLength means the initial-length trap value
	// (0xfffffff1..0xfffffffe) was seen.
	ErrInvalidInitialLength = errors.New("dwarf: invalid initial length")

	// ErrUnsupportedVersion means a line-program or compilation-unit
	// version fell outside the versions this decoder supports.
	ErrUnsupportedVersion = errors.New("dwarf: unsupported version")

	// ErrUnsupportedFeature means a value this decoder explicitly declines
	// to interpret was encountered (non-zero segment selector size, a v5
	// file-name format without exactly one path entry, a form/opcode
	// flagged unsupported).
	ErrUnsupportedFeature = errors.New("dwarf: unsupported feature")

	// ErrMissingAbbreviation means a DIE referenced an abbreviation code
	// that is not present in its unit's abbreviation set.
	ErrMissingAbbreviation = errors.New("dwarf: missing abbreviation")

	// ErrInvariantViolation means a value that DWARF requires to be
	// non-zero (or otherwise well-formed) was not: zero
	// minimum_instruction_length, zero maximum_operations_per_instruction,
	// zero line_range, a has_children byte that was neither 0 nor 1.
	ErrInvariantViolation = errors.New("dwarf: invariant violation")

	// ErrUnknownForm means the attribute form-dispatch table has no case
	// for the form code encountered.
	ErrUnknownForm = errors.New("dwarf: unknown form")

	// ErrUnknownOpcode means the line-program or expression opcode
	// dispatch has no case for the opcode encountered.
	ErrUnknownOpcode = errors.New("dwarf: unknown opcode")
)
