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

import "fmt"

// Tag identifies the kind of a DIE, e.g. DW_TAG_compile_unit,
// DW_TAG_subprogram. values taken from "7.5.3 Abbreviations Tables" /
// Appendix A of the DWARF4/5 Standard.
type Tag uint32

const (
	TagArrayType              Tag = 0x01
	TagClassType              Tag = 0x02
	TagEntryPoint             Tag = 0x03
	TagEnumerationType        Tag = 0x04
	TagFormalParameter        Tag = 0x05
	TagImportedDeclaration    Tag = 0x08
	TagLabel                  Tag = 0x0a
	TagLexDwarfBlock          Tag = 0x0b
	TagMember                 Tag = 0x0d
	TagPointerType            Tag = 0x0f
	TagReferenceType          Tag = 0x10
	TagCompileUnit            Tag = 0x11
	TagStringType             Tag = 0x12
	TagStructType             Tag = 0x13
	TagSubroutineType         Tag = 0x15
	TagTypedef                Tag = 0x16
	TagUnionType              Tag = 0x17
	TagUnspecifiedParameters  Tag = 0x18
	TagVariant                Tag = 0x19
	TagCommonDwarfBlock       Tag = 0x1a
	TagCommonInclusion        Tag = 0x1b
	TagInheritance            Tag = 0x1c
	TagInlinedSubroutine      Tag = 0x1d
	TagModule                 Tag = 0x1e
	TagPtrToMemberType        Tag = 0x1f
	TagSetType                Tag = 0x20
	TagSubrangeType           Tag = 0x21
	TagWithStmt               Tag = 0x22
	TagAccessDeclaration      Tag = 0x23
	TagBaseType               Tag = 0x24
	TagCatchDwarfBlock        Tag = 0x25
	TagConstType              Tag = 0x26
	TagConstant               Tag = 0x27
	TagEnumerator             Tag = 0x28
	TagFileType               Tag = 0x29
	TagFriend                 Tag = 0x2a
	TagNamelist               Tag = 0x2b
	TagNamelistItem           Tag = 0x2c
	TagPackedType             Tag = 0x2d
	TagSubprogram             Tag = 0x2e
	TagTemplateTypeParameter  Tag = 0x2f
	TagTemplateValueParameter Tag = 0x30
	TagThrownType             Tag = 0x31
	TagTryDwarfBlock          Tag = 0x32
	TagVariantPart            Tag = 0x33
	TagVariable               Tag = 0x34
	TagVolatileType           Tag = 0x35
	TagDwarfProcedure         Tag = 0x36
	TagRestrictType           Tag = 0x37
	TagInterfaceType          Tag = 0x38
	TagNamespace              Tag = 0x39
	TagImportedModule         Tag = 0x3a
	TagUnspecifiedType        Tag = 0x3b
	TagPartialUnit            Tag = 0x3c
	TagImportedUnit           Tag = 0x3d
	TagCondition              Tag = 0x3f
	TagSharedType             Tag = 0x40
	TagTypeUnit               Tag = 0x41
	TagRvalueReferenceType    Tag = 0x42
	TagTemplateAlias          Tag = 0x43
	TagCoarrayType            Tag = 0x44
	TagGenericSubrange        Tag = 0x45
	TagDynamicType            Tag = 0x46
	TagAtomicType             Tag = 0x47
	TagCallSite               Tag = 0x48
	TagCallSiteParameter      Tag = 0x49
	TagSkeletonUnit           Tag = 0x4a
	TagImmutableType          Tag = 0x4b
)

var tagNames = map[Tag]string{
	TagArrayType:              "array_type",
	TagClassType:              "class_type",
	TagEntryPoint:             "entry_point",
	TagEnumerationType:        "enumeration_type",
	TagFormalParameter:        "formal_parameter",
	TagImportedDeclaration:    "imported_declaration",
	TagLabel:                  "label",
	TagLexDwarfBlock:          "lexical_block",
	TagMember:                 "member",
	TagPointerType:            "pointer_type",
	TagReferenceType:          "reference_type",
	TagCompileUnit:            "compile_unit",
	TagStringType:             "string_type",
	TagStructType:             "structure_type",
	TagSubroutineType:         "subroutine_type",
	TagTypedef:                "typedef",
	TagUnionType:              "union_type",
	TagUnspecifiedParameters:  "unspecified_parameters",
	TagVariant:                "variant",
	TagCommonDwarfBlock:       "common_block",
	TagCommonInclusion:        "common_inclusion",
	TagInheritance:            "inheritance",
	TagInlinedSubroutine:      "inlined_subroutine",
	TagModule:                 "module",
	TagPtrToMemberType:        "ptr_to_member_type",
	TagSetType:                "set_type",
	TagSubrangeType:           "subrange_type",
	TagWithStmt:               "with_stmt",
	TagAccessDeclaration:      "access_declaration",
	TagBaseType:               "base_type",
	TagCatchDwarfBlock:        "catch_block",
	TagConstType:              "const_type",
	TagConstant:               "constant",
	TagEnumerator:             "enumerator",
	TagFileType:               "file_type",
	TagFriend:                 "friend",
	TagNamelist:               "namelist",
	TagNamelistItem:           "namelist_item",
	TagPackedType:             "packed_type",
	TagSubprogram:             "subprogram",
	TagTemplateTypeParameter:  "template_type_parameter",
	TagTemplateValueParameter: "template_value_parameter",
	TagThrownType:             "thrown_type",
	TagTryDwarfBlock:          "try_block",
	TagVariantPart:            "variant_part",
	TagVariable:               "variable",
	TagVolatileType:           "volatile_type",
	TagDwarfProcedure:         "dwarf_procedure",
	TagRestrictType:           "restrict_type",
	TagInterfaceType:          "interface_type",
	TagNamespace:              "namespace",
	TagImportedModule:         "imported_module",
	TagUnspecifiedType:        "unspecified_type",
	TagPartialUnit:            "partial_unit",
	TagImportedUnit:           "imported_unit",
	TagCondition:              "condition",
	TagSharedType:             "shared_type",
	TagTypeUnit:               "type_unit",
	TagRvalueReferenceType:    "rvalue_reference_type",
	TagTemplateAlias:          "template_alias",
	TagCoarrayType:            "coarray_type",
	TagGenericSubrange:        "generic_subrange",
	TagDynamicType:            "dynamic_type",
	TagAtomicType:             "atomic_type",
	TagCallSite:               "call_site",
	TagCallSiteParameter:      "call_site_parameter",
	TagSkeletonUnit:           "skeleton_unit",
	TagImmutableType:          "immutable_type",
}

// TagName returns the DWARF mnemonic for tag, minus the "DW_TAG_" prefix,
// and false when tag is not one this decoder recognizes.
func TagName(tag Tag) (string, bool) {
	name, ok := tagNames[tag]
	return name, ok
}

func (tag Tag) String() string {
	if name, ok := tagNames[tag]; ok {
		return "DW_TAG_" + name
	}
	return fmt.Sprintf("DW_TAG_unknown_%#x", uint32(tag))
}

// Attr identifies an attribute name, e.g. DW_AT_name, DW_AT_location.
// values taken from Appendix A of the DWARF4/5 Standard.
type Attr uint32

const (
	AttrSibling        Attr = 0x01
	AttrLocation       Attr = 0x02
	AttrName           Attr = 0x03
	AttrOrdering       Attr = 0x09
	AttrByteSize       Attr = 0x0b
	AttrBitOffset      Attr = 0x0c
	AttrBitSize        Attr = 0x0d
	AttrStmtList       Attr = 0x10
	AttrLowpc          Attr = 0x11
	AttrHighpc         Attr = 0x12
	AttrLanguage       Attr = 0x13
	AttrDiscr          Attr = 0x15
	AttrDiscrValue     Attr = 0x16
	AttrVisibility     Attr = 0x17
	AttrImport         Attr = 0x18
	AttrStringLength   Attr = 0x19
	AttrCommonRef      Attr = 0x1a
	AttrCompDir        Attr = 0x1b
	AttrConstValue     Attr = 0x1c
	AttrContainingType Attr = 0x1d
	AttrDefaultValue   Attr = 0x1e
	AttrInline         Attr = 0x20
	AttrIsOptional     Attr = 0x21
	AttrLowerBound     Attr = 0x22
	AttrProducer       Attr = 0x25
	AttrPrototyped     Attr = 0x27
	AttrReturnAddr     Attr = 0x2a
	AttrStartScope     Attr = 0x2c
	AttrStrideSize     Attr = 0x2e
	AttrUpperBound     Attr = 0x2f
	AttrAbstractOrigin Attr = 0x31
	AttrAccessibility  Attr = 0x32
	AttrAddrClass      Attr = 0x33
	AttrArtificial     Attr = 0x34
	AttrBaseTypes      Attr = 0x35
	AttrCalling        Attr = 0x36
	AttrCount          Attr = 0x37
	AttrDataMemberLoc  Attr = 0x38
	AttrDeclColumn     Attr = 0x39
	AttrDeclFile       Attr = 0x3a
	AttrDeclLine       Attr = 0x3b
	AttrDeclaration    Attr = 0x3c
	AttrDiscrList      Attr = 0x3d
	AttrEncoding       Attr = 0x3e
	AttrExternal       Attr = 0x3f
	AttrFrameBase      Attr = 0x40
	AttrFriend         Attr = 0x41
	AttrIdentifierCase Attr = 0x42
	AttrMacroInfo      Attr = 0x43
	AttrNamelistItem   Attr = 0x44
	AttrPriority       Attr = 0x45
	AttrSegment        Attr = 0x46
	AttrSpecification  Attr = 0x47
	AttrStaticLink     Attr = 0x48
	AttrType           Attr = 0x49
	AttrUseLocation    Attr = 0x4a
	AttrVarParam       Attr = 0x4b
	AttrVirtuality     Attr = 0x4c
	AttrVtableElemLoc  Attr = 0x4d
	AttrAllocated      Attr = 0x4e
	AttrAssociated     Attr = 0x4f
	AttrDataLocation   Attr = 0x50
	AttrStride         Attr = 0x51
	AttrEntrypc        Attr = 0x52
	AttrUseUTF8        Attr = 0x53
	AttrExtension      Attr = 0x54
	AttrRanges         Attr = 0x55
	AttrTrampoline     Attr = 0x56
	AttrCallColumn     Attr = 0x57
	AttrCallFile       Attr = 0x58
	AttrCallLine       Attr = 0x59
	AttrDescription    Attr = 0x5a
	AttrBinaryScale    Attr = 0x5b
	AttrDecimalScale   Attr = 0x5c
	AttrSmall          Attr = 0x5d
	AttrDecimalSign    Attr = 0x5e
	AttrDigitCount     Attr = 0x5f
	AttrPictureString  Attr = 0x60
	AttrMutable        Attr = 0x61
	AttrThreadsScaled  Attr = 0x62
	AttrExplicit       Attr = 0x63
	AttrObjectPointer  Attr = 0x64
	AttrEndianity      Attr = 0x65
	AttrElemental      Attr = 0x66
	AttrPure           Attr = 0x67
	AttrRecursive      Attr = 0x68
	AttrSignature      Attr = 0x69
	AttrMainSubprogram Attr = 0x6a
	AttrDataBitOffset  Attr = 0x6b
	AttrConstExpr      Attr = 0x6c
	AttrEnumClass      Attr = 0x6d
	AttrLinkageName    Attr = 0x6e
	AttrStrOffsetsBase Attr = 0x72
	AttrAddrBase       Attr = 0x73
	AttrRnglistsBase   Attr = 0x74
	AttrDwoName        Attr = 0x76
	AttrReference      Attr = 0x77
	AttrRvalueRef      Attr = 0x78
	AttrMacros         Attr = 0x79
	AttrCallAllCalls   Attr = 0x7a
	AttrCallAllSrcCall Attr = 0x7b
	AttrCallAllTailCal Attr = 0x7c
	AttrCallReturnPC   Attr = 0x7d
	AttrCallValue      Attr = 0x7e
	AttrCallOrigin     Attr = 0x7f
	AttrCallParameter  Attr = 0x80
	AttrCallPC         Attr = 0x81
	AttrCallTailCall   Attr = 0x82
	AttrCallTarget     Attr = 0x83
	AttrCallTargetClob Attr = 0x84
	AttrCallDataLoc    Attr = 0x85
	AttrCallDataValue  Attr = 0x86
	AttrNoreturn       Attr = 0x87
	AttrAlignment      Attr = 0x88
	AttrExportSymbols  Attr = 0x89
	AttrDeleted        Attr = 0x8a
	AttrDefaulted      Attr = 0x8b
	AttrLoclistsBase   Attr = 0x8c
)

var attrNames = map[Attr]string{
	AttrSibling: "sibling", AttrLocation: "location", AttrName: "name",
	AttrOrdering: "ordering", AttrByteSize: "byte_size", AttrBitOffset: "bit_offset",
	AttrBitSize: "bit_size", AttrStmtList: "stmt_list", AttrLowpc: "low_pc",
	AttrHighpc: "high_pc", AttrLanguage: "language", AttrDiscr: "discr",
	AttrDiscrValue: "discr_value", AttrVisibility: "visibility", AttrImport: "import",
	AttrStringLength: "string_length", AttrCommonRef: "common_reference", AttrCompDir: "comp_dir",
	AttrConstValue: "const_value", AttrContainingType: "containing_type", AttrDefaultValue: "default_value",
	AttrInline: "inline", AttrIsOptional: "is_optional", AttrLowerBound: "lower_bound",
	AttrProducer: "producer", AttrPrototyped: "prototyped", AttrReturnAddr: "return_addr",
	AttrStartScope: "start_scope", AttrStrideSize: "stride_size", AttrUpperBound: "upper_bound",
	AttrAbstractOrigin: "abstract_origin", AttrAccessibility: "accessibility", AttrAddrClass: "address_class",
	AttrArtificial: "artificial", AttrBaseTypes: "base_types", AttrCalling: "calling_convention",
	AttrCount: "count", AttrDataMemberLoc: "data_member_location", AttrDeclColumn: "decl_column",
	AttrDeclFile: "decl_file", AttrDeclLine: "decl_line", AttrDeclaration: "declaration",
	AttrDiscrList: "discr_list", AttrEncoding: "encoding", AttrExternal: "external",
	AttrFrameBase: "frame_base", AttrFriend: "friend", AttrIdentifierCase: "identifier_case",
	AttrMacroInfo: "macro_info", AttrNamelistItem: "namelist_item", AttrPriority: "priority",
	AttrSegment: "segment", AttrSpecification: "specification", AttrStaticLink: "static_link",
	AttrType: "type", AttrUseLocation: "use_location", AttrVarParam: "variable_parameter",
	AttrVirtuality: "virtuality", AttrVtableElemLoc: "vtable_elem_location", AttrAllocated: "allocated",
	AttrAssociated: "associated", AttrDataLocation: "data_location", AttrStride: "stride",
	AttrEntrypc: "entry_pc", AttrUseUTF8: "use_UTF8", AttrExtension: "extension",
	AttrRanges: "ranges", AttrTrampoline: "trampoline", AttrCallColumn: "call_column",
	AttrCallFile: "call_file", AttrCallLine: "call_line", AttrDescription: "description",
	AttrBinaryScale: "binary_scale", AttrDecimalScale: "decimal_scale", AttrSmall: "small",
	AttrDecimalSign: "decimal_sign", AttrDigitCount: "digit_count", AttrPictureString: "picture_string",
	AttrMutable: "mutable", AttrThreadsScaled: "threads_scaled", AttrExplicit: "explicit",
	AttrObjectPointer: "object_pointer", AttrEndianity: "endianity", AttrElemental: "elemental",
	AttrPure: "pure", AttrRecursive: "recursive", AttrSignature: "signature",
	AttrMainSubprogram: "main_subprogram", AttrDataBitOffset: "data_bit_offset", AttrConstExpr: "const_expr",
	AttrEnumClass: "enum_class", AttrLinkageName: "linkage_name", AttrStrOffsetsBase: "str_offsets_base",
	AttrAddrBase: "addr_base", AttrRnglistsBase: "rnglists_base", AttrDwoName: "dwo_name",
	AttrReference: "reference", AttrRvalueRef: "rvalue_reference", AttrMacros: "macros",
	AttrNoreturn: "noreturn", AttrAlignment: "alignment", AttrExportSymbols: "export_symbols",
	AttrDeleted: "deleted", AttrDefaulted: "defaulted", AttrLoclistsBase: "loclists_base",
}

// AttributeName returns the DWARF mnemonic for attr, minus the "DW_AT_"
// prefix, and false when attr is not one this decoder recognizes.
func AttributeName(attr Attr) (string, bool) {
	name, ok := attrNames[attr]
	return name, ok
}

func (attr Attr) String() string {
	if name, ok := attrNames[attr]; ok {
		return "DW_AT_" + name
	}
	return fmt.Sprintf("DW_AT_unknown_%#x", uint32(attr))
}

// Form identifies how an attribute value is encoded. values taken from
// Appendix A of the DWARF4/5 Standard plus the GNU/sup extensions spec.md
// names explicitly (ref_sup4/8, strp_sup).
type Form uint32

const (
	FormAddr         Form = 0x01
	FormBlock2       Form = 0x03
	FormBlock4       Form = 0x04
	FormData2        Form = 0x05
	FormData4        Form = 0x06
	FormData8        Form = 0x07
	FormString       Form = 0x08
	FormBlock        Form = 0x09
	FormBlock1       Form = 0x0a
	FormData1        Form = 0x0b
	FormFlag         Form = 0x0c
	FormSdata        Form = 0x0d
	FormStrp         Form = 0x0e
	FormUdata        Form = 0x0f
	FormRefAddr      Form = 0x10
	FormRef1         Form = 0x11
	FormRef2         Form = 0x12
	FormRef4         Form = 0x13
	FormRef8         Form = 0x14
	FormRefUdata     Form = 0x15
	FormIndirect     Form = 0x16
	FormSecOffset    Form = 0x17
	FormExprloc      Form = 0x18
	FormFlagPresent  Form = 0x19
	FormStrx         Form = 0x1a
	FormAddrx        Form = 0x1b
	FormRefSup4      Form = 0x1c
	FormStrpSup      Form = 0x1d
	FormData16       Form = 0x1e
	FormLineStrp     Form = 0x1f
	FormRefSig8      Form = 0x20
	FormImplicitConst Form = 0x21
	FormLoclistx     Form = 0x22
	FormRnglistx     Form = 0x23
	FormRefSup8      Form = 0x24
	FormStrx1        Form = 0x25
	FormStrx2        Form = 0x26
	FormStrx3        Form = 0x27
	FormStrx4        Form = 0x28
	FormAddrx1       Form = 0x29
	FormAddrx2       Form = 0x2a
	FormAddrx3       Form = 0x2b
	FormAddrx4       Form = 0x2c
)

var formNames = map[Form]string{
	FormAddr: "addr", FormBlock2: "block2", FormBlock4: "block4",
	FormData2: "data2", FormData4: "data4", FormData8: "data8",
	FormString: "string", FormBlock: "block", FormBlock1: "block1",
	FormData1: "data1", FormFlag: "flag", FormSdata: "sdata",
	FormStrp: "strp", FormUdata: "udata", FormRefAddr: "ref_addr",
	FormRef1: "ref1", FormRef2: "ref2", FormRef4: "ref4", FormRef8: "ref8",
	FormRefUdata: "ref_udata", FormIndirect: "indirect", FormSecOffset: "sec_offset",
	FormExprloc: "exprloc", FormFlagPresent: "flag_present", FormStrx: "strx",
	FormAddrx: "addrx", FormRefSup4: "ref_sup4", FormStrpSup: "strp_sup",
	FormData16: "data16", FormLineStrp: "line_strp", FormRefSig8: "ref_sig8",
	FormImplicitConst: "implicit_const", FormLoclistx: "loclistx", FormRnglistx: "rnglistx",
	FormRefSup8: "ref_sup8", FormStrx1: "strx1", FormStrx2: "strx2", FormStrx3: "strx3",
	FormStrx4: "strx4", FormAddrx1: "addrx1", FormAddrx2: "addrx2", FormAddrx3: "addrx3",
	FormAddrx4: "addrx4",
}

// FormName returns the DWARF mnemonic for form, minus the "DW_FORM_" prefix,
// and false when form is not one this decoder recognizes.
func FormName(form Form) (string, bool) {
	name, ok := formNames[form]
	return name, ok
}

func (form Form) String() string {
	if name, ok := formNames[form]; ok {
		return "DW_FORM_" + name
	}
	return fmt.Sprintf("DW_FORM_unknown_%#x", uint32(form))
}

// Language identifies the source language of a compilation unit
// (DW_AT_language). values taken from Appendix A of the DWARF5 Standard.
type Language uint32

const (
	LanguageC89         Language = 0x0001
	LanguageC           Language = 0x0002
	LanguageAda83       Language = 0x0003
	LanguageCPlusPlus   Language = 0x0004
	LanguageCobol74     Language = 0x0005
	LanguageCobol85     Language = 0x0006
	LanguageFortran77   Language = 0x0007
	LanguageFortran90   Language = 0x0008
	LanguagePascal83    Language = 0x0009
	LanguageModula2     Language = 0x000a
	LanguageJava        Language = 0x000b
	LanguageC99         Language = 0x000c
	LanguageAda95       Language = 0x000d
	LanguageFortran95   Language = 0x000e
	LanguagePLI         Language = 0x000f
	LanguageObjC        Language = 0x0010
	LanguageObjCPlusPlus Language = 0x0011
	LanguageUPC         Language = 0x0012
	LanguageD           Language = 0x0013
	LanguagePython      Language = 0x0014
	LanguageOpenCL      Language = 0x0015
	LanguageGo          Language = 0x0016
	LanguageModula3     Language = 0x0017
	LanguageHaskell     Language = 0x0018
	LanguageCPlusPlus03 Language = 0x0019
	LanguageCPlusPlus11 Language = 0x001a
	LanguageOCaml       Language = 0x001b
	LanguageRust        Language = 0x001c
	LanguageC11         Language = 0x001d
	LanguageSwift       Language = 0x001e
	LanguageJulia       Language = 0x001f
	LanguageDylan       Language = 0x0020
	LanguageCPlusPlus14 Language = 0x0021
	LanguageFortran03   Language = 0x0022
	LanguageFortran08   Language = 0x0023
	LanguageRenderScript Language = 0x0024
	LanguageBLISS       Language = 0x0025
)

var languageNames = map[Language]string{
	LanguageC89: "C89", LanguageC: "C", LanguageAda83: "Ada83",
	LanguageCPlusPlus: "C_plus_plus", LanguageCobol74: "Cobol74", LanguageCobol85: "Cobol85",
	LanguageFortran77: "Fortran77", LanguageFortran90: "Fortran90", LanguagePascal83: "Pascal83",
	LanguageModula2: "Modula2", LanguageJava: "Java", LanguageC99: "C99",
	LanguageAda95: "Ada95", LanguageFortran95: "Fortran95", LanguagePLI: "PLI",
	LanguageObjC: "ObjC", LanguageObjCPlusPlus: "ObjC_plus_plus", LanguageUPC: "UPC",
	LanguageD: "D", LanguagePython: "Python", LanguageOpenCL: "OpenCL",
	LanguageGo: "Go", LanguageModula3: "Modula3", LanguageHaskell: "Haskell",
	LanguageCPlusPlus03: "C_plus_plus_03", LanguageCPlusPlus11: "C_plus_plus_11", LanguageOCaml: "OCaml",
	LanguageRust: "Rust", LanguageC11: "C11", LanguageSwift: "Swift",
	LanguageJulia: "Julia", LanguageDylan: "Dylan", LanguageCPlusPlus14: "C_plus_plus_14",
	LanguageFortran03: "Fortran03", LanguageFortran08: "Fortran08", LanguageRenderScript: "RenderScript",
	LanguageBLISS: "BLISS",
}

// LanguageName returns the DWARF mnemonic for lang, minus the
// "DW_LANG_" prefix, and false when lang is not one this decoder recognizes.
func LanguageName(lang Language) (string, bool) {
	name, ok := languageNames[lang]
	return name, ok
}

func (lang Language) String() string {
	if name, ok := languageNames[lang]; ok {
		return "DW_LANG_" + name
	}
	return fmt.Sprintf("DW_LANG_unknown_%#x", uint32(lang))
}

// UnitType identifies the kind of a DWARF5 compilation-unit header
// (DW_UT_*, read for version >= 5). values taken from the DWARF5 Standard
// section 7.5.1.1.
type UnitType uint8

const (
	UnitTypeCompile      UnitType = 0x01
	UnitTypeType         UnitType = 0x02
	UnitTypePartial      UnitType = 0x03
	UnitTypeSkeleton     UnitType = 0x04
	UnitTypeSplitCompile UnitType = 0x05
	UnitTypeSplitType    UnitType = 0x06
	UnitTypeLoUser       UnitType = 0x80
	UnitTypeHiUser       UnitType = 0xff
)

var unitTypeNames = map[UnitType]string{
	UnitTypeCompile: "compile", UnitTypeType: "type", UnitTypePartial: "partial",
	UnitTypeSkeleton: "skeleton", UnitTypeSplitCompile: "split_compile",
	UnitTypeSplitType: "split_type", UnitTypeLoUser: "lo_user", UnitTypeHiUser: "hi_user",
}

// UnitTypeName returns the DWARF mnemonic for ut, minus the "DW_UT_"
// prefix, and false when ut is not one this decoder recognizes.
func UnitTypeName(ut UnitType) (string, bool) {
	name, ok := unitTypeNames[ut]
	return name, ok
}

func (ut UnitType) String() string {
	if name, ok := unitTypeNames[ut]; ok {
		return "DW_UT_" + name
	}
	return fmt.Sprintf("DW_UT_unknown_%#x", uint8(ut))
}

// hasChildrenName reports the mnemonic for the single-byte DW_CHILDREN_*
// flag that follows an abbreviation's tag. any value other than 0 or 1 is
// an ErrInvariantViolation (spec.md §4.2).
func hasChildrenName(v bool) string {
	if v {
		return "DW_CHILDREN_yes"
	}
	return "DW_CHILDREN_no"
}

// standard line-number-program opcodes. values taken from section 6.2.5.2
// of the DWARF4/5 Standard.
const (
	LineOpCopy             = 0x01
	LineOpAdvancePC        = 0x02
	LineOpAdvanceLine      = 0x03
	LineOpSetFile          = 0x04
	LineOpSetColumn        = 0x05
	LineOpNegateStmt       = 0x06
	LineOpSetBasicBlock    = 0x07
	LineOpConstAddPC       = 0x08
	LineOpFixedAdvancePC   = 0x09
	LineOpSetPrologueEnd   = 0x0a
	LineOpSetEpilogueBegin = 0x0b
	LineOpSetISA           = 0x0c
)

var standardLineOpNames = map[int]string{
	LineOpCopy: "copy", LineOpAdvancePC: "advance_pc", LineOpAdvanceLine: "advance_line",
	LineOpSetFile: "set_file", LineOpSetColumn: "set_column", LineOpNegateStmt: "negate_stmt",
	LineOpSetBasicBlock: "set_basic_block", LineOpConstAddPC: "const_add_pc",
	LineOpFixedAdvancePC: "fixed_advance_pc", LineOpSetPrologueEnd: "set_prologue_end",
	LineOpSetEpilogueBegin: "set_epilogue_begin", LineOpSetISA: "set_isa",
}

// StandardLineOpName returns the DWARF mnemonic for a standard
// line-number-program opcode, minus the "DW_LNS_" prefix.
func StandardLineOpName(opcode int) (string, bool) {
	name, ok := standardLineOpNames[opcode]
	return name, ok
}

// extended line-number-program opcodes. values taken from section 6.2.5.3
// of the DWARF4/5 Standard.
const (
	LineExtEndSequence      = 0x01
	LineExtSetAddress       = 0x02
	LineExtDefineFile       = 0x03
	LineExtSetDiscriminator = 0x04
)

var extendedLineOpNames = map[int]string{
	LineExtEndSequence: "end_sequence", LineExtSetAddress: "set_address",
	LineExtDefineFile: "define_file", LineExtSetDiscriminator: "set_discriminator",
}

// ExtendedLineOpName returns the DWARF mnemonic for an extended
// line-number-program opcode, minus the "DW_LNE_" prefix.
func ExtendedLineOpName(opcode int) (string, bool) {
	name, ok := extendedLineOpNames[opcode]
	return name, ok
}

// LineContentType identifies one column of a DWARF5 directory or
// file-name table (DW_LNCT_*). values taken from section 6.2.4.1 of the
// DWARF5 Standard.
type LineContentType uint64

const (
	LNCTPath           LineContentType = 0x1
	LNCTDirectoryIndex LineContentType = 0x2
	LNCTTimestamp      LineContentType = 0x3
	LNCTSize           LineContentType = 0x4
	LNCTMD5            LineContentType = 0x5
)

var lineContentTypeNames = map[LineContentType]string{
	LNCTPath: "path", LNCTDirectoryIndex: "directory_index", LNCTTimestamp: "timestamp",
	LNCTSize: "size", LNCTMD5: "MD5",
}

// LineContentTypeName returns the DWARF mnemonic for ct, minus the
// "DW_LNCT_" prefix, and false when ct is not one this decoder recognizes.
func LineContentTypeName(ct LineContentType) (string, bool) {
	name, ok := lineContentTypeNames[ct]
	return name, ok
}

func (ct LineContentType) String() string {
	if name, ok := lineContentTypeNames[ct]; ok {
		return "DW_LNCT_" + name
	}
	return fmt.Sprintf("DW_LNCT_unknown_%#x", uint64(ct))
}
