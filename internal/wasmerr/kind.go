// Package wasmerr defines the closed error taxonomy the decoder and
// validator report through: every failure is an ErrorKind paired with the
// byte offset of the cursor at the start of the failing operation.
package wasmerr

// ErrorKind enumerates every way a module can fail to decode or validate.
// The set is closed: a new failure mode requires a new release, not a
// caller-supplied string.
type ErrorKind int

const (
	_ ErrorKind = iota

	// Preamble
	IncompletePreamble
	MalformedMagicNumber
	InvalidMagicNumber
	MalformedVersionNumber
	InvalidVersionNumber

	// Sections
	IncompleteSection
	SectionAlreadyDefined
	UnsupportedSection
	MalformedSectionId
	SectionPayloadDoesNotMatchPayloadLength

	// Custom section
	IncompleteCustomSection
	MalformedPayloadLengthInCustomSection
	MalformedNameLengthInCustomSection

	// Type section
	IncompleteTypeSection
	MalformedPayloadLengthInTypeSection
	MalformedEntryCountInTypeSection
	EntriesDoNotMatchEntryCountInTypeSection
	MalformedTypeInTypeSection
	UnsupportedTypeInTypeSection

	// Import section
	IncompleteImportSection
	MalformedPayloadLengthInImportSection
	MalformedEntryCountInImportSection
	MalformedEntryInImportSection

	// Function section
	IncompleteFunctionSection
	MalformedPayloadLengthInFunctionSection
	MalformedEntryCountInFunctionSection
	MalformedEntryInFunctionSection

	// Table section
	IncompleteTableSection
	MalformedPayloadLengthInTableSection
	MalformedEntryCountInTableSection
	MalformedEntryInTableSection

	// Memory section
	IncompleteMemorySection
	MalformedPayloadLengthInMemorySection
	MalformedEntryCountInMemorySection
	MalformedEntryInMemorySection

	// Global section
	IncompleteGlobalSection
	MalformedPayloadLengthInGlobalSection
	MalformedEntryCountInGlobalSection
	MalformedEntryInGlobalSection

	// Export section
	IncompleteExportSection
	MalformedPayloadLengthInExportSection
	MalformedEntryCountInExportSection
	MalformedEntryInExportSection

	// Start section
	IncompleteStartSection
	MalformedPayloadLengthInStartSection
	MalformedFunctionIndexInStartSection

	// Element section
	IncompleteElementSection
	MalformedPayloadLengthInElementSection
	MalformedEntryCountInElementSection
	MalformedEntryInElementSection

	// Code section
	IncompleteCodeSection
	MalformedPayloadLengthInCodeSection
	MalformedBodyCountInCodeSection
	MalformedBodyInCodeSection

	// Data section
	IncompleteDataSection
	MalformedPayloadLengthInDataSection
	MalformedEntryCountInDataSection
	MalformedEntryInDataSection

	// Import entry
	IncompleteImportEntry
	MalformedModuleNameLengthInImportEntry
	ModuleStringDoesNotMatchModuleLengthInImportEntry
	MalformedFieldNameLengthInImportEntry
	FieldStringDoesNotMatchFieldLengthInImportEntry
	MalformedImportTypeInImportEntry
	InvalidImportTypeInImportEntry

	// Function import
	IncompleteFunctionImport
	MalformedTypeIndexInFunctionImport
	InvalidTypeIndexInFunctionImport

	// Table import
	IncompleteTableImport
	MalformedElementTypeInTableImport
	MalformedFlagsInTableImport
	MalformedMinimumInTableImport
	MalformedMaximumInTableImport
	MalformedLimitsInTableImport

	// Memory import
	IncompleteMemoryImport
	MalformedFlagsInMemoryImport
	MalformedMinimumInMemoryImport
	MalformedMaximumInMemoryImport
	MalformedLimitsInMemoryImport

	// Global import
	IncompleteGlobalImport
	MalformedContentTypeInGlobalImport
	MalformedMutabilityInGlobalImport

	// Function type
	IncompleteFunctionType
	MalformedParamCountInFunctionType
	ParamsDoNotMatchParamCountInFunctionType
	MalformedParamTypeInFunctionType
	MalformedReturnCountInFunctionType
	MalformedReturnTypeInFunctionType
	ReturnTypeDoesNotMatchReturnCountInFunctionType
	UnsupportedMultiValueReturnInFunctionType

	// Table entry
	IncompleteTableEntry
	MalformedElementTypeInTableEntry
	InvalidElementTypeInTableEntry
	MalformedLimitsInTableEntry
	MalformedMaximumInTableEntry
	MalformedMinimumInTableEntry
	MalformedFlagsInTableEntry

	// Memory entry
	IncompleteMemoryEntry
	MalformedLimitsInMemoryEntry
	MalformedMaximumInMemoryEntry
	MalformedMinimumInMemoryEntry
	MalformedFlagsInMemoryEntry

	// Global entry
	IncompleteGlobalEntry
	MalformedContentTypeInGlobalEntry
	MalformedMutabilityInGlobalEntry

	// Export entry
	IncompleteExportEntry
	MalformedNameLengthInExportEntry
	MalformedExportKindInExportEntry
	InvalidExportTypeInExportEntry
	MalformedExportIndexInExportEntry

	// Element entry
	IncompleteElementEntry
	MalformedInstructionInElementEntry
	MalformedTableIndexInElementEntry
	MalformedFunctionCountInElementEntry
	MalformedFunctionIndexInElementEntry

	// Function body
	IncompleteFunctionBody
	MalformedBodySizeInFunctionBody
	BodySizeDoesNotMatchContentOfFunctionBody

	// Local entry
	IncompleteLocalEntry
	MalformedCountInLocalEntry
	MalformedLocalTypeInLocalEntry

	// Instructions
	IncompleteExpression
	MalformedOpcodeInExpression
	MalformedEndByteInExpression

	// Data entry
	IncompleteDataEntry
	MalformedMemoryIndexInDataEntry
	MalformedInstructionInDataEntry
	MalformedByteCountInDataEntry

	// Limits
	IncompleteLimits
	MalformedFlagsInLimits
	MalformedMinimumInLimits
	MalformedMaximumInLimits

	// Storage primitives
	BufferEndReached
	MalformedVaruint1
	MalformedVaruint7
	MalformedVarint7
	MalformedVaruint32
	MalformedVarint32
	MalformedVarint64

	// Types
	InvalidValueType
	InvalidImportType

	// Variables
	LocalDoesNotExist
	GlobalDoesNotExist
	FunctionDoesNotExist
	TableDoesNotExist
	MemoryDoesNotExist

	// Operators
	UnsupportedOperator
	MismatchedOperandTypes
	MismatchedFunctionSignature
	MismatchedFunctionReturnSignature
	MismatchedBlockResultSignature

	// Memory operators
	IncompleteMemoryOperator
	MalformedAlignmentInMemoryOperator
	MalformedOffsetInMemoryOperator
	MisalignedMemoryOperator
)

var kindNames = map[ErrorKind]string{
	IncompletePreamble:     "IncompletePreamble",
	MalformedMagicNumber:   "MalformedMagicNumber",
	InvalidMagicNumber:     "InvalidMagicNumber",
	MalformedVersionNumber: "MalformedVersionNumber",
	InvalidVersionNumber:   "InvalidVersionNumber",

	IncompleteSection:                       "IncompleteSection",
	SectionAlreadyDefined:                   "SectionAlreadyDefined",
	UnsupportedSection:                      "UnsupportedSection",
	MalformedSectionId:                      "MalformedSectionId",
	SectionPayloadDoesNotMatchPayloadLength: "SectionPayloadDoesNotMatchPayloadLength",

	IncompleteCustomSection:                "IncompleteCustomSection",
	MalformedPayloadLengthInCustomSection:  "MalformedPayloadLengthInCustomSection",
	MalformedNameLengthInCustomSection:     "MalformedNameLengthInCustomSection",

	IncompleteTypeSection:                    "IncompleteTypeSection",
	MalformedPayloadLengthInTypeSection:      "MalformedPayloadLengthInTypeSection",
	MalformedEntryCountInTypeSection:         "MalformedEntryCountInTypeSection",
	EntriesDoNotMatchEntryCountInTypeSection: "EntriesDoNotMatchEntryCountInTypeSection",
	MalformedTypeInTypeSection:               "MalformedTypeInTypeSection",
	UnsupportedTypeInTypeSection:              "UnsupportedTypeInTypeSection",

	IncompleteImportSection:               "IncompleteImportSection",
	MalformedPayloadLengthInImportSection: "MalformedPayloadLengthInImportSection",
	MalformedEntryCountInImportSection:    "MalformedEntryCountInImportSection",
	MalformedEntryInImportSection:         "MalformedEntryInImportSection",

	IncompleteFunctionSection:               "IncompleteFunctionSection",
	MalformedPayloadLengthInFunctionSection: "MalformedPayloadLengthInFunctionSection",
	MalformedEntryCountInFunctionSection:    "MalformedEntryCountInFunctionSection",
	MalformedEntryInFunctionSection:         "MalformedEntryInFunctionSection",

	IncompleteTableSection:               "IncompleteTableSection",
	MalformedPayloadLengthInTableSection: "MalformedPayloadLengthInTableSection",
	MalformedEntryCountInTableSection:    "MalformedEntryCountInTableSection",
	MalformedEntryInTableSection:         "MalformedEntryInTableSection",

	IncompleteMemorySection:               "IncompleteMemorySection",
	MalformedPayloadLengthInMemorySection: "MalformedPayloadLengthInMemorySection",
	MalformedEntryCountInMemorySection:    "MalformedEntryCountInMemorySection",
	MalformedEntryInMemorySection:         "MalformedEntryInMemorySection",

	IncompleteGlobalSection:               "IncompleteGlobalSection",
	MalformedPayloadLengthInGlobalSection: "MalformedPayloadLengthInGlobalSection",
	MalformedEntryCountInGlobalSection:    "MalformedEntryCountInGlobalSection",
	MalformedEntryInGlobalSection:         "MalformedEntryInGlobalSection",

	IncompleteExportSection:               "IncompleteExportSection",
	MalformedPayloadLengthInExportSection: "MalformedPayloadLengthInExportSection",
	MalformedEntryCountInExportSection:    "MalformedEntryCountInExportSection",
	MalformedEntryInExportSection:         "MalformedEntryInExportSection",

	IncompleteStartSection:                 "IncompleteStartSection",
	MalformedPayloadLengthInStartSection:   "MalformedPayloadLengthInStartSection",
	MalformedFunctionIndexInStartSection:   "MalformedFunctionIndexInStartSection",

	IncompleteElementSection:               "IncompleteElementSection",
	MalformedPayloadLengthInElementSection: "MalformedPayloadLengthInElementSection",
	MalformedEntryCountInElementSection:    "MalformedEntryCountInElementSection",
	MalformedEntryInElementSection:         "MalformedEntryInElementSection",

	IncompleteCodeSection:               "IncompleteCodeSection",
	MalformedPayloadLengthInCodeSection: "MalformedPayloadLengthInCodeSection",
	MalformedBodyCountInCodeSection:     "MalformedBodyCountInCodeSection",
	MalformedBodyInCodeSection:          "MalformedBodyInCodeSection",

	IncompleteDataSection:               "IncompleteDataSection",
	MalformedPayloadLengthInDataSection: "MalformedPayloadLengthInDataSection",
	MalformedEntryCountInDataSection:    "MalformedEntryCountInDataSection",
	MalformedEntryInDataSection:         "MalformedEntryInDataSection",

	IncompleteImportEntry: "IncompleteImportEntry",
	MalformedModuleNameLengthInImportEntry:            "MalformedModuleNameLengthInImportEntry",
	ModuleStringDoesNotMatchModuleLengthInImportEntry: "ModuleStringDoesNotMatchModuleLengthInImportEntry",
	MalformedFieldNameLengthInImportEntry:             "MalformedFieldNameLengthInImportEntry",
	FieldStringDoesNotMatchFieldLengthInImportEntry:   "FieldStringDoesNotMatchFieldLengthInImportEntry",
	MalformedImportTypeInImportEntry:                  "MalformedImportTypeInImportEntry",
	InvalidImportTypeInImportEntry:                    "InvalidImportTypeInImportEntry",

	IncompleteFunctionImport:            "IncompleteFunctionImport",
	MalformedTypeIndexInFunctionImport:  "MalformedTypeIndexInFunctionImport",
	InvalidTypeIndexInFunctionImport:    "InvalidTypeIndexInFunctionImport",

	IncompleteTableImport:             "IncompleteTableImport",
	MalformedElementTypeInTableImport: "MalformedElementTypeInTableImport",
	MalformedFlagsInTableImport:       "MalformedFlagsInTableImport",
	MalformedMinimumInTableImport:     "MalformedMinimumInTableImport",
	MalformedMaximumInTableImport:     "MalformedMaximumInTableImport",
	MalformedLimitsInTableImport:      "MalformedLimitsInTableImport",

	IncompleteMemoryImport:         "IncompleteMemoryImport",
	MalformedFlagsInMemoryImport:   "MalformedFlagsInMemoryImport",
	MalformedMinimumInMemoryImport: "MalformedMinimumInMemoryImport",
	MalformedMaximumInMemoryImport: "MalformedMaximumInMemoryImport",
	MalformedLimitsInMemoryImport:  "MalformedLimitsInMemoryImport",

	IncompleteGlobalImport:             "IncompleteGlobalImport",
	MalformedContentTypeInGlobalImport: "MalformedContentTypeInGlobalImport",
	MalformedMutabilityInGlobalImport:  "MalformedMutabilityInGlobalImport",

	IncompleteFunctionType:                           "IncompleteFunctionType",
	MalformedParamCountInFunctionType:                "MalformedParamCountInFunctionType",
	ParamsDoNotMatchParamCountInFunctionType:         "ParamsDoNotMatchParamCountInFunctionType",
	MalformedParamTypeInFunctionType:                 "MalformedParamTypeInFunctionType",
	MalformedReturnCountInFunctionType:                "MalformedReturnCountInFunctionType",
	MalformedReturnTypeInFunctionType:                 "MalformedReturnTypeInFunctionType",
	ReturnTypeDoesNotMatchReturnCountInFunctionType:   "ReturnTypeDoesNotMatchReturnCountInFunctionType",
	UnsupportedMultiValueReturnInFunctionType:         "UnsupportedMultiValueReturnInFunctionType",

	IncompleteTableEntry:             "IncompleteTableEntry",
	MalformedElementTypeInTableEntry: "MalformedElementTypeInTableEntry",
	InvalidElementTypeInTableEntry:   "InvalidElementTypeInTableEntry",
	MalformedLimitsInTableEntry:      "MalformedLimitsInTableEntry",
	MalformedMaximumInTableEntry:     "MalformedMaximumInTableEntry",
	MalformedMinimumInTableEntry:     "MalformedMinimumInTableEntry",
	MalformedFlagsInTableEntry:       "MalformedFlagsInTableEntry",

	IncompleteMemoryEntry:         "IncompleteMemoryEntry",
	MalformedLimitsInMemoryEntry:  "MalformedLimitsInMemoryEntry",
	MalformedMaximumInMemoryEntry: "MalformedMaximumInMemoryEntry",
	MalformedMinimumInMemoryEntry: "MalformedMinimumInMemoryEntry",
	MalformedFlagsInMemoryEntry:   "MalformedFlagsInMemoryEntry",

	IncompleteGlobalEntry:             "IncompleteGlobalEntry",
	MalformedContentTypeInGlobalEntry: "MalformedContentTypeInGlobalEntry",
	MalformedMutabilityInGlobalEntry:  "MalformedMutabilityInGlobalEntry",

	IncompleteExportEntry:             "IncompleteExportEntry",
	MalformedNameLengthInExportEntry:  "MalformedNameLengthInExportEntry",
	MalformedExportKindInExportEntry:  "MalformedExportKindInExportEntry",
	InvalidExportTypeInExportEntry:    "InvalidExportTypeInExportEntry",
	MalformedExportIndexInExportEntry: "MalformedExportIndexInExportEntry",

	IncompleteElementEntry:               "IncompleteElementEntry",
	MalformedInstructionInElementEntry:   "MalformedInstructionInElementEntry",
	MalformedTableIndexInElementEntry:    "MalformedTableIndexInElementEntry",
	MalformedFunctionCountInElementEntry: "MalformedFunctionCountInElementEntry",
	MalformedFunctionIndexInElementEntry: "MalformedFunctionIndexInElementEntry",

	IncompleteFunctionBody:                    "IncompleteFunctionBody",
	MalformedBodySizeInFunctionBody:           "MalformedBodySizeInFunctionBody",
	BodySizeDoesNotMatchContentOfFunctionBody: "BodySizeDoesNotMatchContentOfFunctionBody",

	IncompleteLocalEntry:          "IncompleteLocalEntry",
	MalformedCountInLocalEntry:    "MalformedCountInLocalEntry",
	MalformedLocalTypeInLocalEntry: "MalformedLocalTypeInLocalEntry",

	IncompleteExpression:         "IncompleteExpression",
	MalformedOpcodeInExpression:  "MalformedOpcodeInExpression",
	MalformedEndByteInExpression: "MalformedEndByteInExpression",

	IncompleteDataEntry:              "IncompleteDataEntry",
	MalformedMemoryIndexInDataEntry:  "MalformedMemoryIndexInDataEntry",
	MalformedInstructionInDataEntry:  "MalformedInstructionInDataEntry",
	MalformedByteCountInDataEntry:    "MalformedByteCountInDataEntry",

	IncompleteLimits:         "IncompleteLimits",
	MalformedFlagsInLimits:   "MalformedFlagsInLimits",
	MalformedMinimumInLimits: "MalformedMinimumInLimits",
	MalformedMaximumInLimits: "MalformedMaximumInLimits",

	BufferEndReached:   "BufferEndReached",
	MalformedVaruint1:  "MalformedVaruint1",
	MalformedVaruint7:  "MalformedVaruint7",
	MalformedVarint7:   "MalformedVarint7",
	MalformedVaruint32: "MalformedVaruint32",
	MalformedVarint32:  "MalformedVarint32",
	MalformedVarint64:  "MalformedVarint64",

	InvalidValueType:  "InvalidValueType",
	InvalidImportType: "InvalidImportType",

	LocalDoesNotExist:    "LocalDoesNotExist",
	GlobalDoesNotExist:   "GlobalDoesNotExist",
	FunctionDoesNotExist: "FunctionDoesNotExist",
	TableDoesNotExist:    "TableDoesNotExist",
	MemoryDoesNotExist:   "MemoryDoesNotExist",

	UnsupportedOperator:                "UnsupportedOperator",
	MismatchedOperandTypes:             "MismatchedOperandTypes",
	MismatchedFunctionSignature:        "MismatchedFunctionSignature",
	MismatchedFunctionReturnSignature:  "MismatchedFunctionReturnSignature",
	MismatchedBlockResultSignature:     "MismatchedBlockResultSignature",

	IncompleteMemoryOperator:            "IncompleteMemoryOperator",
	MalformedAlignmentInMemoryOperator:  "MalformedAlignmentInMemoryOperator",
	MalformedOffsetInMemoryOperator:     "MalformedOffsetInMemoryOperator",
	MisalignedMemoryOperator:            "MisalignedMemoryOperator",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UnknownErrorKind"
}
