package ddex

// Stable error codes. These identifiers are part of the public contract:
// statistics, filtering and persisted results key on them.
const (
	// Document-level failures.
	CodeFileNotFound       = "FILE_NOT_FOUND"
	CodeFileReadError      = "FILE_READ_ERROR"
	CodeFileEncodingError  = "FILE_ENCODING_ERROR"
	CodeXMLSyntaxError     = "XML_SYNTAX_ERROR"
	CodeXMLParseError      = "XML_PARSE_ERROR"
	CodeBatchProcessing    = "BATCH_PROCESSING_ERROR"
	CodeSchemaNotFound     = "SCHEMA_NOT_FOUND"
	CodeSchemaLoadError    = "SCHEMA_LOAD_ERROR"
	CodeSchemaValidation   = "SCHEMA_VALIDATION_ERROR"
	CodeBusinessRule       = "BUSINESS_RULE_ERROR"
	CodeBusinessRuleFailed = "BUSINESS_RULE_PROCESSING_ERROR"

	// Identifiers.
	CodeEmptyGRid           = "EMPTY_GRID"
	CodeInvalidGRid         = "INVALID_GRID"
	CodeEmptyISRC           = "EMPTY_ISRC"
	CodeInvalidISRC         = "INVALID_ISRC"
	CodeSuspiciousISRCYear  = "SUSPICIOUS_ISRC_YEAR"
	CodeEmptyISAN           = "EMPTY_ISAN"
	CodeInvalidISAN         = "INVALID_ISAN"
	CodeEmptyVISAN          = "EMPTY_VISAN"
	CodeInvalidVISAN        = "INVALID_VISAN"
	CodeEmptyICPN           = "EMPTY_ICPN"
	CodeInvalidICPN         = "INVALID_ICPN"
	CodeInvalidICPNChecksum = "INVALID_ICPN_CHECKSUM"
	CodeDuplicateISRC       = "DUPLICATE_ISRC"
	CodeDuplicateGRid       = "DUPLICATE_GRID"

	// Durations, dates and codes.
	CodeInvalidDuration        = "INVALID_DURATION"
	CodeUnusuallyLongDuration  = "UNUSUALLY_LONG_DURATION"
	CodeUnusuallyShortDuration = "UNUSUALLY_SHORT_DURATION"
	CodeInvalidDate            = "INVALID_DATE"
	CodeFutureDate             = "FUTURE_DATE"
	CodeInvalidDateTime        = "INVALID_DATETIME"
	CodeInvalidTerritory       = "INVALID_TERRITORY"
	CodeUnknownTerritory       = "UNKNOWN_TERRITORY"
	CodeInvalidLanguage        = "INVALID_LANGUAGE"
	CodeUnknownLanguage        = "UNKNOWN_LANGUAGE"

	// Structure.
	CodeMissingMessageHeader = "MISSING_MESSAGE_HEADER"
	CodeMissingHeaderElement = "MISSING_HEADER_ELEMENT"
	CodeMissingReleaseList   = "MISSING_RELEASE_LIST"
	CodeMissingResourceList  = "MISSING_RESOURCE_LIST"
	CodeMissingResources     = "MISSING_RESOURCES"
	CodeMissingDuration      = "MISSING_DURATION"
	CodeMissingUseType       = "MISSING_USE_TYPE"
	CodeMissingTerritory     = "MISSING_TERRITORY"
	CodeUndefinedResourceRef = "UNDEFINED_RESOURCE_REFERENCE"
	CodeUnusedResource       = "UNUSED_RESOURCE"
	CodeUnusualBitRate       = "UNUSUAL_BITRATE"
	CodeInvalidBitRate       = "INVALID_BITRATE"

	// Observations.
	CodeVersionDetected     = "DDEX_VERSION_DETECTED"
	CodeMessageTypeDetected = "MESSAGE_TYPE_DETECTED"
)

// criticalCodes are the codes that stop business-rule evaluation: the rules
// assume a structurally sound tree and a loaded schema.
var criticalCodes = map[string]bool{
	CodeSchemaNotFound:  true,
	CodeSchemaLoadError: true,
	CodeXMLSyntaxError:  true,
	CodeXMLParseError:   true,
}

// IsCritical reports whether an issue code blocks business-rule validation.
func IsCritical(code string) bool {
	return criticalCodes[code]
}

// HasCritical reports whether any of the issues carries a critical code.
func HasCritical(issues []Issue) bool {
	for _, issue := range issues {
		if IsCritical(issue.Code) {
			return true
		}
	}
	return false
}
