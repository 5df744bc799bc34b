package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeRateLimited        ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeMessagingError     ErrorCode = "COMMON_014"
	ErrCodeNotImplemented     ErrorCode = "COMMON_016"
)

// Substance catalog error codes
const (
	ErrCodeDataIntegrity      ErrorCode = "SUB_001"
	ErrCodeCatalogLoadFailed  ErrorCode = "SUB_002"
	ErrCodeSubstanceNotFound  ErrorCode = "SUB_003"
	ErrCodeCatalogUnsupported ErrorCode = "SUB_004"
)

// Scan error codes
const (
	ErrCodeEmptyIngredients ErrorCode = "SCN_001"
	ErrCodeProfileInvalid   ErrorCode = "SCN_002"
	ErrCodeHistoryInvalid   ErrorCode = "SCN_003"
)

// Short aliases used at call sites.
const (
	CodeOK            = ErrorCode("OK")
	CodeUnknown       = ErrorCode("UNKNOWN")
	CodeInternal      = ErrCodeInternal
	CodeInvalidParam  = ErrCodeBadRequest
	CodeNotFound      = ErrCodeNotFound
	CodeDatabaseError = ErrCodeDatabaseError

	CodeDataIntegrity     = ErrCodeDataIntegrity
	CodeCatalogLoadFailed = ErrCodeCatalogLoadFailed
	CodeSubstanceNotFound = ErrCodeSubstanceNotFound
	CodeEmptyIngredients  = ErrCodeEmptyIngredients
	CodeProfileInvalid    = ErrCodeProfileInvalid
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeMessagingError:     http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeDataIntegrity:      http.StatusInternalServerError,
	ErrCodeCatalogLoadFailed:  http.StatusInternalServerError,
	ErrCodeSubstanceNotFound:  http.StatusNotFound,
	ErrCodeCatalogUnsupported: http.StatusBadRequest,

	ErrCodeEmptyIngredients: http.StatusBadRequest,
	ErrCodeProfileInvalid:   http.StatusBadRequest,
	ErrCodeHistoryInvalid:   http.StatusBadRequest,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeRateLimited:        "rate limit exceeded, please retry later",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeMessagingError:     "messaging error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeDataIntegrity:      "substance catalog data integrity violation",
	ErrCodeCatalogLoadFailed:  "failed to load substance catalog",
	ErrCodeSubstanceNotFound:  "substance not found",
	ErrCodeCatalogUnsupported: "unsupported catalog format",

	ErrCodeEmptyIngredients: "please enter ingredients",
	ErrCodeProfileInvalid:   "invalid user profile",
	ErrCodeHistoryInvalid:   "invalid history query",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

//Personal.AI order the ending
