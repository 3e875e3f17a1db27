// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"

	ErrCodeCompetitorSearchFailed  ErrorCode = "COMPETITOR_SEARCH_FAILED"
	ErrCodeCompetitorSearchTimeout ErrorCode = "COMPETITOR_SEARCH_TIMEOUT"
	ErrCodeFailureSearchFailed     ErrorCode = "FAILURE_SEARCH_FAILED"
	ErrCodeTrendLookupFailed       ErrorCode = "TREND_LOOKUP_FAILED"
	ErrCodeDependencyCheckFailed   ErrorCode = "DEPENDENCY_CHECK_FAILED"
	ErrCodeNewsFetchFailed         ErrorCode = "NEWS_FETCH_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeAnalysisStoreFailed      ErrorCode = "ANALYSIS_STORE_FAILED"
	ErrCodeReportIndexFailed        ErrorCode = "REPORT_INDEX_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInputValidationFailedError creates a non-retryable input validation error.
// Bad startup input never fixes itself on retry.
func NewInputValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputValidationFailed,
		Message:   "Startup input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompetitorSearchFailedError creates a retryable competitor search error.
func NewCompetitorSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCompetitorSearchFailed,
		Message:   "Competitor search API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCompetitorSearchTimeoutError creates a non-retryable (degrades to
// fallback) competitor search timeout error.
func NewCompetitorSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeCompetitorSearchTimeout,
		Message:   "Competitor search timeout",
		Details:   "Search call exceeded timeout threshold",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewFailureSearchFailedError creates a retryable failed-startup search error.
func NewFailureSearchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFailureSearchFailed,
		Message:   "Failed startup search API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTrendLookupFailedError creates a retryable trend lookup error.
func NewTrendLookupFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTrendLookupFailed,
		Message:   "Market trend lookup error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDependencyCheckFailedError creates a retryable dependency check error.
func NewDependencyCheckFailedError(dependency string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDependencyCheckFailed,
		Message:   "Dependency health check error",
		Details:   fmt.Sprintf("dependency: %s, error: %s", dependency, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNewsFetchFailedError creates a retryable news fetch error.
func NewNewsFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNewsFetchFailed,
		Message:   "Industry news fetch error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalysisStoreFailedError creates a retryable analysis persistence error.
func NewAnalysisStoreFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisStoreFailed,
		Message:   "Analysis store operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewReportIndexFailedError creates a retryable report indexing error.
func NewReportIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReportIndexFailed,
		Message:   "Report index operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// Generic constructors

func NewBusinessRuleError(message, details string) *StandardError {
	return &StandardError{
		Code:      "BUSINESS_RULE_VIOLATION",
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewExternalServiceError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "EXTERNAL_SERVICE_ERROR",
		Message:   fmt.Sprintf("External service '%s' error", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewTimeoutError(service string, err error) *StandardError {
	return &StandardError{
		Code:      "TIMEOUT_ERROR",
		Message:   fmt.Sprintf("Service '%s' timeout", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return &StandardError{
		Code:      "RESOURCE_NOT_FOUND",
		Message:   fmt.Sprintf("Resource not found in %s", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes. The
// BPMN models use the same strings.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInputValidationFailed:    "INPUT_VALIDATION_FAILED",
	ErrCodeCompetitorSearchFailed:   "COMPETITOR_SEARCH_FAILED",
	ErrCodeCompetitorSearchTimeout:  "COMPETITOR_SEARCH_TIMEOUT",
	ErrCodeFailureSearchFailed:      "FAILURE_SEARCH_FAILED",
	ErrCodeTrendLookupFailed:        "TREND_LOOKUP_FAILED",
	ErrCodeDependencyCheckFailed:    "DEPENDENCY_CHECK_FAILED",
	ErrCodeNewsFetchFailed:          "NEWS_FETCH_FAILED",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeAnalysisStoreFailed:      "ANALYSIS_STORE_FAILED",
	ErrCodeReportIndexFailed:        "REPORT_INDEX_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeAnalysisStoreFailed,
		ErrCodeReportIndexFailed,
		ErrCodeNotificationSendFailed:
		return 3 // Retryable technical errors

	case ErrCodeCompetitorSearchFailed,
		ErrCodeFailureSearchFailed,
		ErrCodeTrendLookupFailed,
		ErrCodeDependencyCheckFailed,
		ErrCodeNewsFetchFailed:
		return 2 // External lookups: limited retry before fallback

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code) // Fallback
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "LOOKUP") ||
		strings.Contains(codeStr, "DEPENDENCY") || strings.Contains(codeStr, "NEWS"):
		return "ENRICHMENT"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "STORE") ||
		strings.Contains(codeStr, "INDEX"):
		return "STORAGE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	default:
		return "OTHER"
	}
}
