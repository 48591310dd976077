package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeMissingParameter     ErrorCode = 102
	ErrCodeInvalidVersion       ErrorCode = 103

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeParseFailed           ErrorCode = 203
	ErrCodeWriteFailed           ErrorCode = 204

	// Strategy errors (300-399)
	ErrCodeStrategyNotFound      ErrorCode = 300
	ErrCodeStrategyAlreadyExists ErrorCode = 301

	// Benchmark errors (400-499)
	ErrCodeBenchNoStrategies   ErrorCode = 400
	ErrCodeBenchNoSizes        ErrorCode = 401
	ErrCodeBenchNotEnoughTicks ErrorCode = 402
	ErrCodeProfileFailed       ErrorCode = 403

	// Report errors (500-599)
	ErrCodeReportWriteFailed ErrorCode = 500
	ErrCodePlotFailed        ErrorCode = 501

	// Result store errors (600-699)
	ErrCodeStoreInitFailed  ErrorCode = 600
	ErrCodeStoreWriteFailed ErrorCode = 601
	ErrCodeStoreQueryFailed ErrorCode = 602
)
