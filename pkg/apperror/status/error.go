package status

// ErrorCode is a numeric code to classify API errors in a stable way
type ErrorCode int

// Reserved ranges by domain:
//   0-999:     Match client errors
//   1000-1999: Match internal errors

const (
	BadRequestBase    ErrorCode = 0
	InternalErrorBase ErrorCode = 1000
)

// Match client/validation errors start at *000
const (
	MatchInvalidRequestBody ErrorCode = BadRequestBase + iota // 0
	MatchMissingQuery                                         // 1
	MatchInvalidCandidates                                    // 2
)

// Match internal errors start at 1000
const (
	MatchInternal       ErrorCode = InternalErrorBase + iota // 1000
	MatchBackendFailed                                       // 1001
	MatchBackendTimeout                                      // 1002
)

const (
	ErrorCodeInternal ErrorCode = 9000
)
