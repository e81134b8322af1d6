package errors

// ErrorCode identifies an application error class independent of the HTTP
// status it maps to. The string form is what clients see in the response
// body, so values are stable.
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_PERMISSION_DENIED
	ErrorCode_FORBIDDEN
	ErrorCode_UNAUTHENTICATED
	ErrorCode_GONE

	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED
	ErrorCode_AUTH_INVALID_CREDENTIALS
	ErrorCode_AUTH_USER_NOT_FOUND
	ErrorCode_AUTH_USER_ALREADY_EXISTS
	ErrorCode_AUTH_RESET_TOKEN_INVALID

	ErrorCode_INTERVIEW_NOT_FOUND
	ErrorCode_INTERVIEW_FINALIZED
	ErrorCode_INTERVIEW_ACCESS_DENIED

	ErrorCode_SCHEDULE_NOT_FOUND
	ErrorCode_SCHEDULE_EXPIRED
	ErrorCode_SCHEDULE_EMAIL_MISMATCH

	ErrorCode_AI_GENERATION_FAILED
	ErrorCode_AI_EVALUATION_FAILED
	ErrorCode_AI_TRANSCRIPTION_FAILED
	ErrorCode_AI_SYNTHESIS_FAILED
	ErrorCode_AI_SERVICE_UNAVAILABLE
	ErrorCode_AI_QUOTA_EXCEEDED

	ErrorCode_RESUME_PARSE_FAILED
	ErrorCode_REPORT_GENERATION_FAILED

	ErrorCode_DB_CONNECTION_FAILED
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED

	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED
	ErrorCode_INTEGRATION_MAIL_FAILED

	ErrorCode_HTTP_OK
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                         "UNKNOWN",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                  "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:               "PERMISSION_DENIED",
	ErrorCode_FORBIDDEN:                       "FORBIDDEN",
	ErrorCode_UNAUTHENTICATED:                 "UNAUTHENTICATED",
	ErrorCode_GONE:                            "GONE",
	ErrorCode_AUTH_INVALID_TOKEN:              "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:              "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:        "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_USER_NOT_FOUND:             "AUTH_USER_NOT_FOUND",
	ErrorCode_AUTH_USER_ALREADY_EXISTS:        "AUTH_USER_ALREADY_EXISTS",
	ErrorCode_AUTH_RESET_TOKEN_INVALID:        "AUTH_RESET_TOKEN_INVALID",
	ErrorCode_INTERVIEW_NOT_FOUND:             "INTERVIEW_NOT_FOUND",
	ErrorCode_INTERVIEW_FINALIZED:             "INTERVIEW_FINALIZED",
	ErrorCode_INTERVIEW_ACCESS_DENIED:         "INTERVIEW_ACCESS_DENIED",
	ErrorCode_SCHEDULE_NOT_FOUND:              "SCHEDULE_NOT_FOUND",
	ErrorCode_SCHEDULE_EXPIRED:                "SCHEDULE_EXPIRED",
	ErrorCode_SCHEDULE_EMAIL_MISMATCH:         "SCHEDULE_EMAIL_MISMATCH",
	ErrorCode_AI_GENERATION_FAILED:            "AI_GENERATION_FAILED",
	ErrorCode_AI_EVALUATION_FAILED:            "AI_EVALUATION_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:         "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SYNTHESIS_FAILED:             "AI_SYNTHESIS_FAILED",
	ErrorCode_AI_SERVICE_UNAVAILABLE:          "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_QUOTA_EXCEEDED:               "AI_QUOTA_EXCEEDED",
	ErrorCode_RESUME_PARSE_FAILED:             "RESUME_PARSE_FAILED",
	ErrorCode_REPORT_GENERATION_FAILED:        "REPORT_GENERATION_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:            "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:           "DB_TRANSACTION_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_INTEGRATION_MAIL_FAILED:         "INTEGRATION_MAIL_FAILED",
	ErrorCode_HTTP_OK:                         "OK",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
