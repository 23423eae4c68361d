package dto

// Stable machine-readable reason codes carried alongside HTTP statuses.
const (
	ReasonInvalidArgument     = "INVALID_ARGUMENT"
	ReasonInvalidID           = "INVALID_ID"
	ReasonUserNotFound        = "USER_NOT_FOUND"
	ReasonProfileNotFound     = "PROFILE_NOT_FOUND"
	ReasonIdentityConflict    = "IDENTITY_CONFLICT"
	ReasonProfileNameExists   = "PROFILE_NAME_EXISTS"
	ReasonProfileLimitReached = "PROFILE_LIMIT_REACHED"
	ReasonDBUnavailable       = "DB_UNAVAILABLE"
	ReasonDBTimeout           = "DB_TIMEOUT"
	ReasonInternalError       = "INTERNAL_ERROR"
)

// FieldViolation points a validation error at a single request field.
type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

type ErrorResponse struct {
	Error   bool                   `json:"error"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message"`
	Fields  []FieldViolation       `json:"fields,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
