package waitlist

const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodePersistenceError   = "PERSISTENCE_ERROR"
	CodeNotificationFailed = "NOTIFICATION_FAILED"
	CodeConfigurationError = "CONFIGURATION_ERROR"
)

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details []FieldError

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FieldError is one violated rule of the submission schema.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
