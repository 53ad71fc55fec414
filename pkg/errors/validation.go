package errors

// ValidationError reports a caller mistake in the arguments passed to
// contentstore.Open — the class of failure that's wrong before any
// file is ever touched.
type ValidationError struct {
	*baseError

	// field names which configuration field or argument was bad, e.g.
	// "dir" for a missing store directory.
	field string
}

// NewValidationError creates a validation failure with the given code
// and message.
func NewValidationError(err error, code ErrorCode, msg string) *ValidationError {
	return &ValidationError{baseError: NewBaseError(err, code, msg)}
}

func (ve *ValidationError) WithMessage(msg string) *ValidationError {
	ve.baseError.WithMessage(msg)
	return ve
}

func (ve *ValidationError) WithCode(code ErrorCode) *ValidationError {
	ve.baseError.WithCode(code)
	return ve
}

func (ve *ValidationError) WithDetail(key string, value any) *ValidationError {
	ve.baseError.WithDetail(key, value)
	return ve
}

// WithField records which field failed validation.
func (ve *ValidationError) WithField(field string) *ValidationError {
	ve.field = field
	return ve
}

// Field returns the field that failed validation.
func (ve *ValidationError) Field() string {
	return ve.field
}

// NewRequiredFieldError reports a missing required argument, such as
// contentstore.Open being called with an empty directory path.
func NewRequiredFieldError(fieldName string) *ValidationError {
	return NewValidationError(
		nil,
		ErrorCodeInvalidInput,
		"required field is missing or empty",
	).WithField(fieldName)
}
