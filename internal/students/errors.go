package students

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrDuplicateEmail is returned by Create when another record already
	// uses the email.
	ErrDuplicateEmail = errors.New("Email already exists")

	// ErrNotFound is returned by Get when no record has the id.
	ErrNotFound = errors.New("Student not found")
)

// requiredFieldsMessage is shown whenever any required field is missing.
const requiredFieldsMessage = "First name, last name, and email are required"

// ValidationError reports missing required fields. It is raised before
// storage is touched.
type ValidationError struct {
	// Fields holds the JSON names of the missing fields, in struct order.
	Fields []string
}

func (e *ValidationError) Error() string {
	return requiredFieldsMessage
}

// Detail lists the offending fields, for logs.
func (e *ValidationError) Detail() string {
	return "missing: " + strings.Join(e.Fields, ", ")
}

// newValidationError converts validator's per-field errors.
func newValidationError(errs validator.ValidationErrors) *ValidationError {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field())
	}
	return &ValidationError{Fields: fields}
}

// StorageError is any persistence failure other than a duplicate or a miss.
// Its message is the underlying error's, unchanged.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
