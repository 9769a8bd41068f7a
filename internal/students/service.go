// Package students is the record service of the registry: it validates
// registrations, talks to storage, and turns storage failures into the
// error kinds the HTTP layer renders.
//
// Error kinds returned by Service methods:
//
//	*ValidationError   required field missing; nothing written
//	ErrDuplicateEmail  email already registered; nothing written
//	ErrNotFound        Get found no record
//	*StorageError      anything else, message passed through verbatim
package students

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
)

// Service implements the registry operations on top of a storage backend.
type Service struct {
	store    storage.Storage
	validate *validator.Validate
}

// New returns a Service backed by store.
func New(store storage.Storage) *Service {
	v := validator.New()

	// Report JSON field names ("first_name") instead of Go ones ("FirstName").
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{store: store, validate: v}
}

// Create validates in and stores it as a new record.
func (s *Service) Create(ctx context.Context, in types.StudentInput) (types.Student, error) {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return types.Student{}, newValidationError(verrs)
		}
		return types.Student{}, &StorageError{Op: "create", Err: err}
	}

	student, err := s.store.CreateStudent(ctx, in)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return types.Student{}, ErrDuplicateEmail
		}
		return types.Student{}, &StorageError{Op: "create", Err: err}
	}

	return student, nil
}

// List returns every record, newest registration first.
func (s *Service) List(ctx context.Context) ([]types.Student, error) {
	list, err := s.store.GetStudents(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return list, nil
}

// Get returns the record with the given id.
func (s *Service) Get(ctx context.Context, id int64) (types.Student, error) {
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.Student{}, ErrNotFound
		}
		return types.Student{}, &StorageError{Op: "get", Err: err}
	}
	return student, nil
}

// Delete removes the record with the given id. It succeeds whether or not
// the record existed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteStudentByID(ctx, id); err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	return nil
}
