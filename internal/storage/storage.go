// Package storage defines the Storage interface, the contract any database
// backend must satisfy to hold student records.
//
// Handlers and the students service depend only on this interface, so tests
// can swap in a fake and a different database only needs a new
// implementation.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// Error kinds a backend reports at the storage boundary. Backends wrap them
// with %w; callers match with errors.Is.
var (
	// ErrNotFound means no row matched the requested id.
	ErrNotFound = errors.New("storage: record not found")

	// ErrDuplicateKey means an insert violated the unique email constraint.
	// Nothing was written.
	ErrDuplicateKey = errors.New("storage: duplicate key")
)

// Storage is the database contract.
//
// Every method acquires its own connection and releases it before returning,
// on success and failure alike.
type Storage interface {
	// InitSchema creates the students table if it does not exist yet.
	// Calling it again is a no-op.
	InitSchema(ctx context.Context) error

	// CreateStudent inserts a new record and returns it as stored,
	// including the generated id and registration date.
	CreateStudent(ctx context.Context, in types.StudentInput) (types.Student, error)

	// GetStudentByID returns ErrNotFound when no record has the id.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudents returns every record, newest registration first.
	// Returns an empty slice (not nil) when the table is empty.
	GetStudents(ctx context.Context) ([]types.Student, error)

	// DeleteStudentByID removes the record if present. Deleting a missing
	// id is not an error.
	DeleteStudentByID(ctx context.Context, id int64) error

	// Close releases the underlying database handle.
	Close() error
}
