// Package student contains the HTTP handlers for the Student resource, in two
// flavours over the same registry operations:
//
//   - api.go   JSON endpoints under /api/students
//   - pages.go HTML form and pages, with flash messages and redirects
//
// Handlers are built by factory functions that take their dependencies and
// return the http.HandlerFunc the router needs:
//
//	r.Post("/api/students", student.New(registry))
package student

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aanand-mishra/student-registry/internal/types"
)

// Registry is what the handlers need from the students service.
type Registry interface {
	Create(ctx context.Context, in types.StudentInput) (types.Student, error)
	List(ctx context.Context) ([]types.Student, error)
	Get(ctx context.Context, id int64) (types.Student, error)
	Delete(ctx context.Context, id int64) error
}

var errBadID = errors.New("invalid id: must be an integer")

// pathID reads the {id} URL parameter. Routes constrain it to digits, so the
// only failure left is a value too large for int64.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errBadID
	}
	return id, nil
}
