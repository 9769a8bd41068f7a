package student

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-registry/internal/logging"
	"github.com/aanand-mishra/student-registry/internal/students"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/utils/response"
)

var errNoInput = errors.New("No input data provided")

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students.
//
// Request body:
//
//	{ "first_name": "Ada", "last_name": "Lovelace", "email": "ada@example.com" }
//
// Responses:
//
//	201 Created      the stored record, with id and registration_date
//	400 Bad Request  no body, malformed JSON, or a required field missing
//	409 Conflict     email already registered
//	500 Internal     any other storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func New(registry Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())
		log.Info("creating a student")

		in, err := decodeStudentInput(r.Body)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		student, err := registry.Create(r.Context(), in)
		if err != nil {
			var verr *students.ValidationError
			switch {
			case errors.As(err, &verr):
				log.Info("rejected registration", slog.String("reason", verr.Detail()))
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			case errors.Is(err, students.ErrDuplicateEmail):
				log.Info("rejected duplicate email")
				response.WriteJSON(w, http.StatusConflict, response.GeneralError(err))
			default:
				log.Error("error creating student", slog.String("error", err.Error()))
				response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			}
			return
		}

		log.Info("student created", slog.Int64("id", student.ID))
		response.WriteJSON(w, http.StatusCreated, student)
	}
}

// decodeStudentInput reads a JSON object from body. A missing body, a JSON
// null and an empty object all count as no input.
func decodeStudentInput(body io.Reader) (types.StudentInput, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return types.StudentInput{}, errNoInput
		}
		return types.StudentInput{}, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return types.StudentInput{}, fmt.Errorf("request body must be a JSON object: %w", err)
	}
	if len(fields) == 0 {
		return types.StudentInput{}, errNoInput
	}

	var in types.StudentInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return types.StudentInput{}, err
	}

	return in, nil
}

// GetByID handles GET /api/students/{id}.
//
//	200 OK         the record
//	404 Not Found  { "status": "error", "error": "Student not found" }
func GetByID(registry Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(students.ErrNotFound))
			return
		}
		log.Info("getting a student", slog.Int64("id", id))

		student, err := registry.Get(r.Context(), id)
		if errors.Is(err, students.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.GeneralError(err))
			return
		}
		if err != nil {
			log.Error("error getting student", slog.Int64("id", id), slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// GetList handles GET /api/students. The array is newest registration first
// and is [] when there are no students.
func GetList(registry Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())
		log.Info("getting all students")

		list, err := registry.List(r.Context())
		if err != nil {
			log.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, list)
	}
}

// Delete handles DELETE /api/students/{id}. It answers 200 whether or not
// the record existed.
func Delete(registry Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}
		log.Info("deleting a student", slog.Int64("id", id))

		if err := registry.Delete(r.Context(), id); err != nil {
			log.Error("error deleting student", slog.Int64("id", id), slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		log.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.Response{Status: response.StatusDeleted})
	}
}
