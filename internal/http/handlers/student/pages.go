package student

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/schema"

	"github.com/aanand-mishra/student-registry/internal/http/flash"
	"github.com/aanand-mishra/student-registry/internal/logging"
	"github.com/aanand-mishra/student-registry/internal/students"
	"github.com/aanand-mishra/student-registry/internal/types"
	"github.com/aanand-mishra/student-registry/internal/web/views"
)

// User-facing texts of the HTML flow.
const (
	msgRequired   = "First name, last name, and email are required!"
	msgDuplicate  = "Email already exists!"
	msgRegistered = "Student registered successfully!"
	msgNotFound   = "Student not found!"
	msgDeleted    = "Student deleted successfully!"
)

// formDecoder maps form keys to StudentInput via its schema tags. Keys the
// form does not send decode as empty strings.
var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// Index handles GET / by sending the browser to the registration form.
func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/register", http.StatusFound)
	}
}

// RegisterForm handles GET /register.
func RegisterForm(flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, views.Register(views.RegisterData{
			Flashes: flashes.Pop(w, r),
		}))
	}
}

// Register handles POST /register. A rejected submission re-displays the
// form with the error and the values entered; success redirects to the list.
func Register(registry Registry, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())
		log.Info("registering a student")

		var in types.StudentInput
		if err := r.ParseForm(); err != nil {
			rerender(w, r, in, "Error: "+err.Error())
			return
		}
		if err := formDecoder.Decode(&in, r.PostForm); err != nil {
			rerender(w, r, in, "Error: "+err.Error())
			return
		}

		student, err := registry.Create(r.Context(), in)
		if err != nil {
			var verr *students.ValidationError
			switch {
			case errors.As(err, &verr):
				log.Info("rejected registration", slog.String("reason", verr.Detail()))
				rerender(w, r, in, msgRequired)
			case errors.Is(err, students.ErrDuplicateEmail):
				log.Info("rejected duplicate email")
				rerender(w, r, in, msgDuplicate)
			default:
				log.Error("error registering student", slog.String("error", err.Error()))
				rerender(w, r, in, "Error: "+err.Error())
			}
			return
		}

		log.Info("student registered", slog.Int64("id", student.ID))
		addFlash(w, r, flashes, flash.CategorySuccess, msgRegistered)
		http.Redirect(w, r, "/students", http.StatusFound)
	}
}

func rerender(w http.ResponseWriter, r *http.Request, in types.StudentInput, msg string) {
	render(w, r, views.Register(views.RegisterData{Error: msg, Form: in}))
}

// List handles GET /students.
func List(registry Registry, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())

		list, err := registry.List(r.Context())
		if err != nil {
			log.Error("error listing students", slog.String("error", err.Error()))
			http.Error(w, "Error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		render(w, r, views.Students(views.StudentsData{
			Flashes:  flashes.Pop(w, r),
			Students: list,
		}))
	}
}

// Show handles GET /students/{id}. A missing record sends the browser back
// to the list with an error message.
func Show(registry Registry, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			addFlash(w, r, flashes, flash.CategoryError, msgNotFound)
			http.Redirect(w, r, "/students", http.StatusFound)
			return
		}

		student, err := registry.Get(r.Context(), id)
		if errors.Is(err, students.ErrNotFound) {
			addFlash(w, r, flashes, flash.CategoryError, msgNotFound)
			http.Redirect(w, r, "/students", http.StatusFound)
			return
		}
		if err != nil {
			log.Error("error getting student", slog.Int64("id", id), slog.String("error", err.Error()))
			http.Error(w, "Error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		render(w, r, views.StudentDetail(views.StudentDetailData{
			Flashes: flashes.Pop(w, r),
			Student: student,
		}))
	}
}

// Remove handles POST /students/delete/{id}.
func Remove(registry Registry, flashes *flash.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			addFlash(w, r, flashes, flash.CategoryError, msgNotFound)
			http.Redirect(w, r, "/students", http.StatusFound)
			return
		}
		log.Info("deleting a student", slog.Int64("id", id))

		if err := registry.Delete(r.Context(), id); err != nil {
			log.Error("error deleting student", slog.Int64("id", id), slog.String("error", err.Error()))
			addFlash(w, r, flashes, flash.CategoryError, "Error: "+err.Error())
			http.Redirect(w, r, "/students", http.StatusFound)
			return
		}

		addFlash(w, r, flashes, flash.CategorySuccess, msgDeleted)
		http.Redirect(w, r, "/students", http.StatusFound)
	}
}

func addFlash(w http.ResponseWriter, r *http.Request, flashes *flash.Store, category, text string) {
	if err := flashes.Add(w, r, category, text); err != nil {
		logging.FromContext(r.Context()).Error("cannot set flash", slog.String("error", err.Error()))
	}
}

func render(w http.ResponseWriter, r *http.Request, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", slog.String("error", err.Error()))
	}
}
