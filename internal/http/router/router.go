// Package router assembles the registry's route table.
//
//	GET    /                        → redirect to /register
//	GET    /register                → registration form
//	POST   /register                → register, then redirect to /students
//	GET    /students                → all students, newest first
//	GET    /students/{id}           → one student
//	POST   /students/delete/{id}    → delete, then redirect to /students
//	GET    /api/students            → JSON list
//	POST   /api/students            → JSON create
//	GET    /api/students/{id}       → JSON record
//	DELETE /api/students/{id}       → JSON delete
//
// {id} only matches digits; anything else is a 404.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/student-registry/internal/http/flash"
	"github.com/aanand-mishra/student-registry/internal/http/handlers/student"
	"github.com/aanand-mishra/student-registry/internal/http/middleware"
)

// New returns the HTTP handler for the whole application.
func New(registry student.Registry, flashes *flash.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)

	// Pages
	r.Get("/", student.Index())
	r.Get("/register", student.RegisterForm(flashes))
	r.Post("/register", student.Register(registry, flashes))
	r.Get("/students", student.List(registry, flashes))
	r.Get("/students/{id:[0-9]+}", student.Show(registry, flashes))
	r.Post("/students/delete/{id:[0-9]+}", student.Remove(registry, flashes))

	// JSON API
	r.Get("/api/students", student.GetList(registry))
	r.Post("/api/students", student.New(registry))
	r.Get("/api/students/{id:[0-9]+}", student.GetByID(registry))
	r.Delete("/api/students/{id:[0-9]+}", student.Delete(registry))

	return r
}
