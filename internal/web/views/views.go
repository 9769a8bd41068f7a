// Package views holds the HTML pages of the registration UI.
//
// Pages are html/template files embedded into the binary. Each page is parsed
// together with layout.html and exposed as a templ.Component, so handlers
// render every page the same way:
//
//	views.Students(data).Render(r.Context(), w)
package views

import (
	"embed"
	"html/template"
	"time"

	"github.com/a-h/templ"

	"github.com/aanand-mishra/student-registry/internal/http/flash"
	"github.com/aanand-mishra/student-registry/internal/types"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	"orDash": func(s string) string {
		if s == "" {
			return "—"
		}
		return s
	},
}

var (
	registerPage      = parsePage("register.html")
	studentsPage      = parsePage("students.html")
	studentDetailPage = parsePage("student_detail.html")
)

// parsePage binds a page to the shared layout. The returned template is
// named after layout.html, so executing it renders the layout, which pulls
// in the page's "title" and "content" blocks.
func parsePage(page string) *template.Template {
	return template.Must(
		template.New("layout.html").Funcs(funcs).
			ParseFS(files, "templates/layout.html", "templates/"+page),
	)
}

// RegisterData feeds the registration form.
type RegisterData struct {
	Flashes []flash.Message
	// Error is shown above the form after a rejected submission.
	Error string
	// Form re-fills the inputs after a rejected submission.
	Form types.StudentInput
}

// StudentsData feeds the list of all students.
type StudentsData struct {
	Flashes  []flash.Message
	Students []types.Student
}

// StudentDetailData feeds the single-student page.
type StudentDetailData struct {
	Flashes []flash.Message
	Student types.Student
}

// Register renders the registration form.
func Register(data RegisterData) templ.Component {
	return templ.FromGoHTML(registerPage, data)
}

// Students renders the table of registered students.
func Students(data StudentsData) templ.Component {
	return templ.FromGoHTML(studentsPage, data)
}

// StudentDetail renders one student's record.
func StudentDetail(data StudentDetailData) templ.Component {
	return templ.FromGoHTML(studentDetailPage, data)
}
