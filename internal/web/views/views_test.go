package views

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-registry/internal/http/flash"
	"github.com/aanand-mishra/student-registry/internal/types"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestRegister_RefillsFormAndShowsError(t *testing.T) {
	html := render(t, Register(RegisterData{
		Error: "Email already exists!",
		Form:  types.StudentInput{FirstName: "Ada", Email: "ada@example.com"},
	}))

	assert.Contains(t, html, "Email already exists!")
	assert.Contains(t, html, `name="first_name" value="Ada"`)
	assert.Contains(t, html, `value="ada@example.com"`)
}

func TestRegister_EscapesInput(t *testing.T) {
	html := render(t, Register(RegisterData{
		Form: types.StudentInput{FirstName: `"><script>alert(1)</script>`},
	}))

	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestStudents_ListsRowsAndFlashes(t *testing.T) {
	html := render(t, Students(StudentsData{
		Flashes: []flash.Message{{Category: flash.CategorySuccess, Text: "Student registered successfully!"}},
		Students: []types.Student{{
			ID:               3,
			FirstName:        "Ada",
			LastName:         "Lovelace",
			Email:            "ada@example.com",
			RegistrationDate: time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC),
		}},
	}))

	assert.Contains(t, html, "flash-success")
	assert.Contains(t, html, "Student registered successfully!")
	assert.Contains(t, html, `href="/students/3"`)
	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "2026-10-14 09:30")
	assert.Contains(t, html, `action="/students/delete/3"`)
}

func TestStudents_Empty(t *testing.T) {
	html := render(t, Students(StudentsData{}))

	assert.Contains(t, html, "No students registered yet.")
}

func TestStudentDetail_ShowsOptionalFields(t *testing.T) {
	html := render(t, StudentDetail(StudentDetailData{
		Student: types.Student{ID: 1, FirstName: "Ada", LastName: "Lovelace", Phone: "555-0100"},
	}))

	assert.Contains(t, html, "<title>Ada Lovelace")
	assert.Contains(t, html, "555-0100")
	assert.Contains(t, html, "—", "empty optional fields render a dash")
}
