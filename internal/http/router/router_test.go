package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-registry/internal/http/flash"
	"github.com/aanand-mishra/student-registry/internal/storage/sqlite"
	"github.com/aanand-mishra/student-registry/internal/students"
	"github.com/aanand-mishra/student-registry/internal/types"
)

type app struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newApp(t *testing.T) *app {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "students.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema(context.Background()))

	return &app{
		t:       t,
		handler: New(students.New(db), flash.NewStore("test-secret")),
	}
}

// do sends req with the cookies collected so far, like a browser would.
func (a *app) do(req *http.Request) *httptest.ResponseRecorder {
	a.t.Helper()

	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		a.cookies = removeCookie(a.cookies, c.Name)
		if c.MaxAge >= 0 {
			a.cookies = append(a.cookies, c)
		}
	}
	return rec
}

func removeCookie(cookies []*http.Cookie, name string) []*http.Cookie {
	out := cookies[:0]
	for _, c := range cookies {
		if c.Name != name {
			out = append(out, c)
		}
	}
	return out
}

func (a *app) createJSON(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/students", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func TestAPI_RegistrationLifecycle(t *testing.T) {
	a := newApp(t)

	rec := a.createJSON(`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.RegistrationDate.IsZero())

	rec = a.createJSON(`{"first_name":"Ada","last_name":"King","email":"ada@example.com"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Email already exists"`)

	rec = a.do(httptest.NewRequest(http.MethodGet, "/api/students/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var got types.Student
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Lovelace", got.LastName)

	rec = a.do(httptest.NewRequest(http.MethodDelete, "/api/students/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = a.do(httptest.NewRequest(http.MethodGet, "/api/students/1", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Student not found"`)
}

func TestAPI_ListNewestFirst(t *testing.T) {
	a := newApp(t)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		rec := a.createJSON(`{"first_name":"A","last_name":"B","email":"` + email + `"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := a.do(httptest.NewRequest(http.MethodGet, "/api/students", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "b@example.com", list[0]["email"])
	for _, key := range []string{"id", "first_name", "last_name", "email", "phone", "date_of_birth", "address", "registration_date"} {
		assert.Contains(t, list[0], key)
	}
}

func TestAPI_MissingFieldWritesNothing(t *testing.T) {
	a := newApp(t)

	rec := a.createJSON(`{"first_name":"Ada","email":"ada@example.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(httptest.NewRequest(http.MethodGet, "/api/students", nil))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestPages_RegisterListShowDelete(t *testing.T) {
	a := newApp(t)

	form := url.Values{
		"first_name":    {"Grace"},
		"last_name":     {"Hopper"},
		"email":         {"grace@example.com"},
		"phone":         {"555-0199"},
		"date_of_birth": {"1906-12-09"},
		"address":       {"Arlington"},
	}
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := a.do(req)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/students", rec.Header().Get("Location"))

	rec = a.do(httptest.NewRequest(http.MethodGet, "/students", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Student registered successfully!")
	assert.Contains(t, rec.Body.String(), "Grace Hopper")

	// The flash is shown once.
	rec = a.do(httptest.NewRequest(http.MethodGet, "/students", nil))
	assert.NotContains(t, rec.Body.String(), "Student registered successfully!")

	rec = a.do(httptest.NewRequest(http.MethodGet, "/students/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1906-12-09")

	rec = a.do(httptest.NewRequest(http.MethodPost, "/students/delete/1", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	rec = a.do(httptest.NewRequest(http.MethodGet, "/students", nil))
	assert.Contains(t, rec.Body.String(), "Student deleted successfully!")
	assert.Contains(t, rec.Body.String(), "No students registered yet.")

	rec = a.do(httptest.NewRequest(http.MethodGet, "/students/1", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	rec = a.do(httptest.NewRequest(http.MethodGet, "/students", nil))
	assert.Contains(t, rec.Body.String(), "Student not found!")
}

func TestPages_DuplicateEmailRedisplaysForm(t *testing.T) {
	a := newApp(t)

	form := url.Values{"first_name": {"Ada"}, "last_name": {"Lovelace"}, "email": {"ada@example.com"}}
	for i, want := range []int{http.StatusFound, http.StatusOK} {
		req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := a.do(req)
		require.Equal(t, want, rec.Code, "submission %d", i+1)
		if i == 1 {
			assert.Contains(t, rec.Body.String(), "Email already exists!")
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	a := newApp(t)

	rec := a.do(httptest.NewRequest(http.MethodGet, "/register", nil))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
