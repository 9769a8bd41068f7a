// Package types holds the shared data structures of the registry. Keeping
// them in one place lets handlers, the service and storage all import them
// without depending on each other.
package types

import "time"

// Student is one registered student as stored in the students table.
//
// ID and RegistrationDate are assigned by storage on insert and never change.
type Student struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	DateOfBirth      string    `json:"date_of_birth"`
	Address          string    `json:"address"`
	RegistrationDate time.Time `json:"registration_date"`
}

// FullName joins first and last name for display.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StudentInput carries the fields a client submits to register a student,
// either as a JSON body or as an HTML form.
//
// validate:"required" on a string means non-empty; the other fields are
// accepted as-is.
type StudentInput struct {
	FirstName   string `json:"first_name"    schema:"first_name"    validate:"required"`
	LastName    string `json:"last_name"     schema:"last_name"     validate:"required"`
	Email       string `json:"email"         schema:"email"         validate:"required"`
	Phone       string `json:"phone"         schema:"phone"`
	DateOfBirth string `json:"date_of_birth" schema:"date_of_birth"`
	Address     string `json:"address"       schema:"address"`
}
