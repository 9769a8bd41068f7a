// Package sqlite provides a SQLite-backed implementation of storage.Storage
// on top of database/sql and the mattn/go-sqlite3 driver.
//
// Every operation borrows a single *sql.Conn from the pool for its duration
// and returns it with a deferred Close, so a failing statement never leaks a
// connection.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/student-registry/internal/config"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/types"
)

// driverName is the name go-sqlite3 registers itself under in its init().
const driverName = "sqlite3"

// studentColumns is the column list shared by every SELECT. Scan order in
// scanStudent must match it.
const studentColumns = `id, first_name, last_name, email, phone, date_of_birth, address, registration_date`

// SQLite is the concrete implementation of storage.Storage.
// Db is a connection pool and is safe for concurrent use.
type SQLite struct {
	Db *sql.DB
}

var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite file named by cfg.StoragePath. The schema is not
// touched; callers run InitSchema once at startup.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open opens (creating if needed) the SQLite database at path.
func Open(path string) (*SQLite, error) {
	// sql.Open only validates the driver name; the file is opened lazily.
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: ping: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// withConn runs fn on a connection borrowed from the pool and always hands
// it back, whatever fn returns.
func (s *SQLite) withConn(ctx context.Context, op string, fn func(conn *sql.Conn) error) error {
	conn, err := s.Db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%s: acquire conn: %w", op, err)
	}
	defer conn.Close()

	return fn(conn)
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateStudent inserts one row and reads it back on the same connection so
// the returned record carries the id and registration_date SQLite assigned.
//
// A unique-constraint failure on email is reported as storage.ErrDuplicateKey.
// SQLite rejects the whole statement in that case, so nothing is written.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateStudent(ctx context.Context, in types.StudentInput) (types.Student, error) {
	var student types.Student

	err := s.withConn(ctx, "CreateStudent", func(conn *sql.Conn) error {
		stmt, err := conn.PrepareContext(ctx, `
			INSERT INTO students (first_name, last_name, email, phone, date_of_birth, address)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("CreateStudent: prepare: %w", err)
		}
		defer stmt.Close()

		// Argument order matches the ? placeholders above.
		result, err := stmt.ExecContext(ctx,
			in.FirstName, in.LastName, in.Email, in.Phone, in.DateOfBirth, in.Address)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("CreateStudent: email %q: %w", in.Email, storage.ErrDuplicateKey)
			}
			return fmt.Errorf("CreateStudent: exec: %w", err)
		}

		lastID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("CreateStudent: last insert id: %w", err)
		}

		row := conn.QueryRowContext(ctx,
			"SELECT "+studentColumns+" FROM students WHERE id = ?", lastID)
		student, err = scanStudent(row)
		if err != nil {
			return fmt.Errorf("CreateStudent: read back: %w", err)
		}

		return nil
	})

	return student, err
}

// GetStudentByID fetches exactly one row matched by primary key.
func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	var student types.Student

	err := s.withConn(ctx, "GetStudentByID", func(conn *sql.Conn) error {
		row := conn.QueryRowContext(ctx,
			"SELECT "+studentColumns+" FROM students WHERE id = ? LIMIT 1", id)

		var err error
		student, err = scanStudent(row)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("GetStudentByID: id %d: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("GetStudentByID: scan: %w", err)
		}

		return nil
	})

	return student, err
}

// GetStudents returns all rows, most recent registration first. Rows that
// share a registration second are ordered by descending id.
func (s *SQLite) GetStudents(ctx context.Context) ([]types.Student, error) {
	// Non-nil so an empty table encodes as [] rather than null.
	students := make([]types.Student, 0)

	err := s.withConn(ctx, "GetStudents", func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx,
			"SELECT "+studentColumns+" FROM students ORDER BY registration_date DESC, id DESC")
		if err != nil {
			return fmt.Errorf("GetStudents: query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			student, err := scanStudent(rows)
			if err != nil {
				return fmt.Errorf("GetStudents: scan row: %w", err)
			}
			students = append(students, student)
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("GetStudents: rows iteration: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return students, nil
}

// DeleteStudentByID removes the row with the given id. Zero affected rows
// is not an error.
func (s *SQLite) DeleteStudentByID(ctx context.Context, id int64) error {
	return s.withConn(ctx, "DeleteStudentByID", func(conn *sql.Conn) error {
		stmt, err := conn.PrepareContext(ctx, "DELETE FROM students WHERE id = ?")
		if err != nil {
			return fmt.Errorf("DeleteStudentByID: prepare: %w", err)
		}
		defer stmt.Close()

		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("DeleteStudentByID: exec: %w", err)
		}

		return nil
	})
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanStudent reads one row laid out as studentColumns. Optional columns may
// hold NULL in files written by other tools; they come back as "".
func scanStudent(row rowScanner) (types.Student, error) {
	var (
		student                     types.Student
		phone, dateOfBirth, address sql.NullString
	)

	err := row.Scan(
		&student.ID,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&phone,
		&dateOfBirth,
		&address,
		&student.RegistrationDate,
	)
	if err != nil {
		return types.Student{}, err
	}

	student.Phone = phone.String
	student.DateOfBirth = dateOfBirth.String
	student.Address = address.String

	return student, nil
}

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint
// failure, judged by the extended result code rather than the message text.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrConstraint &&
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
