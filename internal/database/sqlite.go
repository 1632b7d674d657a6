package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"tas-go/internal/database/migrations"
	"tas-go/internal/model"
	"tas-go/internal/tas"
)

// SQLiteDatabase implements the tas.Database interface using SQLite.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:   db,
		path: path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:   db,
		path: "",
	}
}

// OpenConnection opens and configures a SQLite database connection with
// appropriate PRAGMAs. path can be a file path or ":memory:" for in-memory
// database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint error.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// User operations

func (s *SQLiteDatabase) CreateUser(username string, createdAt time.Time) (*model.User, error) {
	res, err := s.db.Exec(
		"INSERT INTO users (username, created_at) VALUES (?, ?)",
		username, createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("username %q: %w", username, tas.ErrDuplicateUser)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading user id: %w", err)
	}

	return &model.User{ID: id, Username: username, CreatedAt: createdAt}, nil
}

func (s *SQLiteDatabase) GetUserByID(id int64) (*model.User, error) {
	var user model.User
	err := s.db.QueryRow(
		"SELECT id, username, created_at FROM users WHERE id = ?", id,
	).Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding user by id: %w", err)
	}
	return &user, nil
}

func (s *SQLiteDatabase) ListUsers() ([]*model.User, error) {
	rows, err := s.db.Query("SELECT id, username, created_at FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Username, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// Settings operations

func (s *SQLiteDatabase) UpsertDefaultUser(userID int64) error {
	// Fixed key 1 keeps the settings table a singleton.
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO settings (id, current_user_id) VALUES (1, ?)",
		userID,
	)
	if err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) GetSettings() (*model.Settings, error) {
	var settings model.Settings
	err := s.db.QueryRow(
		"SELECT id, current_user_id FROM settings WHERE id = 1",
	).Scan(&settings.ID, &settings.CurrentUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No default user configured yet
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	return &settings, nil
}

// Category operations

func (s *SQLiteDatabase) FindCategoryByName(name string) (*model.Category, error) {
	var category model.Category
	err := s.db.QueryRow(
		"SELECT id, name FROM categories WHERE name = ?", name,
	).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding category by name: %w", err)
	}
	return &category, nil
}

// Note operations

func (s *SQLiteDatabase) CreateNote(userID, categoryID int64, content string, createdAt time.Time) (*model.Note, error) {
	res, err := s.db.Exec(
		"INSERT INTO notes (user_id, category_id, content, is_done, created_at) VALUES (?, ?, ?, 0, ?)",
		userID, categoryID, content, createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading note id: %w", err)
	}

	return &model.Note{
		ID:         id,
		UserID:     userID,
		CategoryID: categoryID,
		Content:    content,
		IsDone:     false,
		CreatedAt:  createdAt,
	}, nil
}

func (s *SQLiteDatabase) ListOpenNotes() ([]*tas.OpenNote, error) {
	rows, err := s.db.Query(`
		SELECT notes.id, users.username, categories.name, notes.content
		FROM notes
		JOIN users ON notes.user_id = users.id
		JOIN categories ON notes.category_id = categories.id
		WHERE notes.is_done = 0
		ORDER BY notes.id`)
	if err != nil {
		return nil, fmt.Errorf("listing open notes: %w", err)
	}
	defer rows.Close()

	var notes []*tas.OpenNote
	for rows.Next() {
		var note tas.OpenNote
		if err := rows.Scan(&note.ID, &note.Username, &note.Category, &note.Content); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	return notes, nil
}

func (s *SQLiteDatabase) NoteExists(id int64) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM notes WHERE id = ?", id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("checking note existence: %w", err)
	}
	return true, nil
}

func (s *SQLiteDatabase) MarkNoteDone(id int64) error {
	if _, err := s.db.Exec("UPDATE notes SET is_done = 1 WHERE id = ?", id); err != nil {
		return fmt.Errorf("marking note done: %w", err)
	}
	return nil
}

// Migrate brings the database schema to the latest version. Idempotent.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements tas.Database interface
var _ tas.Database = (*SQLiteDatabase)(nil)
