package tas

import (
	"time"

	"tas-go/internal/model"
)

// Database provides an interface for note store operations.
// Find/Get methods return (nil, nil) when no row matches; only Complete-style
// mutations report absence as an error.
type Database interface {
	// User operations

	// CreateUser inserts a new user. Fails with ErrDuplicateUser when the
	// username is already taken. The row is committed before returning.
	CreateUser(username string, createdAt time.Time) (*model.User, error)

	// GetUserByID returns the user with the given id.
	GetUserByID(id int64) (*model.User, error)

	// ListUsers returns all users in id (insertion) order.
	ListUsers() ([]*model.User, error)

	// Settings operations

	// UpsertDefaultUser writes the settings singleton (fixed id 1) so at
	// most one row ever exists.
	UpsertDefaultUser(userID int64) error

	// GetSettings returns the settings singleton, or nil if no default
	// user has been configured.
	GetSettings() (*model.Settings, error)

	// Category operations

	// FindCategoryByName returns a category with an exact name match.
	FindCategoryByName(name string) (*model.Category, error)

	// Note operations

	// CreateNote inserts a new open note.
	CreateNote(userID, categoryID int64, content string, createdAt time.Time) (*model.Note, error)

	// ListOpenNotes returns open notes joined with user and category
	// names, ordered by note id ascending. Notes whose user or category
	// row is missing are excluded by the join.
	ListOpenNotes() ([]*OpenNote, error)

	// NoteExists reports whether a note with the given id exists,
	// regardless of its completion state.
	NoteExists(id int64) (bool, error)

	// MarkNoteDone sets is_done on the given note. Marking an
	// already-done note is a no-op at the row level.
	MarkNoteDone(id int64) error

	// Close closes the database connection.
	Close() error
}

// OpenNote is one row of the open-notes listing.
type OpenNote struct {
	ID       int64
	Username string
	Category string
	Content  string
}
