package model

import "time"

// User is a local account notes are attributed to.
type User struct {
	ID        int64
	Username  string // Unique across all users
	CreatedAt time.Time
}

// Category is a note classification. Category 1 ("idea") is seeded at
// store initialization and is always resolvable.
type Category struct {
	ID   int64
	Name string
}

// Note is a single tracked item. Notes are never physically deleted;
// completion flips IsDone and the note drops out of open listings.
type Note struct {
	ID         int64
	UserID     int64 // Foreign key to User
	CategoryID int64 // Foreign key to Category
	Content    string
	RemindAt   *time.Time // Reserved; never written by any current command
	IsDone     bool
	CreatedAt  time.Time
}

// Settings is the singleton row (id fixed at 1) holding the default user.
// Absence of the row means no default user is configured yet.
type Settings struct {
	ID            int64
	CurrentUserID int64 // Foreign key to User
}
