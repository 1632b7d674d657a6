package database

import (
	"errors"
	"testing"
	"time"

	"tas-go/internal/tas"
)

// newTestDB creates a new in-memory database with the schema migrated.
func newTestDB(t *testing.T) *SQLiteDatabase {
	t.Helper()

	db, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func testTime() time.Time {
	return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
}

func TestSQLiteDatabase_CreateUser(t *testing.T) {
	t.Run("creates user successfully", func(t *testing.T) {
		db := newTestDB(t)

		user, err := db.CreateUser("alice", testTime())
		if err != nil {
			t.Fatalf("CreateUser() error = %v", err)
		}

		if user.ID == 0 {
			t.Error("ID is zero")
		}
		if user.Username != "alice" {
			t.Errorf("Username = %q, want %q", user.Username, "alice")
		}
		if !user.CreatedAt.Equal(testTime()) {
			t.Errorf("CreatedAt = %v, want %v", user.CreatedAt, testTime())
		}
	})

	t.Run("fails with ErrDuplicateUser on duplicate username", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := db.CreateUser("alice", testTime()); err != nil {
			t.Fatalf("first CreateUser() error = %v", err)
		}

		_, err := db.CreateUser("alice", testTime())
		if !errors.Is(err, tas.ErrDuplicateUser) {
			t.Errorf("second CreateUser() error = %v, want ErrDuplicateUser", err)
		}

		// Row count must be unchanged.
		users, err := db.ListUsers()
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if len(users) != 1 {
			t.Errorf("len(users) = %d, want 1", len(users))
		}
	})
}

func TestSQLiteDatabase_GetUserByID(t *testing.T) {
	t.Run("returns nil when user not found", func(t *testing.T) {
		db := newTestDB(t)

		user, err := db.GetUserByID(42)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		if user != nil {
			t.Errorf("GetUserByID() = %v, want nil", user)
		}
	})

	t.Run("finds existing user", func(t *testing.T) {
		db := newTestDB(t)

		created, err := db.CreateUser("alice", testTime())
		if err != nil {
			t.Fatalf("CreateUser() error = %v", err)
		}

		found, err := db.GetUserByID(created.ID)
		if err != nil {
			t.Fatalf("GetUserByID() error = %v", err)
		}
		if found == nil {
			t.Fatal("GetUserByID() returned nil, want user")
		}
		if found.Username != "alice" {
			t.Errorf("Username = %q, want %q", found.Username, "alice")
		}
	})
}

func TestSQLiteDatabase_ListUsers(t *testing.T) {
	t.Run("returns empty list on fresh store", func(t *testing.T) {
		db := newTestDB(t)

		users, err := db.ListUsers()
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if len(users) != 0 {
			t.Errorf("len(users) = %d, want 0", len(users))
		}
	})

	t.Run("returns users in insertion order", func(t *testing.T) {
		db := newTestDB(t)

		for _, name := range []string{"alice", "bob", "carol"} {
			if _, err := db.CreateUser(name, testTime()); err != nil {
				t.Fatalf("CreateUser(%q) error = %v", name, err)
			}
		}

		users, err := db.ListUsers()
		if err != nil {
			t.Fatalf("ListUsers() error = %v", err)
		}
		if len(users) != 3 {
			t.Fatalf("len(users) = %d, want 3", len(users))
		}
		for i, want := range []string{"alice", "bob", "carol"} {
			if users[i].Username != want {
				t.Errorf("users[%d].Username = %q, want %q", i, users[i].Username, want)
			}
			if i > 0 && users[i].ID <= users[i-1].ID {
				t.Errorf("ids not ascending: %d then %d", users[i-1].ID, users[i].ID)
			}
		}
	})
}

func TestSQLiteDatabase_Settings(t *testing.T) {
	t.Run("returns nil when unconfigured", func(t *testing.T) {
		db := newTestDB(t)

		settings, err := db.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		if settings != nil {
			t.Errorf("GetSettings() = %v, want nil", settings)
		}
	})

	t.Run("upsert keeps a single row", func(t *testing.T) {
		db := newTestDB(t)

		alice, _ := db.CreateUser("alice", testTime())
		bob, _ := db.CreateUser("bob", testTime())

		if err := db.UpsertDefaultUser(alice.ID); err != nil {
			t.Fatalf("first UpsertDefaultUser() error = %v", err)
		}
		if err := db.UpsertDefaultUser(bob.ID); err != nil {
			t.Fatalf("second UpsertDefaultUser() error = %v", err)
		}

		settings, err := db.GetSettings()
		if err != nil {
			t.Fatalf("GetSettings() error = %v", err)
		}
		if settings == nil {
			t.Fatal("GetSettings() returned nil, want settings")
		}
		if settings.ID != 1 {
			t.Errorf("ID = %d, want 1", settings.ID)
		}
		if settings.CurrentUserID != bob.ID {
			t.Errorf("CurrentUserID = %d, want %d", settings.CurrentUserID, bob.ID)
		}
	})

	t.Run("rejects id of nonexistent user", func(t *testing.T) {
		db := newTestDB(t)

		// Foreign keys are on; the service validates first, the schema
		// is the backstop.
		if err := db.UpsertDefaultUser(999); err == nil {
			t.Error("UpsertDefaultUser(999) expected foreign key error")
		}
	})
}

func TestSQLiteDatabase_FindCategoryByName(t *testing.T) {
	t.Run("finds the seeded category", func(t *testing.T) {
		db := newTestDB(t)

		category, err := db.FindCategoryByName("idea")
		if err != nil {
			t.Fatalf("FindCategoryByName() error = %v", err)
		}
		if category == nil {
			t.Fatal("FindCategoryByName() returned nil, want seeded category")
		}
		if category.ID != tas.DefaultCategoryID {
			t.Errorf("ID = %d, want %d", category.ID, tas.DefaultCategoryID)
		}
	})

	t.Run("returns nil for unknown name", func(t *testing.T) {
		db := newTestDB(t)

		category, err := db.FindCategoryByName("groceries")
		if err != nil {
			t.Fatalf("FindCategoryByName() error = %v", err)
		}
		if category != nil {
			t.Errorf("FindCategoryByName() = %v, want nil", category)
		}
	})
}

func TestSQLiteDatabase_Notes(t *testing.T) {
	t.Run("creates and lists open notes in id order", func(t *testing.T) {
		db := newTestDB(t)

		alice, _ := db.CreateUser("alice", testTime())

		first, err := db.CreateNote(alice.ID, tas.DefaultCategoryID, "buy milk", testTime())
		if err != nil {
			t.Fatalf("CreateNote() error = %v", err)
		}
		second, err := db.CreateNote(alice.ID, tas.DefaultCategoryID, "write paper", testTime())
		if err != nil {
			t.Fatalf("CreateNote() error = %v", err)
		}

		notes, err := db.ListOpenNotes()
		if err != nil {
			t.Fatalf("ListOpenNotes() error = %v", err)
		}
		if len(notes) != 2 {
			t.Fatalf("len(notes) = %d, want 2", len(notes))
		}
		if notes[0].ID != first.ID || notes[1].ID != second.ID {
			t.Errorf("note order = [%d, %d], want [%d, %d]", notes[0].ID, notes[1].ID, first.ID, second.ID)
		}
		if notes[0].Username != "alice" || notes[0].Category != "idea" {
			t.Errorf("joined row = (%q, %q), want (alice, idea)", notes[0].Username, notes[0].Category)
		}
		if notes[0].Content != "buy milk" {
			t.Errorf("Content = %q, want %q", notes[0].Content, "buy milk")
		}
	})

	t.Run("excludes done notes from listing", func(t *testing.T) {
		db := newTestDB(t)

		alice, _ := db.CreateUser("alice", testTime())
		note, _ := db.CreateNote(alice.ID, tas.DefaultCategoryID, "buy milk", testTime())

		if err := db.MarkNoteDone(note.ID); err != nil {
			t.Fatalf("MarkNoteDone() error = %v", err)
		}

		notes, err := db.ListOpenNotes()
		if err != nil {
			t.Fatalf("ListOpenNotes() error = %v", err)
		}
		if len(notes) != 0 {
			t.Errorf("len(notes) = %d, want 0", len(notes))
		}
	})

	t.Run("rejects note for nonexistent user", func(t *testing.T) {
		db := newTestDB(t)

		if _, err := db.CreateNote(999, tas.DefaultCategoryID, "orphan", testTime()); err == nil {
			t.Error("CreateNote() expected foreign key error for missing user")
		}
	})

	t.Run("NoteExists is state independent", func(t *testing.T) {
		db := newTestDB(t)

		alice, _ := db.CreateUser("alice", testTime())
		note, _ := db.CreateNote(alice.ID, tas.DefaultCategoryID, "buy milk", testTime())

		exists, err := db.NoteExists(note.ID)
		if err != nil || !exists {
			t.Errorf("NoteExists() = (%v, %v), want (true, nil)", exists, err)
		}

		if err := db.MarkNoteDone(note.ID); err != nil {
			t.Fatalf("MarkNoteDone() error = %v", err)
		}

		exists, err = db.NoteExists(note.ID)
		if err != nil || !exists {
			t.Errorf("NoteExists() after done = (%v, %v), want (true, nil)", exists, err)
		}

		exists, err = db.NoteExists(999)
		if err != nil || exists {
			t.Errorf("NoteExists(999) = (%v, %v), want (false, nil)", exists, err)
		}
	})

	t.Run("MarkNoteDone is idempotent", func(t *testing.T) {
		db := newTestDB(t)

		alice, _ := db.CreateUser("alice", testTime())
		note, _ := db.CreateNote(alice.ID, tas.DefaultCategoryID, "buy milk", testTime())

		if err := db.MarkNoteDone(note.ID); err != nil {
			t.Fatalf("first MarkNoteDone() error = %v", err)
		}
		if err := db.MarkNoteDone(note.ID); err != nil {
			t.Errorf("second MarkNoteDone() error = %v", err)
		}
	})
}
