package tas

import (
	"fmt"

	"tas-go/internal/model"
)

// AddNote records a new open note attributed to the default user. An empty
// categoryName places the note in the seeded default category; a non-empty
// one must resolve exactly or the note is not written (ErrUnknownCategory).
// Fails with ErrNoDefaultUser when no default user is configured.
func (s *TasService) AddNote(content, categoryName string) (*model.Note, error) {
	user, err := s.DefaultUser()
	if err != nil {
		return nil, err
	}

	categoryID := int64(DefaultCategoryID)
	if categoryName != "" {
		categoryID, err = s.ResolveCategory(categoryName)
		if err != nil {
			return nil, err
		}
	}

	note, err := s.database.CreateNote(user.ID, categoryID, content, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	s.logger.Info("note added", "id", note.ID, "user", user.Username, "category", categoryID)
	return note, nil
}

// ListOpen returns all unfinished notes joined with user and category
// names, ordered by note id ascending.
func (s *TasService) ListOpen() ([]*OpenNote, error) {
	notes, err := s.database.ListOpenNotes()
	if err != nil {
		return nil, fmt.Errorf("listing open notes: %w", err)
	}
	return notes, nil
}

// Complete marks the note with the given id done. Existence, not
// incompleteness, gates success: completing an already-done note succeeds,
// only an absent id fails with ErrNoteNotFound. Notes are never deleted.
func (s *TasService) Complete(id int64) error {
	exists, err := s.database.NoteExists(id)
	if err != nil {
		return fmt.Errorf("checking note: %w", err)
	}
	if !exists {
		return fmt.Errorf("note %d: %w", id, ErrNoteNotFound)
	}

	if err := s.database.MarkNoteDone(id); err != nil {
		return fmt.Errorf("completing note: %w", err)
	}

	s.logger.Info("note completed", "id", id)
	return nil
}
