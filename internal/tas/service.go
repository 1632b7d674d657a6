package tas

import "fmt"

// DefaultCategoryID is the well-known id of the seeded "idea" category.
// Notes created without an explicit category land here without a lookup.
const DefaultCategoryID = 1

// DefaultCategoryName is the name of the seeded category.
const DefaultCategoryName = "idea"

// TasService is the orchestration layer that coordinates the user registry,
// category lookup and note ledger operations needed by the CLI.
type TasService struct {
	database Database
	prompter Prompter
	logger   Logger
	clock    Clock
}

// NewTasService creates a new TasService with the provided dependencies.
func NewTasService(database Database, prompter Prompter, logger Logger, clock Clock) *TasService {
	return &TasService{
		database: database,
		prompter: prompter,
		logger:   logger,
		clock:    clock,
	}
}

// ResolveCategory returns the id of the category with an exact name match.
// Fails with ErrUnknownCategory when no row matches; the caller must not
// create a note in that case.
func (s *TasService) ResolveCategory(name string) (int64, error) {
	category, err := s.database.FindCategoryByName(name)
	if err != nil {
		return 0, fmt.Errorf("looking up category: %w", err)
	}
	if category == nil {
		return 0, fmt.Errorf("category %q: %w", name, ErrUnknownCategory)
	}
	return category.ID, nil
}
