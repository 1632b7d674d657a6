package tas

import (
	"fmt"

	"tas-go/internal/model"
)

// CreateUser registers a new user. When candidate is non-empty the name is
// confirmed interactively first; declining falls through to an interactive
// name prompt instead of aborting. When candidate is empty the name is
// prompted for directly. Fails with ErrDuplicateUser when the username is
// already taken and ErrInputRequired when a prompt is needed but stdin is
// not a terminal.
func (s *TasService) CreateUser(candidate string) (*model.User, error) {
	username := candidate

	if username != "" {
		ok, err := s.prompter.Confirm(fmt.Sprintf("Create user %q?", username))
		if err != nil {
			return nil, err
		}
		if !ok {
			// Declined: re-prompt for a name rather than abort.
			username = ""
		}
	}

	if username == "" {
		name, err := s.prompter.ReadLine("Username")
		if err != nil {
			return nil, err
		}
		username = name
	}

	user, err := s.database.CreateUser(username, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created", "id", user.ID, "username", user.Username)
	return user, nil
}

// ListUsers returns all users in id (insertion) order.
func (s *TasService) ListUsers() ([]*model.User, error) {
	users, err := s.database.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// SetDefaultUser persists the given user as the implicit author of new
// notes. The id must reference an existing user; ErrUnknownUser otherwise.
func (s *TasService) SetDefaultUser(id int64) error {
	user, err := s.database.GetUserByID(id)
	if err != nil {
		return fmt.Errorf("checking user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", id, ErrUnknownUser)
	}

	if err := s.database.UpsertDefaultUser(id); err != nil {
		return fmt.Errorf("setting default user: %w", err)
	}

	s.logger.Info("default user set", "id", id, "username", user.Username)
	return nil
}

// DefaultUser resolves the configured default user. Fails with
// ErrNoDefaultUser when none is configured and ErrUnknownUser when the
// settings row references a user that no longer resolves.
func (s *TasService) DefaultUser() (*model.User, error) {
	settings, err := s.database.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if settings == nil {
		return nil, ErrNoDefaultUser
	}

	user, err := s.database.GetUserByID(settings.CurrentUserID)
	if err != nil {
		return nil, fmt.Errorf("resolving default user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", settings.CurrentUserID, ErrUnknownUser)
	}
	return user, nil
}
