package tas

import "errors"

// Operation failure kinds. Each layer wraps with fmt.Errorf("...: %w", err)
// so callers can discriminate with errors.Is while keeping context.
var (
	// ErrStorageUnavailable means the store file or its directory cannot
	// be created or opened. Fatal to startup.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInputRequired means an operation needs interactive input but
	// stdin is not a terminal.
	ErrInputRequired = errors.New("interactive input required")

	// ErrDuplicateUser means the username already exists.
	ErrDuplicateUser = errors.New("username already exists")

	// ErrUnknownCategory means no category matches the given name.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownUser means the given id does not reference an existing user.
	ErrUnknownUser = errors.New("unknown user")

	// ErrNoDefaultUser means no default user has been configured yet.
	ErrNoDefaultUser = errors.New("no default user configured")

	// ErrNoteNotFound means no note exists with the given id.
	ErrNoteNotFound = errors.New("note not found")
)
