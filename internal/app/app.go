package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"tas-go/internal/config"
	"tas-go/internal/database"
	"tas-go/internal/model"
	"tas-go/internal/tas"
)

// TasApp is the application layer between the CLI and TasService.
// It constructs all dependencies from config, exposes one high-level method
// per CLI operation, and manages the store lifecycle on Close.
type TasApp struct {
	cfg      *config.Config
	db       tas.Database
	prompter tas.Prompter
	service  *tas.TasService
	logFile  *os.File
}

// LoadConfig resolves the config for this invocation. A missing config file
// is not an error: built-in defaults apply, so the store is auto-created
// under the default data dir on first run.
func LoadConfig() (*config.Config, error) {
	defaults, err := GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	path := defaults["config_path"]
	if _, err := os.Stat(path); err == nil {
		cfg, err := config.ReadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		return cfg, nil
	}

	return config.NewConfig("", defaults["base_dir"]), nil
}

// NewTasApp creates a fully wired TasApp from the given config.
// The caller must call Close when done.
func NewTasApp(cfg *config.Config) (*TasApp, error) {
	// Short per-invocation id tying log lines of one run together.
	opID := uuid.New().String()[:8]
	logger, logFile, err := newLogger(cfg.LogDir, opID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("opening store: %w", err)
	}

	prompter := tas.NewTerminalPrompter()
	svc := tas.NewTasService(db, prompter, &slogAdapter{l: logger}, tas.RealClock{})

	return &TasApp{
		cfg:      cfg,
		db:       db,
		prompter: prompter,
		service:  svc,
		logFile:  logFile,
	}, nil
}

// CreateUser creates a user. An empty name triggers an interactive prompt;
// a provided name is confirmed first.
func (a *TasApp) CreateUser(name string) (*model.User, error) {
	return a.service.CreateUser(name)
}

// ListUsers returns all users in id order.
func (a *TasApp) ListUsers() ([]*model.User, error) {
	return a.service.ListUsers()
}

// SetDefaultUser validates and persists the default user id.
func (a *TasApp) SetDefaultUser(id int64) error {
	return a.service.SetDefaultUser(id)
}

// PromptDefaultUser interactively asks for a user id, validates it and
// persists it. Returns the chosen user.
func (a *TasApp) PromptDefaultUser() (*model.User, error) {
	id, err := a.prompter.ReadID("Default user id")
	if err != nil {
		return nil, err
	}
	if err := a.service.SetDefaultUser(id); err != nil {
		return nil, err
	}
	return a.service.DefaultUser()
}

// AddNote records a note for the default user. An empty category uses the
// seeded default.
func (a *TasApp) AddNote(content, category string) (*model.Note, error) {
	return a.service.AddNote(content, category)
}

// ListOpen returns the open-notes listing.
func (a *TasApp) ListOpen() ([]*tas.OpenNote, error) {
	return a.service.ListOpen()
}

// Complete marks the note with the given id done.
func (a *TasApp) Complete(id int64) error {
	return a.service.Complete(id)
}

// PromptComplete interactively asks for a note id and marks it done.
// Returns the completed id.
func (a *TasApp) PromptComplete() (int64, error) {
	id, err := a.prompter.ReadID("Note id")
	if err != nil {
		return 0, err
	}
	if err := a.service.Complete(id); err != nil {
		return 0, err
	}
	return id, nil
}

// Close releases the store and the log file. Safe on every exit path.
func (a *TasApp) Close() error {
	var firstErr error

	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing store: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
