package main

import (
	"fmt"
	"os"
	"strings"

	"tas-go/internal/app"
	"tas-go/internal/config"
	"tas-go/internal/tas"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp loads the config and creates a TasApp. The caller must defer a.Close().
func newApp() (*app.TasApp, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	a, err := app.NewTasApp(cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// promptValue is the NoOptDefVal for flags that prompt when given no value,
// e.g. `--create_user` prompts while `--create_user=alice` does not.
const promptValue = "-"

var rootCmd = &cobra.Command{
	Use:   "tas",
	Short: "Personal note and task tracker",
	Long: `tas records short notes per user in a local store.

Multiple operation flags may be combined in one invocation; they run in the
fixed order add, create_user, default_user, view, delete.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()

		addText, _ := flags.GetString("add")
		addCategory, _ := flags.GetString("category")
		createUser, _ := flags.GetString("create_user")
		defaultUser, _ := flags.GetString("default_user")
		view, _ := flags.GetBool("view")
		deleteID, _ := flags.GetString("delete")

		// Opening the store ensures the schema even when no operation
		// was requested.
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "tas: %v\n", err)
			return err
		}
		defer a.Close()

		// Each operation's failure is reported and the remaining
		// requested operations still run; the first failure becomes
		// the exit status.
		var firstErr error
		report := func(err error) {
			fmt.Fprintf(os.Stderr, "tas: %v\n", err)
			if firstErr == nil {
				firstErr = err
			}
		}

		if flags.Changed("add") {
			note, err := a.AddNote(addText, addCategory)
			if err != nil {
				report(err)
			} else {
				fmt.Printf("Added note %d: %s\n", note.ID, note.Content)
			}
		}

		if flags.Changed("create_user") {
			name := createUser
			if name == promptValue {
				name = ""
			}
			user, err := a.CreateUser(name)
			if err != nil {
				report(err)
			} else {
				fmt.Printf("Created user %d: %s\n", user.ID, user.Username)
			}
		}

		if flags.Changed("default_user") {
			if err := runDefaultUser(a, defaultUser); err != nil {
				report(err)
			}
		}

		if view {
			if err := runView(a); err != nil {
				report(err)
			}
		}

		if flags.Changed("delete") {
			if err := runDelete(a, deleteID); err != nil {
				report(err)
			}
		}

		return firstErr
	},
}

// runDefaultUser lists users, then persists the default user id, either from
// the flag value or an interactive prompt.
func runDefaultUser(a *app.TasApp, value string) error {
	users, err := a.ListUsers()
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users yet. Use --create_user to create one.")
		return nil
	}

	fmt.Printf("%-4s | %-15s | %s\n", "ID", "Username", "Created")
	fmt.Println(strings.Repeat("-", 40))
	for _, u := range users {
		fmt.Printf("%-4d | %-15s | %s\n", u.ID, u.Username, u.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	if value != promptValue {
		id, err := tas.ParseID(value)
		if err != nil {
			return err
		}
		if err := a.SetDefaultUser(id); err != nil {
			return err
		}
		fmt.Printf("Default user set to %d\n", id)
		return nil
	}

	user, err := a.PromptDefaultUser()
	if err != nil {
		return err
	}
	fmt.Printf("Default user set to %d (%s)\n", user.ID, user.Username)
	return nil
}

// runView prints the open-notes table.
func runView(a *app.TasApp) error {
	notes, err := a.ListOpen()
	if err != nil {
		return err
	}

	if len(notes) == 0 {
		fmt.Println("No open notes.")
		return nil
	}

	fmt.Printf("%-4s | %-8s | %-8s | %s\n", "ID", "User", "Category", "Content")
	fmt.Println(strings.Repeat("-", 50))
	for _, n := range notes {
		fmt.Printf("%-4d | %-8s | %-8s | %s\n", n.ID, n.Username, n.Category, n.Content)
	}
	return nil
}

// runDelete shows open notes, then marks one done, either from the flag
// value or an interactive prompt.
func runDelete(a *app.TasApp, value string) error {
	if err := runView(a); err != nil {
		return err
	}

	var id int64
	var err error
	if value != promptValue {
		id, err = tas.ParseID(value)
		if err != nil {
			return err
		}
		if err := a.Complete(id); err != nil {
			return err
		}
	} else {
		id, err = a.PromptComplete()
		if err != nil {
			return err
		}
	}

	fmt.Printf("Note %d done\n", id)
	return nil
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return reportErr(initConfig())
	},
}

func initConfig() error {
	defaults, err := app.GetDefaults()
	if err != nil {
		return fmt.Errorf("failed to get defaults: %w", err)
	}

	// Generate a new host ID
	hostID := uuid.New().String()

	cfg := config.NewConfig(hostID, defaults["base_dir"])

	if err := config.Init(defaults["config_path"], cfg); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
	fmt.Printf("Host ID: %s\n", hostID)
	fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
	return nil
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := app.LoadConfig()
		if err != nil {
			return reportErr(fmt.Errorf("failed to load config: %w", err))
		}

		fmt.Printf("Host ID:  %s\n", cfg.HostID)
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:  %s\n", cfg.LogDir)
		fmt.Printf("Database: %s (%s)\n", cfg.Database.Type, cfg.Database.DataDir)
		return nil
	},
}

// reportErr prints err to stderr and passes it through. Error printing is
// done at the command level because the root silences cobra's own reporting
// (combined operations print failures as they happen, not once at the end).
func reportErr(err error) error {
	if err != nil {
		fmt.Fprintf(os.Stderr, "tas: %v\n", err)
	}
	return err
}

func init() {
	flags := rootCmd.Flags()

	flags.StringP("add", "a", "", "Add a note with the given text")
	flags.StringP("category", "c", "", "Category for --add (default: idea)")
	flags.String("create_user", "", "Create a user; omit the name to be prompted")
	flags.String("default_user", "", "List users and set the default user; pass =ID to skip the prompt")
	flags.BoolP("view", "v", false, "List open notes")
	flags.StringP("delete", "d", "", "Mark a note done; pass =ID to skip the prompt")

	flags.Lookup("create_user").NoOptDefVal = promptValue
	flags.Lookup("default_user").NoOptDefVal = promptValue
	flags.Lookup("delete").NoOptDefVal = promptValue

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
