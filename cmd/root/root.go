// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"finsight/internal/config"
	"finsight/internal/container"
	"finsight/internal/finsighterror"
	"finsight/internal/logging"
	"finsight/internal/report"

	"github.com/spf13/cobra"
)

// GlobalFlags represents the flags shared by every command
type GlobalFlags struct {
	UserID   string
	DataDir  string
	Format   string
	LogLevel string
}

// ErrUserRequired is returned by commands that act on a user's records when
// --user was not given.
var ErrUserRequired = errors.New("--user is required")

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewDiscardLogger()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finsight",
		Short: "Personal finance insights: category suggestions, spending forecasts and budget tracking.",
		Long: `finsight manages a user's categories, keyword rules, budgets and transactions
stored in a local data directory. It suggests categories for new transactions,
forecasts spending for the next 30 days and reports budget utilization.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if appContainer == nil {
				return nil
			}
			return appContainer.Close()
		},
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = GlobalFlags{}

	appContainer     *container.Container
	containerOptions []container.Option
	initOnce         sync.Once
)

// Init initializes the root command and all flags
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringVarP(&SharedFlags.UserID, "user", "u", "", "User whose records are used")
		Cmd.PersistentFlags().StringVar(&SharedFlags.DataDir, "data-dir", "", "Data directory (overrides data.directory)")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Output format: text, json or yaml (overrides report.format)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (overrides log.level)")
	})
}

// SetContainerOptions sets options applied when the container is built. Tests
// use it to swap the record store or clock.
func SetContainerOptions(opts ...container.Option) {
	containerOptions = opts
}

func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv(nil)

	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	if SharedFlags.DataDir != "" {
		cfg.Data.Directory = SharedFlags.DataDir
	}
	if SharedFlags.Format != "" {
		cfg.Report.Format = SharedFlags.Format
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c, err := container.NewContainer(cfg, containerOptions...)
	if err != nil {
		return err
	}
	appContainer = c
	Log = c.GetLogger()
	Log.Debug("Command started",
		logging.F(logging.FieldOperation, cmd.Name()),
		logging.F(logging.FieldUserID, SharedFlags.UserID))
	return nil
}

// GetContainer returns the container built for the running command, or nil
// before the command started.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer installs c as the running command's container.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// GetConfig returns the configuration of the running command.
func GetConfig() *config.Config {
	if appContainer == nil {
		return nil
	}
	return appContainer.GetConfig()
}

// RequireUser returns the --user value or ErrUserRequired.
func RequireUser() (string, error) {
	userID := strings.TrimSpace(SharedFlags.UserID)
	if userID == "" {
		return "", ErrUserRequired
	}
	return userID, nil
}

// OutputFormat returns the report format of the running command.
func OutputFormat() report.Format {
	if cfg := GetConfig(); cfg != nil {
		if f, err := report.ParseFormat(cfg.Report.Format); err == nil {
			return f
		}
	}
	return report.FormatText
}

// Write writes rendered output to w.
func Write(w io.Writer, out []byte, err error) error {
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// WithHint appends hint to lookup failures so the user knows which command
// lists valid names or IDs. Other errors are returned unchanged.
func WithHint(err error, hint string) error {
	if err == nil || !finsighterror.IsNotFound(err) {
		return err
	}
	return fmt.Errorf("%w (%s)", err, hint)
}

// Prepare returns the container and user for a command acting on one user's
// records.
func Prepare() (*container.Container, string, error) {
	userID, err := RequireUser()
	if err != nil {
		return nil, "", err
	}
	c := GetContainer()
	if c == nil {
		return nil, "", errors.New("application not initialized")
	}
	return c, userID, nil
}
