package root_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"testing"

	"finsight/cmd/root"
	"finsight/internal/config"
	"finsight/internal/container"
	"finsight/internal/finsighterror"
	"finsight/internal/logging"
	"finsight/internal/report"
	"finsight/internal/store"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "finsight", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "category suggestions")
	assert.Contains(t, root.Cmd.Long, "forecasts spending for the next 30 days")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()
	// Init is idempotent.
	root.Init()

	userFlag := root.Cmd.PersistentFlags().Lookup("user")
	require.NotNil(t, userFlag)
	assert.Equal(t, "u", userFlag.Shorthand)

	formatFlag := root.Cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "f", formatFlag.Shorthand)

	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("data-dir"))
	assert.NotNil(t, root.Cmd.PersistentFlags().Lookup("log-level"))
}

func TestRootCommand_Run(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	assert.NotPanics(t, func() {
		root.Cmd.Run(cmd, []string{})
	})
}

func TestRequireUser(t *testing.T) {
	original := root.SharedFlags.UserID
	defer func() { root.SharedFlags.UserID = original }()

	root.SharedFlags.UserID = "  "
	_, err := root.RequireUser()
	assert.ErrorIs(t, err, root.ErrUserRequired)

	root.SharedFlags.UserID = "alice"
	userID, err := root.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, "alice", userID)
}

func TestPrepareAndOutputFormat(t *testing.T) {
	originalUser := root.SharedFlags.UserID
	defer func() {
		root.SharedFlags.UserID = originalUser
		root.SetContainer(nil)
	}()

	root.SetContainer(nil)
	root.SharedFlags.UserID = "alice"
	_, _, err := root.Prepare()
	assert.Error(t, err)
	assert.Nil(t, root.GetConfig())
	assert.Equal(t, report.FormatText, root.OutputFormat())

	cfg := config.Default()
	cfg.Report.Format = "json"
	c, err := container.NewContainer(cfg, container.WithStore(store.NewMemoryStore()), container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	root.SetContainer(c)

	got, userID, err := root.Prepare()
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.Equal(t, "alice", userID)
	assert.Equal(t, report.FormatJSON, root.OutputFormat())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, root.Write(&buf, []byte("hello\n"), nil))
	assert.Equal(t, "hello\n", buf.String())

	err := root.Write(&buf, nil, fmt.Errorf("render failed"))
	assert.EqualError(t, err, "render failed")
}

func TestWithHint(t *testing.T) {
	assert.NoError(t, root.WithHint(nil, "unused"))

	other := errors.New("disk full")
	assert.Same(t, other, root.WithHint(other, "unused"))

	notFound := fmt.Errorf("lookup: %w", &finsighterror.NotFoundError{Kind: "category", Key: "Travel"})
	err := root.WithHint(notFound, "see 'finsight category list'")
	assert.EqualError(t, err, `lookup: category "Travel" not found (see 'finsight category list')`)
	assert.True(t, finsighterror.IsNotFound(err))
}

func TestExecute_BuildsContainerFromFlags(t *testing.T) {
	root.Init()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { require.NoError(t, os.Chdir(originalDir)) }()

	records := store.NewMemoryStore()
	root.SetContainerOptions(container.WithStore(records), container.WithLogger(logging.NewMockLogger()))
	defer func() {
		root.SetContainerOptions()
		root.SetContainer(nil)
		root.SharedFlags = root.GlobalFlags{}
	}()

	var seenUser string
	var seenFormat report.Format
	probe := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, userID, err := root.Prepare()
			if err != nil {
				return err
			}
			seenUser = userID
			seenFormat = root.OutputFormat()
			assert.Same(t, records, c.GetStore())
			return nil
		},
	}
	root.Cmd.AddCommand(probe)
	defer root.Cmd.RemoveCommand(probe)

	root.Cmd.SetArgs([]string{"probe", "--user", "bob", "--format", "yaml", "--data-dir", dir})
	require.NoError(t, root.Cmd.Execute())
	assert.Equal(t, "bob", seenUser)
	assert.Equal(t, report.FormatYAML, seenFormat)
	assert.Equal(t, dir, root.GetConfig().Data.Directory)

	root.SharedFlags = root.GlobalFlags{}
	root.Cmd.SetArgs([]string{"probe", "--format", "xml"})
	assert.Error(t, root.Cmd.Execute())
}

func TestExecute_RejectsInvalidOverrides(t *testing.T) {
	root.Init()
	t.Setenv("HOME", t.TempDir())
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { require.NoError(t, os.Chdir(originalDir)) }()

	root.SetContainerOptions(container.WithStore(store.NewMemoryStore()), container.WithLogger(logging.NewMockLogger()))
	defer func() {
		root.SetContainerOptions()
		root.SetContainer(nil)
		root.SharedFlags = root.GlobalFlags{}
	}()

	ran := false
	noop := &cobra.Command{
		Use: "noop",
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			return nil
		},
	}
	root.Cmd.AddCommand(noop)
	defer root.Cmd.RemoveCommand(noop)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"log level", []string{"noop", "--log-level", "chatty"}, "invalid log level: chatty"},
		{"report format", []string{"noop", "--format", "csv"}, "invalid report format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root.SharedFlags = root.GlobalFlags{}
			root.SetContainer(nil)
			ran = false
			root.Cmd.SetArgs(tt.args)
			err := root.Cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.False(t, ran)
			assert.Nil(t, root.GetContainer())
		})
	}

	root.SharedFlags = root.GlobalFlags{}
	root.Cmd.SetArgs([]string{"noop", "--log-level", "debug"})
	require.NoError(t, root.Cmd.Execute())
	assert.True(t, ran)
	assert.Equal(t, "debug", root.GetConfig().Log.Level)
}
