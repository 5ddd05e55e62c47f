package rules

import (
	"bytes"
	"testing"

	"finsight/internal/config"
	"finsight/internal/container"
	"finsight/internal/finsighterror"
	"finsight/internal/logging"
	"finsight/internal/report"
	"finsight/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_Structure(t *testing.T) {
	assert.Equal(t, "rules", Cmd.Use)
	names := make([]string, 0, len(Cmd.Commands()))
	for _, sub := range Cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"list", "add", "delete"}, names)

	keywordFlag := AddCmd.Flags().Lookup("keyword")
	require.NotNil(t, keywordFlag)
	assert.Equal(t, "k", keywordFlag.Shorthand)
	assert.NotNil(t, ListCmd.Flags().Lookup("defaults"))
}

func TestAddListDelete(t *testing.T) {
	records := store.NewMemoryStore()
	c, err := container.NewContainer(config.Default(), container.WithStore(records), container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	_, err = records.AddCategory("alice", "Office")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, add(c, &out, "alice", "office", " Depot "))
	assert.Contains(t, out.String(), `Added rule "depot" -> office`)

	err = add(c, &out, "alice", "office", "DEPOT")
	assert.ErrorIs(t, err, finsighterror.ErrDuplicateKeyword)

	out.Reset()
	require.NoError(t, list(c, &out, "alice", false, report.FormatText))
	assert.Contains(t, out.String(), "depot")
	assert.NotContains(t, out.String(), "zomato")

	out.Reset()
	require.NoError(t, list(c, &out, "alice", true, report.FormatText))
	assert.Contains(t, out.String(), "zomato")

	out.Reset()
	require.NoError(t, remove(c, &out, "alice", "depot"))
	assert.Equal(t, "Deleted rule \"depot\"\n", out.String())

	out.Reset()
	require.NoError(t, list(c, &out, "alice", false, report.FormatText))
	assert.Equal(t, "No keyword rules\n", out.String())
}
