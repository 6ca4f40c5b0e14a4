package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/profilecard/internal/profile"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PROFILECARD_CONFIG", "")
	t.Setenv("PROFILECARD_VARIANT", "")
	t.Setenv("PROFILECARD_LOG_LEVEL", "error")

	if f := generateCmd.Flags().Lookup("set"); f != nil {
		f.Value.(interface{ Replace([]string) error }).Replace(nil)
		f.Changed = false
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGenerateJSON(t *testing.T) {
	out, err := execute(t, "generate", "--count", "3", "--format", "json", "--seed", "42", "--variant", "card", "--ai=false")
	require.NoError(t, err)

	var records []profile.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 3)

	card := profile.CardConfig()
	ids := map[string]bool{}
	for _, rec := range records {
		assert.Len(t, rec.Achievements, profile.AchievementCount)
		assert.True(t, card.InterestCount.Contains(rec.Interests.Len()))
		ids[rec.ID] = true
	}
	assert.Len(t, ids, 3, "every record gets its own ID")
}

func TestGenerateYAML(t *testing.T) {
	out, err := execute(t, "generate", "--count", "1", "--format", "yaml", "--seed", "7", "--variant", "classic", "--ai=false")
	require.NoError(t, err)

	var records []profile.Record
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 6, records[0].Interests.Len())
}

func TestGenerateText(t *testing.T) {
	out, err := execute(t, "generate", "--count", "1", "--format", "text", "--seed", "1", "--variant", "classic", "--ai=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Achievements:")
	assert.Contains(t, out, "Interests:")
}

func TestGenerateRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "generate", "--count", "0", "--format", "text")
	assert.Error(t, err)

	_, err = execute(t, "generate", "--count", "1", "--format", "xml")
	assert.Error(t, err)
}

func TestGeneratePinsFields(t *testing.T) {
	out, err := execute(t, "generate", "-n", "2", "-f", "json", "--seed", "3", "--ai=false",
		"--set", "nickname=ada", "--set", "EMAIL=ada@example.test")
	require.NoError(t, err)

	var records []profile.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, "ada", rec.Nickname)
		assert.Equal(t, "ada@example.test", rec.Email)
	}
	assert.NotEqual(t, records[0].FullName, records[1].FullName, "unpinned fields still randomize")
}

func TestGenerateRejectsUnknownField(t *testing.T) {
	_, err := execute(t, "generate", "--ai=false", "--set", "shoeSize=44")
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrUnknownField)

	_, err = execute(t, "generate", "--ai=false", "--set", "nickname")
	assert.Error(t, err)
}

func TestGenerateWithOfflineProvider(t *testing.T) {
	t.Setenv("PROFILECARD_LLM_PROVIDER", "mock")
	db := filepath.Join(t.TempDir(), "profilecard.db")

	out, err := execute(t, "generate", "-n", "2", "-f", "json", "--seed", "5", "--variant", "card", "--ai", "--db", db)
	require.NoError(t, err)

	var records []profile.Record
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	pool := profile.CardConfig().Pool()
	for _, rec := range records {
		assert.NotEmpty(t, rec.FullName)
		assert.Subset(t, pool, rec.Interests.Strings())
	}

	out, err = execute(t, "llm", "list", "--variant", "card", "--ai=false", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "profile-gen")
	assert.Contains(t, out, "card")
	assert.NotContains(t, out, "No LLM requests found.")
}

func TestConfigShowAndValidate(t *testing.T) {
	out, err := execute(t, "config", "show", "--variant", "card")
	require.NoError(t, err)
	assert.Contains(t, out, "name: card")

	path := filepath.Join(t.TempDir(), "card.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	out, err = execute(t, "config", "validate", path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "ok"), out)
}

func TestConfigValidateRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base: classic\nflavour: spicy\n"), 0o644))

	_, err := execute(t, "config", "validate", path)
	assert.Error(t, err)
}

func TestConfigSchema(t *testing.T) {
	out, err := execute(t, "config", "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "interest_catalog")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "profilecard")
}
