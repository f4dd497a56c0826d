package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"bot": {"token": "file-token", "guild_id": "guild-1"},
		"channels": {"moderation_log": "chan-log"}
	}`), 0644))

	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("GUILD", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Bot.Token)
	assert.Equal(t, "guild-1", cfg.Bot.GuildID)
	assert.Equal(t, "chan-log", cfg.Channels.ModerationLog)
	assert.Equal(t, 90, cfg.Moderation.StrikeLifetimeDays)
}

func TestLoadMissingTokenFails(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("GUILD", "")

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
