package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cardroom.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "localhost:8080", cfg.Addr())
	require.Len(t, cfg.Tables, 1)
	assert.Equal(t, "main", cfg.Tables[0].Name)
	assert.Equal(t, 5, cfg.Tables[0].SmallBlind)
	assert.Equal(t, 10, cfg.Tables[0].BigBlind)
}

func TestLoadConfigParsesFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  address          = "0.0.0.0"
  port             = 9000
  log_level        = "debug"
  decision_timeout = "30s"
}

table "highstakes" {
  small_blind = 50
  big_blind   = 100
  max_players = 9
}

table "micro" {
  small_blind = 1
  big_blind   = 2
}

bot "regulars" {
  style  = "aggressive"
  count  = 3
  tables = ["micro"]
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Server.TurnClock())

	require.Len(t, cfg.Tables, 2)
	high := cfg.TableByName("highstakes")
	require.NotNil(t, high)
	assert.Equal(t, 9, high.MaxPlayers)
	// Buy-in bounds default from the big blind.
	assert.Equal(t, 5000, high.BuyInMin)
	assert.Equal(t, 50000, high.BuyInMax)

	micro := cfg.TableByName("micro")
	require.NotNil(t, micro)
	assert.Equal(t, 6, micro.MaxPlayers)
	assert.Equal(t, 100, micro.BuyInMin)

	bots := cfg.BotsForTable("micro")
	require.Len(t, bots, 1)
	assert.Equal(t, "aggressive", bots[0].Style)
	assert.Equal(t, 3, bots[0].Count)
	assert.Empty(t, cfg.BotsForTable("highstakes"))
}

func TestLoadConfigBotDefaultsToAllTables(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
table "one" {
  small_blind = 5
  big_blind   = 10
}

table "two" {
  small_blind = 10
  big_blind   = 20
}

bot "filler" {}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Len(t, cfg.Bots, 1)
	assert.Equal(t, "balanced", cfg.Bots[0].Style)
	assert.Equal(t, 1, cfg.Bots[0].Count)
	assert.ElementsMatch(t, []string{"one", "two"}, cfg.Bots[0].Tables)
}

func TestLoadConfigRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `table "broken" { small_blind = `)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		return &Config{
			Server: Settings{Address: "localhost", Port: 8080},
			Tables: []TableConfig{{
				Name:       "main",
				MaxPlayers: 6,
				SmallBlind: 5,
				BigBlind:   10,
				BuyInMin:   500,
				BuyInMax:   5000,
			}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "invalid port"},
		{"no tables", func(c *Config) { c.Tables = nil }, "at least one table"},
		{"zero small blind", func(c *Config) { c.Tables[0].SmallBlind = 0 }, "small blind"},
		{"inverted blinds", func(c *Config) { c.Tables[0].BigBlind = 5 }, "big blind"},
		{"too many seats", func(c *Config) { c.Tables[0].MaxPlayers = 11 }, "max players"},
		{"inverted buy-ins", func(c *Config) { c.Tables[0].BuyInMin = 9000 }, "buy-in"},
		{"negative bot buy-in", func(c *Config) {
			c.Bots = []BotConfig{{Name: "b", BuyIn: -1}}
		}, "buy-in must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestTurnClockDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 15*time.Second, Settings{}.TurnClock())
	assert.Equal(t, 15*time.Second, Settings{DecisionTimeout: "garbage"}.TurnClock())
	assert.Equal(t, 15*time.Second, Settings{DecisionTimeout: "-5s"}.TurnClock())
	assert.Equal(t, time.Minute, Settings{DecisionTimeout: "1m"}.TurnClock())
}
