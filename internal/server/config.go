package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardroomhq/cardroom/internal/engine"
)

// Config is the complete server configuration.
type Config struct {
	Server Settings      `hcl:"server,block"`
	Tables []TableConfig `hcl:"table,block"`
	Bots   []BotConfig   `hcl:"bot,block"`
}

// Settings contains server-level configuration.
type Settings struct {
	Address         string `hcl:"address,optional"`
	Port            int    `hcl:"port,optional"`
	LogLevel        string `hcl:"log_level,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`
}

// TableConfig defines one table.
type TableConfig struct {
	Name       string `hcl:"name,label"`
	MaxPlayers int    `hcl:"max_players,optional"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	BuyInMin   int    `hcl:"buy_in_min,optional"`
	BuyInMax   int    `hcl:"buy_in_max,optional"`
}

// BotConfig seats bots at tables on startup.
type BotConfig struct {
	Name   string   `hcl:"name,label"`
	Style  string   `hcl:"style,optional"`
	Tables []string `hcl:"tables,optional"`
	BuyIn  int      `hcl:"buy_in,optional"`
	Count  int      `hcl:"count,optional"`
}

// ToEngine converts the table block into the engine's ruleset.
func (t TableConfig) ToEngine() engine.TableConfig {
	return engine.TableConfig{
		Name:       t.Name,
		MaxPlayers: t.MaxPlayers,
		SmallBlind: t.SmallBlind,
		BigBlind:   t.BigBlind,
		MinBuyIn:   t.BuyInMin,
		MaxBuyIn:   t.BuyInMax,
	}
}

// TurnClock returns the parsed decision timeout, defaulting to 15 seconds.
func (s Settings) TurnClock() time.Duration {
	if s.DecisionTimeout == "" {
		return 15 * time.Second
	}
	d, err := time.ParseDuration(s.DecisionTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Tables: []TableConfig{
			{
				Name:       "main",
				MaxPlayers: 6,
				SmallBlind: 5,
				BigBlind:   10,
				BuyInMin:   500,
				BuyInMax:   5000,
			},
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to the
// defaults when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	for i := range config.Tables {
		t := &config.Tables[i]
		if t.MaxPlayers == 0 {
			t.MaxPlayers = 6
		}
		if t.BuyInMin == 0 {
			t.BuyInMin = t.BigBlind * 50
		}
		if t.BuyInMax == 0 {
			t.BuyInMax = t.BigBlind * 500
		}
	}

	for i := range config.Bots {
		b := &config.Bots[i]
		if b.Style == "" {
			b.Style = "balanced"
		}
		if b.Count == 0 {
			b.Count = 1
		}
		if len(b.Tables) == 0 {
			for _, t := range config.Tables {
				b.Tables = append(b.Tables, t.Name)
			}
		}
	}

	return &config, nil
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	for _, t := range c.Tables {
		if t.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", t.Name)
		}
		if t.BigBlind <= t.SmallBlind {
			return fmt.Errorf("table %s: big blind must be greater than small blind", t.Name)
		}
		if t.MaxPlayers < 2 || t.MaxPlayers > 10 {
			return fmt.Errorf("table %s: max players must be between 2 and 10", t.Name)
		}
		if t.BuyInMin >= t.BuyInMax {
			return fmt.Errorf("table %s: buy-in minimum must be less than maximum", t.Name)
		}
	}

	for _, b := range c.Bots {
		if b.BuyIn < 0 {
			return fmt.Errorf("bot %s: buy-in must not be negative", b.Name)
		}
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// TableByName returns the table block with the given name.
func (c *Config) TableByName(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}

// BotsForTable returns the bot blocks assigned to a table.
func (c *Config) BotsForTable(tableName string) []BotConfig {
	var bots []BotConfig
	for _, b := range c.Bots {
		for _, t := range b.Tables {
			if t == tableName {
				bots = append(bots, b)
				break
			}
		}
	}
	return bots
}
