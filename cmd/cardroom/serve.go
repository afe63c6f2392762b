package main

import (
	"github.com/coder/quartz"

	"github.com/cardroomhq/cardroom/internal/server"
)

// ServeCmd runs the WebSocket server from an HCL configuration file.
type ServeCmd struct {
	Config   string `kong:"default='cardroom.hcl',help='Path to HCL configuration file'"`
	LogLevel string `kong:"default='',help='Override configured log level'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Server.LogLevel)

	srv, err := server.NewServer(cfg, logger, quartz.NewReal())
	if err != nil {
		return err
	}

	logger.Info("Starting cardroom",
		"addr", cfg.Addr(),
		"tables", len(cfg.Tables),
		"turn_clock", cfg.Server.TurnClock(),
	)
	return srv.Run(signalContext(logger))
}
