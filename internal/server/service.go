package server

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/randutil"
)

// Service owns the tables and the shared game registry. Tables are fixed
// at construction from configuration; players come and go at runtime.
type Service struct {
	logger   *log.Logger
	registry *engine.Registry
	hub      *Hub
	tables   map[string]*Table
}

// NewService builds the configured tables and seats their startup bots.
func NewService(cfg *Config, hub *Hub, logger *log.Logger, clock quartz.Clock) (*Service, error) {
	s := &Service{
		logger:   logger.WithPrefix("service"),
		registry: engine.NewRegistry(),
		hub:      hub,
		tables:   make(map[string]*Table),
	}

	for _, tc := range cfg.Tables {
		rng := randutil.New(time.Now().UnixNano())
		table := NewTable(tc.ToEngine(), hub, s.registry, logger, clock, rng, cfg.Server.TurnClock())
		s.tables[tc.Name] = table

		for _, bc := range cfg.BotsForTable(tc.Name) {
			if _, err := table.AddBots(bc.Style, bc.Count, bc.BuyIn); err != nil {
				return nil, fmt.Errorf("seating bots at table %s: %w", tc.Name, err)
			}
		}
	}
	return s, nil
}

// Run starts every table's hand loop and blocks until the context is
// cancelled or a table fails fatally.
func (s *Service) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, table := range s.tables {
		g.Go(func() error { return table.Run(ctx) })
	}
	return g.Wait()
}

// Table returns the named table.
func (s *Service) Table(name string) (*Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("no such table: %s", name)
	}
	return t, nil
}

// ListTables summarizes every table, sorted by name.
func (s *Service) ListTables() []TableInfo {
	infos := make([]TableInfo, 0, len(s.tables))
	for _, t := range s.tables {
		infos = append(infos, t.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// JoinTable seats a player at the named table.
func (s *Service) JoinTable(tableName, playerID string, buyIn int) (*Table, error) {
	t, err := s.Table(tableName)
	if err != nil {
		return nil, err
	}
	if err := t.Join(playerID, playerID, buyIn); err != nil {
		return nil, err
	}
	return t, nil
}

// LeaveTable removes a player from the named table.
func (s *Service) LeaveTable(tableName, playerID string) error {
	t, err := s.Table(tableName)
	if err != nil {
		return err
	}
	return t.Leave(playerID)
}

// SubmitAction routes a player's decision to their table.
func (s *Service) SubmitAction(tableName, playerID string, act engine.Action) error {
	t, err := s.Table(tableName)
	if err != nil {
		return err
	}
	return t.SubmitAction(playerID, act)
}
