package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"
	"github.com/muesli/termenv"

	"github.com/cardroomhq/cardroom/internal/engine"
	"github.com/cardroomhq/cardroom/internal/server"
)

// WatchCmd attaches a read-only terminal view to a running table.
type WatchCmd struct {
	Addr  string `kong:"default='localhost:8080',help='Server address'"`
	Table string `kong:"default='main',help='Table to watch'"`
	Name  string `kong:"default='watcher',help='Spectator name'"`
}

func (c *WatchCmd) Run() error {
	u := url.URL{Scheme: "ws", Host: c.Addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", u.String(), err)
	}
	defer conn.Close()

	auth, err := server.NewMessage(server.MessageTypeAuth, server.AuthData{PlayerName: c.Name})
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(auth); err != nil {
		return err
	}

	sub, err := server.NewMessage(server.MessageTypeSubscribe, server.SubscribeData{
		Channels: []string{"table:" + c.Table},
	})
	if err != nil {
		return err
	}
	if err := conn.WriteJSON(sub); err != nil {
		return err
	}

	events := make(chan tea.Msg, 64)
	go readEvents(conn, events)

	p := tea.NewProgram(newWatchModel(c.Table, events), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

type updateMsg engine.GameView

type summaryMsg engine.SummaryNotification

type disconnectMsg struct{ err error }

// readEvents decodes server frames into tea messages.
func readEvents(conn *websocket.Conn, out chan<- tea.Msg) {
	for {
		var frame struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			out <- disconnectMsg{err: err}
			return
		}

		switch frame.Type {
		case "game_update":
			var v engine.GameView
			if json.Unmarshal(frame.Data, &v) == nil {
				out <- updateMsg(v)
			}
		case "game_summary_notification":
			var n engine.SummaryNotification
			if json.Unmarshal(frame.Data, &n) == nil {
				out <- summaryMsg(n)
			}
		}
	}
}

type watchModel struct {
	tableName string
	events    <-chan tea.Msg
	seats     table.Model
	view      *engine.GameView
	summary   *engine.GameSummary
	err       error

	header lipgloss.Style
	board  lipgloss.Style
	faint  lipgloss.Style
}

func newWatchModel(tableName string, events <-chan tea.Msg) watchModel {
	columns := []table.Column{
		{Title: "Seat", Width: 4},
		{Title: "Player", Width: 20},
		{Title: "Stack", Width: 8},
		{Title: "Bet", Width: 8},
		{Title: "Status", Width: 12},
	}
	seats := table.New(
		table.WithColumns(columns),
		table.WithHeight(10),
	)

	accent := lipgloss.Color("12")
	if !termenv.HasDarkBackground() {
		accent = lipgloss.Color("4")
	}

	return watchModel{
		tableName: tableName,
		events:    events,
		seats:     seats,
		header:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		board:     lipgloss.NewStyle().Bold(true),
		faint:     lipgloss.NewStyle().Faint(true),
	}
}

func (m watchModel) Init() tea.Cmd {
	return m.nextEvent()
}

func (m watchModel) nextEvent() tea.Cmd {
	return func() tea.Msg { return <-m.events }
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case updateMsg:
		v := engine.GameView(msg)
		m.view = &v
		rows := make([]table.Row, len(v.Seats))
		for i, s := range v.Seats {
			rows[i] = table.Row{
				fmt.Sprintf("%d", s.Position),
				s.PlayerName,
				fmt.Sprintf("%d", s.Stack),
				fmt.Sprintf("%d", s.Bet),
				s.Status,
			}
		}
		m.seats.SetRows(rows)
		return m, m.nextEvent()

	case summaryMsg:
		m.summary = msg.GameSummary
		return m, m.nextEvent()

	case disconnectMsg:
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(m.header.Render("cardroom: "+m.tableName) + "\n")
	if m.view == nil {
		b.WriteString(m.faint.Render("waiting for the next hand...") + "\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("phase %s   pot %d   to call %d\n",
		m.view.Phase, m.view.Pot, m.view.CurrentBet))
	if len(m.view.CommunityCards) > 0 {
		b.WriteString(m.board.Render("board: "+strings.Join(m.view.CommunityCards, " ")) + "\n")
	}
	b.WriteString("\n" + m.seats.View() + "\n")

	if m.summary != nil {
		b.WriteString("\n" + m.header.Render("last game summary") + "\n")
		for _, p := range m.summary.Players {
			b.WriteString(fmt.Sprintf("  %-20s %+d (%s)\n", p.PlayerName, p.WinLoss, p.Status))
		}
	}
	b.WriteString("\n" + m.faint.Render("q to quit"))
	return b.String()
}
