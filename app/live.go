package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"

	"github.com/slihbo/WinTrace/internal/models"
	"github.com/slihbo/WinTrace/internal/ui"
	"github.com/slihbo/WinTrace/report"
	"github.com/slihbo/WinTrace/server"
)

const (
	livePadding  = 2
	liveMaxWidth = 60
	liveRows     = 8
	liveInterval = time.Second
)

type liveKeymap struct {
	pause key.Binding
	quit  key.Binding
}

var liveKeys = liveKeymap{
	pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause/resume tracking"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

var (
	liveBase  = lipgloss.NewStyle().Padding(1, livePadding)
	liveTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB86C"))
	liveHint  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	liveError = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
)

type (
	snapshotMsg struct {
		snap *models.Snapshot
		err  error
	}

	liveTickMsg time.Time
)

// liveModel renders the running tracker's day, refreshed every second.
type liveModel struct {
	client   *server.Client
	snap     *models.Snapshot
	err      error
	help     help.Model
	progress progress.Model
}

func newLiveModel(c *server.Client) *liveModel {
	return &liveModel{
		client:   c,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m *liveModel) fetch() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), liveInterval)
		defer cancel()

		snap, err := m.client.Snapshot(ctx)

		return snapshotMsg{snap: snap, err: err}
	}
}

func (m *liveModel) togglePause() tea.Cmd {
	tracking := m.snap != nil && m.snap.Tracking

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var err error
		if tracking {
			_, err = m.client.StopTracking(ctx)
		} else {
			_, err = m.client.StartTracking(ctx)
		}

		if err != nil {
			return snapshotMsg{err: err}
		}

		snap, err := m.client.Snapshot(ctx)

		return snapshotMsg{snap: snap, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(liveInterval, func(t time.Time) tea.Msg {
		return liveTickMsg(t)
	})
}

func (m *liveModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tick())
}

func (m *liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, liveKeys.quit):
			return m, tea.Quit
		case key.Matches(msg, liveKeys.pause):
			return m, m.togglePause()
		}
	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-livePadding*2-4, liveMaxWidth)
	case liveTickMsg:
		return m, tea.Batch(m.fetch(), tick())
	case snapshotMsg:
		m.err = msg.err
		if msg.snap != nil {
			m.snap = msg.snap
		}
	}

	return m, nil
}

type liveRow struct {
	id   string
	secs float64
}

func (m *liveModel) View() string {
	var s strings.Builder

	s.WriteString(liveTitle.Render("WinTrace"))

	if m.snap == nil {
		if m.err != nil {
			s.WriteString("\n\n" + liveError.Render(m.err.Error()))
		} else {
			s.WriteString("\n\n" + liveHint.Render("waiting for the tracker..."))
		}

		return liveBase.Render(s.String())
	}

	state := "tracking"
	if !m.snap.Tracking {
		state = "paused"
	}

	total := m.snap.Usage.Total()

	s.WriteString(liveHint.Render(fmt.Sprintf("  %s · %s · %s", m.snap.Day, state, ui.Duration(total))))

	if m.snap.Current != "" {
		s.WriteString("\n\nNow: " + ui.Highlight(report.DisplayName(m.snap.Current)))
	}

	rows := make([]liveRow, 0, len(m.snap.Usage))
	for id, secs := range m.snap.Usage {
		rows = append(rows, liveRow{id: id, secs: secs})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].secs != rows[j].secs {
			return rows[i].secs > rows[j].secs
		}

		return rows[i].id < rows[j].id
	})

	if len(rows) > liveRows {
		rows = rows[:liveRows]
	}

	for _, r := range rows {
		share := 0.0
		if total > 0 {
			share = r.secs / total
		}

		fmt.Fprintf(&s, "\n\n%-24s %s\n", report.DisplayName(r.id), ui.Duration(r.secs))
		s.WriteString(m.progress.ViewAs(share))
	}

	if m.err != nil {
		s.WriteString("\n\n" + liveError.Render(m.err.Error()))
	}

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{liveKeys.pause, liveKeys.quit}))

	return liveBase.Render(s.String())
}

// liveAction handles the live command. It needs a running tracker since the
// data files only hold what was last saved.
func liveAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	c := server.NewClient(cfg.Server.Addr)

	if _, err := c.Health(ctx.Context); err != nil {
		return err
	}

	_, err = tea.NewProgram(newLiveModel(c), tea.WithContext(ctx.Context)).Run()

	return err
}
