package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	daygoalapp "github.com/alexanderramin/daygoal/internal/app"
	"github.com/alexanderramin/daygoal/internal/cli/formatter"
	"github.com/alexanderramin/daygoal/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type timerKeyMap struct {
	Stop key.Binding
	Help key.Binding
	Quit key.Binding
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Stop, k.Help, k.Quit}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Stop}, {k.Help, k.Quit}}
}

var timerKeys = timerKeyMap{
	Stop: key.NewBinding(
		key.WithKeys("s", "enter"),
		key.WithHelp("s", "stop timer"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit (timer keeps running)"),
	),
}

type timerTickMsg time.Time

type timerStoppedMsg struct {
	day *domain.Day
	err error
}

// timerModel is the live view of one running task entry. Quitting leaves
// the interval open; stopping closes it through the day service.
type timerModel struct {
	ctx    context.Context
	timers daygoalapp.TimerUseCase
	now    func() time.Time

	date    string
	entryID string
	name    string
	goal    int
	// logged excludes the running interval.
	logged  int
	started time.Time
	running bool

	current time.Time
	help    help.Model
	err     error
}

func newTimerModel(ctx context.Context, timers daygoalapp.TimerUseCase, now func() time.Time, date string, ref daygoalapp.EntryRef) (timerModel, error) {
	day, err := timers.GetOrCreate(ctx, date)
	if err != nil {
		return timerModel{}, err
	}
	e := entryFor(day, ref)
	if e == nil {
		return timerModel{}, &domain.NotFoundError{Entity: "task entry", Key: ref.String()}
	}
	idx := e.OpenIntervalIndex()
	if idx < 0 {
		return timerModel{}, fmt.Errorf("%s has no running timer (use --start)", e.Name)
	}
	return timerModel{
		ctx:     ctx,
		timers:  timers,
		now:     now,
		date:    date,
		entryID: e.ID,
		name:    e.Name,
		goal:    e.GoalMinutes,
		logged:  e.LoggedMinutes,
		started: e.Intervals[idx].StartTime,
		running: true,
		current: now(),
		help:    help.New(),
	}, nil
}

func timerTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (m timerModel) Init() tea.Cmd {
	return timerTick()
}

func (m timerModel) stop() tea.Cmd {
	return func() tea.Msg {
		day, err := m.timers.MutateInterval(m.ctx, daygoalapp.MutateIntervalRequest{
			Date:    m.date,
			Task:    daygoalapp.RefByID(m.entryID),
			Action:  domain.ActionEnd,
			EndTime: m.now(),
		})
		return timerStoppedMsg{day: day, err: err}
	}
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case timerTickMsg:
		if !m.running {
			return m, nil
		}
		m.current = m.now()
		return m, timerTick()

	case timerStoppedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.running = false
		m.current = m.now()
		if e := entryFor(msg.day, daygoalapp.RefByID(m.entryID)); e != nil {
			m.logged = e.LoggedMinutes
		}
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, timerKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, timerKeys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, timerKeys.Stop) && m.running:
			return m, m.stop()
		}
	}
	return m, nil
}

func (m timerModel) View() string {
	var b strings.Builder

	logged := m.logged
	if m.running {
		elapsed := m.current.Sub(m.started)
		fmt.Fprintf(&b, "%s  %s\n\n", formatter.RunningIndicator(true), formatter.Bold(formatter.FormatElapsed(elapsed)))
		logged += domain.IntervalMinutes(m.started, m.current)
	} else {
		fmt.Fprintf(&b, "%s\n\n", formatter.StyleGreen.Render("Stopped"))
	}
	fmt.Fprintf(&b, "%s of %s  %s\n", formatter.FormatMinutes(logged), formatter.FormatMinutes(m.goal),
		formatter.RenderGoalProgress(logged, m.goal, 20))
	if m.err != nil {
		fmt.Fprintf(&b, "\n%s\n", formatter.StyleRed.Render("Error: "+m.err.Error()))
	}

	return formatter.RenderBox(m.name, b.String()) + "\n" + m.help.View(timerKeys)
}
