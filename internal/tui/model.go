package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"sololevel/internal/engine"
	"sololevel/internal/ui"
)

type boardModel struct {
	ctx       context.Context
	svc       BoardService
	playerKey string

	width  int
	height int

	view *engine.PlayerView
	day  *engine.DayView

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	view *engine.PlayerView
	day  *engine.DayView
	err  error
}

type completedMsg struct {
	res *engine.CompleteResult
	err error
}

type startedMsg struct {
	res *engine.StartDayResult
	err error
}

type deletedMsg struct {
	res *engine.DeleteQuestResult
	err error
}

func newBoardModel(ctx context.Context, svc BoardService, playerKey string) boardModel {
	return boardModel{
		ctx:       ctx,
		svc:       svc,
		playerKey: playerKey,
		loading:   true,
		lastLog:   "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		v, err := m.svc.Snapshot(m.ctx, m.playerKey)
		if err != nil {
			return loadedMsg{err: err}
		}
		d, err := m.svc.Day(m.ctx, m.playerKey)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{view: v, day: d}
	}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Complete(m.ctx, m.playerKey, id)
		return completedMsg{res: res, err: err}
	}
}

func (m boardModel) startCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.StartDay(m.ctx, m.playerKey)
		return startedMsg{res: res, err: err}
	}
}

func (m boardModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.DeleteQuest(m.ctx, m.playerKey, id)
		return deletedMsg{res: res, err: err}
	}
}

func (m boardModel) quests() []engine.Quest {
	if m.day == nil {
		return nil
	}
	return m.day.Quests
}

func (m boardModel) selectedQuest() *engine.Quest {
	qs := m.quests()
	if m.selected < 0 || m.selected >= len(qs) {
		return nil
	}
	return &qs[m.selected]
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.view = msg.view
		m.day = msg.day
		if n := len(m.quests()); m.selected >= n {
			m.selected = n - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case startedMsg:
		if msg.err != nil {
			m.lastLog = "Start failed: " + engine.OutcomeOf(msg.err).Message
			return m, nil
		}
		if msg.res.AlreadyStarted {
			m.lastLog = "Day " + msg.res.ActiveDay.DayKey + " already started."
		} else {
			m.lastLog = "Day " + msg.res.ActiveDay.DayKey + " started."
		}
		return m, m.loadCmd()
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + engine.OutcomeOf(msg.err).Message
			return m, nil
		}
		r := msg.res
		m.lastLog = fmt.Sprintf("Completed %s: +%d XP, +%d gold", r.Quest.Title, r.Reward.XP, r.Reward.Gold)
		if r.Progress.LeveledUp {
			m.lastLog += fmt.Sprintf(" | LEVEL UP %d → %d", r.Progress.Before.Level, r.Progress.After.Level)
		}
		return m, m.loadCmd()
	case deletedMsg:
		if msg.err != nil {
			m.lastLog = "Delete failed: " + engine.OutcomeOf(msg.err).Message
			return m, nil
		}
		m.lastLog = "Removed " + msg.res.Quest.Title + "."
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "s":
			m.lastLog = "Starting day…"
			return m, m.startCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.quests())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			q := m.selectedQuest()
			if q == nil {
				m.lastLog = "No quest selected."
				return m, nil
			}
			if q.Completed {
				m.lastLog = "Already done."
				return m, nil
			}
			m.lastLog = "Completing " + q.Title + "…"
			return m, m.completeCmd(q.ID)
		case "x", "delete":
			q := m.selectedQuest()
			if q == nil {
				m.lastLog = "No quest selected."
				return m, nil
			}
			return m, m.deleteCmd(q.ID)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := len(linesLeft)
	if len(linesRight) > rows {
		rows = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.view == nil {
		return "Solo Level | loading…"
	}
	p := m.view.Player
	bar := progressBar(p.XP, m.view.XPToNext, 30)
	return fmt.Sprintf("Solo Level | Player: %s | Level %d | XP %d/%d %s | Gold %d",
		m.playerKey, p.Level, p.XP, m.view.XPToNext, bar, p.Gold)
}

func (m boardModel) renderSidebar() string {
	if m.view == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Stats"}
	for _, a := range engine.Attributes {
		lines = append(lines, fmt.Sprintf("- %s %-12s %2d  cap %dm", ui.TypeIcon(a), a, m.view.Player.Stats.Get(a), m.view.MaxMinutes[a]))
	}
	lines = append(lines, fmt.Sprintf("Unspent points: %d", m.view.Player.StatPoints))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- x: remove")
	lines = append(lines, "- s: start day")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	if m.day == nil || m.day.ActiveDay == nil {
		today := ""
		if m.day != nil {
			today = m.day.TodayKey
		}
		out = append(out, "Day "+today+" not started. Press s to begin.")
		return strings.Join(out, "\n")
	}

	qs := m.quests()
	done := 0
	for _, q := range qs {
		if q.Completed {
			done++
		}
	}
	out = append(out, fmt.Sprintf("Quests for %s (%d/%d done)", m.day.ActiveDay.DayKey, done, len(qs)))
	if len(qs) == 0 {
		out = append(out, "(empty; add one with `sl add`)")
		return strings.Join(out, "\n")
	}
	for i, q := range qs {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		check := "[ ]"
		if q.Completed {
			check = "[x]"
		}
		out = append(out, fmt.Sprintf("%s%s %s %s (%dm, +%d xp, +%d gold)", cursor, check, ui.TypeIcon(q.Type), q.Title, q.Minutes, q.XPReward, q.GoldReward))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
