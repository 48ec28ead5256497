package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sololevel/internal/engine"
)

// Solo Level theme (CLI + TUI).

const (
	IconQuest    = "🗡️"
	IconSparkle  = "✨"
	IconPlus     = "➕"
	IconDone     = "✅"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconScroll   = "📜"
	IconSun      = "🌅"
	IconCoin     = "🪙"
	IconPhysical = "💪"
	IconIntel    = "🧠"
	IconSpirit   = "🧘"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func TypeIcon(a engine.Attribute) string {
	switch a {
	case engine.AttributePhysical:
		return IconPhysical
	case engine.AttributeIntellectual:
		return IconIntel
	case engine.AttributeSpiritual:
		return IconSpirit
	default:
		return IconQuest
	}
}

// QuestStatus renders the done/open marker for a quest.
func QuestStatus(completed bool) string {
	if completed {
		return Good.Render("done")
	}
	return Warn.Render("open")
}

// Reward renders an xp/gold pair, e.g. "+50 xp +2 gold".
func Reward(xp, gold int) string {
	return fmt.Sprintf("%s %s", H2.Render(fmt.Sprintf("+%d xp", xp)), Gold.Render(fmt.Sprintf("+%d gold", gold)))
}

// ShortID trims a uuid to its first block for display. Commands accept any unique prefix.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
