package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"sololevel/internal/engine"
)

// BoardService is the slice of engine.Service the board drives.
type BoardService interface {
	Snapshot(ctx context.Context, playerKey string) (*engine.PlayerView, error)
	Day(ctx context.Context, playerKey string) (*engine.DayView, error)
	StartDay(ctx context.Context, playerKey string) (*engine.StartDayResult, error)
	Complete(ctx context.Context, playerKey, questID string) (*engine.CompleteResult, error)
	DeleteQuest(ctx context.Context, playerKey, questID string) (*engine.DeleteQuestResult, error)
}

func RunBoard(ctx context.Context, svc BoardService, playerKey string, out io.Writer) error {
	m := newBoardModel(ctx, svc, playerKey)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
