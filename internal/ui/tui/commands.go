package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/modreg/internal/usecase"
)

const noticeTick = 250 * time.Millisecond

// cmdSend performs the request off the event loop. The result comes back as
// a submitDoneMsg and is applied in Update.
func cmdSend(ctx context.Context, att *usecase.Attempt) tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{res: att.Send(ctx)}
	}
}

// tickNotices re-renders periodically so expired notices disappear.
func tickNotices() tea.Cmd {
	return tea.Tick(noticeTick, func(t time.Time) tea.Msg {
		return noticeTickMsg(t)
	})
}
