package tui

import (
	"time"

	"github.com/aalvaropc/modreg/internal/usecase"
)

type submitDoneMsg struct {
	res usecase.Result
}

type noticeTickMsg time.Time
