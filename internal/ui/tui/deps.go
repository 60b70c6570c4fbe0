package tui

import (
	"context"
	"log/slog"

	"github.com/aalvaropc/modreg/internal/infra/navigator"
	"github.com/aalvaropc/modreg/internal/infra/notify"
	"github.com/aalvaropc/modreg/internal/usecase"
)

type Deps struct {
	// Registration must be built with Notices as its sink and Navigations as
	// its navigator.
	Registration *usecase.Registration
	Notices      *notify.Slot
	Navigations  navigator.Chan

	// Location is the invite link the form was opened with.
	Location string
	Context  context.Context

	Logger *slog.Logger
	Debug  bool
}
