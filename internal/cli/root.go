package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/modreg/internal/infra/logger"
	"github.com/aalvaropc/modreg/internal/infra/navigator"
	"github.com/aalvaropc/modreg/internal/infra/notify"
	"github.com/aalvaropc/modreg/internal/ui/tui"
	"github.com/aalvaropc/modreg/internal/usecase"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type rootFlags struct {
	config string
	debug  bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	var invite string

	cmd := &cobra.Command{
		Use:          "modreg",
		Short:        "modreg — register a moderator account from an invite link",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(&flags)
			if err != nil {
				return err
			}
			defer app.close()

			slot := notify.NewSlot()
			nav := navigator.NewChan()
			reg := usecase.NewRegistration(app.auth, slot, nav,
				usecase.WithLogger(logger.L()),
				usecase.WithLoginDestination(app.cfg.Login.Destination),
			)

			return tui.Run(tui.Deps{
				Registration: reg,
				Notices:      slot,
				Navigations:  nav,
				Location:     invite,
				Context:      cmd.Context(),
				Logger:       logger.L(),
				Debug:        app.cfg.Logging.Debug,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&flags.config, "config", "", "path to modreg.yaml (default: search upward from the working directory)")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable verbose logging to the log dir (default .modreg/logs/modreg.log)")
	cmd.Flags().StringVar(&invite, "invite", "", "invite link, e.g. https://herald.example/moderatorregister?token=...")

	cmd.AddCommand(registerCmd(&flags), stubAuthCmd(&flags), initCmd(), versionCmd())
	return cmd
}
