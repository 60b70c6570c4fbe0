package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/modreg/internal/domain"
	"github.com/aalvaropc/modreg/internal/infra/logger"
	"github.com/aalvaropc/modreg/internal/infra/navigator"
	"github.com/aalvaropc/modreg/internal/infra/notify"
	"github.com/aalvaropc/modreg/internal/ports"
	"github.com/aalvaropc/modreg/internal/usecase"
)

type registerInput struct {
	Invite      string
	Username    string
	Password    string
	Confirm     string
	AcceptTerms bool
}

func registerCmd(flags *rootFlags) *cobra.Command {
	var in registerInput
	var passwordStdin bool

	c := &cobra.Command{
		Use:   "register",
		Short: "Register a moderator account without the interactive form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				if in.Password != "" {
					return errors.New("use either --password or --password-stdin")
				}
				p, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				in.Password = p
			}
			if !cmd.Flags().Changed("confirm") {
				in.Confirm = in.Password
			}

			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.close()

			return runRegister(cmd.Context(), app.auth, app.cfg.Login.Destination, logger.L(), cmd.OutOrStdout(), in)
		},
	}

	c.Flags().StringVar(&in.Invite, "invite", "", "Invite link carrying ?token=... (required)")
	c.Flags().StringVarP(&in.Username, "username", "u", "", "Username (required)")
	c.Flags().StringVarP(&in.Password, "password", "p", "", "Password (prefer --password-stdin)")
	c.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from the first line of stdin")
	c.Flags().StringVar(&in.Confirm, "confirm", "", "Password confirmation (defaults to the password)")
	c.Flags().BoolVar(&in.AcceptTerms, "accept-terms", false, "Accept the terms and policy")

	_ = c.MarkFlagRequired("invite")
	_ = c.MarkFlagRequired("username")
	return c
}

// runRegister drives one submission through the same controller as the form.
// Notices and the login hand-off are printed to w.
func runRegister(ctx context.Context, auth ports.AuthService, loginDest string, log *slog.Logger, w io.Writer, in registerInput) error {
	slot := notify.NewSlot(notify.WithObserver(notify.Printer(w)))
	reg := usecase.NewRegistration(auth, slot, navigator.NewWriter(w),
		usecase.WithLogger(log),
		usecase.WithLoginDestination(loginDest),
	)

	reg.Initialize(in.Invite)

	updates := []struct {
		field domain.Field
		value any
	}{
		{domain.FieldUsername, in.Username},
		{domain.FieldPassword, in.Password},
		{domain.FieldConfirmPassword, in.Confirm},
		{domain.FieldAcceptedTerms, in.AcceptTerms},
	}
	for _, u := range updates {
		if err := reg.UpdateField(u.field, u.value); err != nil {
			return err
		}
	}

	_, err := reg.Submit(ctx)
	if err != nil && errors.Is(err, domain.ErrInvalidDraft) {
		st := reg.Validation()
		for _, f := range domain.Fields {
			if msg := st.Error(f); msg != "" {
				fmt.Fprintf(w, "  %s: %s\n", f, msg)
			}
		}
	}
	return err
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("no password on stdin")
	}
	return line, nil
}
