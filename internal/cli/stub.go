package cli

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/modreg/internal/infra/authstub"
	"github.com/aalvaropc/modreg/internal/infra/logger"
)

func stubAuthCmd(flags *rootFlags) *cobra.Command {
	var addr string
	var secret string
	var mint bool
	var email string
	var ttl time.Duration

	c := &cobra.Command{
		Use:   "stub-auth",
		Short: "Run an in-memory moderator registration endpoint for local development",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.close()

			key := []byte(secret)
			if len(key) == 0 {
				key = make([]byte, 32)
				if _, err := rand.Read(key); err != nil {
					return fmt.Errorf("generate signing key: %w", err)
				}
			}

			srv := authstub.New(key, authstub.WithLogger(logger.L()))
			out := cmd.OutOrStdout()

			if mint {
				tok, err := srv.MintInvite(email, ttl)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Invite token (expires in %s):\n  %s\n", ttl, tok)
				fmt.Fprintf(out, "Try:\n  MODREG_REGISTER_URL=http://%s%s modreg --invite '%s'\n",
					displayAddr(addr), authstub.RegisterPath, inviteLink(tok))
			}

			fmt.Fprintf(out, "stub auth listening on %s\n", addr)
			return serve(cmd.Context(), addr, srv.Handler())
		},
	}

	c.Flags().StringVar(&addr, "addr", ":8089", "Listen address")
	c.Flags().StringVar(&secret, "secret", "", "HS256 invite signing secret (random per run if empty)")
	c.Flags().BoolVar(&mint, "mint", false, "Print a fresh invite token before serving")
	c.Flags().StringVar(&email, "email", "moderator@example.com", "Email embedded in the minted invite")
	c.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Lifetime of the minted invite")
	return c
}

func serve(ctx context.Context, addr string, h http.Handler) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func inviteLink(token string) string {
	return "https://localhost/moderatorregister?token=" + url.QueryEscape(token)
}
