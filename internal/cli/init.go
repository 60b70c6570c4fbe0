package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/modreg/internal/domain"
	"github.com/aalvaropc/modreg/internal/infra/scaffold"
)

func initCmd() *cobra.Command {
	var path string
	var force bool
	var spec domain.ScaffoldSpec

	c := &cobra.Command{
		Use:   "init",
		Short: "Write a starter modreg.yaml and .env.example",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}
			spec.Root = root

			written, err := scaffold.NewInitializer().Init(spec, force)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(written) == 0 {
				fmt.Fprintf(out, "Config already present in %s (use --force to overwrite)\n", root)
				return nil
			}
			for _, p := range written {
				fmt.Fprintf(out, "wrote %s\n", p)
			}
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Directory to initialize")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	c.Flags().StringVar(&spec.RegisterURL, "register-url", "", "Registration endpoint to write (default: production endpoint)")
	c.Flags().StringVar(&spec.LoginDestination, "login", "", "Login destination to write (default: /login)")
	return c
}
