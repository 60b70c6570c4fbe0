// Package scaffold writes starter modreg config files into a directory.
package scaffold

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/modreg/internal/app/template"
	"github.com/aalvaropc/modreg/internal/domain"
	"github.com/aalvaropc/modreg/internal/ports"
)

//go:embed templates
var templatesFS embed.FS

// files maps embedded templates to their destination names.
var files = []struct {
	tmpl string
	dst  string
}{
	{"templates/modreg.yaml.tmpl", "modreg.yaml"},
	{"templates/env.example.tmpl", ".env.example"},
}

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.ConfigInitializer = (*Initializer)(nil)

func (i *Initializer) Init(spec domain.ScaffoldSpec, force bool) ([]string, error) {
	root := filepath.Clean(spec.Root)
	if root == "" {
		root = "."
	}

	defaults := domain.DefaultConfig()
	vars := map[string]string{
		"REGISTER_URL":      firstNonEmpty(spec.RegisterURL, defaults.Auth.RegisterURL),
		"LOGIN_DESTINATION": firstNonEmpty(spec.LoginDestination, defaults.Login.Destination),
	}

	if err := os.MkdirAll(filepath.Join(root, ".modreg", "logs"), 0o755); err != nil {
		return nil, initError(root, err)
	}
	if err := ensureGitignore(root); err != nil {
		return nil, initError(root, err)
	}

	var written []string
	for _, f := range files {
		dst := filepath.Join(root, f.dst)

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				continue
			}
		}

		b, err := templatesFS.ReadFile(f.tmpl)
		if err != nil {
			return written, initError(dst, err)
		}
		out, err := template.RenderString(string(b), vars)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(dst, []byte(out), 0o644); err != nil {
			return written, initError(dst, err)
		}
		written = append(written, dst)
	}
	return written, nil
}

func ensureGitignore(root string) error {
	const header = "# modreg"
	entries := []string{
		".modreg/",
		".env",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}

func firstNonEmpty(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func initError(path string, err error) error {
	return &domain.OpError{
		Op:   "scaffold.init",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  err,
	}
}
