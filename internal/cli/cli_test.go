package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/modreg/internal/domain"
	"github.com/aalvaropc/modreg/internal/infra/authclient"
	"github.com/aalvaropc/modreg/internal/infra/authstub"
)

// --- command structure ---

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Use] = true
	}
	for _, expected := range []string{"register", "stub-auth", "init", "version"} {
		if !names[expected] {
			t.Errorf("expected subcommand %q to be registered", expected)
		}
	}
	for _, flag := range []string{"config", "debug"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("expected persistent --%s flag", flag)
		}
	}
	if cmd.Flags().Lookup("invite") == nil {
		t.Error("expected --invite flag on root command")
	}
}

func TestRegisterCmd_Flags(t *testing.T) {
	var flags rootFlags
	cmd := registerCmd(&flags)
	if cmd.Use != "register" {
		t.Errorf("expected Use=register, got %q", cmd.Use)
	}
	for _, flag := range []string{"invite", "username", "password", "password-stdin", "confirm", "accept-terms"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on register command", flag)
		}
	}
}

func TestStubAuthCmd_Flags(t *testing.T) {
	var flags rootFlags
	cmd := stubAuthCmd(&flags)
	for _, flag := range []string{"addr", "secret", "mint", "email", "ttl"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected --%s flag on stub-auth command", flag)
		}
	}
}

func TestInitCmd_WritesConfig(t *testing.T) {
	tmp := t.TempDir()
	cmd := initCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--path", tmp, "--register-url", "http://localhost:8089/auth/register/moderator"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(buf.String(), filepath.Join(tmp, "modreg.yaml")) {
		t.Errorf("expected modreg.yaml reported, got:\n%s", buf.String())
	}

	buf.Reset()
	cmd = initCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--path", tmp})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if !strings.Contains(buf.String(), "already present") {
		t.Errorf("expected nothing rewritten, got:\n%s", buf.String())
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.Run(cmd, nil)
	if !strings.HasPrefix(buf.String(), "modreg ") {
		t.Errorf("unexpected version output %q", buf.String())
	}
}

// --- resolveConfigPath ---

type locatorFunc func(string) (string, error)

func (f locatorFunc) FindConfig(dir string) (string, error) { return f(dir) }

func TestResolveConfigPath_ExplicitPath(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "modreg.yaml")

	got, err := resolveConfigPath(want, locatorFunc(func(string) (string, error) {
		t.Fatal("locator must not run when --config is set")
		return "", nil
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestResolveConfigPath_RelativePath(t *testing.T) {
	got, err := resolveConfigPath("modreg.yaml", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
}

func TestResolveConfigPath_NotFoundMeansDefaults(t *testing.T) {
	got, err := resolveConfigPath("", locatorFunc(func(string) (string, error) {
		return "", &domain.OpError{Op: "configfinder.findconfig", Kind: domain.KindNotFound, Err: domain.ErrNotFound}
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty path, got %q", got)
	}
}

func TestResolveConfigPath_OtherErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	_, err := resolveConfigPath("", locatorFunc(func(string) (string, error) { return "", boom }))
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

// --- readPassword ---

func TestReadPassword(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"secret\n", "secret", false},
		{"secret\r\nignored\n", "secret", false},
		{"no-newline", "no-newline", false},
		{"", "", true},
		{"\n", "", true},
	}
	for _, c := range cases {
		got, err := readPassword(strings.NewReader(c.in))
		if (err != nil) != c.wantErr {
			t.Errorf("readPassword(%q) err=%v, wantErr=%v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("readPassword(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// --- runRegister against the in-memory auth service ---

func newStub(t *testing.T) (*authstub.Server, *authclient.Client) {
	t.Helper()
	srv := authstub.New([]byte("cli-test-secret"))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, authclient.New(ts.URL + authstub.RegisterPath)
}

func inviteFor(t *testing.T, srv *authstub.Server) string {
	t.Helper()
	tok, err := srv.MintInvite("mod@example.com", time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return inviteLink(tok)
}

func TestRunRegister_Success(t *testing.T) {
	srv, client := newStub(t)

	var out bytes.Buffer
	err := runRegister(context.Background(), client, "/login", nil, &out, registerInput{
		Invite:      inviteFor(t, srv),
		Username:    "alice",
		Password:    "pw1",
		Confirm:     "pw1",
		AcceptTerms: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out.String())
	}

	want := "… Registering moderator...\n✓ Moderator registered successfully!\nContinue to login: /login\n"
	if out.String() != want {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if !srv.Registered("alice") {
		t.Error("expected alice registered on the stub")
	}
}

func TestRunRegister_UsernameTaken(t *testing.T) {
	srv, client := newStub(t)

	first := registerInput{Invite: inviteFor(t, srv), Username: "alice", Password: "p", Confirm: "p", AcceptTerms: true}
	if err := runRegister(context.Background(), client, "/login", nil, &bytes.Buffer{}, first); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	var out bytes.Buffer
	second := registerInput{Invite: inviteFor(t, srv), Username: "alice", Password: "p", Confirm: "p", AcceptTerms: true}
	err := runRegister(context.Background(), client, "/login", nil, &out, second)
	if !domain.IsKind(err, domain.KindServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if !strings.Contains(out.String(), "✗ username taken") {
		t.Errorf("expected server message in output, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Continue to login") {
		t.Errorf("must not navigate on failure")
	}
}

func TestRunRegister_MissingFields(t *testing.T) {
	_, client := newStub(t)

	var out bytes.Buffer
	err := runRegister(context.Background(), client, "/login", nil, &out, registerInput{
		Invite:   "https://x/register?token=abc",
		Username: "alice",
		Password: "p",
		Confirm:  "p",
	})
	if !errors.Is(err, domain.ErrInvalidDraft) {
		t.Fatalf("expected invalid draft, got %v", err)
	}
	if !strings.Contains(out.String(), "acceptedTerms: You must accept the terms and policy") {
		t.Errorf("expected terms error, got:\n%s", out.String())
	}
}

func TestRunRegister_MissingToken(t *testing.T) {
	_, client := newStub(t)

	var out bytes.Buffer
	err := runRegister(context.Background(), client, "/login", nil, &out, registerInput{
		Invite:      "https://x/register",
		Username:    "alice",
		Password:    "p",
		Confirm:     "p",
		AcceptTerms: true,
	})
	if !domain.IsKind(err, domain.KindMissingToken) {
		t.Fatalf("expected missing token, got %v", err)
	}
	if out.String() != "✗ Invite token is missing\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunRegister_Mismatch(t *testing.T) {
	_, client := newStub(t)

	var out bytes.Buffer
	err := runRegister(context.Background(), client, "/login", nil, &out, registerInput{
		Invite:      "https://x/register?token=abc",
		Username:    "alice",
		Password:    "p1",
		Confirm:     "p2",
		AcceptTerms: true,
	})
	if !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if out.String() != "✗ Passwords do not match\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestDisplayAddr(t *testing.T) {
	if got := displayAddr(":8089"); got != "localhost:8089" {
		t.Errorf("unexpected %q", got)
	}
	if got := displayAddr("127.0.0.1:9000"); got != "127.0.0.1:9000" {
		t.Errorf("unexpected %q", got)
	}
}
