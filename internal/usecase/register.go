package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aalvaropc/modreg/internal/domain"
	"github.com/aalvaropc/modreg/internal/ports"
)

// Registration is the client-side registration state machine for one form session.
//
// Field edits and validation are synchronous. The only suspending step is the
// request to the auth service, which event-loop callers run between Begin and
// Finish; everyone else can use Submit. The lifecycle guards against a second
// request while one is in flight.
type Registration struct {
	auth      ports.AuthService
	notifier  ports.NotificationSink
	nav       ports.Navigator
	log       *slog.Logger
	loginDest string

	// emitMu orders notice emission across Begin and Finish and is always
	// taken before mu. Notify runs with emitMu held but mu released, so a
	// sink may read the controller while it renders.
	emitMu sync.Mutex

	mu          sync.Mutex
	initialized bool
	token       domain.InviteToken
	draft       domain.Draft
	visibility  domain.Visibility
	life        domain.Lifecycle
	inflight    *Attempt
}

type Option func(*Registration)

func WithLogger(l *slog.Logger) Option {
	return func(r *Registration) {
		if l != nil {
			r.log = l
		}
	}
}

// WithLoginDestination sets where a successful registration navigates to.
func WithLoginDestination(dest string) Option {
	return func(r *Registration) { r.loginDest = dest }
}

func NewRegistration(auth ports.AuthService, notifier ports.NotificationSink, nav ports.Navigator, opts ...Option) *Registration {
	r := &Registration{
		auth:      auth,
		notifier:  notifier,
		nav:       nav,
		log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
		loginDest: domain.DefaultConfig().Login.Destination,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Snapshot is a consistent read of the controller state for rendering.
type Snapshot struct {
	Token      domain.InviteToken
	Draft      domain.Draft
	Validation domain.ValidationState
	Visibility domain.Visibility
	Lifecycle  domain.Lifecycle
}

// Initialize extracts the invite token from the incoming location. Only the
// first call has an effect; the token is fixed for the session.
func (r *Registration) Initialize(location string) domain.InviteToken {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		r.log.Warn("register.init.repeated")
		return r.token
	}

	tok, ok := domain.InviteTokenFromLocation(location)
	if !ok {
		r.log.Warn("register.init.unparsable_location")
	}
	if !tok.Present() {
		r.log.Warn("register.init.no_token")
	}

	r.token = tok
	r.initialized = true
	r.log.Info("register.init", "token", tok.String())
	return tok
}

// UpdateField sets one draft input. value must be a string for text fields and
// a bool for acceptedTerms.
func (r *Registration) UpdateField(field domain.Field, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, err := r.draft.Set(field, value)
	if err != nil {
		return err
	}
	r.draft = d
	return nil
}

// TogglePasswordVisibility flips the password display mode and returns it.
func (r *Registration) TogglePasswordVisibility() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visibility.Password = !r.visibility.Password
	return r.visibility.Password
}

// ToggleConfirmVisibility flips the confirmation display mode and returns it.
func (r *Registration) ToggleConfirmVisibility() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.visibility.ConfirmPassword = !r.visibility.ConfirmPassword
	return r.visibility.ConfirmPassword
}

func (r *Registration) Draft() domain.Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draft
}

// Validation derives the validation state from the current draft.
func (r *Registration) Validation() domain.ValidationState {
	return domain.Validate(r.Draft())
}

func (r *Registration) Lifecycle() domain.Lifecycle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.life
}

func (r *Registration) Snapshot() Snapshot {
	r.mu.Lock()
	s := Snapshot{
		Token:      r.token,
		Draft:      r.draft,
		Visibility: r.visibility,
		Lifecycle:  r.life,
	}
	r.mu.Unlock()

	s.Validation = domain.Validate(s.Draft)
	return s
}

// Attempt is one issued submission. Send performs the request without touching
// controller state.
type Attempt struct {
	auth    ports.AuthService
	req     domain.RegisterRequest
	notice  domain.NoticeID
	started time.Time
	user    string
}

// Result is the outcome of Attempt.Send, handed back to Finish.
type Result struct {
	attempt  *Attempt
	Response domain.RegisterResponse
	Err      error
}

func (a *Attempt) Send(ctx context.Context) Result {
	resp, err := a.auth.Register(ctx, a.req)
	return Result{attempt: a, Response: resp, Err: err}
}

// Begin checks the submit preconditions and, if they hold, moves the lifecycle
// to Submitting, shows the loading notice and returns the attempt to send.
//
// Checks run in order and stop at the first failure: in-flight guard, invite
// token, password match, required fields.
func (r *Registration) Begin() (*Attempt, error) {
	r.emitMu.Lock()
	defer r.emitMu.Unlock()

	r.mu.Lock()

	if r.life.Submitting() {
		r.mu.Unlock()
		r.log.Debug("register.begin.ignored", "reason", "in_flight")
		return nil, domain.ErrSubmitInFlight
	}

	if err := preconditions(r.draft, r.token); err != nil {
		r.mu.Unlock()
		r.reject(err)
		return nil, err
	}

	life, err := r.life.Begin()
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	r.life = life

	tokenValue, _ := r.token.Value()
	att := &Attempt{
		auth: r.auth,
		req: domain.RegisterRequest{
			Username:    r.draft.Username,
			Password:    r.draft.Password,
			InviteToken: tokenValue,
		},
		started: time.Now(),
		user:    usernameTag(r.draft.Username),
	}
	r.inflight = att
	r.mu.Unlock()

	// Finish only sees att through the Result of its Send, which cannot exist yet.
	att.notice = r.notifier.Notify(domain.Notice{Kind: domain.NoticeLoading, Message: domain.MsgRegistering})

	r.log.Info("register.begin", "user", att.user)
	return att, nil
}

// Finish applies the outcome of the in-flight attempt. The loading notice is
// updated in place; a success clears the draft and navigates to login.
// Results from any other attempt are ignored.
func (r *Registration) Finish(res Result) (domain.Lifecycle, error) {
	r.emitMu.Lock()
	r.mu.Lock()

	att := res.attempt
	if att == nil || att != r.inflight {
		life := r.life
		r.mu.Unlock()
		r.emitMu.Unlock()
		r.log.Warn("register.finish.stale")
		return life, nil
	}
	r.inflight = nil

	notice := domain.Notice{ID: att.notice}
	var outErr error
	navigate := false

	switch {
	case res.Err == nil && res.Response.Accepted():
		r.life, _ = r.life.Succeed()
		r.draft = domain.Draft{}
		notice.Kind, notice.Message = domain.NoticeSuccess, domain.MsgRegistered
		navigate = true

	case res.Err == nil:
		r.life, _ = r.life.Fail(domain.MsgRegistrationFailed)
		notice.Kind, notice.Message = domain.NoticeError, domain.MsgRegistrationFailed
		outErr = &domain.OpError{
			Op:   "register.submit",
			Kind: domain.KindUnexpectedStatus,
			Err:  fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, res.Response.Status),
		}

	default:
		msg := domain.ServerMessage(res.Err)
		if msg == "" {
			msg = domain.MsgSomethingWentWrong
		}
		r.life, _ = r.life.Fail(msg)
		notice.Kind, notice.Message = domain.NoticeError, msg
		outErr = res.Err
	}

	life := r.life
	dest := r.loginDest
	r.mu.Unlock()

	r.notifier.Notify(notice)
	r.emitMu.Unlock()

	elapsed := time.Since(att.started).Milliseconds()
	if outErr != nil {
		r.log.Warn("register.failed",
			"user", att.user,
			"status", res.Response.Status,
			"kind", errorKind(outErr),
			"err", outErr,
			"latency_ms", elapsed,
		)
		return life, outErr
	}

	r.log.Info("register.ok", "user", att.user, "status", res.Response.Status, "latency_ms", elapsed)
	if navigate && r.nav != nil {
		r.nav.Navigate(dest)
	}
	return life, nil
}

// Submit runs Begin, Send and Finish in one call.
func (r *Registration) Submit(ctx context.Context) (domain.Lifecycle, error) {
	att, err := r.Begin()
	if err != nil {
		return r.Lifecycle(), err
	}
	return r.Finish(att.Send(ctx))
}

func preconditions(d domain.Draft, tok domain.InviteToken) error {
	if !tok.Usable() {
		return &domain.OpError{
			Op:   "register.submit",
			Kind: domain.KindMissingToken,
			Err:  domain.ErrMissingToken,
		}
	}

	if !d.PasswordsMatch() {
		return &domain.OpError{
			Op:   "register.submit",
			Kind: domain.KindValidation,
			Path: string(domain.FieldConfirmPassword),
			Err:  domain.ErrPasswordMismatch,
		}
	}

	st := domain.Validate(d)
	if !st.FieldsValid() {
		var failed []string
		for _, f := range domain.Fields {
			if st.Error(f) != "" {
				failed = append(failed, string(f))
			}
		}
		return &domain.OpError{
			Op:   "register.submit",
			Kind: domain.KindValidation,
			Path: strings.Join(failed, ","),
			Err:  domain.ErrInvalidDraft,
		}
	}
	return nil
}

// reject reports a local precondition failure. Field errors are shown inline
// by the form, so only token and mismatch failures raise a notice.
func (r *Registration) reject(err error) {
	var msg string
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		msg = domain.MsgInviteMissing
	case errors.Is(err, domain.ErrPasswordMismatch):
		msg = domain.MsgPasswordsMismatch
	}

	r.log.Info("register.rejected", "kind", errorKind(err), "err", err)
	if msg != "" {
		r.notifier.Notify(domain.Notice{Kind: domain.NoticeError, Message: msg})
	}
}

func errorKind(err error) string {
	var oe *domain.OpError
	if errors.As(err, &oe) {
		return string(oe.Kind)
	}
	return "unknown"
}

// usernameTag is a short stable hash so logs never carry the raw username.
func usernameTag(username string) string {
	sum := sha256.Sum256([]byte(username))
	return hex.EncodeToString(sum[:])[:8]
}
