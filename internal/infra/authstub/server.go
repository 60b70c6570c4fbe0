// Package authstub is a local stand-in for the moderator registration
// endpoint. It keeps everything in memory and is meant for development only.
package authstub

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RegisterPath = "/auth/register/moderator"
	Issuer       = "modreg-stub"

	maxBodyBytes = 16 << 10
)

type registerRequest struct {
	Username    string `json:"username" validate:"required,max=64"`
	Password    string `json:"password" validate:"required,max=256"`
	InviteToken string `json:"inviteToken" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type createdResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type moderator struct {
	email     string
	createdAt time.Time
}

// Server implements POST /auth/register/moderator.
type Server struct {
	secret   []byte
	log      *slog.Logger
	now      func() time.Time
	validate *validator.Validate

	mu    sync.Mutex
	users map[string]moderator
	used  map[string]struct{}
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides time.Now for token checks.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

func New(secret []byte, opts ...Option) *Server {
	s := &Server{
		secret:   secret,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
		now:      time.Now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		users:    map[string]moderator{},
		used:     map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post(RegisterPath, s.register)
	return r
}

// MintInvite signs a single-use invite token for email, valid for ttl.
func (s *Server) MintInvite(email string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", errors.New("invite email is empty")
	}
	if ttl <= 0 {
		return "", errors.New("invite ttl must be positive")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   email,
		Issuer:    Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Registered reports whether username has an account.
func (s *Server) Registered(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[normalize(username)]
	return ok
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	var req registerRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.log.Warn("stub.register.bad_json", "req_id", reqID, "err", err)
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.InviteToken = strings.TrimSpace(req.InviteToken)

	if err := s.validate.Struct(req); err != nil {
		s.log.Warn("stub.register.invalid", "req_id", reqID, "err", err)
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
		return
	}

	claims, err := s.parseInvite(req.InviteToken)
	if err != nil {
		msg := "invalid invite"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "invite expired"
		}
		s.log.Warn("stub.register.bad_invite", "req_id", reqID, "err", err)
		respondJSON(w, http.StatusForbidden, errorResponse{Error: msg})
		return
	}

	key := normalize(req.Username)

	s.mu.Lock()
	if _, spent := s.used[claims.ID]; spent {
		s.mu.Unlock()
		s.log.Warn("stub.register.invite_reused", "req_id", reqID)
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "invite already used"})
		return
	}
	if _, taken := s.users[key]; taken {
		s.mu.Unlock()
		s.log.Info("stub.register.conflict", "req_id", reqID)
		respondJSON(w, http.StatusConflict, errorResponse{Error: "username taken"})
		return
	}
	s.used[claims.ID] = struct{}{}
	s.users[key] = moderator{email: claims.Subject, createdAt: s.now()}
	s.mu.Unlock()

	s.log.Info("stub.register.ok", "req_id", reqID)
	respondJSON(w, http.StatusCreated, createdResponse{Username: req.Username, Email: claims.Subject})
}

func (s *Server) parseInvite(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("invite has no id")
	}
	return claims, nil
}

func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "validation failed"
	}
	fe := ve[0]
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " is too long"
	}
	return field + " is invalid"
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
