package store

import (
	"context"
	"sync"

	"github.com/finance-tracker/dashboard/internal/client/api"
	"github.com/finance-tracker/dashboard/internal/client/model"
)

// SessionOp names a session operation. Each keeps its own result.
type SessionOp string

const (
	OpRegister       SessionOp = "register"
	OpLogin          SessionOp = "login"
	OpProfile        SessionOp = "profile"
	OpUpdateProfile  SessionOp = "update-profile"
	OpChangePassword SessionOp = "change-password"
	OpForgotPassword SessionOp = "forgot-password"
	OpResetPassword  SessionOp = "reset-password"
)

var sessionFallbacks = map[SessionOp]string{
	OpRegister:       "Registration failed",
	OpLogin:          "Login failed",
	OpProfile:        "Failed to fetch profile",
	OpUpdateProfile:  "Update failed",
	OpChangePassword: "Failed to change password",
	OpForgotPassword: "Failed to send reset email",
	OpResetPassword:  "Failed to reset password",
}

// ResultStatus is the terminal outcome of a session operation.
type ResultStatus int

const (
	Fulfilled ResultStatus = iota + 1
	Rejected
)

// Result is the outcome of the latest run of one operation. Message is the confirmation of a
// fulfilled operation or the reason of a rejected one.
type Result struct {
	Status  ResultStatus
	Message string
}

// SessionState is a snapshot of the session slice.
type SessionState struct {
	User    *model.User
	Loading bool
	Results map[SessionOp]Result
}

// Result returns the outcome of op and whether it ran since the last clear.
func (s SessionState) Result(op SessionOp) (Result, bool) {
	r, ok := s.Results[op]
	return r, ok
}

// UserAPI is the remote surface of the session slice.
type UserAPI interface {
	Me(ctx context.Context) (model.User, error)
	Register(ctx context.Context, r model.Registration) (model.User, error)
	Login(ctx context.Context, c model.Credentials) (model.User, error)
	Update(ctx context.Context, p model.ProfileUpdate) (model.User, error)
	ChangePassword(ctx context.Context, current, next string) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) (string, error)
}

// Session holds the signed-in user and the result of each session operation.
type Session struct {
	users    UserAPI
	onLogout func()

	mu       sync.Mutex
	state    SessionState
	inflight int

	notifyMu  sync.Mutex
	observers []func(SessionState)
}

// NewSession creates a session slice. onLogout, when set, runs after the local logout.
func NewSession(users UserAPI, onLogout func()) *Session {
	return &Session{
		users:    users,
		onLogout: onLogout,
		state:    SessionState{Results: map[SessionOp]Result{}},
	}
}

// State returns a copy of the current state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Subscribe registers fn to receive every state change.
func (s *Session) Subscribe(fn func(SessionState)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.observers = append(s.observers, fn)
}

// Register creates an account and signs in.
func (s *Session) Register(ctx context.Context, r model.Registration) error {
	return s.runUser(OpRegister, "Registration successful", func() (model.User, error) {
		return s.users.Register(ctx, r)
	})
}

// Login signs in.
func (s *Session) Login(ctx context.Context, c model.Credentials) error {
	return s.runUser(OpLogin, "Login successful", func() (model.User, error) {
		return s.users.Login(ctx, c)
	})
}

// Profile loads the signed-in user.
func (s *Session) Profile(ctx context.Context) error {
	return s.runUser(OpProfile, "", func() (model.User, error) {
		return s.users.Me(ctx)
	})
}

// UpdateProfile changes name, phone or avatar.
func (s *Session) UpdateProfile(ctx context.Context, p model.ProfileUpdate) error {
	return s.runUser(OpUpdateProfile, "Profile updated", func() (model.User, error) {
		return s.users.Update(ctx, p)
	})
}

// ChangePassword replaces the password of the signed-in user.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	return s.runMessage(OpChangePassword, func() (string, error) {
		return s.users.ChangePassword(ctx, current, next)
	})
}

// ForgotPassword requests a reset link.
func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	return s.runMessage(OpForgotPassword, func() (string, error) {
		return s.users.ForgotPassword(ctx, email)
	})
}

// ResetPassword sets a new password with a reset token.
func (s *Session) ResetPassword(ctx context.Context, token, password string) error {
	return s.runMessage(OpResetPassword, func() (string, error) {
		return s.users.ResetPassword(ctx, token, password)
	})
}

// Logout forgets the user locally. The server is not called.
func (s *Session) Logout() {
	s.change(func(st *SessionState) {
		st.User = nil
		st.Results = map[SessionOp]Result{}
	})
	if s.onLogout != nil {
		s.onLogout()
	}
}

// ClearResults forgets every operation result.
func (s *Session) ClearResults() {
	s.change(func(st *SessionState) {
		st.Results = map[SessionOp]Result{}
	})
}

func (s *Session) runUser(op SessionOp, success string, call func() (model.User, error)) error {
	s.begin()
	user, err := call()
	s.finish(op, err, func(st *SessionState) string {
		st.User = &user
		return success
	})
	return err
}

func (s *Session) runMessage(op SessionOp, call func() (string, error)) error {
	s.begin()
	msg, err := call()
	s.finish(op, err, func(*SessionState) string {
		return msg
	})
	return err
}

func (s *Session) begin() {
	s.change(func(st *SessionState) {
		s.inflight++
		st.Loading = true
	})
}

func (s *Session) finish(op SessionOp, err error, apply func(*SessionState) string) {
	s.change(func(st *SessionState) {
		s.inflight--
		st.Loading = s.inflight > 0
		if err != nil {
			st.Results[op] = Result{Status: Rejected, Message: api.Message(err, sessionFallbacks[op])}
			return
		}
		st.Results[op] = Result{Status: Fulfilled, Message: apply(st)}
	})
}

func (s *Session) change(fn func(st *SessionState)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	fn(&s.state)
	snap := s.snapshot()
	s.mu.Unlock()

	for _, observer := range s.observers {
		observer(snap)
	}
}

func (s *Session) snapshot() SessionState {
	snap := SessionState{
		Loading: s.state.Loading,
		Results: make(map[SessionOp]Result, len(s.state.Results)),
	}
	if s.state.User != nil {
		user := *s.state.User
		snap.User = &user
	}
	for op, r := range s.state.Results {
		snap.Results[op] = r
	}
	return snap
}
