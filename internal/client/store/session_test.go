package store

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/finance-tracker/dashboard/internal/client/api"
	"github.com/finance-tracker/dashboard/internal/client/model"
)

type fakeUsers struct {
	user model.User
	err  error
	msg  string
}

func (f *fakeUsers) Me(ctx context.Context) (model.User, error) { return f.user, f.err }

func (f *fakeUsers) Register(ctx context.Context, r model.Registration) (model.User, error) {
	return model.User{ID: "u1", Name: r.Name, Email: r.Email}, f.err
}

func (f *fakeUsers) Login(ctx context.Context, c model.Credentials) (model.User, error) {
	if f.err != nil {
		return model.User{}, f.err
	}
	return model.User{ID: "u1", Email: c.Email}, nil
}

func (f *fakeUsers) Update(ctx context.Context, p model.ProfileUpdate) (model.User, error) {
	u := f.user
	if p.Name != nil {
		u.Name = *p.Name
	}
	return u, f.err
}

func (f *fakeUsers) ChangePassword(ctx context.Context, current, next string) (string, error) {
	return f.msg, f.err
}

func (f *fakeUsers) ForgotPassword(ctx context.Context, email string) (string, error) {
	return f.msg, f.err
}

func (f *fakeUsers) ResetPassword(ctx context.Context, token, password string) (string, error) {
	return f.msg, f.err
}

func TestSession_LoginResults(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantUser bool
		want     Result
	}{
		{
			name:     "fulfilled",
			wantUser: true,
			want:     Result{Status: Fulfilled, Message: "Login successful"},
		},
		{
			name: "rejected with server message",
			err:  &api.Error{Status: http.StatusUnauthorized, Message: "Invalid email or password"},
			want: Result{Status: Rejected, Message: "Invalid email or password"},
		},
		{
			name: "rejected without message",
			err:  errors.New("connection refused"),
			want: Result{Status: Rejected, Message: "Login failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(&fakeUsers{err: tt.err}, nil)
			_ = s.Login(context.Background(), model.Credentials{Email: "a@example.com", Password: "secret"})

			st := s.State()
			if (st.User != nil) != tt.wantUser {
				t.Errorf("User = %+v, wantUser %v", st.User, tt.wantUser)
			}
			got, ok := st.Result(OpLogin)
			if !ok || got != tt.want {
				t.Errorf("Result(login) = %+v, %v, want %+v", got, ok, tt.want)
			}
			if st.Loading {
				t.Error("Loading = true after settle")
			}
		})
	}
}

func TestSession_ResultsAreTaggedPerOperation(t *testing.T) {
	users := &fakeUsers{msg: "Password reset email sent"}
	s := NewSession(users, nil)
	ctx := context.Background()

	if err := s.ForgotPassword(ctx, "a@example.com"); err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	users.err = &api.Error{Status: http.StatusBadRequest, Message: "Current password is incorrect"}
	_ = s.ChangePassword(ctx, "wrong", "new-secret")

	st := s.State()
	if got, _ := st.Result(OpForgotPassword); got != (Result{Status: Fulfilled, Message: "Password reset email sent"}) {
		t.Errorf("Result(forgot) = %+v", got)
	}
	if got, _ := st.Result(OpChangePassword); got != (Result{Status: Rejected, Message: "Current password is incorrect"}) {
		t.Errorf("Result(change) = %+v", got)
	}
	if _, ok := st.Result(OpResetPassword); ok {
		t.Error("Result(reset) present before it ran")
	}

	s.ClearResults()
	if len(s.State().Results) != 0 {
		t.Error("results not cleared")
	}
}

func TestSession_LogoutIsLocal(t *testing.T) {
	name := "Ada"
	users := &fakeUsers{user: model.User{ID: "u1", Name: "Old"}}
	loggedOut := false
	s := NewSession(users, func() { loggedOut = true })
	ctx := context.Background()

	if err := s.Login(ctx, model.Credentials{Email: "a@example.com"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if err := s.UpdateProfile(ctx, model.ProfileUpdate{Name: &name}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if st := s.State(); st.User == nil || st.User.Name != "Ada" {
		t.Fatalf("User = %+v, want Ada", st.User)
	}

	s.Logout()

	st := s.State()
	if st.User != nil {
		t.Errorf("User after logout = %+v, want nil", st.User)
	}
	if len(st.Results) != 0 {
		t.Errorf("Results after logout = %v, want empty", st.Results)
	}
	if !loggedOut {
		t.Error("onLogout not called")
	}
}

func TestSession_FallbackMessages(t *testing.T) {
	plain := errors.New("connection reset")
	name := "Ada"

	tests := []struct {
		op   SessionOp
		run  func(s *Session) error
		want string
	}{
		{OpRegister, func(s *Session) error { return s.Register(context.Background(), model.Registration{}) }, "Registration failed"},
		{OpProfile, func(s *Session) error { return s.Profile(context.Background()) }, "Failed to fetch profile"},
		{OpUpdateProfile, func(s *Session) error {
			return s.UpdateProfile(context.Background(), model.ProfileUpdate{Name: &name})
		}, "Update failed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			s := NewSession(&fakeUsers{err: plain}, nil)
			if err := tt.run(s); err == nil {
				t.Fatal("error = nil, want rejection")
			}
			r, ok := s.State().Result(tt.op)
			if !ok || r.Status != Rejected || r.Message != tt.want {
				t.Errorf("Result(%s) = %+v, want rejected %q", tt.op, r, tt.want)
			}
		})
	}
}
