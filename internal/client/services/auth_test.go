package services

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/moviecat/internal/client/apitest"
	"github.com/dmitrijs2005/moviecat/internal/client/client"
	"github.com/dmitrijs2005/moviecat/internal/client/models"
	"github.com/dmitrijs2005/moviecat/internal/client/session"
	"github.com/dmitrijs2005/moviecat/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statusErr(status int, message string) error {
	return &client.APIError{Kind: client.KindStatus, Status: status, Message: message}
}

func transportErr() error {
	return &client.APIError{Kind: client.KindTransport, Cause: errors.New("connection refused")}
}

// ---- ClassifyLoginFailure ----

func TestClassifyLoginFailure(t *testing.T) {
	tests := []struct {
		message string
		want    error
	}{
		{"Incorrect email or password", ErrIncorrectCredentials},
		{"No email found", ErrUserNotFound},
		{"incorrect email or password", ErrUserNotFound},
		{"", ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.ErrorIs(t, ClassifyLoginFailure(tt.message), tt.want)
		})
	}
}

// ---- Login ----

func TestLogin_Success_StoresIdentity(t *testing.T) {
	fc := &fakeClient{LoginToken: "tok", DetailsRet: models.User{ID: "u1", IsAdmin: true}}
	st := &fakeStore{}
	svc := NewAuthService(fc, st, nil, true)

	pass := []byte("secret")
	sess, err := svc.Login(context.Background(), "a@b.c", pass)
	require.NoError(t, err)

	assert.Equal(t, models.Session{Token: "tok", UserID: "u1", IsAdmin: true}, sess)
	assert.Equal(t, sess, st.Get())
	assert.Equal(t, "a@b.c", fc.LastEmail)
	assert.Equal(t, []byte("secret"), fc.LastPass)
	assert.Equal(t, make([]byte, len(pass)), pass, "password must be wiped")
}

func TestLogin_DetailsFailureKeepsCredential(t *testing.T) {
	fc := &fakeClient{LoginToken: "tok", DetailsErr: transportErr()}
	st := &fakeStore{}
	svc := NewAuthService(fc, st, nil, true)

	sess, err := svc.Login(context.Background(), "a@b.c", []byte("p"))
	require.NoError(t, err)
	assert.Equal(t, models.Session{Token: "tok"}, sess)
	assert.False(t, sess.Authenticated())
}

func TestLogin_RefusedCredentials(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"wrong password", statusErr(http.StatusUnauthorized, "Incorrect email or password"), ErrIncorrectCredentials},
		{"unknown email", statusErr(http.StatusNotFound, "No email found"), ErrUserNotFound},
		{"no credential in 2xx answer", &client.APIError{Kind: client.KindRejected, Status: 200, Message: "User Not Found"}, ErrUserNotFound},
		{"rejected with the magic message", &client.APIError{Kind: client.KindRejected, Status: 200, Message: "Incorrect email or password"}, ErrIncorrectCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{LoginErr: tt.err}
			st := &fakeStore{}
			svc := NewAuthService(fc, st, nil, true)

			_, err := svc.Login(context.Background(), "a@b.c", []byte("p"))
			require.ErrorIs(t, err, tt.want)
			assert.Equal(t, models.Session{}, st.Get())
			assert.Equal(t, 0, fc.count("Details"))
		})
	}
}

func TestLogin_TransportFailureIsNotClassified(t *testing.T) {
	fc := &fakeClient{LoginErr: transportErr()}
	svc := NewAuthService(fc, &fakeStore{}, nil, true)

	_, err := svc.Login(context.Background(), "a@b.c", []byte("p"))
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.False(t, errors.Is(err, ErrUserNotFound))
	assert.False(t, errors.Is(err, ErrIncorrectCredentials))
}

func TestLogin_StoreFailure(t *testing.T) {
	fc := &fakeClient{LoginToken: "tok"}
	st := &fakeStore{WriteErr: errors.New("disk full")}
	svc := NewAuthService(fc, st, nil, true)

	_, err := svc.Login(context.Background(), "a@b.c", []byte("p"))
	require.Error(t, err)
	assert.Equal(t, 0, fc.count("Details"))
}

// ---- Register ----

func TestRegister_PasswordMismatch_NoNetwork(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, &fakeStore{}, nil, true)

	err := svc.Register(context.Background(), models.Registration{Email: "a@b.c", Password: "one", ConfirmPassword: "two"})
	require.ErrorIs(t, err, common.ErrPasswordMismatch)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, 0, fc.total())
}

func TestRegister_InvalidEmail_NoNetwork(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, &fakeStore{}, nil, true)

	err := svc.Register(context.Background(), models.Registration{Email: "nope", Password: "x", ConfirmPassword: "x"})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email")
	assert.Equal(t, 0, fc.total())
}

func TestRegister_SendsCredentials(t *testing.T) {
	fc := &fakeClient{}
	st := &fakeStore{}
	svc := NewAuthService(fc, st, nil, true)

	err := svc.Register(context.Background(), models.Registration{Email: "a@b.c", Password: "pw", ConfirmPassword: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", fc.LastEmail)
	assert.Equal(t, []byte("pw"), fc.LastPass)
	assert.Equal(t, models.Session{}, st.Get())
}

func TestRegister_ServerError(t *testing.T) {
	fc := &fakeClient{RegisterErr: statusErr(http.StatusConflict, "Email already registered")}
	svc := NewAuthService(fc, &fakeStore{}, nil, true)

	err := svc.Register(context.Background(), models.Registration{Email: "a@b.c", Password: "pw", ConfirmPassword: "pw"})
	require.Error(t, err)
	assert.Equal(t, "Email already registered", client.ServiceMessage(err))
}

// ---- Logout ----

func TestLogout_ClearsSession(t *testing.T) {
	st := &fakeStore{cur: models.Session{Token: "t", UserID: "u"}, persisted: models.Session{Token: "t", UserID: "u"}}
	svc := NewAuthService(&fakeClient{}, st, nil, true)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, models.Session{}, st.Get())
	assert.Equal(t, models.Session{}, st.persisted)
}

// ---- Bootstrap ----

func TestBootstrap(t *testing.T) {
	tests := []struct {
		name      string
		persisted models.Session
		trusted   bool
		details   models.User
		detailErr error
		want      models.Session
		wantCalls int
	}{
		{
			name:      "nothing stored",
			trusted:   true,
			want:      models.Session{},
			wantCalls: 0,
		},
		{
			name:      "cached identity trusted",
			persisted: models.Session{Token: "t", UserID: "u1", IsAdmin: true},
			trusted:   true,
			want:      models.Session{Token: "t", UserID: "u1", IsAdmin: true},
			wantCalls: 0,
		},
		{
			name:      "cached identity revalidated",
			persisted: models.Session{Token: "t", UserID: "u1", IsAdmin: true},
			trusted:   false,
			details:   models.User{ID: "u1", IsAdmin: false},
			want:      models.Session{Token: "t", UserID: "u1", IsAdmin: false},
			wantCalls: 1,
		},
		{
			name:      "token only resolved",
			persisted: models.Session{Token: "t"},
			trusted:   true,
			details:   models.User{ID: "u2"},
			want:      models.Session{Token: "t", UserID: "u2"},
			wantCalls: 1,
		},
		{
			name:      "token only rejected",
			persisted: models.Session{Token: "t"},
			trusted:   true,
			detailErr: statusErr(http.StatusUnauthorized, "invalid token"),
			want:      models.Session{},
			wantCalls: 1,
		},
		{
			name:      "token only offline",
			persisted: models.Session{Token: "t"},
			trusted:   true,
			detailErr: transportErr(),
			want:      models.Session{},
			wantCalls: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{DetailsRet: tt.details, DetailsErr: tt.detailErr}
			st := &fakeStore{persisted: tt.persisted}
			svc := NewAuthService(fc, st, nil, tt.trusted)

			got, err := svc.Bootstrap(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, st.persisted)
			assert.Equal(t, tt.wantCalls, fc.total())
		})
	}
}

func TestBootstrap_LoadError(t *testing.T) {
	st := &fakeStore{LoadErr: errors.New("corrupt")}
	svc := NewAuthService(&fakeClient{}, st, nil, true)

	_, err := svc.Bootstrap(context.Background())
	require.Error(t, err)
}

// ---- end to end over HTTP ----

func newStack(t *testing.T) (*apitest.Server, *session.Store, AuthService) {
	t.Helper()
	srv := apitest.New(t)

	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewStore(db)
	c, err := client.NewHTTPClient(srv.URL, store.Token)
	require.NoError(t, err)
	return srv, store, NewAuthService(c, store, nil, true)
}

func TestLogin_OverHTTP(t *testing.T) {
	srv, store, svc := newStack(t)
	id := srv.AddUser("root@example.com", "password1", true)
	ctx := context.Background()

	_, err := svc.Login(ctx, "root@example.com", []byte("wrong"))
	require.ErrorIs(t, err, ErrIncorrectCredentials)

	_, err = svc.Login(ctx, "ghost@example.com", []byte("password1"))
	require.ErrorIs(t, err, ErrUserNotFound)
	assert.False(t, store.Get().HasToken())

	sess, err := svc.Login(ctx, "root@example.com", []byte("password1"))
	require.NoError(t, err)
	assert.Equal(t, id, sess.UserID)
	assert.True(t, sess.IsAdmin)

	reqs := srv.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, apitest.RouteDetails, last.Route)
	assert.Equal(t, "Bearer "+sess.Token, last.Authorization)

	require.NoError(t, svc.Logout(ctx))
	assert.Equal(t, models.Session{}, store.Get())

	before := srv.Count("")
	_, err = svc.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, srv.Count(""))
}

func TestLogin_OverHTTP_DetailsDown(t *testing.T) {
	srv, store, svc := newStack(t)
	srv.AddUser("ann@example.com", "password1", false)
	srv.Fail(apitest.RouteDetails, http.StatusInternalServerError, "")

	sess, err := svc.Login(context.Background(), "ann@example.com", []byte("password1"))
	require.NoError(t, err)
	assert.True(t, sess.HasToken())
	assert.False(t, sess.Authenticated())
	assert.Equal(t, sess, store.Get())
}
