package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCredentials(t *testing.T) {
	want := Credentials{Login: "admin", Password: "s3cret"}

	type testCase struct {
		name     string
		login    string
		password string
		want     Credentials
		ok       bool
	}

	tests := []testCase{
		{name: "Match", login: "admin", password: "s3cret", want: want, ok: true},
		{name: "WrongPassword", login: "admin", password: "s3cre", want: want},
		{name: "WrongLogin", login: "root", password: "s3cret", want: want},
		{name: "Empty", want: want},
		{name: "NothingConfigured", want: Credentials{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, CheckCredentials(tt.login, tt.password, tt.want))
		})
	}
}

func TestTokens_RoundTrip(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)

	raw, expires, err := tokens.Issue("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	subject, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)
}

func TestTokens_Rejects(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)

	raw, _, err := tokens.Issue("admin")
	require.NoError(t, err)

	other := NewTokens([]byte("another-secret"), time.Hour)
	_, err = other.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tokens.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokens([]byte("test-secret"), time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	old, _, err := expired.Issue("admin")
	require.NoError(t, err)

	_, err = tokens.Verify(old)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)
	valid, _, err := tokens.Issue("alice")
	require.NoError(t, err)

	var seen string

	handler := Middleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	type testCase struct {
		name       string
		header     string
		wantStatus int
		wantUser   string
	}

	tests := []testCase{
		{name: "Valid", header: "Bearer " + valid, wantStatus: http.StatusNoContent, wantUser: "alice"},
		{name: "Missing", wantStatus: http.StatusUnauthorized},
		{name: "WrongScheme", header: "Basic YWRtaW46YWRtaW4=", wantStatus: http.StatusUnauthorized},
		{name: "Garbage", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = ""

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, seen)
		})
	}
}
