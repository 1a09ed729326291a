package auth

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"vitibrasil-backend/lib/telemetry"
	"vitibrasil-backend/services/auth/db"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupService(t testing.TB, opts Options) Service {
	sqlite, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	sqlite.SetMaxOpenConns(1)
	_, err = sqlite.Exec(db.Schema)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlite.Close() })

	if opts.SigningKey == "" {
		opts.SigningKey = "test-signing-key"
	}
	return NewService(sqlite, opts)
}

func TestSignUpLogIn(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:auth")
	defer cleanup()
	service := setupService(t, Options{})
	ctx := context.Background()

	err := service.SignUp(ctx, "alice", "s3cret")
	require.NoError(t, err)

	err = service.SignUp(ctx, "alice", "other")
	require.ErrorIs(t, err, ErrUserExists)

	_, err = service.LogIn(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.LogIn(ctx, "bob", "s3cret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := service.LogIn(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := service.VerifyToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "alice", user)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:auth")
	defer cleanup()
	service := setupService(t, Options{})

	_, err := service.VerifyToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:auth")
	defer cleanup()
	service := setupService(t, Options{TokenTTL: -time.Minute})
	ctx := context.Background()

	err := service.SignUp(ctx, "alice", "s3cret")
	require.NoError(t, err)
	token, err := service.LogIn(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, err = service.VerifyToken(ctx, token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsForeignKey(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:auth")
	defer cleanup()
	issuer := setupService(t, Options{SigningKey: "key-a"})
	verifier := setupService(t, Options{SigningKey: "key-b"})
	ctx := context.Background()

	err := issuer.SignUp(ctx, "alice", "s3cret")
	require.NoError(t, err)
	token, err := issuer.LogIn(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(ctx, token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:auth")
	defer cleanup()
	service := setupService(t, Options{})
	ctx := context.Background()

	err := service.SignUp(ctx, "alice", "s3cret")
	require.NoError(t, err)
	token, err := service.LogIn(ctx, "alice", "s3cret")
	require.NoError(t, err)

	handler := service.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/producao", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest("GET", "/producao", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
