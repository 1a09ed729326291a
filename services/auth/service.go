package auth

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

var tracer = otel.Tracer("services/auth")

var (
	ErrUserExists         = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidToken       = fmt.Errorf("invalid token")
)

type Options struct {
	SigningKey string
	// defaults to 1 hour
	TokenTTL time.Duration
}

type Service struct {
	db         *sql.DB
	signingKey []byte
	tokenTTL   time.Duration
}

func NewService(database *sql.DB, opts Options) Service {
	ttl := opts.TokenTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return Service{
		db:         database,
		signingKey: []byte(opts.SigningKey),
		tokenTTL:   ttl,
	}
}

func (s Service) SignUp(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "SignUp")
	defer span.End()

	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to hash password")
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, string(hash), time.Now().Unix())
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			span.SetStatus(codes.Error, "user already exists")
			return ErrUserExists
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to insert user row")
		return err
	}

	return nil
}

func (s Service) LogIn(ctx context.Context, username, password string) (string, error) {
	ctx, span := tracer.Start(ctx, "LogIn")
	defer span.End()

	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT password_hash FROM users WHERE username = ?", username).Scan(&hash)
	if err == sql.ErrNoRows {
		span.SetStatus(codes.Error, "unknown user")
		return "", ErrInvalidCredentials
	} else if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read user row")
		return "", err
	}

	err = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		span.SetStatus(codes.Error, "password mismatch")
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		ID:        uuid.NewString(),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to sign token")
		return "", err
	}
	return signed, nil
}

// VerifyToken returns the username the token was issued to.
func (s Service) VerifyToken(ctx context.Context, tokenString string) (string, error) {
	_, span := tracer.Start(ctx, "VerifyToken")
	defer span.End()

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		span.SetStatus(codes.Error, "invalid token")
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
