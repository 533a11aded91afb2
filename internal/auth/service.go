package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/users"
	"github.com/2beens/liftlog/pkg"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "liftlog-service-session||"
	tokensSetKey     = "liftlog-service-sessions"
)

var (
	ErrInvalidIDToken   = errors.New("invalid identity token")
	ErrWrongAppSecret   = errors.New("wrong app secret")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionCorrupted = errors.New("session data corrupted")
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

// IDTokenVerifier verifies a raw ID token issued by the external
// identity provider. Satisfied by *oidc.IDTokenVerifier.
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)
}

type usersRepo interface {
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	Create(ctx context.Context, email string) (*users.User, error)
}

// Service authenticates users against the external identity provider and
// keeps their sessions in redis. It never stores credentials: identity is
// fully delegated, only the (token -> user id) mapping lives here.
type Service struct {
	verifier    IDTokenVerifier
	users       usersRepo
	redisClient *redis.Client
	ttl         time.Duration
	// bcrypt hash of the shared secret used by the mobile app login path
	appSecretHash string
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(
	verifier IDTokenVerifier,
	usersRepo usersRepo,
	appSecretHash string,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		verifier:       verifier,
		users:          usersRepo,
		redisClient:    redisClient,
		ttl:            ttl,
		appSecretHash:  appSecretHash,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

type idTokenClaims struct {
	Email string `json:"email"`
}

// Login verifies the given ID token, provisions the user on first sign-in,
// and creates a new session.
func (s *Service) Login(ctx context.Context, rawIDToken string, createdAt time.Time) (string, *users.User, error) {
	if s.verifier == nil {
		log.Warnln("login: no identity provider configured")
		return "", nil, ErrInvalidIDToken
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		log.Tracef("login: id token verification failed: %s", err)
		return "", nil, ErrInvalidIDToken
	}

	var claims idTokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return "", nil, fmt.Errorf("parse id token claims: %w", err)
	}
	if claims.Email == "" {
		return "", nil, ErrInvalidIDToken
	}

	user, err := s.userForEmail(ctx, claims.Email)
	if err != nil {
		return "", nil, err
	}

	token, err := s.newSession(ctx, user.ID, createdAt)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// LoginWithAppSecret is the login path used by the mobile app: it carries
// the user email and the shared app secret instead of an ID token.
func (s *Service) LoginWithAppSecret(ctx context.Context, email, appSecret string, createdAt time.Time) (string, *users.User, error) {
	if s.appSecretHash == "" || !pkg.CheckPasswordHash(appSecret, s.appSecretHash) {
		return "", nil, ErrWrongAppSecret
	}

	user, err := s.userForEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	token, err := s.newSession(ctx, user.ID, createdAt)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *Service) userForEmail(ctx context.Context, email string) (*users.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, users.ErrUserNotFound) {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	log.Debugf("first sign-in, provisioning user for email: %s", email)
	user, err = s.users.Create(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("provision user: %w", err)
	}
	return user, nil
}

func (s *Service) newSession(ctx context.Context, userID int, createdAt time.Time) (string, error) {
	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	sessionKey := sessionKeyPrefix + token
	sessionVal := fmt.Sprintf("%d||%d", userID, createdAt.Unix())
	if err := s.redisClient.Set(ctx, sessionKey, sessionVal, 0).Err(); err != nil {
		return "", err
	}

	// add token to list of sessions
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	sessionKey := sessionKeyPrefix + token
	res := s.redisClient.Del(ctx, sessionKey)
	if err := res.Err(); err != nil {
		return err
	}
	if res.Val() == 0 {
		return ErrSessionNotFound
	}

	// remove token from the list of sessions
	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return err
	}

	return nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *Service) ScanAndClean(ctx context.Context) {
	cmd := s.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		log.Debugln("auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var toRemove []string
	for _, token := range sessionTokens {
		_, createdAt, err := parseSession(ctx, s.redisClient, token)
		if err != nil {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}
		if time.Since(createdAt) > s.ttl {
			toRemove = append(toRemove, token)
		}
	}

	for _, token := range toRemove {
		if err := s.redisClient.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
			continue
		}
		if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth service, clean token %s: %s", token, err)
		}
	}
}

func parseSession(ctx context.Context, redisClient *redis.Client, token string) (userID int, createdAt time.Time, err error) {
	cmd := redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, time.Time{}, ErrSessionNotFound
		}
		return 0, time.Time{}, err
	}

	parts := strings.Split(cmd.Val(), "||")
	if len(parts) != 2 {
		return 0, time.Time{}, ErrSessionCorrupted
	}

	userID, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, time.Time{}, ErrSessionCorrupted
	}
	createdAtUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, time.Time{}, ErrSessionCorrupted
	}

	return userID, time.Unix(createdAtUnix, 0), nil
}
