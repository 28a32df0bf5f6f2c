package api

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ericogr/ninja-arena/internal/constants"
	"github.com/ericogr/ninja-arena/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSession = errors.New("no session token")

// SessionClaims identify an account; Subject is the account id.
type SessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Sessions mints and validates HS256 session tokens.
type Sessions struct {
	secret       []byte
	ttl          time.Duration
	secureCookie bool
	now          func() time.Time
}

// NewSessions uses secret to sign tokens. An empty secret gets a random
// in-memory one, so sessions do not survive a restart.
func NewSessions(secret string, ttl time.Duration, secureCookie bool) (*Sessions, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := crand.Read(key); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		logging.Warn("session secret not set, using an ephemeral one", logging.Fields{"var": constants.EnvSessionSecret})
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{secret: key, ttl: ttl, secureCookie: secureCookie, now: time.Now}, nil
}

// Issue returns a signed token for the account.
func (s *Sessions) Issue(accountID, name string) (string, error) {
	now := s.now()
	claims := SessionClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse validates token and returns its claims.
func (s *Sessions) Parse(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

func (s *Sessions) setCookie(c *gin.Context, token string) {
	c.SetCookie(constants.CookieSessionName, token, int(s.ttl.Seconds()), "/", "", s.secureCookie, true)
}

// tokenFrom reads the session cookie, then the bearer header.
func tokenFrom(c *gin.Context) string {
	if token, err := c.Cookie(constants.CookieSessionName); err == nil && token != "" {
		return token
	}
	h := c.GetHeader(constants.HeaderAuthorization)
	if strings.HasPrefix(h, constants.BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, constants.BearerPrefix))
	}
	return ""
}

func (s *Sessions) identify(c *gin.Context) error {
	token := tokenFrom(c)
	if token == "" {
		return ErrNoSession
	}
	claims, err := s.Parse(token)
	if err != nil {
		return err
	}
	c.Set(constants.CtxAccountID, claims.Subject)
	c.Set(constants.CtxDisplayName, claims.Name)
	return nil
}

// AuthRequired rejects requests without a valid session.
func (s *Sessions) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.identify(c); err != nil {
			msg := constants.ErrInvalidSession
			if errors.Is(err, ErrNoSession) {
				msg = constants.ErrAuthRequired
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: msg})
			return
		}
		c.Next()
	}
}

// AuthOptional lets guests through but still rejects a bad token, so a
// signed-in player never silently plays as a guest.
func (s *Sessions) AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := s.identify(c); err != nil && !errors.Is(err, ErrNoSession) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Next()
	}
}

// accountID is empty for guests.
func accountID(c *gin.Context) string {
	v, ok := c.Get(constants.CtxAccountID)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
