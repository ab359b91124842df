package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtExpiry        = 24 * time.Hour
	jwtSubject       = "admin"
	bcryptCost       = 12
	loginRateWindow  = 60 * time.Second
	maxLoginAttempts = 10
)

var (
	errUnauthorized = errors.New("unauthorized")
	errRateLimited  = errors.New("too many login attempts, try again later")
	errAdminOff     = errors.New("admin login is not configured")
)

// Auth guards the moderation endpoints with a single admin password and
// short-lived HS256 tokens
type Auth struct {
	passHash  []byte
	jwtSecret []byte
	now       func() time.Time
	log       *logrus.Entry

	// Rate limiting for login attempts (IP -> attempts)
	rateMu  sync.Mutex
	rateMap map[string]*rateEntry
}

type rateEntry struct {
	Count   int
	ResetAt time.Time
}

// NewAuth creates the admin guard. hash wins over password; with neither,
// every login fails with errAdminOff. An empty secret is loaded from or
// generated into the database settings.
func NewAuth(db *DB, password, hash, secret string) (*Auth, error) {
	a := &Auth{
		now:     time.Now,
		log:     logrus.WithField("component", "auth"),
		rateMap: make(map[string]*rateEntry),
	}
	switch {
	case hash != "":
		a.passHash = []byte(hash)
	case password != "":
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		a.passHash = h
	}
	if secret != "" {
		a.jwtSecret = []byte(secret)
	} else {
		a.jwtSecret = a.loadOrCreateSecret(db)
	}
	return a, nil
}

// loadOrCreateSecret loads the JWT secret from the database, or generates
// and persists a new one if none exists.
func (a *Auth) loadOrCreateSecret(db *DB) []byte {
	if db != nil {
		if h := db.GetSetting("jwt_secret"); h != "" {
			if b, err := hex.DecodeString(h); err == nil && len(b) == 32 {
				return b
			}
		}
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic("failed to generate JWT secret: " + err.Error())
	}
	if db != nil {
		if err := db.SetSetting("jwt_secret", hex.EncodeToString(secret)); err != nil {
			a.log.WithError(err).Warn("could not persist JWT secret")
		}
	}
	return secret
}

// Enabled reports whether an admin password is configured
func (a *Auth) Enabled() bool {
	return len(a.passHash) > 0
}

// Login checks the admin password and returns a token
func (a *Auth) Login(password, ip string) (string, error) {
	if !a.Enabled() {
		return "", errAdminOff
	}
	if !a.checkRate(ip) {
		return "", errRateLimited
	}
	if err := bcrypt.CompareHashAndPassword(a.passHash, []byte(password)); err != nil {
		a.log.WithField("ip", ip).Warn("failed admin login")
		return "", errUnauthorized
	}
	return a.generateToken()
}

// ValidateToken checks a token's signature, expiry and subject
func (a *Auth) ValidateToken(tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return a.jwtSecret, nil
	}, jwt.WithTimeFunc(a.now), jwt.WithSubject(jwtSubject))
	if err != nil {
		return fmt.Errorf("%w: %v", errUnauthorized, err)
	}
	if !token.Valid {
		return errUnauthorized
	}
	return nil
}

func (a *Auth) generateToken() (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   jwtSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(jwtExpiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func (a *Auth) checkRate(ip string) bool {
	a.rateMu.Lock()
	defer a.rateMu.Unlock()

	now := a.now()
	entry, ok := a.rateMap[ip]
	if !ok || now.After(entry.ResetAt) {
		a.rateMap[ip] = &rateEntry{Count: 1, ResetAt: now.Add(loginRateWindow)}
		return true
	}
	entry.Count++
	return entry.Count <= maxLoginAttempts
}
