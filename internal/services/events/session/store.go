// Package session keeps the signed-in user in durable storage.
//
// Persisted storage is the only source of truth: every getter re-reads it,
// so the route guard and the views can never disagree about who is signed in.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/louisbranch/eventboard/internal/platform/errors"
	"github.com/louisbranch/eventboard/internal/services/events/domain"
	"github.com/louisbranch/eventboard/internal/services/events/storage"
)

// StorageKey is the persisted key holding the serialized user.
const StorageKey = "user"

// UserLister returns every account known to the gateway.
type UserLister interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Store manages sign-in state.
type Store struct {
	users   UserLister
	storage storage.KeyValue
}

// New builds a Store.
func New(users UserLister, kv storage.KeyValue) (*Store, error) {
	if users == nil {
		return nil, errors.New("user lister is required")
	}
	if kv == nil {
		return nil, errors.New("session storage is required")
	}
	return &Store{users: users, storage: kv}, nil
}

// Login scans the user collection for a username and password match and
// persists the user on success.
func (s *Store) Login(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, apperrors.EK(apperrors.KindInvalidInput, "error.credentials_required", "username and password are required")
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return domain.User{}, err
	}
	for _, user := range users {
		if user.Username != username || !passwordMatches(user.Password, password) {
			continue
		}
		if err := s.persist(ctx, user); err != nil {
			return domain.User{}, err
		}
		return user, nil
	}
	return domain.User{}, apperrors.EK(apperrors.KindUnauthorized, "error.invalid_credentials", "invalid username or password")
}

// Logout removes the persisted user.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.storage.RemoveItem(ctx, StorageKey); err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "error.storage", "remove session", err)
	}
	return nil
}

// CurrentUser returns the persisted user. ok is false when nobody is signed
// in or the persisted value cannot be decoded.
func (s *Store) CurrentUser(ctx context.Context) (domain.User, bool, error) {
	raw, ok, err := s.storage.GetItem(ctx, StorageKey)
	if err != nil {
		return domain.User{}, false, apperrors.Wrap(apperrors.KindUnavailable, "error.storage", "read session", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return domain.User{}, false, nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return domain.User{}, false, nil
	}
	return user, true, nil
}

// IsAuthenticated reports whether a user is persisted.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	_, ok, err := s.CurrentUser(ctx)
	return err == nil && ok
}

// Username returns the signed-in username, or "" when signed out.
func (s *Store) Username(ctx context.Context) string {
	user, ok, _ := s.CurrentUser(ctx)
	if !ok {
		return ""
	}
	return user.Username
}

// UserID returns the signed-in user id, or 0 when signed out.
func (s *Store) UserID(ctx context.Context) int64 {
	user, ok, _ := s.CurrentUser(ctx)
	if !ok {
		return 0
	}
	return user.ID
}

func (s *Store) persist(ctx context.Context, user domain.User) error {
	payload, err := json.Marshal(user.Public())
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnknown, "error.storage", "encode session", err)
	}
	if err := s.storage.SetItem(ctx, StorageKey, string(payload)); err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "error.storage", "persist session", err)
	}
	return nil
}

func passwordMatches(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}

func isBcryptHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}
