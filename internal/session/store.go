package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medibook/medibook-cli/internal/model"
)

// Session is the client-held proof of authentication. It is written at
// login, read by every authenticated command and removed wholesale at
// logout. There is no expiry tracking: a rejected token is discovered by
// the API answering 401.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
	Username     string `json:"username"`
}

func (s Session) LoggedIn() bool {
	return s.AccessToken != ""
}

func (s Session) IsDoctor() bool {
	return s.Role == model.RoleDoctor
}

func (s Session) IsPatient() bool {
	return s.Role == model.RolePatient
}

// Claims decodes the access token payload without verifying the signature.
// Verification belongs to the server; this is display-only (whoami shows
// the subject and expiry) and never feeds an authorization decision.
func (s Session) Claims() (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}
	return claims, nil
}

// Store persists the session as a mode-0600 JSON file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the session file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "medibook", "session.json"), nil
}

func (st *Store) Path() string {
	return st.path
}

func (st *Store) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Load returns the stored session, or the zero session when none exists.
func (st *Store) Load() (Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Session{}, nil
		}
		return Session{}, fmt.Errorf("failed to read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	return s, nil
}

// Clear removes the session file. Clearing an absent session is not an
// error.
func (st *Store) Clear() error {
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
