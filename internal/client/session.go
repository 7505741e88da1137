package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"admindash/internal/model"
)

// Session is the token and admin a client acts as. The zero value is a
// logged-out session. A Session is not safe for concurrent mutation.
type Session struct {
	Token string       `json:"token"`
	Admin *model.Admin `json:"user,omitempty"`
}

// LoggedIn reports whether the session holds a token.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// Clear drops the token and the cached admin.
func (s *Session) Clear() {
	s.Token = ""
	s.Admin = nil
}

// SaveSession writes the session to path, readable by the owner only.
func SaveSession(path string, s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// LoadSession reads a session saved by SaveSession. A missing file yields an
// empty session.
func LoadSession(path string) (*Session, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
