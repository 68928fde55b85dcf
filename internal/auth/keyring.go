// Package auth stores integration tokens in the system keyring.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/99designs/keyring"
)

const (
	// ServiceName is the keyring service the tokens are filed under.
	ServiceName = "notion-sdk-go"
	// DefaultWorkspace names the token used when no workspace is configured.
	DefaultWorkspace = "default"
	// KeyringPasswordEnv sets the file backend passphrase for headless setups.
	KeyringPasswordEnv = "NOTION_KEYRING_PASSWORD"
	// CredentialsDirEnv relocates the file backend.
	CredentialsDirEnv = "NOTION_CREDENTIALS_DIR"
)

// ErrNoToken is returned when the keyring holds no token for a workspace.
var ErrNoToken = errors.New("no token stored")

// Provider is the subset of keyring.Keyring the store needs.
type Provider interface {
	Get(key string) (keyring.Item, error)
	Set(item keyring.Item) error
	Remove(key string) error
}

// TokenRecord is what gets persisted per workspace.
type TokenRecord struct {
	Token    string    `json:"token"`
	BotID    string    `json:"bot_id,omitempty"`
	BotName  string    `json:"bot_name,omitempty"`
	StoredAt time.Time `json:"stored_at"`
}

// Masked returns the token with everything but the last four characters hidden.
func (r TokenRecord) Masked() string {
	if len(r.Token) <= 8 {
		return "****"
	}
	return "****" + r.Token[len(r.Token)-4:]
}

var openProvider = openOSKeyring

// SetProviderFunc swaps the keyring opener. Nil restores the OS keyring.
func SetProviderFunc(fn func() (Provider, error)) {
	if fn == nil {
		openProvider = openOSKeyring
		return
	}
	openProvider = fn
}

func openOSKeyring() (Provider, error) {
	cfg := keyring.Config{
		ServiceName:                    ServiceName,
		KeychainTrustApplication:       true,
		KeychainAccessibleWhenUnlocked: true,
		FileDir:                        fileDir(),
		FilePasswordFunc: func(string) (string, error) {
			if p := strings.TrimSpace(os.Getenv(KeyringPasswordEnv)); p != "" {
				return p, nil
			}
			return ServiceName, nil
		},
	}
	// Without a D-Bus session the Secret Service backend hangs; use the file backend.
	if runtime.GOOS == "linux" && os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		cfg.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}
	return keyring.Open(cfg)
}

func fileDir() string {
	if dir := strings.TrimSpace(os.Getenv(CredentialsDirEnv)); dir != "" {
		return filepath.Join(dir, ServiceName, "keyring")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, ServiceName, "keyring")
}

// Store reads and writes per-workspace tokens.
type Store struct {
	ring Provider
	now  func() time.Time
}

// Open opens the configured keyring.
func Open() (*Store, error) {
	ring, err := openProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return &Store{ring: ring, now: time.Now}, nil
}

func keyFor(workspace string) string {
	if workspace == "" {
		workspace = DefaultWorkspace
	}
	return "token:" + workspace
}

// Save stores rec for workspace, stamping StoredAt.
func (s *Store) Save(workspace string, rec TokenRecord) error {
	if rec.Token == "" {
		return fmt.Errorf("token cannot be empty")
	}
	rec.StoredAt = s.now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.ring.Set(keyring.Item{Key: keyFor(workspace), Label: "Notion token (" + workspace + ")", Data: data}); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	return nil
}

// Load returns the record for workspace, or ErrNoToken.
func (s *Store) Load(workspace string) (TokenRecord, error) {
	item, err := s.ring.Get(keyFor(workspace))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return TokenRecord{}, ErrNoToken
	}
	if err != nil {
		return TokenRecord{}, fmt.Errorf("failed to read token: %w", err)
	}
	var rec TokenRecord
	if err := json.Unmarshal(item.Data, &rec); err != nil {
		return TokenRecord{}, fmt.Errorf("corrupt keyring entry for %q: %w", workspace, err)
	}
	if rec.Token == "" {
		return TokenRecord{}, ErrNoToken
	}
	return rec, nil
}

// Remove deletes the token for workspace. Removing a missing token is not an error.
func (s *Store) Remove(workspace string) error {
	err := s.ring.Remove(keyFor(workspace))
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}
