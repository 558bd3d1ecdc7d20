package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"jfrogext/pkg/logging"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"
)

const (
	secretPassword    = "password"
	secretAccessToken = "accessToken"
)

// Store persists an ExtensionConfig. Non-secret fields are written to a YAML
// file; the password and access token are kept in the OS keyring and are
// never handed back by Load.
type Store struct {
	path    string
	service string

	// mu guards read-modify-write cycles on the file and the keyring entries.
	mu sync.Mutex
}

// NewStore creates a store writing to path and keeping secrets under the given keyring service.
func NewStore(path, service string) *Store {
	if service == "" {
		service = DefaultKeyringName
	}
	return &Store{path: path, service: service}
}

// NewStoreFromConfig builds the store described by the application config.
func NewStoreFromConfig(cfg AppConfig) *Store {
	return NewStore(cfg.Storage.Path, cfg.Keyring.Service)
}

// Path returns the YAML file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted configuration without its secrets.
// A missing file yields an empty basic-auth configuration.
func (s *Store) Load(ctx context.Context) (ExtensionConfig, error) {
	if err := ctx.Err(); err != nil {
		return ExtensionConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readFile()
}

// LoadWithSecrets reads the persisted configuration including the stored
// secrets. Only the connection verifier should need this.
func (s *Store) LoadWithSecrets(ctx context.Context) (ExtensionConfig, error) {
	if err := ctx.Err(); err != nil {
		return ExtensionConfig{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.readFile()
	if err != nil {
		return cfg, err
	}
	if cfg.Password, err = s.getSecret(secretPassword); err != nil {
		return cfg, err
	}
	if cfg.AccessToken, err = s.getSecret(secretAccessToken); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg. The YAML file is staged first and only renamed into place
// after the keyring is updated, so a failure leaves the previous file and
// secrets in place. Secrets follow these rules: a non-empty secret is stored,
// the secret of the inactive auth mode is removed, and an empty secret of the
// active mode leaves the stored value alone.
func (s *Store) Save(ctx context.Context, cfg ExtensionConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if cfg.AuthType == "" {
		cfg.AuthType = AuthBasic
	}

	tmpName, err := s.stageFile(cfg)
	if err != nil {
		return err
	}
	defer os.Remove(tmpName) // no-op after a successful rename

	prior, err := s.readSecrets()
	if err != nil {
		return err
	}

	active, inactive := secretPassword, secretAccessToken
	value := cfg.Password
	if cfg.UsesAccessToken() {
		active, inactive = secretAccessToken, secretPassword
		value = cfg.AccessToken
	}

	if value != "" {
		if err := s.setSecret(active, value); err != nil {
			s.restoreSecrets(prior)
			return err
		}
	}
	if err := s.deleteSecret(inactive); err != nil {
		s.restoreSecrets(prior)
		return err
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		s.restoreSecrets(prior)
		return fmt.Errorf("replacing extension config: %w", err)
	}

	logging.Debug("Store", "Saved extension config to %s", s.path)
	return nil
}

// readSecrets snapshots the stored secrets keyed by entry name.
func (s *Store) readSecrets() (map[string]string, error) {
	prior := make(map[string]string, 2)
	for _, name := range []string{secretPassword, secretAccessToken} {
		v, err := s.getSecret(name)
		if err != nil {
			return nil, err
		}
		prior[name] = v
	}
	return prior, nil
}

// restoreSecrets puts back a snapshot taken by readSecrets. Best effort.
func (s *Store) restoreSecrets(prior map[string]string) {
	for name, v := range prior {
		var err error
		if v == "" {
			err = s.deleteSecret(name)
		} else {
			err = s.setSecret(name, v)
		}
		if err != nil {
			logging.Warn("Store", "Could not restore %s after a failed save: %v", name, err)
		}
	}
}

func (s *Store) readFile() (ExtensionConfig, error) {
	cfg := ExtensionConfig{AuthType: AuthBasic}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading extension config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ExtensionConfig{AuthType: AuthBasic}, fmt.Errorf("parsing extension config %s: %w", s.path, err)
	}
	if cfg.AuthType == "" {
		cfg.AuthType = AuthBasic
	}
	// yaml:"-" already drops these; clear them anyway in case the struct tags change.
	cfg.Password = ""
	cfg.AccessToken = ""
	return cfg, nil
}

// stageFile writes cfg to a temp file next to the config path and returns its
// name. The caller renames it into place or removes it.
func (s *Store) stageFile(cfg ExtensionConfig) (string, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling extension config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".extension-*.yaml")
	if err != nil {
		return "", fmt.Errorf("creating temp config: %w", err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("setting config permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("writing extension config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("writing extension config: %w", err)
	}
	return tmpName, nil
}

func (s *Store) getSecret(name string) (string, error) {
	v, err := keyring.Get(s.service, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s from keyring: %w", name, err)
	}
	return v, nil
}

func (s *Store) setSecret(name, value string) error {
	if err := keyring.Set(s.service, name, value); err != nil {
		return fmt.Errorf("storing %s in keyring: %w", name, err)
	}
	return nil
}

func (s *Store) deleteSecret(name string) error {
	err := keyring.Delete(s.service, name)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("removing %s from keyring: %w", name, err)
	}
	return nil
}
