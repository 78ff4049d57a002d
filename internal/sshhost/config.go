package sshhost

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/ssh"

	"mad-snake/internal/sims/snake"
	"mad-snake/internal/term"
)

// Config is the JSON configuration of the SSH host.
type Config struct {
	Address            string `json:"address"`
	HostKeyFile        string `json:"host-key-file"`
	Password           string `json:"password"`
	AuthorizedKeysFile string `json:"authorized-keys-file"`

	Width  int `json:"width"`
	Height int `json:"height"`
	// Seed 0 gives every session its own seed derived from its id.
	Seed   int64 `json:"seed"`
	TickMS int   `json:"tick-ms"`
	FPS    int   `json:"fps"`
}

// DefaultConfig mirrors the local frontends and listens on localhost:2222.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	game := snake.DefaultConfig()
	return Config{
		Address:     "localhost:2222",
		HostKeyFile: filepath.Join(home, ".ssh", "id_ed25519"),
		Width:       game.Width,
		Height:      game.Height,
		TickMS:      int(game.TickDuration / time.Millisecond),
		FPS:         term.NewConfig().FPS,
	}
}

// LoadConfig reads path and applies it over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("sshhost: read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("sshhost: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings no session could start with.
func (c Config) Validate() error {
	var errs []error
	if c.Address == "" {
		errs = append(errs, errors.New("address is empty"))
	}
	if err := snake.CheckSize(c.Width, c.Height); err != nil {
		errs = append(errs, err)
	}
	if c.TickMS <= 0 {
		errs = append(errs, fmt.Errorf("%w: tick-ms %d", snake.ErrBadTickDuration, c.TickMS))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("sshhost: invalid config: %w", err)
	}
	return nil
}

// Session returns the terminal settings for one session.
func (c Config) Session(seed int64) term.Config {
	tc := term.NewConfig()
	tc.Game = snake.Config{
		Width:        c.Width,
		Height:       c.Height,
		Seed:         seed,
		TickDuration: time.Duration(c.TickMS) * time.Millisecond,
	}
	if c.FPS > 0 {
		tc.FPS = c.FPS
	}
	return *tc
}

// LoadKeys reads the host key and the optional authorized keys file.
func (c Config) LoadKeys() (ssh.Signer, []ssh.PublicKey, error) {
	data, err := os.ReadFile(c.HostKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("sshhost: read host key: %w", err)
	}
	signer, err := ssh.ParsePrivateKey(data)
	if err != nil {
		return nil, nil, fmt.Errorf("sshhost: parse host key %s: %w", c.HostKeyFile, err)
	}
	if c.AuthorizedKeysFile == "" {
		return signer, nil, nil
	}
	data, err = os.ReadFile(c.AuthorizedKeysFile)
	if err != nil {
		return nil, nil, fmt.Errorf("sshhost: read authorized keys: %w", err)
	}
	keys, err := parseAuthorizedKeys(data)
	if err != nil {
		return nil, nil, fmt.Errorf("sshhost: parse %s: %w", c.AuthorizedKeysFile, err)
	}
	return signer, keys, nil
}

func parseAuthorizedKeys(data []byte) ([]ssh.PublicKey, error) {
	var keys []ssh.PublicKey
	for len(data) > 0 {
		key, _, _, rest, err := ssh.ParseAuthorizedKey(data)
		if err != nil {
			// ParseAuthorizedKey skips blank and comment lines and reports
			// a bare error once nothing parsable is left.
			if len(keys) > 0 && len(rest) == 0 {
				break
			}
			return nil, err
		}
		keys = append(keys, key)
		data = rest
	}
	return keys, nil
}
