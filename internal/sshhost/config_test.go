package sshhost

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/ssh"

	"mad-snake/internal/sims/snake"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.json", []byte(`{
		"address": "0.0.0.0:2022",
		"password": "hunter2",
		"width": 20,
		"tick-ms": 150
	}`))

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Address != "0.0.0.0:2022" || cfg.Password != "hunter2" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Width != 20 || cfg.Height != snake.DefaultConfig().Height {
		t.Fatalf("size = %dx%d, want 20x%d", cfg.Width, cfg.Height, snake.DefaultConfig().Height)
	}

	sc := cfg.Session(5)
	if sc.Game.TickDuration != 150*time.Millisecond || sc.Game.Seed != 5 || sc.Game.Width != 20 {
		t.Fatalf("session config = %+v", sc.Game)
	}
	if sc.FPS != DefaultConfig().FPS {
		t.Fatalf("fps = %d, want default", sc.FPS)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: %v", err)
	}
	if _, err := LoadConfig(writeFile(t, dir, "bad.json", []byte(`{"width": "wide"}`))); err == nil {
		t.Fatal("expected a parse error")
	}
	_, err := LoadConfig(writeFile(t, dir, "small.json", []byte(`{"width": 1, "height": 1, "tick-ms": 0}`)))
	if !errors.Is(err, snake.ErrGridTooSmall) || !errors.Is(err, snake.ErrBadTickDuration) {
		t.Fatalf("want both validation errors, got %v", err)
	}
	_, err = LoadConfig(writeFile(t, dir, "huge.json", []byte(`{"width": 100000, "height": 100000}`)))
	if !errors.Is(err, snake.ErrGridTooLarge) {
		t.Fatalf("oversized grid: %v", err)
	}
}

func TestLoadKeys(t *testing.T) {
	dir := t.TempDir()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	block, err := ssh.MarshalPrivateKey(priv, "")
	if err != nil {
		t.Fatal(err)
	}
	client, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.HostKeyFile = writeFile(t, dir, "host_key", pem.EncodeToMemory(block))
	authorized := append([]byte("# players\n"), ssh.MarshalAuthorizedKey(client.PublicKey())...)
	cfg.AuthorizedKeysFile = writeFile(t, dir, "authorized_keys", authorized)

	signer, keys, err := cfg.LoadKeys()
	if err != nil {
		t.Fatalf("LoadKeys: %v", err)
	}
	if signer.PublicKey().Type() != ssh.KeyAlgoED25519 {
		t.Fatalf("host key type = %s", signer.PublicKey().Type())
	}
	if len(keys) != 1 || string(keys[0].Marshal()) != string(client.PublicKey().Marshal()) {
		t.Fatalf("authorized keys = %v", keys)
	}

	cfg.HostKeyFile = writeFile(t, dir, "garbage", []byte("not a key"))
	if _, _, err := cfg.LoadKeys(); err == nil {
		t.Fatal("expected host key parse error")
	}
}
