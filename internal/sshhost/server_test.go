package sshhost

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"io"
	"log"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/ssh"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func startServer(t *testing.T, cfg Config, authorized []ssh.PublicKey) (ssh.PublicKey, string) {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatal(err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	srv := NewServer(cfg, signer, authorized, log.New(io.Discard, "", 0))
	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, ln) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-served:
		case <-time.After(5 * time.Second):
			t.Error("Serve did not return after cancel")
		}
	})
	return signer.PublicKey(), ln.Addr().String()
}

func dial(addr string, hostKey ssh.PublicKey, auth ssh.AuthMethod) (*ssh.Client, error) {
	return ssh.Dial("tcp", addr, &ssh.ClientConfig{
		User:            "tester",
		Auth:            []ssh.AuthMethod{auth},
		HostKeyCallback: ssh.FixedHostKey(hostKey),
		Timeout:         5 * time.Second,
	})
}

func TestServerPlaysAGameAndQuits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	hostKey, addr := startServer(t, cfg, nil)

	client, err := dial(addr, hostKey, ssh.Password("anything"))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	sess, err := client.NewSession()
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()
	stdin, err := sess.StdinPipe()
	if err != nil {
		t.Fatal(err)
	}
	var out lockedBuffer
	sess.Stdout = &out

	if err := sess.RequestPty("xterm", 24, 80, ssh.TerminalModes{}); err != nil {
		t.Fatalf("pty: %v", err)
	}
	if err := sess.Shell(); err != nil {
		t.Fatalf("shell: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(out.String(), "score 0") {
		if time.Now().After(deadline) {
			t.Fatalf("no status line in output %q", out.String())
		}
		time.Sleep(10 * time.Millisecond)
	}

	if _, err := stdin.Write([]byte("q")); err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- sess.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("session ended with %v, want clean exit", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end after q")
	}
}

func TestServerRejectsWrongCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Password = "secret"

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	player, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatal(err)
	}
	hostKey, addr := startServer(t, cfg, []ssh.PublicKey{player.PublicKey()})

	if _, err := dial(addr, hostKey, ssh.Password("guess")); err == nil {
		t.Fatal("wrong password accepted")
	}

	client, err := dial(addr, hostKey, ssh.Password("secret"))
	if err != nil {
		t.Fatalf("right password rejected: %v", err)
	}
	client.Close()

	client, err = dial(addr, hostKey, ssh.PublicKeys(player))
	if err != nil {
		t.Fatalf("authorized key rejected: %v", err)
	}
	client.Close()

	_, other, _ := ed25519.GenerateKey(rand.Reader)
	stranger, err := ssh.NewSignerFromKey(other)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dial(addr, hostKey, ssh.PublicKeys(stranger)); err == nil {
		t.Fatal("unknown key accepted")
	}
}

func TestNewServerWarnsWhenOpen(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	signer, err := ssh.NewSignerFromKey(priv)
	if err != nil {
		t.Fatal(err)
	}

	var open bytes.Buffer
	NewServer(DefaultConfig(), signer, nil, log.New(&open, "", 0))
	if !strings.Contains(open.String(), "warning") {
		t.Fatalf("no warning for open server, log = %q", open.String())
	}

	cfg := DefaultConfig()
	cfg.Password = "hunter2"
	var closed bytes.Buffer
	NewServer(cfg, signer, nil, log.New(&closed, "", 0))
	if strings.Contains(closed.String(), "warning") {
		t.Fatalf("unexpected warning with a password set, log = %q", closed.String())
	}
}
