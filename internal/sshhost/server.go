// Package sshhost serves snake over SSH. Every shell request gets its own
// terminal session and game; nothing is shared between players.
package sshhost

import (
	"context"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/terminfo"
	"github.com/google/uuid"
	"golang.org/x/crypto/ssh"

	"mad-snake/internal/term"
)

var (
	errWrongPassword = errors.New("wrong password")
	errUnknownKey    = errors.New("unknown key")
)

// Server accepts SSH connections and runs a game per shell.
type Server struct {
	cfg Config
	ssh *ssh.ServerConfig
	log *log.Logger

	wg sync.WaitGroup
}

// NewServer builds a server presenting hostKey. Public keys are accepted
// when listed in authorized; passwords when they match cfg.Password, or
// always when no password is configured.
func NewServer(cfg Config, hostKey ssh.Signer, authorized []ssh.PublicKey, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "[server] ", log.Ldate|log.Ltime|log.Lmsgprefix)
	}
	known := make(map[string]bool, len(authorized))
	for _, k := range authorized {
		known[string(k.Marshal())] = true
	}
	sc := &ssh.ServerConfig{
		PasswordCallback: func(_ ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
			if cfg.Password != "" && subtle.ConstantTimeCompare([]byte(cfg.Password), password) != 1 {
				return nil, errWrongPassword
			}
			return nil, nil
		},
		PublicKeyCallback: func(_ ssh.ConnMetadata, key ssh.PublicKey) (*ssh.Permissions, error) {
			if !known[string(key.Marshal())] {
				return nil, errUnknownKey
			}
			return nil, nil
		},
	}
	sc.AddHostKey(hostKey)
	// Password auth accepts anything without a configured password, keys or not.
	if cfg.Password == "" {
		logger.Printf("warning: no password configured, any client can log in")
	}
	return &Server{cfg: cfg, ssh: sc, log: logger}
}

// ListenAndServe listens on the configured address and serves until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("sshhost: listen: %w", err)
	}
	s.log.Printf("listening on %s", ln.Addr())
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done or ln is closed, then
// waits for open sessions to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()

	for {
		raw, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			s.log.Print(err)
			continue
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(ctx, raw)
		}()
	}
	s.wg.Wait()
	return ctx.Err()
}

func (s *Server) handleConn(ctx context.Context, raw net.Conn) {
	conn, chans, reqs, err := ssh.NewServerConn(raw, s.ssh)
	if err != nil {
		s.log.Printf("handshake with %s failed: %v", raw.RemoteAddr(), err)
		raw.Close()
		return
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	s.log.Printf("user %q connected from %s", conn.User(), conn.RemoteAddr())
	go ssh.DiscardRequests(reqs)

	for nc := range chans {
		if nc.ChannelType() != "session" {
			nc.Reject(ssh.UnknownChannelType, "unknown channel type")
			continue
		}
		ch, creqs, err := nc.Accept()
		if err != nil {
			s.log.Printf("user %q: accept channel: %v", conn.User(), err)
			return
		}

		id := uuid.New()
		logger := log.New(s.log.Writer(), fmt.Sprintf("[session:%s] ", id), log.Ldate|log.Ltime|log.Lmsgprefix)
		user := NewUserConnection(ch, conn.User())
		logger.Printf("session opened for %q", conn.User())

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleRequests(ctx, id, user, creqs, logger)
		}()
	}
}

func (s *Server) handleRequests(ctx context.Context, id uuid.UUID, user *UserConnection, reqs <-chan *ssh.Request, logger *log.Logger) {
	started := false
	for req := range reqs {
		switch req.Type {
		case "pty-req":
			pty, ok := parsePtyRequest(req.Payload)
			if !ok {
				logger.Printf("invalid pty-req payload")
				req.Reply(false, nil)
				continue
			}
			user.setPty(pty)
			req.Reply(true, nil)
			logger.Printf("terminal %s, size %dx%d", pty.Term, pty.Width, pty.Height)
		case "window-change":
			w, h, ok := parseWindowChange(req.Payload)
			if !ok {
				logger.Printf("invalid window-change payload")
				req.Reply(false, nil)
				continue
			}
			user.Resize(int(w), int(h))
			req.Reply(true, nil)
		case "shell":
			if started {
				req.Reply(false, nil)
				continue
			}
			screen, err := openScreen(user)
			if err != nil {
				logger.Printf("open screen: %v", err)
				req.Reply(false, nil)
				continue
			}
			started = true
			req.Reply(true, nil)
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.play(ctx, id, user, screen, logger)
			}()
		default:
			logger.Printf("ignoring %q request", req.Type)
			req.Reply(false, nil)
		}
	}
	if !started {
		user.Exit(1)
	}
}

func openScreen(user *UserConnection) (tcell.Screen, error) {
	ti, err := terminfo.LookupTerminfo(user.Term())
	if err != nil {
		return nil, fmt.Errorf("terminal %q: %w", user.Term(), err)
	}
	screen, err := tcell.NewTerminfoScreenFromTtyTerminfo(user, ti)
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

func (s *Server) play(ctx context.Context, id uuid.UUID, user *UserConnection, screen tcell.Screen, logger *log.Logger) {
	seed := s.cfg.Seed
	if seed == 0 {
		seed = int64(binary.BigEndian.Uint64(id[:8]) >> 1)
	}
	sess, err := term.NewSession(screen, s.cfg.Session(seed), logger)
	if err != nil {
		screen.Fini()
		logger.Printf("start game: %v", err)
		user.Exit(1)
		return
	}

	err = sess.Run(ctx)
	screen.Fini()

	var status uint32
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Printf("session ended: %v", err)
		status = 1
	}
	if err := user.Exit(status); err != nil {
		logger.Printf("close channel: %v", err)
	}
	logger.Printf("session closed for %q", user.User)
}
