package sshhost

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/crypto/ssh"
)

var _ tcell.Tty = (*UserConnection)(nil)

// UserConnection adapts an SSH session channel to tcell.Tty.
type UserConnection struct {
	ssh.Channel
	User string

	mu      sync.Mutex
	term    string
	width   int
	height  int
	resize  func()
	drain   chan struct{}
	drained bool

	pumpOnce  sync.Once
	closeOnce sync.Once
	done      chan struct{}
	input     chan []byte
	pending   []byte
}

// NewUserConnection wraps ch for user. Input is read from ch only after
// Start.
func NewUserConnection(ch ssh.Channel, user string) *UserConnection {
	return &UserConnection{
		Channel: ch,
		User:    user,
		term:    "xterm",
		drain:   make(chan struct{}),
		done:    make(chan struct{}),
		input:   make(chan []byte, 8),
	}
}

// Term returns the terminal type requested by the client.
func (uc *UserConnection) Term() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.term
}

func (uc *UserConnection) setPty(p ptyRequest) {
	uc.mu.Lock()
	if p.Term != "" {
		uc.term = p.Term
	}
	uc.width, uc.height = int(p.Width), int(p.Height)
	uc.mu.Unlock()
}

// Resize records a new window size and notifies the screen.
func (uc *UserConnection) Resize(width, height int) {
	uc.mu.Lock()
	uc.width, uc.height = width, height
	cb := uc.resize
	uc.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// Start begins reading client input. It is called again after Stop when
// the screen is resumed.
func (uc *UserConnection) Start() error {
	uc.mu.Lock()
	if uc.drained {
		uc.drain = make(chan struct{})
		uc.drained = false
	}
	uc.mu.Unlock()
	uc.pumpOnce.Do(func() { go uc.pump() })
	return nil
}

func (uc *UserConnection) Stop() error { return nil }

// Drain releases a blocked Read so the screen's input loop can exit.
func (uc *UserConnection) Drain() error {
	uc.mu.Lock()
	if !uc.drained {
		close(uc.drain)
		uc.drained = true
	}
	uc.mu.Unlock()
	return nil
}

func (uc *UserConnection) NotifyResize(cb func()) {
	uc.mu.Lock()
	uc.resize = cb
	uc.mu.Unlock()
}

func (uc *UserConnection) WindowSize() (tcell.WindowSize, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return tcell.WindowSize{Width: uc.width, Height: uc.height}, nil
}

// Read returns buffered client input. After Drain it returns 0, nil
// until Start is called again.
func (uc *UserConnection) Read(p []byte) (int, error) {
	if len(uc.pending) == 0 {
		uc.mu.Lock()
		drain := uc.drain
		uc.mu.Unlock()
		select {
		case b, ok := <-uc.input:
			if !ok {
				return 0, io.EOF
			}
			uc.pending = b
		case <-drain:
			return 0, nil
		}
	}
	n := copy(p, uc.pending)
	uc.pending = uc.pending[n:]
	return n, nil
}

// Close stops delivering input. The channel stays open so an exit status
// can still be sent; see Exit.
func (uc *UserConnection) Close() error {
	uc.closeOnce.Do(func() { close(uc.done) })
	return nil
}

// Exit reports status to the client and closes the channel.
func (uc *UserConnection) Exit(status uint32) error {
	uc.Close()
	_, err := uc.Channel.SendRequest("exit-status", false, ssh.Marshal(struct{ Status uint32 }{status}))
	if cerr := uc.Channel.Close(); err == nil {
		err = cerr
	}
	return err
}

func (uc *UserConnection) pump() {
	defer close(uc.input)
	for {
		buf := make([]byte, 256)
		n, err := uc.Channel.Read(buf)
		if n > 0 {
			select {
			case uc.input <- buf[:n]:
			case <-uc.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// ptyRequest is the payload of a "pty-req" channel request (RFC 4254 6.2).
type ptyRequest struct {
	Term          string
	Width, Height uint32
}

func parsePtyRequest(payload []byte) (ptyRequest, bool) {
	term, rest, ok1 := parseString(payload)
	width, rest, ok2 := parseUint32(rest)
	height, _, ok3 := parseUint32(rest)
	if !ok1 || !ok2 || !ok3 {
		return ptyRequest{}, false
	}
	return ptyRequest{Term: term, Width: width, Height: height}, true
}

// parseWindowChange decodes a "window-change" payload (RFC 4254 6.7).
func parseWindowChange(payload []byte) (width, height uint32, ok bool) {
	width, rest, ok1 := parseUint32(payload)
	height, _, ok2 := parseUint32(rest)
	return width, height, ok1 && ok2
}

func parseString(in []byte) (string, []byte, bool) {
	length, tail, ok := parseUint32(in)
	if !ok || uint32(len(tail)) < length {
		return "", nil, false
	}
	return string(tail[:length]), tail[length:], true
}

func parseUint32(in []byte) (uint32, []byte, bool) {
	if len(in) < 4 {
		return 0, nil, false
	}
	return binary.BigEndian.Uint32(in), in[4:], true
}
