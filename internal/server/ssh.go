package server

import (
	"fmt"
	"io"
	"log"
	"sync"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"autotile/internal/editor"
	"autotile/internal/render"
)

// SSHServer serves shared editing sessions of one level over SSH.
type SSHServer struct {
	loop    *editor.Loop
	addr    string
	hostKey string
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, lp *editor.Loop) *SSHServer {
	return &SSHServer{
		loop:    lp,
		addr:    addr,
		hostKey: hostKey,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	editorID, snapCh := s.loop.AddEditor(username)

	log.Printf("Editor connected: %s (%s)", username, editorID)
	defer func() {
		s.loop.RemoveEditor(editorID)
		log.Printf("Editor disconnected: %s (%s)", username, editorID)
	}()

	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	engine := render.NewEngine(termW, termH)

	io.WriteString(sess, render.EnterSession("autotile: "+s.loop.Level().Name))
	defer io.WriteString(sess, render.LeaveSession())

	inputCh := s.loop.InputChan()
	quitCh := make(chan struct{})

	go func() {
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				close(quitCh)
				return
			}
			for _, action := range parseInput(buf[:n]) {
				if action == editor.ActionQuit {
					close(quitCh)
					return
				}
				select {
				case inputCh <- editor.InputEvent{EditorID: editorID, Action: action}:
				default:
				}
			}
		}
	}()

	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
		}
	}()

	for {
		select {
		case <-quitCh:
			return
		case snap, ok := <-snapCh:
			if !ok {
				return
			}

			termMu.Lock()
			w, h := termW, termH
			termMu.Unlock()

			if output := engine.Render(editorID, snap, w, h); len(output) > 0 {
				io.WriteString(sess, output)
			}
		}
	}
}

// keyActions maps single-key input to editor actions.
var keyActions = map[rune]editor.Action{
	'w':  editor.ActionUp,
	'W':  editor.ActionUp,
	's':  editor.ActionDown,
	'S':  editor.ActionDown,
	'a':  editor.ActionLeft,
	'A':  editor.ActionLeft,
	'd':  editor.ActionRight,
	'D':  editor.ActionRight,
	' ':  editor.ActionPen,
	'\r': editor.ActionPen,
	'm':  editor.ActionMode,
	'p':  editor.ActionPack,
	'l':  editor.ActionLayer,
	'x':  editor.ActionAxis,
	'#':  editor.ActionSolid,
	'/':  editor.ActionSlope,
	'c':  editor.ActionCrack,
	'e':  editor.ActionEntrance,
	0x7f: editor.ActionErase, // backspace
	0x08: editor.ActionErase,
	0x1b: editor.ActionCancel,
	'q':  editor.ActionQuit,
	'Q':  editor.ActionQuit,
	3:    editor.ActionQuit, // Ctrl-C
}

// parseInput converts raw bytes into editor actions.
// Handles arrow and delete escape sequences, a bare Esc, and the single keys in keyActions.
func parseInput(data []byte) []editor.Action {
	var actions []editor.Action
	i := 0
	for i < len(data) {
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'A':
				actions = append(actions, editor.ActionUp)
			case 'B':
				actions = append(actions, editor.ActionDown)
			case 'C':
				actions = append(actions, editor.ActionRight)
			case 'D':
				actions = append(actions, editor.ActionLeft)
			case '3':
				// Delete is ESC [ 3 ~
				if i+3 < len(data) && data[i+3] == '~' {
					actions = append(actions, editor.ActionErase)
					i += 4
					continue
				}
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if a, ok := keyActions[r]; ok {
			actions = append(actions, a)
		}
		i += size
	}
	return actions
}
