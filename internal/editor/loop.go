package editor

import (
	"fmt"
	"log"
	"sync"
	"time"

	"autotile/internal/autotile"
	"autotile/internal/geo"
)

const (
	TickRate      = 20 // ticks per second
	InputChanSize = 256
)

// Action is an editing command sent by a session.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionPen      // press, or release when a stroke is in progress
	ActionCancel   // drop the stroke in progress
	ActionMode     // cycle micro / macro / rect
	ActionPack     // cycle the pack for the current mode
	ActionLayer    // cycle the edited layer
	ActionAxis     // flip which leg a macro path walks first
	ActionSolid    // toggle solid under the cursor
	ActionSlope    // orient a slope under the cursor
	ActionCrack    // toggle a crack under the cursor
	ActionEntrance // toggle an entrance under the cursor, then refresh entrances
	ActionErase    // erase the tile under the cursor
	ActionQuit
)

// InputEvent carries an action from one editor into the loop.
type InputEvent struct {
	EditorID string
	Action   Action
}

// Editor is one connected user.
type Editor struct {
	ID     string
	Name   string
	Cursor autotile.Coord
	Color  int
	Tool   *Tool
}

// EditorSnapshot is a read-only copy of an editor for rendering.
type EditorSnapshot struct {
	ID       string
	Name     string
	Cursor   autotile.Coord
	Color    int
	Mode     Mode
	PackName string
	Preview  []autotile.Coord
}

// Snapshot is the state sent to each session for rendering. Level is a copy
// taken after the last change and must not be modified.
type Snapshot struct {
	Level   *Level
	Editors []EditorSnapshot
	Tick    uint64
}

// SnapshotChan is the per-session channel that receives snapshots.
type SnapshotChan chan Snapshot

// savedState holds tool settings for reconnecting users.
type savedState struct {
	Cursor autotile.Coord
	Color  int
	Mode   Mode
}

// Loop owns the level and applies every edit on its own goroutine.
type Loop struct {
	level     *Level
	lib       *autotile.Library
	inputCh   chan InputEvent
	tickCount uint64

	mu        sync.RWMutex
	editors   map[string]*Editor
	snapChans map[string]SnapshotChan
	saved     map[string]savedState // keyed by user name
	nextColor int

	view  *Level // copy of level handed to sessions
	dirty bool

	stopCh chan struct{}
}

// NewLoop creates a loop editing level with the packs of lib.
func NewLoop(level *Level, lib *autotile.Library) *Loop {
	return &Loop{
		level:     level,
		lib:       lib,
		inputCh:   make(chan InputEvent, InputChanSize),
		editors:   make(map[string]*Editor),
		snapChans: make(map[string]SnapshotChan),
		saved:     make(map[string]savedState),
		view:      level.Clone(),
		stopCh:    make(chan struct{}),
	}
}

// InputChan returns the shared input channel for sessions to send events.
func (lp *Loop) InputChan() chan<- InputEvent {
	return lp.inputCh
}

// AddEditor registers a user. A returning name gets its cursor, color and mode
// back. Returns the effective editor ID and the snapshot channel.
func (lp *Loop) AddEditor(name string) (string, SnapshotChan) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	id := name
	if _, online := lp.editors[id]; online {
		id = fmt.Sprintf("%s_%04d", name, time.Now().UnixNano()%10000)
	}

	ed := &Editor{ID: id, Name: name, Tool: NewTool(lp.lib)}
	if ss, ok := lp.saved[name]; ok {
		ed.Cursor = ss.Cursor
		ed.Color = ss.Color
		ed.Tool.Mode = ss.Mode
	} else {
		ed.Cursor = autotile.Coord{X: lp.level.Width() / 2, Y: lp.level.Height() / 2}
		ed.Color = lp.nextColor
		lp.nextColor++
	}

	lp.editors[id] = ed
	ch := make(SnapshotChan, 2)
	lp.snapChans[id] = ch
	log.Printf("Editor %s joined", id)
	return id, ch
}

// RemoveEditor saves the user's settings and unregisters them.
func (lp *Loop) RemoveEditor(id string) {
	lp.mu.Lock()
	defer lp.mu.Unlock()

	if ed, ok := lp.editors[id]; ok {
		lp.saved[ed.Name] = savedState{Cursor: ed.Cursor, Color: ed.Color, Mode: ed.Tool.Mode}
		delete(lp.editors, id)
	}
	if ch, ok := lp.snapChans[id]; ok {
		close(ch)
		delete(lp.snapChans, id)
	}
	log.Printf("Editor %s left", id)
}

// Level returns a copy of the current level.
func (lp *Loop) Level() *Level {
	lp.mu.RLock()
	defer lp.mu.RUnlock()
	return lp.view
}

// Run starts the loop. Blocks until Stop is called.
func (lp *Loop) Run() {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-lp.stopCh:
			return
		case <-ticker.C:
			lp.tick()
		}
	}
}

// Stop shuts down the loop.
func (lp *Loop) Stop() {
	close(lp.stopCh)
}

func (lp *Loop) tick() {
	for {
		select {
		case ev := <-lp.inputCh:
			lp.processInput(ev)
		default:
			goto drained
		}
	}
drained:

	lp.tickCount++

	lp.mu.Lock()
	if lp.dirty {
		lp.view = lp.level.Clone()
		lp.dirty = false
	}
	snap := Snapshot{
		Level:   lp.view,
		Editors: make([]EditorSnapshot, 0, len(lp.editors)),
		Tick:    lp.tickCount,
	}
	for _, ed := range lp.editors {
		snap.Editors = append(snap.Editors, EditorSnapshot{
			ID:       ed.ID,
			Name:     ed.Name,
			Cursor:   ed.Cursor,
			Color:    ed.Color,
			Mode:     ed.Tool.Mode,
			PackName: ed.Tool.PackName(),
			Preview:  ed.Tool.Preview(),
		})
	}

	for _, ch := range lp.snapChans {
		select {
		case ch <- snap:
		default:
			// Drop frame for slow client
		}
	}
	lp.mu.Unlock()
}

func (lp *Loop) processInput(ev InputEvent) {
	lp.mu.RLock()
	ed, ok := lp.editors[ev.EditorID]
	lp.mu.RUnlock()
	if !ok {
		return
	}
	if lp.handle(ed, ev.Action) {
		lp.mu.Lock()
		lp.dirty = true
		lp.mu.Unlock()
	}
}

// handle applies one action and reports whether the level changed.
func (lp *Loop) handle(ed *Editor, action Action) bool {
	l := lp.level
	c := ed.Cursor

	switch action {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		lp.moveCursor(ed, action)
		ed.Tool.Move(ed.Cursor)
	case ActionPen:
		if !ed.Tool.Drawing() {
			ed.Tool.Press(c)
			return false
		}
		n := Apply(l, ed.Tool.Release(c))
		return n > 0
	case ActionCancel:
		ed.Tool.Cancel()
	case ActionMode:
		ed.Tool.CycleMode()
	case ActionPack:
		ed.Tool.CyclePack(lp.lib)
	case ActionLayer:
		ed.Tool.Cancel()
		ed.Cursor.Z = (c.Z + 1) % l.Layers()
	case ActionAxis:
		ed.Tool.YFirst = !ed.Tool.YFirst
	case ActionSolid:
		ToggleSolid(l, c)
		return true
	case ActionSlope:
		return OrientSlope(l, c.X, c.Y, c.Z)
	case ActionCrack:
		ToggleFeature(l, c, geo.Crack)
		return true
	case ActionEntrance:
		ToggleFeature(l, c, geo.Entrance)
		RefreshEntrances(l, c.Z)
		return true
	case ActionErase:
		Erase(l, c)
		return true
	}
	return false
}

func (lp *Loop) moveCursor(ed *Editor, action Action) {
	c := ed.Cursor
	switch action {
	case ActionUp:
		c.Y--
	case ActionDown:
		c.Y++
	case ActionLeft:
		c.X--
	case ActionRight:
		c.X++
	}
	if lp.level.InBounds(c) {
		ed.Cursor = c
	}
}
