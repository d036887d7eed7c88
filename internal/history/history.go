package history

import (
	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLimit caps the number of retained snapshots. When the cap is exceeded
// the oldest snapshot after the opening one is dropped, so once trimming has
// happened the last undo jumps straight back to the opening state and reverts
// every dropped mutation at once. Values below 2 disable the cap.
func WithLimit(limit int) Option {
	return func(m *Manager) {
		if limit >= 2 {
			m.limit = limit
		}
	}
}

// Manager is a linear, branch discarding undo/redo stack of block list
// snapshots. Snapshot 0 is the state the document was opened with and is
// never discarded. Every snapshot is a deep copy.
type Manager struct {
	snapshots [][]blocks.Block
	cursor    int
	limit     int
}

// New starts a history whose only snapshot is initial.
func New(initial []blocks.Block, opts ...Option) *Manager {
	m := &Manager{
		snapshots: [][]blocks.Block{pbblocks.CloneList(initial)},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Record discards every snapshot after the cursor, appends snapshot and moves
// the cursor onto it.
func (m *Manager) Record(snapshot []blocks.Block) {
	m.snapshots = append(m.snapshots[:m.cursor+1], pbblocks.CloneList(snapshot))
	m.cursor = len(m.snapshots) - 1
	m.trim()
}

// Amend overwrites the snapshot at the cursor. It only applies when the
// cursor sits on the newest snapshot and that snapshot is not the opening
// one; otherwise it reports false and callers should Record instead.
func (m *Manager) Amend(snapshot []blocks.Block) bool {
	if m.cursor == 0 || m.cursor != len(m.snapshots)-1 {
		return false
	}
	m.snapshots[m.cursor] = pbblocks.CloneList(snapshot)
	return true
}

// Undo steps back one snapshot.
func (m *Manager) Undo() ([]blocks.Block, bool) {
	if m.cursor == 0 {
		return nil, false
	}
	m.cursor--
	return m.Current(), true
}

// Redo steps forward one snapshot.
func (m *Manager) Redo() ([]blocks.Block, bool) {
	if m.cursor >= len(m.snapshots)-1 {
		return nil, false
	}
	m.cursor++
	return m.Current(), true
}

func (m *Manager) CanUndo() bool { return m.cursor > 0 }

func (m *Manager) CanRedo() bool { return m.cursor < len(m.snapshots)-1 }

// Current returns a copy of the snapshot at the cursor.
func (m *Manager) Current() []blocks.Block {
	return pbblocks.CloneList(m.snapshots[m.cursor])
}

func (m *Manager) Cursor() int { return m.cursor }

func (m *Manager) Len() int { return len(m.snapshots) }

func (m *Manager) trim() {
	if m.limit == 0 {
		return
	}
	for len(m.snapshots) > m.limit {
		m.snapshots = append(m.snapshots[:1], m.snapshots[2:]...)
		m.cursor--
	}
}
