package editor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/document"
	"github.com/goliatone/go-pagebuilder/internal/history"
	"github.com/goliatone/go-pagebuilder/internal/logging"
	"github.com/goliatone/go-pagebuilder/internal/media"
	"github.com/goliatone/go-pagebuilder/internal/metrics"
	"github.com/goliatone/go-pagebuilder/internal/render"
	"github.com/goliatone/go-pagebuilder/internal/templates"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

// State is the persistence state of an editing session.
type State string

const (
	StateIdle       State = "idle"
	StateDirty      State = "dirty"
	StateSaving     State = "saving"
	StatePublishing State = "publishing"
)

var (
	// ErrSaveInFlight is returned when Save or Publish is called while another
	// persistence call is outstanding.
	ErrSaveInFlight = errors.New("editor: save or publish already in flight")
	// ErrNothingToSave is returned by Save when there are no unsaved changes.
	ErrNothingToSave = errors.New("editor: nothing to save")
	// ErrStoreUnavailable is returned by Save and Publish without a page store.
	ErrStoreUnavailable = errors.New("editor: page store unavailable")
	// ErrMediaUnavailable is returned by AttachMedia without a media picker.
	ErrMediaUnavailable = errors.New("editor: media picker unavailable")
	// ErrCatalogUnavailable is returned by ApplyTemplateID without a catalog.
	ErrCatalogUnavailable = errors.New("editor: template catalog unavailable")
)

// Reason names the operation behind a Change.
type Reason string

const (
	ReasonAdd        Reason = "add"
	ReasonUpdate     Reason = "update"
	ReasonReplace    Reason = "replace"
	ReasonDelete     Reason = "delete"
	ReasonDuplicate  Reason = "duplicate"
	ReasonReorder    Reason = "reorder"
	ReasonVisibility Reason = "visibility"
	ReasonStyles     Reason = "styles"
	ReasonTemplate   Reason = "template"
	ReasonMedia      Reason = "media"
	ReasonBatch      Reason = "batch"
	ReasonUndo       Reason = "undo"
	ReasonRedo       Reason = "redo"
	ReasonState      Reason = "state"
)

// Change is delivered to listeners after every mutation and state transition.
// Blocks is a copy owned by the listener.
type Change struct {
	Reason  Reason
	BlockID string
	Blocks  []blocks.Block
	State   State
}

// Listener receives changes. Listeners run on the goroutine that caused the
// change, after the controller lock is released.
type Listener func(Change)

type lastUpdate struct {
	key string
	at  time.Time
}

// Controller owns one page's document, its history and its persistence state
// machine. Mutations record exactly one snapshot each; calls that change
// nothing record nothing. All methods are safe for concurrent use so hosts
// can run Save or Publish on a goroutine while editing continues.
type Controller struct {
	mu sync.Mutex

	pageID  string
	doc     *document.Document
	history *history.Manager
	state   State

	// set when a mutation lands while a save or publish is outstanding
	editedInFlight     bool
	last               lastUpdate
	pendingCoalesceKey string
	batchDepth         int
	batchChanged       bool

	store    interfaces.PageStore
	media    interfaces.MediaPicker
	catalog  *templates.Catalog
	compiler *render.Compiler
	metrics  metrics.Recorder
	logger   interfaces.Logger
	now      func() time.Time
	window   time.Duration

	listenerSeq int
	listeners   map[int]Listener
}

// New opens an editing session for pageID seeded with initial blocks.
func New(pageID string, initial []blocks.Block, opts ...Option) *Controller {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = logging.NoOp()
	}
	if cfg.metrics == nil {
		cfg.metrics = metrics.Noop()
	}
	if cfg.clock == nil {
		cfg.clock = time.Now
	}
	if cfg.compiler == nil {
		cfg.compiler = render.NewCompiler()
	}

	docOpts := []document.Option{document.WithAddAfterSelection(cfg.addAfterSelection)}
	if cfg.registry != nil {
		docOpts = append(docOpts, document.WithRegistry(cfg.registry))
	}
	if cfg.newID != nil {
		docOpts = append(docOpts, document.WithIDGenerator(cfg.newID))
	}
	doc := document.New(initial, docOpts...)

	return &Controller{
		pageID:    pageID,
		doc:       doc,
		history:   history.New(doc.Blocks(), history.WithLimit(cfg.historyLimit)),
		state:     StateIdle,
		store:     cfg.store,
		media:     cfg.media,
		catalog:   cfg.catalog,
		compiler:  cfg.compiler,
		metrics:   cfg.metrics,
		logger:    logging.WithPageContext(cfg.logger, pageID, "", ""),
		now:       cfg.clock,
		window:    cfg.coalesceWindow,
		listeners: map[int]Listener{},
	}
}

// PageID returns the page the session edits.
func (c *Controller) PageID() string {
	return c.pageID
}

// Blocks returns a copy of the current block list.
func (c *Controller) Blocks() []blocks.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Blocks()
}

// Block returns a copy of block id.
func (c *Controller) Block(id string) (blocks.Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Block(id)
}

// State returns the persistence state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanUndo reports whether Undo would change the document.
func (c *Controller) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.CanUndo()
}

// CanRedo reports whether Redo would change the document.
func (c *Controller) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.CanRedo()
}

// HistoryLen returns the number of retained snapshots.
func (c *Controller) HistoryLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Len()
}

// Select marks a block as selected. Selection is not part of history.
func (c *Controller) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Select(id)
}

// Selected returns the selected block id.
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Selected()
}

// Subscribe registers fn for every change and returns a function removing it.
func (c *Controller) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	c.listenerSeq++
	id := c.listenerSeq
	c.listeners[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// AddBlock appends a block of type t with default content.
func (c *Controller) AddBlock(t blocks.Type) (blocks.Block, error) {
	var added blocks.Block
	_, err := c.mutate(ReasonAdd, "", false, func() ([]blocks.Block, bool, error) {
		list, block, err := c.doc.Add(t)
		added = block
		return list, err == nil, err
	})
	return added, err
}

// AddBlockAt inserts a block of type t at index, clamped into range.
func (c *Controller) AddBlockAt(t blocks.Type, index int) (blocks.Block, error) {
	var added blocks.Block
	_, err := c.mutate(ReasonAdd, "", false, func() ([]blocks.Block, bool, error) {
		list, block, err := c.doc.AddAt(t, index)
		added = block
		return list, err == nil, err
	})
	return added, err
}

// UpdateBlock merges patch into block id. Unknown ids report false without
// error. Consecutive updates of the same keys within the coalesce window
// share one snapshot.
func (c *Controller) UpdateBlock(id string, patch map[string]any) (bool, error) {
	if len(patch) == 0 {
		return false, nil
	}
	return c.mutate(ReasonUpdate, id, true, func() ([]blocks.Block, bool, error) {
		list, found, err := c.doc.Update(id, patch)
		if err != nil {
			return nil, false, err
		}
		if found {
			c.pendingCoalesceKey = coalesceKey(id, patch)
		}
		return list, found, nil
	})
}

// ReplaceContent swaps the whole content of block id.
func (c *Controller) ReplaceContent(id string, content blocks.Content) (bool, error) {
	return c.mutate(ReasonReplace, id, false, func() ([]blocks.Block, bool, error) {
		return c.doc.ReplaceContent(id, content)
	})
}

// DeleteBlock removes block id.
func (c *Controller) DeleteBlock(id string) bool {
	changed, _ := c.mutate(ReasonDelete, id, false, func() ([]blocks.Block, bool, error) {
		list, found := c.doc.Delete(id)
		return list, found, nil
	})
	return changed
}

// DuplicateBlock copies block id directly after itself.
func (c *Controller) DuplicateBlock(id string) (blocks.Block, bool) {
	var clone blocks.Block
	changed, _ := c.mutate(ReasonDuplicate, id, false, func() ([]blocks.Block, bool, error) {
		list, block, found := c.doc.Duplicate(id)
		clone = block
		return list, found, nil
	})
	return clone, changed
}

// Reorder moves block id to index, clamped into range.
func (c *Controller) Reorder(id string, index int) bool {
	changed, _ := c.mutate(ReasonReorder, id, false, func() ([]blocks.Block, bool, error) {
		list, moved := c.doc.Reorder(id, index)
		return list, moved, nil
	})
	return changed
}

// MoveUp swaps block id with its predecessor.
func (c *Controller) MoveUp(id string) bool {
	return c.move(id, -1)
}

// MoveDown swaps block id with its successor.
func (c *Controller) MoveDown(id string) bool {
	return c.move(id, 1)
}

func (c *Controller) move(id string, delta int) bool {
	changed, _ := c.mutate(ReasonReorder, id, false, func() ([]blocks.Block, bool, error) {
		idx := pbblocks.IndexOf(c.doc.Blocks(), id)
		if idx < 0 || idx+delta < 0 {
			return nil, false, nil
		}
		list, moved := c.doc.Reorder(id, idx+delta)
		return list, moved, nil
	})
	return changed
}

// SetVisibility hides or shows block id at breakpoint.
func (c *Controller) SetVisibility(id string, bp blocks.Breakpoint, hidden bool) (bool, error) {
	return c.mutate(ReasonVisibility, id, false, func() ([]blocks.Block, bool, error) {
		return c.doc.SetVisibility(id, bp, hidden)
	})
}

// SetStyles replaces the style overrides of block id.
func (c *Controller) SetStyles(id string, styles blocks.Styles) bool {
	changed, _ := c.mutate(ReasonStyles, id, false, func() ([]blocks.Block, bool, error) {
		list, changed := c.doc.SetStyles(id, styles)
		return list, changed, nil
	})
	return changed
}

// ApplyTemplate instantiates t at index (negative appends) and returns the
// inserted blocks. Each application yields fresh ids.
func (c *Controller) ApplyTemplate(t templates.Template, index int) []blocks.Block {
	var inserted []blocks.Block
	_, _ = c.mutate(ReasonTemplate, "", false, func() ([]blocks.Block, bool, error) {
		seeds := templates.Instantiate(t, func() string { return "" })
		if len(seeds) == 0 {
			return nil, false, nil
		}
		at := index
		if at < 0 || at > c.doc.Len() {
			at = c.doc.Len()
		}
		list := c.doc.InsertMany(seeds, at)
		inserted = pbblocks.CloneList(list[at : at+len(seeds)])
		return list, true, nil
	})
	return inserted
}

// ApplyTemplateID looks templateID up in the catalog and applies it.
func (c *Controller) ApplyTemplateID(templateID string, index int) ([]blocks.Block, error) {
	if c.catalog == nil {
		return nil, ErrCatalogUnavailable
	}
	t, err := c.catalog.Get(templateID)
	if err != nil {
		return nil, err
	}
	return c.ApplyTemplate(t, index), nil
}

// AttachMedia asks the media collaborator for an asset and stores it in field
// of block id. An empty field selects the block's natural media slot. A
// cancelled pick changes nothing and is not an error.
func (c *Controller) AttachMedia(ctx context.Context, id, field string) (bool, error) {
	if c.media == nil {
		return false, ErrMediaUnavailable
	}
	block, ok := c.Block(id)
	if !ok {
		return false, nil
	}
	if strings.TrimSpace(field) == "" {
		field = media.DefaultField(block.Type)
	}

	req := interfaces.MediaRequest{PageID: c.pageID, BlockID: id, Field: field}
	selection, picked, err := c.media.PickMedia(ctx, req)
	if err != nil {
		logging.WithPageContext(c.logger, "", id, "media").Warn("editor.media.failed", "error", err)
		return false, fmt.Errorf("editor: pick media for block %s: %w", id, err)
	}
	if !picked {
		return false, nil
	}
	patch, err := media.Patch(block.Type, field, selection)
	if err != nil {
		return false, err
	}
	return c.mutate(ReasonMedia, id, false, func() ([]blocks.Block, bool, error) {
		return c.doc.Update(id, patch)
	})
}

// Batch runs fn and records the mutations it makes as a single snapshot. If
// fn returns an error the document is rolled back and nothing is recorded.
func (c *Controller) Batch(fn func() error) error {
	if fn == nil {
		return nil
	}
	c.mu.Lock()
	c.batchDepth++
	c.mu.Unlock()

	err := fn()

	c.mu.Lock()
	c.batchDepth--
	if c.batchDepth > 0 {
		c.mu.Unlock()
		return err
	}
	changed := c.batchChanged
	c.batchChanged = false
	if err != nil {
		if changed {
			c.doc.Restore(c.history.Current())
		}
		c.mu.Unlock()
		return err
	}
	if !changed {
		c.mu.Unlock()
		return nil
	}
	change := c.commitLocked(ReasonBatch, "", c.doc.Blocks(), false)
	c.mu.Unlock()
	c.emit(change)
	return nil
}

// Undo restores the previous snapshot. The document is always marked dirty
// afterwards, even when it returns to the last saved state.
func (c *Controller) Undo() bool {
	return c.step(ReasonUndo, c.history.Undo)
}

// Redo reapplies the next snapshot.
func (c *Controller) Redo() bool {
	return c.step(ReasonRedo, c.history.Redo)
}

func (c *Controller) step(reason Reason, move func() ([]blocks.Block, bool)) bool {
	c.mu.Lock()
	if c.batchDepth > 0 {
		c.mu.Unlock()
		return false
	}
	snapshot, ok := move()
	if !ok {
		c.mu.Unlock()
		return false
	}
	list := c.doc.Restore(snapshot)
	c.last = lastUpdate{}
	c.markDirtyLocked()
	c.metrics.IncUndoRedo(string(reason))
	change := c.changeLocked(reason, "", list)
	c.mu.Unlock()
	c.emit(change)
	return true
}

// Preview compiles the current blocks for breakpoint.
func (c *Controller) Preview(bp blocks.Breakpoint) string {
	list := c.Blocks()
	start := c.now()
	out := c.compiler.Compile(list, bp)
	c.metrics.ObserveCompile(string(bp), len(list), c.now().Sub(start))
	return out
}

// PreviewFragment compiles the current blocks without the document shell.
func (c *Controller) PreviewFragment(bp blocks.Breakpoint) string {
	list := c.Blocks()
	start := c.now()
	out := c.compiler.CompileFragment(list, bp)
	c.metrics.ObserveCompile(string(bp), len(list), c.now().Sub(start))
	return out
}

// Save sends the full block list to the page store. It is only allowed from
// dirty. On failure the session returns to dirty with the document untouched.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateSaving, StatePublishing:
		c.mu.Unlock()
		return ErrSaveInFlight
	case StateIdle:
		c.mu.Unlock()
		return ErrNothingToSave
	}
	if c.store == nil {
		c.mu.Unlock()
		return ErrStoreUnavailable
	}
	list := c.beginPersistLocked(StateSaving)
	change := c.changeLocked(ReasonState, "", list)
	c.mu.Unlock()
	c.emit(change)

	start := c.now()
	err := c.store.Save(ctx, c.pageID, list)
	return c.finishPersist("save", StateDirty, start, err)
}

// Publish sends the full block list to the page store for publication. It is
// allowed from idle or dirty. On failure the previous state is restored.
func (c *Controller) Publish(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateSaving || c.state == StatePublishing {
		c.mu.Unlock()
		return ErrSaveInFlight
	}
	if c.store == nil {
		c.mu.Unlock()
		return ErrStoreUnavailable
	}
	previous := c.state
	list := c.beginPersistLocked(StatePublishing)
	change := c.changeLocked(ReasonState, "", list)
	c.mu.Unlock()
	c.emit(change)

	start := c.now()
	err := c.store.Publish(ctx, c.pageID, list)
	return c.finishPersist("publish", previous, start, err)
}

func (c *Controller) beginPersistLocked(state State) []blocks.Block {
	c.state = state
	c.editedInFlight = false
	return c.doc.Blocks()
}

func (c *Controller) finishPersist(action string, onFailure State, start time.Time, err error) error {
	elapsed := c.now().Sub(start)

	c.mu.Lock()
	logger := logging.WithPageContext(c.logger, "", "", action)
	outcome := metrics.OutcomeSuccess
	switch {
	case err != nil:
		outcome = metrics.OutcomeFailed
		c.state = onFailure
		if c.editedInFlight {
			c.state = StateDirty
		}
		err = fmt.Errorf("editor: %s page %s: %w", action, c.pageID, err)
		logger.Error("editor."+action+".failed", "error", err, "duration_ms", elapsed.Milliseconds())
	case c.editedInFlight:
		c.state = StateDirty
		logger.Info("editor."+action+".completed", "duration_ms", elapsed.Milliseconds(), "pending_edits", true)
	default:
		c.state = StateIdle
		logger.Info("editor."+action+".completed", "duration_ms", elapsed.Milliseconds())
	}
	c.editedInFlight = false
	c.metrics.ObservePersist(action, outcome, elapsed)
	change := c.changeLocked(ReasonState, "", c.doc.Blocks())
	c.mu.Unlock()
	c.emit(change)
	return err
}

// mutate runs fn under the lock and records its result. fn reports whether
// the document changed; unchanged results record nothing.
func (c *Controller) mutate(reason Reason, blockID string, coalesce bool, fn func() ([]blocks.Block, bool, error)) (bool, error) {
	c.mu.Lock()
	c.pendingCoalesceKey = ""
	list, changed, err := fn()
	if err != nil || !changed {
		c.mu.Unlock()
		return false, err
	}
	change := c.commitLocked(reason, blockID, list, coalesce)
	c.mu.Unlock()
	c.emit(change)
	return true, nil
}

// commitLocked records list in history, or defers it while a batch is open.
// Deferred mutations leave the state alone until the outermost batch commits,
// so a rolled back batch never marks the session dirty. It returns nil when
// listeners should not be notified yet.
func (c *Controller) commitLocked(reason Reason, blockID string, list []blocks.Block, coalesce bool) *Change {
	c.metrics.IncMutation(string(reason))

	if c.batchDepth > 0 {
		c.batchChanged = true
		c.last = lastUpdate{}
		return nil
	}
	c.markDirtyLocked()

	now := c.now()
	key := c.pendingCoalesceKey
	amended := false
	if coalesce && c.window > 0 && key != "" && key == c.last.key && now.Sub(c.last.at) <= c.window {
		amended = c.history.Amend(list)
	}
	if !amended {
		c.history.Record(list)
	}
	if coalesce && key != "" {
		c.last = lastUpdate{key: key, at: now}
	} else {
		c.last = lastUpdate{}
	}
	return c.changeLocked(reason, blockID, list)
}

func (c *Controller) markDirtyLocked() {
	switch c.state {
	case StateSaving, StatePublishing:
		c.editedInFlight = true
	default:
		c.state = StateDirty
	}
}

func (c *Controller) changeLocked(reason Reason, blockID string, list []blocks.Block) *Change {
	if len(c.listeners) == 0 {
		return nil
	}
	return &Change{Reason: reason, BlockID: blockID, Blocks: list, State: c.state}
}

func (c *Controller) emit(change *Change) {
	if change == nil {
		return
	}
	c.mu.Lock()
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, c.listeners[id])
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(Change{
			Reason:  change.Reason,
			BlockID: change.BlockID,
			Blocks:  pbblocks.CloneList(change.Blocks),
			State:   change.State,
		})
	}
}

func coalesceKey(id string, patch map[string]any) string {
	keys := make([]string, 0, len(patch))
	for key := range patch {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return id + "|" + strings.Join(keys, ",")
}
