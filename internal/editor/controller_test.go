package editor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
	"github.com/goliatone/go-pagebuilder/internal/media"
	"github.com/goliatone/go-pagebuilder/internal/templates"
	"github.com/goliatone/go-pagebuilder/internal/validation"
	"github.com/goliatone/go-pagebuilder/pkg/interfaces"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("b%d", n)
	}
}

type stubStore struct {
	mu        sync.Mutex
	saveErr   error
	publishEr error
	gate      chan struct{}
	entered   chan struct{}
	saved     [][]blocks.Block
	published [][]blocks.Block
}

func (s *stubStore) wait() {
	if s.entered != nil {
		s.entered <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
}

func (s *stubStore) Save(_ context.Context, _ string, list []blocks.Block) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, list)
	return nil
}

func (s *stubStore) Publish(_ context.Context, _ string, list []blocks.Block) error {
	s.wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.publishEr != nil {
		return s.publishEr
	}
	s.published = append(s.published, list)
	return nil
}

func newController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	base := []Option{
		WithRegistry(blocks.NewBuiltinRegistry()),
		WithIDGenerator(sequentialIDs()),
	}
	return New("home", nil, append(base, opts...)...)
}

func heroTitle(t *testing.T, block blocks.Block) string {
	t.Helper()
	hero, ok := block.Content.(pbblocks.HeroContent)
	if !ok {
		t.Fatalf("expected hero content, got %#v", block.Content)
	}
	return hero.Title
}

func TestHeroUndoRedoScenario(t *testing.T) {
	c := newController(t)

	hero, err := c.AddBlock(pbblocks.TypeHero)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	defaultTitle := heroTitle(t, hero)
	if changed, err := c.UpdateBlock(hero.ID, map[string]any{"title": "X"}); !changed || err != nil {
		t.Fatalf("update: %v %v", changed, err)
	}

	if !c.Undo() {
		t.Fatalf("expected first undo")
	}
	list := c.Blocks()
	if len(list) != 1 || heroTitle(t, list[0]) != defaultTitle {
		t.Fatalf("expected hero with default title, got %+v", list)
	}

	if !c.Undo() {
		t.Fatalf("expected second undo")
	}
	if got := c.Blocks(); len(got) != 0 {
		t.Fatalf("expected empty document, got %d blocks", len(got))
	}
	if c.Undo() {
		t.Fatalf("undo past the opening snapshot should be a no-op")
	}

	c.Redo()
	c.Redo()
	list = c.Blocks()
	if len(list) != 1 || heroTitle(t, list[0]) != "X" {
		t.Fatalf("expected hero titled X, got %+v", list)
	}
	if c.Redo() {
		t.Fatalf("redo past the newest snapshot should be a no-op")
	}
}

func TestNUndosRestoreOpeningDocument(t *testing.T) {
	opening := []blocks.Block{pbblocks.New("seed", pbblocks.TextContent{Body: "<p>hi</p>"})}
	c := New("home", opening, WithIDGenerator(sequentialIDs()))

	a, _ := c.AddBlock(pbblocks.TypeStats)
	c.UpdateBlock("seed", map[string]any{"heading": "Intro"})
	c.DuplicateBlock(a.ID)
	c.Reorder(a.ID, 0)
	c.SetVisibility("seed", pbblocks.BreakpointSmall, true)
	c.SetStyles(a.ID, pbblocks.Styles{Padding: "8px"})
	c.DeleteBlock("seed")

	const mutations = 7
	if got := c.HistoryLen(); got != mutations+1 {
		t.Fatalf("expected %d snapshots, got %d", mutations+1, got)
	}
	for i := 0; i < mutations; i++ {
		if !c.Undo() {
			t.Fatalf("undo %d failed", i)
		}
	}
	if !reflect.DeepEqual(c.Blocks(), opening) {
		t.Fatalf("expected opening document, got %+v", c.Blocks())
	}
}

func TestRecordAfterUndoDiscardsRedo(t *testing.T) {
	c := newController(t)
	c.AddBlock(pbblocks.TypeText)
	c.AddBlock(pbblocks.TypeImage)
	c.Undo()
	if !c.CanRedo() {
		t.Fatalf("expected redo to be available")
	}
	c.AddBlock(pbblocks.TypeSpacer)
	if c.CanRedo() {
		t.Fatalf("expected redo branch to be discarded")
	}
}

func TestNoOpMutationsRecordNothing(t *testing.T) {
	c := newController(t)
	block, _ := c.AddBlock(pbblocks.TypeText)
	before := c.HistoryLen()

	if changed, err := c.UpdateBlock("missing", map[string]any{"heading": "x"}); changed || err != nil {
		t.Fatalf("expected silent not-found, got %v %v", changed, err)
	}
	if c.DeleteBlock("missing") || c.Reorder(block.ID, 0) || c.MoveUp(block.ID) || c.MoveDown(block.ID) {
		t.Fatalf("expected no-op calls to report false")
	}
	if _, ok := c.DuplicateBlock("missing"); ok {
		t.Fatalf("expected duplicate of unknown block to fail")
	}
	if c.SetStyles(block.ID, pbblocks.Styles{}) {
		t.Fatalf("expected identical styles to be a no-op")
	}
	if got := c.HistoryLen(); got != before {
		t.Fatalf("expected %d snapshots, got %d", before, got)
	}
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	c := newController(t)
	block, _ := c.AddBlock(pbblocks.TypeHero)
	before := c.HistoryLen()

	_, err := c.UpdateBlock(block.ID, map[string]any{"headline": "x"})
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if c.HistoryLen() != before {
		t.Fatalf("invalid patch must not record a snapshot")
	}
	if _, err := c.AddBlock("carousel"); !errors.Is(err, blocks.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestStateMachine(t *testing.T) {
	store := &stubStore{}
	c := newController(t, WithStore(store))
	ctx := context.Background()

	if c.State() != StateIdle {
		t.Fatalf("expected idle")
	}
	if err := c.Save(ctx); !errors.Is(err, ErrNothingToSave) {
		t.Fatalf("expected ErrNothingToSave, got %v", err)
	}

	c.AddBlock(pbblocks.TypeHero)
	if c.State() != StateDirty {
		t.Fatalf("expected dirty after mutation")
	}
	if err := c.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if c.State() != StateIdle || len(store.saved) != 1 || len(store.saved[0]) != 1 {
		t.Fatalf("expected idle after save with one block persisted")
	}

	if err := c.Publish(ctx); err != nil {
		t.Fatalf("publish clean document: %v", err)
	}
	if c.State() != StateIdle || len(store.published) != 1 {
		t.Fatalf("expected idle after publish")
	}

	c.Undo()
	if c.State() != StateDirty {
		t.Fatalf("undo must mark the document dirty")
	}
}

func TestSaveFailureKeepsDocument(t *testing.T) {
	boom := errors.New("backend down")
	store := &stubStore{saveErr: boom}
	c := newController(t, WithStore(store))
	c.AddBlock(pbblocks.TypeCTA)
	before := c.Blocks()

	err := c.Save(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if c.State() != StateDirty {
		t.Fatalf("expected dirty after failed save, got %s", c.State())
	}
	if !reflect.DeepEqual(c.Blocks(), before) {
		t.Fatalf("document changed by failed save")
	}
}

func TestPublishFailureRestoresPreviousState(t *testing.T) {
	boom := errors.New("publish rejected")
	store := &stubStore{publishEr: boom}
	c := newController(t, WithStore(store))

	if err := c.Publish(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected publish error, got %v", err)
	}
	if c.State() != StateIdle {
		t.Fatalf("expected idle after failed publish from idle, got %s", c.State())
	}

	c.AddBlock(pbblocks.TypeText)
	c.Publish(context.Background())
	if c.State() != StateDirty {
		t.Fatalf("expected dirty after failed publish from dirty, got %s", c.State())
	}
}

func TestSingleSaveInFlight(t *testing.T) {
	store := &stubStore{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	c := newController(t, WithStore(store))
	first, _ := c.AddBlock(pbblocks.TypeHero)

	done := make(chan error, 1)
	go func() { done <- c.Save(context.Background()) }()
	<-store.entered

	if c.State() != StateSaving {
		t.Fatalf("expected saving, got %s", c.State())
	}
	if err := c.Save(context.Background()); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("expected ErrSaveInFlight, got %v", err)
	}
	if err := c.Publish(context.Background()); !errors.Is(err, ErrSaveInFlight) {
		t.Fatalf("expected ErrSaveInFlight for publish, got %v", err)
	}

	// edits keep working while the save is outstanding
	if changed, err := c.UpdateBlock(first.ID, map[string]any{"title": "Later"}); !changed || err != nil {
		t.Fatalf("update during save: %v %v", changed, err)
	}

	close(store.gate)
	if err := <-done; err != nil {
		t.Fatalf("save: %v", err)
	}
	if c.State() != StateDirty {
		t.Fatalf("expected dirty because an edit landed during the save, got %s", c.State())
	}
	if heroTitle(t, store.saved[0][0]) == "Later" {
		t.Fatalf("save must persist the list captured when it started")
	}
}

func TestSaveWithoutStore(t *testing.T) {
	c := newController(t)
	c.AddBlock(pbblocks.TypeText)
	if err := c.Save(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if c.State() != StateDirty {
		t.Fatalf("state must not change without a store")
	}
}

type fakeClock struct{ now time.Time }

func (f *fakeClock) Now() time.Time { return f.now }

func TestUpdateCoalescing(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := newController(t, WithClock(clock.Now), WithCoalesceWindow(time.Second))
	block, _ := c.AddBlock(pbblocks.TypeHero)
	base := c.HistoryLen()

	for _, title := range []string{"G", "Gr", "Gro", "Grow"} {
		clock.now = clock.now.Add(200 * time.Millisecond)
		c.UpdateBlock(block.ID, map[string]any{"title": title})
	}
	if got := c.HistoryLen(); got != base+1 {
		t.Fatalf("expected keystrokes to coalesce into 1 snapshot, got %d", got-base)
	}

	clock.now = clock.now.Add(100 * time.Millisecond)
	c.UpdateBlock(block.ID, map[string]any{"subtitle": "x"})
	if got := c.HistoryLen(); got != base+2 {
		t.Fatalf("different keys must start a new snapshot")
	}

	clock.now = clock.now.Add(5 * time.Second)
	c.UpdateBlock(block.ID, map[string]any{"subtitle": "xy"})
	if got := c.HistoryLen(); got != base+3 {
		t.Fatalf("updates outside the window must start a new snapshot")
	}

	c.Undo()
	c.Undo()
	if got := heroTitle(t, c.Blocks()[0]); got != "Grow" {
		t.Fatalf("expected coalesced title to survive, got %q", got)
	}
	c.Undo()
	if got := heroTitle(t, c.Blocks()[0]); got != heroTitle(t, block) {
		t.Fatalf("expected title before typing, got %q", got)
	}
}

func TestBatch(t *testing.T) {
	c := newController(t)
	base := c.HistoryLen()

	err := c.Batch(func() error {
		c.AddBlock(pbblocks.TypeHero)
		c.AddBlock(pbblocks.TypeText)
		c.AddBlock(pbblocks.TypeCTA)
		return nil
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if c.HistoryLen() != base+1 || len(c.Blocks()) != 3 {
		t.Fatalf("expected one snapshot for three adds")
	}

	boom := errors.New("abort")
	err = c.Batch(func() error {
		c.AddBlock(pbblocks.TypeSpacer)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected batch error, got %v", err)
	}
	if len(c.Blocks()) != 3 || c.HistoryLen() != base+1 {
		t.Fatalf("failed batch must roll back")
	}

	c.Undo()
	if len(c.Blocks()) != 0 {
		t.Fatalf("expected one undo to revert the whole batch")
	}

	fresh := newController(t)
	err = fresh.Batch(func() error {
		fresh.AddBlock(pbblocks.TypeHero)
		fresh.AddBlock(pbblocks.TypeText)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected batch error, got %v", err)
	}
	if fresh.State() != StateIdle {
		t.Fatalf("rolled back batch left state %s", fresh.State())
	}
	if len(fresh.Blocks()) != 0 || fresh.CanUndo() {
		t.Fatalf("rolled back batch must leave no blocks and no history")
	}
}

func TestApplyTemplateTwiceYieldsDisjointBlocks(t *testing.T) {
	c := newController(t, WithCatalog(templates.NewBuiltinCatalog()))

	first, err := c.ApplyTemplateID("stats-band", -1)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	second, err := c.ApplyTemplateID("stats-band", -1)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("unexpected template sizes %d %d", len(first), len(second))
	}

	seen := map[string]bool{}
	for _, block := range append(append([]blocks.Block{}, first...), second...) {
		if seen[block.ID] {
			t.Fatalf("duplicate id %s", block.ID)
		}
		seen[block.ID] = true
	}
	for i := range first {
		if !reflect.DeepEqual(first[i].Content, second[i].Content) {
			t.Fatalf("expected structurally equal content")
		}
	}

	stats := c.Blocks()[0].Content.(pbblocks.StatsContent)
	stats.Items[0].Value = "changed"
	again := c.Blocks()[len(first)].Content.(pbblocks.StatsContent)
	if again.Items[0].Value == "changed" {
		t.Fatalf("template instances share content")
	}

	if c.HistoryLen() != 3 {
		t.Fatalf("expected one snapshot per application, got %d", c.HistoryLen()-1)
	}
	if _, err := c.ApplyTemplateID("missing", 0); !errors.Is(err, templates.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestApplyTemplateAtIndex(t *testing.T) {
	c := newController(t)
	c.AddBlock(pbblocks.TypeHero)
	c.AddBlock(pbblocks.TypeCTA)
	tmpl := templates.Template{ID: "pair", Name: "Pair", Blocks: []templates.Seed{
		templates.SeedOf(pbblocks.SpacerContent{Height: 10}),
		templates.SeedOf(pbblocks.DividerContent{}),
	}}

	inserted := c.ApplyTemplate(tmpl, 1)
	list := c.Blocks()
	if len(inserted) != 2 || list[1].ID != inserted[0].ID || list[2].ID != inserted[1].ID {
		t.Fatalf("expected template at index 1, got %v", pbblocks.IDs(list))
	}
	if list[3].Type != pbblocks.TypeCTA {
		t.Fatalf("expected cta shifted to the end")
	}
}

func TestAttachMedia(t *testing.T) {
	picker := media.NewStaticPicker(interfaces.MediaSelection{URL: "/m/team.jpg", AltText: "Team", Width: 800})
	c := newController(t, WithMedia(picker))
	img, _ := c.AddBlock(pbblocks.TypeImage)
	hero, _ := c.AddBlock(pbblocks.TypeHero)
	base := c.HistoryLen()
	ctx := context.Background()

	if changed, err := c.AttachMedia(ctx, img.ID, ""); !changed || err != nil {
		t.Fatalf("attach image: %v %v", changed, err)
	}
	got, _ := c.Block(img.ID)
	content := got.Content.(pbblocks.ImageContent)
	if content.URL != "/m/team.jpg" || content.AltText != "Team" || content.Width != 800 {
		t.Fatalf("unexpected image content %+v", content)
	}

	if changed, err := c.AttachMedia(ctx, hero.ID, ""); !changed || err != nil {
		t.Fatalf("attach background: %v %v", changed, err)
	}
	got, _ = c.Block(hero.ID)
	bg := got.Content.(pbblocks.HeroContent).Background
	if bg.BackgroundType != pbblocks.BackgroundImage || bg.BackgroundImage != "/m/team.jpg" {
		t.Fatalf("unexpected background %+v", bg)
	}
	if c.HistoryLen() != base+2 {
		t.Fatalf("expected one snapshot per attachment")
	}

	picker.Set(interfaces.MediaSelection{})
	if changed, err := c.AttachMedia(ctx, img.ID, ""); changed || err != nil {
		t.Fatalf("cancelled pick must be a silent no-op: %v %v", changed, err)
	}
	if c.HistoryLen() != base+2 {
		t.Fatalf("cancelled pick recorded a snapshot")
	}
	if req := picker.Requests()[0]; req.PageID != "home" || req.BlockID != img.ID || req.Field != "url" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestAttachMediaFailure(t *testing.T) {
	boom := errors.New("picker crashed")
	picker := media.Func(func(context.Context, interfaces.MediaRequest) (interfaces.MediaSelection, bool, error) {
		return interfaces.MediaSelection{}, false, boom
	})
	c := newController(t, WithMedia(picker))
	img, _ := c.AddBlock(pbblocks.TypeImage)
	before := c.Blocks()

	if _, err := c.AttachMedia(context.Background(), img.ID, ""); !errors.Is(err, boom) {
		t.Fatalf("expected picker error, got %v", err)
	}
	if !reflect.DeepEqual(c.Blocks(), before) {
		t.Fatalf("failed pick changed the document")
	}

	bare := newController(t)
	if _, err := bare.AttachMedia(context.Background(), "x", ""); !errors.Is(err, ErrMediaUnavailable) {
		t.Fatalf("expected ErrMediaUnavailable, got %v", err)
	}
}

func TestSubscribe(t *testing.T) {
	c := newController(t)
	var changes []Change
	unsubscribe := c.Subscribe(func(change Change) {
		changes = append(changes, change)
	})

	block, _ := c.AddBlock(pbblocks.TypeText)
	c.UpdateBlock(block.ID, map[string]any{"heading": "Hi"})
	c.Undo()

	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d", len(changes))
	}
	reasons := []Reason{changes[0].Reason, changes[1].Reason, changes[2].Reason}
	if !reflect.DeepEqual(reasons, []Reason{ReasonAdd, ReasonUpdate, ReasonUndo}) {
		t.Fatalf("unexpected reasons %v", reasons)
	}
	if changes[1].BlockID != block.ID || changes[1].State != StateDirty {
		t.Fatalf("unexpected change %+v", changes[1])
	}

	changes[0].Blocks[0].ID = "mutated"
	if c.Blocks()[0].ID != block.ID {
		t.Fatalf("listener copy aliases the document")
	}

	unsubscribe()
	c.AddBlock(pbblocks.TypeCTA)
	if len(changes) != 3 {
		t.Fatalf("expected no changes after unsubscribe")
	}
}

func TestPreview(t *testing.T) {
	c := newController(t)
	block, _ := c.AddBlock(pbblocks.TypeStats)
	c.SetVisibility(block.ID, pbblocks.BreakpointSmall, true)

	if out := c.Preview(pbblocks.BreakpointLarge); !strings.Contains(out, "block-"+block.ID) {
		t.Fatalf("expected block in large preview")
	}
	if out := c.PreviewFragment(pbblocks.BreakpointSmall); strings.Contains(out, "block-"+block.ID) {
		t.Fatalf("hidden block rendered in small preview")
	}
	if _, err := c.SetVisibility(block.ID, "watch", true); !errors.Is(err, blocks.ErrUnknownBreakpoint) {
		t.Fatalf("expected ErrUnknownBreakpoint, got %v", err)
	}
}

func TestAddAfterSelection(t *testing.T) {
	c := newController(t, WithAddAfterSelection(true))
	first, _ := c.AddBlock(pbblocks.TypeHero)
	c.AddBlock(pbblocks.TypeCTA)
	c.Select(first.ID)

	added, _ := c.AddBlock(pbblocks.TypeText)
	if ids := pbblocks.IDs(c.Blocks()); ids[1] != added.ID {
		t.Fatalf("expected insertion after selection, got %v", ids)
	}
}
