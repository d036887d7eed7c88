package history

import (
	"reflect"
	"testing"

	pbblocks "github.com/goliatone/go-pagebuilder/blocks"
	"github.com/goliatone/go-pagebuilder/internal/blocks"
)

func hero(id, title string) blocks.Block {
	return pbblocks.New(id, pbblocks.HeroContent{Title: title})
}

func titles(list []blocks.Block) []string {
	out := make([]string, len(list))
	for i, block := range list {
		out[i] = block.Content.(pbblocks.HeroContent).Title
	}
	return out
}

func TestUndoRestoresOpeningStateAfterNMutations(t *testing.T) {
	initial := []blocks.Block{hero("a", "A")}
	m := New(initial)

	current := pbblocks.CloneList(initial)
	for i := 0; i < 5; i++ {
		current = append(pbblocks.CloneList(current), hero(string(rune('b'+i)), "next"))
		m.Record(current)
	}
	for i := 0; i < 5; i++ {
		if _, ok := m.Undo(); !ok {
			t.Fatalf("undo %d failed", i)
		}
	}
	if !reflect.DeepEqual(m.Current(), initial) {
		t.Fatalf("expected opening snapshot, got %+v", m.Current())
	}
	if _, ok := m.Undo(); ok {
		t.Fatalf("expected undo at index 0 to be a no-op")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	m := New(nil)
	m.Record([]blocks.Block{hero("a", "one")})
	m.Record([]blocks.Block{hero("a", "two")})

	before := m.Current()
	if _, ok := m.Undo(); !ok {
		t.Fatalf("expected undo")
	}
	after, ok := m.Redo()
	if !ok {
		t.Fatalf("expected redo")
	}
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("round trip changed state: %v vs %v", titles(before), titles(after))
	}
}

func TestRecordAfterUndoDiscardsRedo(t *testing.T) {
	m := New(nil)
	m.Record([]blocks.Block{hero("a", "one")})
	m.Record([]blocks.Block{hero("a", "two")})
	m.Undo()
	m.Record([]blocks.Block{hero("a", "branch")})

	if m.CanRedo() {
		t.Fatalf("expected redo to be unavailable after a fresh record")
	}
	if _, ok := m.Redo(); ok {
		t.Fatalf("expected redo no-op")
	}
	if got := titles(m.Current()); got[0] != "branch" {
		t.Fatalf("expected branch snapshot, got %v", got)
	}
	if m.Len() != 3 {
		t.Fatalf("expected 3 snapshots, got %d", m.Len())
	}
}

func TestSnapshotsAreDeepCopies(t *testing.T) {
	list := []blocks.Block{pbblocks.New("s", pbblocks.StatsContent{Items: []pbblocks.Stat{{Value: "1", Label: "one"}}})}
	m := New(nil)
	m.Record(list)

	list[0].Content.(pbblocks.StatsContent).Items[0].Value = "mutated"
	got := m.Current()[0].Content.(pbblocks.StatsContent).Items[0].Value
	if got != "1" {
		t.Fatalf("snapshot shares memory with caller: %q", got)
	}

	current := m.Current()
	current[0].Content.(pbblocks.StatsContent).Items[0].Label = "changed"
	if m.Current()[0].Content.(pbblocks.StatsContent).Items[0].Label != "one" {
		t.Fatalf("Current leaked internal snapshot")
	}
}

func TestAmendNeverTouchesOpeningSnapshot(t *testing.T) {
	m := New([]blocks.Block{hero("a", "open")})
	if m.Amend([]blocks.Block{hero("a", "amended")}) {
		t.Fatalf("expected amend at index 0 to be refused")
	}
	m.Record([]blocks.Block{hero("a", "T")})
	if !m.Amend([]blocks.Block{hero("a", "Ti")}) {
		t.Fatalf("expected amend on newest snapshot")
	}
	if m.Len() != 2 {
		t.Fatalf("expected amend to keep snapshot count, got %d", m.Len())
	}
	m.Undo()
	if got := titles(m.Current()); got[0] != "open" {
		t.Fatalf("expected opening title, got %v", got)
	}
	if m.Amend([]blocks.Block{hero("a", "x")}) {
		t.Fatalf("expected amend to be refused away from the newest snapshot")
	}
}

func TestLimitDropsOldestAfterOpening(t *testing.T) {
	m := New([]blocks.Block{hero("a", "open")}, WithLimit(3))
	for _, title := range []string{"1", "2", "3", "4"} {
		m.Record([]blocks.Block{hero("a", title)})
	}
	if m.Len() != 3 {
		t.Fatalf("expected 3 snapshots, got %d", m.Len())
	}
	m.Undo()
	if got := titles(m.Current()); got[0] != "3" {
		t.Fatalf("expected snapshot 3, got %v", got)
	}
	m.Undo()
	if got := titles(m.Current()); got[0] != "open" {
		t.Fatalf("expected opening snapshot to survive trimming, got %v", got)
	}
	if m.CanUndo() {
		t.Fatalf("one undo from snapshot 3 reverts mutations 1 to 3")
	}

	m.Redo()
	if got := titles(m.Current()); got[0] != "3" {
		t.Fatalf("expected redo to skip the trimmed snapshots, got %v", got)
	}
}
