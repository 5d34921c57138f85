package storage

import (
	"path/filepath"
	"testing"

	"github.com/inkwellcms/searchlight/pkg/content"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "content.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("closing store: %v", err)
		}
	})
	return store
}

func storeItem(id, title, typ string) content.Item {
	return content.Item{
		ID:        id,
		Title:     title,
		Type:      typ,
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-02T00:00:00Z",
		Blocks: []content.Block{
			{Kind: content.KindParagraph, Data: content.ParagraphData{Text: "body of " + title}},
		},
	}
}

func TestSaveAndLoadItems(t *testing.T) {
	store := openTestStore(t)

	items := []content.Item{
		storeItem("a", "First", "blog"),
		storeItem("b", "Second", "docs"),
	}
	if err := store.SaveItems(items); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded))
	}
	if loaded[0].ID != "a" || loaded[1].ID != "b" {
		t.Fatalf("insertion order not preserved: %s, %s", loaded[0].ID, loaded[1].ID)
	}
	if len(loaded[0].Blocks) != 1 {
		t.Fatalf("blocks lost in round trip: %+v", loaded[0])
	}
	if loaded[0].Blocks[0].Kind != content.KindParagraph {
		t.Fatalf("block kind lost: %v", loaded[0].Blocks[0].Kind)
	}
}

func TestSaveItemsUpserts(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveItems([]content.Item{storeItem("a", "Original", "blog")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.SaveItems([]content.Item{storeItem("a", "Updated", "blog")}); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 item after upsert, got %d", len(loaded))
	}
	if loaded[0].Title != "Updated" {
		t.Fatalf("title = %q, want Updated", loaded[0].Title)
	}
}

func TestSaveItemsEmptyBatch(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveItems(nil); err != nil {
		t.Fatalf("empty batch must be a no-op, got %v", err)
	}
}

func TestReplaceAll(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveItems([]content.Item{
		storeItem("a", "Old A", "blog"),
		storeItem("b", "Old B", "blog"),
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := store.ReplaceAll([]content.Item{storeItem("c", "New C", "docs")}); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "c" {
		t.Fatalf("expected only the new item, got %+v", loaded)
	}
}

func TestDeleteItem(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveItems([]content.Item{storeItem("a", "Doomed", "blog")}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.DeleteItem("a"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.DeleteItem("never-existed"); err != nil {
		t.Fatalf("deleting unknown id must not error: %v", err)
	}

	loaded, err := store.LoadAll()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(loaded))
	}
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveItems([]content.Item{
		storeItem("a", "One", "blog"),
		storeItem("b", "Two", "blog"),
		storeItem("c", "Three", "docs"),
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalItems != 3 {
		t.Fatalf("total = %d, want 3", stats.TotalItems)
	}
	if stats.ItemsByType["blog"] != 2 || stats.ItemsByType["docs"] != 1 {
		t.Fatalf("per-type counts = %v", stats.ItemsByType)
	}
}
