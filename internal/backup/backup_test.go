package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauern/snipconv/internal/util"
)

// newTestStore returns a store whose clock advances one minute per call.
func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	root := util.TempDir(t)
	store := NewStore(filepath.Join(root, "backups"))

	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return store, root
}

func TestStore_CreateAndRestore(t *testing.T) {
	store, root := newTestStore(t)
	source := filepath.Join(root, "snips.code-snippets")
	util.WriteFile(t, source, `{"a": {"body": ["x"]}}`)

	meta, err := store.Create(source, "before convert")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !strings.HasSuffix(meta.BackupPath, ".code-snippets") {
		t.Errorf("BackupPath %q should keep the source extension", meta.BackupPath)
	}
	if len(meta.Hash) != 64 {
		t.Errorf("Hash length = %d, want 64 hex chars", len(meta.Hash))
	}
	if !strings.HasSuffix(meta.ID, backupSuffix(meta.SourcePath, []byte(`{"a": {"body": ["x"]}}`))) {
		t.Errorf("ID %q should end with the source and content hash", meta.ID)
	}
	if err := store.Verify(meta.ID); err != nil {
		t.Errorf("Verify failed: %v", err)
	}

	util.WriteFile(t, source, "changed")
	if err := store.Restore(meta.ID, source); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"a": {"body": ["x"]}}` {
		t.Errorf("restored content = %q", data)
	}
}

func TestStore_CreateMissingSource(t *testing.T) {
	store, root := newTestStore(t)
	if _, err := store.Create(filepath.Join(root, "missing.json"), ""); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestStore_VerifyDetectsCorruption(t *testing.T) {
	store, root := newTestStore(t)
	source := filepath.Join(root, "a.json")
	util.WriteFile(t, source, "{}")

	meta, err := store.Create(source, "")
	if err != nil {
		t.Fatal(err)
	}
	util.WriteFile(t, meta.BackupPath, "tampered")

	if err := store.Verify(meta.ID); err == nil {
		t.Error("Verify should fail for tampered backup")
	}
	if err := store.Restore(meta.ID, source); err == nil {
		t.Error("Restore should refuse a tampered backup")
	}
}

func TestStore_ListAndDelete(t *testing.T) {
	store, root := newTestStore(t)
	a := filepath.Join(root, "a.json")
	b := filepath.Join(root, "b.json")
	util.WriteFile(t, a, "1")
	util.WriteFile(t, b, "2")

	first, err := store.Create(a, "")
	if err != nil {
		t.Fatal(err)
	}
	util.WriteFile(t, a, "11")
	second, err := store.Create(a, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(b, ""); err != nil {
		t.Fatal(err)
	}

	all, err := store.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d backups, want 3", len(all))
	}

	forA, err := store.List(a)
	if err != nil {
		t.Fatal(err)
	}
	if len(forA) != 2 || forA[0].ID != second.ID || forA[1].ID != first.ID {
		t.Errorf("List(a) should be newest first, got %+v", forA)
	}

	if err := store.Delete(first.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(first.BackupPath); !os.IsNotExist(err) {
		t.Error("backup file should be removed")
	}
	if _, err := store.Get(first.ID); err == nil {
		t.Error("Get should fail after Delete")
	}
	if err := store.Delete(first.ID); err == nil {
		t.Error("second Delete should fail")
	}
}

func TestStore_CreateSameContentSameSecond(t *testing.T) {
	root := util.TempDir(t)
	store := NewStore(filepath.Join(root, "backups"))
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	source := filepath.Join(root, "a.json")
	util.WriteFile(t, source, "{}")

	first, err := store.Create(source, "")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Create(source, "")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("IDs differ: %q vs %q", first.ID, second.ID)
	}
	all, _ := store.List("")
	if len(all) != 1 {
		t.Errorf("List() returned %d backups, want 1", len(all))
	}
}

func TestStore_CreateSameContentDifferentSources(t *testing.T) {
	root := util.TempDir(t)
	store := NewStore(filepath.Join(root, "backups"))
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	first := filepath.Join(root, "a.code-snippets")
	second := filepath.Join(root, "b.code-snippets")
	util.WriteFile(t, first, "{}")
	util.WriteFile(t, second, "{}")

	a, err := store.Create(first, "")
	util.AssertNoError(t, err)
	b, err := store.Create(second, "")
	util.AssertNoError(t, err)

	if a.ID == b.ID {
		t.Fatalf("both sources got backup ID %q", a.ID)
	}
	for _, tt := range []struct {
		source string
		id     string
	}{
		{first, a.ID},
		{second, b.ID},
	} {
		got, err := store.List(tt.source)
		util.AssertNoError(t, err)
		if len(got) != 1 || got[0].ID != tt.id {
			t.Errorf("List(%s) = %+v, want only %s", tt.source, got, tt.id)
		}
	}
}
