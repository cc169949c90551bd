package testutil

import (
	"testing"

	"github.com/dalemusser/studyhub/internal/app/system/filestore"
	"github.com/dalemusser/waffle/pantry/storage"
)

// NewFileStore returns a filestore.Store backed by local disk under root.
// maxSize <= 0 selects the default ceiling.
func NewFileStore(t *testing.T, root string, maxSize int64) *filestore.Store {
	t.Helper()
	backend, err := storage.NewLocal(storage.LocalConfig{BasePath: root})
	if err != nil {
		t.Fatalf("local storage backend: %v", err)
	}
	return filestore.New(backend, maxSize)
}
