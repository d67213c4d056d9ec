// Package testutil provides shared test helpers for setting up vaults
// and stores.
package testutil

import (
	"testing"

	"github.com/starford/quill/internal/notestore"
	"github.com/starford/quill/internal/storage"
)

// TestVault creates a temporary vault rooted in a per-test directory.
func TestVault(t *testing.T) *storage.Vault {
	t.Helper()
	v, err := storage.NewVault(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return v
}

// TestStore creates a Store over a temporary vault.
func TestStore(t *testing.T, opts ...notestore.Option) *notestore.Store {
	t.Helper()
	return notestore.New(TestVault(t), opts...)
}
