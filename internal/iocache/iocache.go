// Package iocache is for persisting pinned combinations across runs.
package iocache

import (
	"sync"

	"github.com/huangsam/loadout/internal/contract"
)

// StoreManagerImpl manages the PinnedStore instance.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointer during initialization
	pinned       contract.PinnedStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetPinnedStore returns the pinned combination store.
func (mgr *StoreManagerImpl) GetPinnedStore() contract.PinnedStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.pinned
}
