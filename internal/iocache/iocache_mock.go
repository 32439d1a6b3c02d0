package iocache

import (
	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetPinnedStore implements the StoreManager interface.
func (m *MockStoreManager) GetPinnedStore() contract.PinnedStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.PinnedStore)
	return store
}

// MockPinnedStore is a mock implementation of PinnedStore for testing.
type MockPinnedStore struct {
	mock.Mock
}

var _ contract.PinnedStore = &MockPinnedStore{} // Compile-time check

// List implements the PinnedStore interface.
func (m *MockPinnedStore) List() ([]schema.PinnedCombination, error) {
	args := m.Called()
	pins, _ := args.Get(0).([]schema.PinnedCombination)
	return pins, args.Error(1)
}

// Add implements the PinnedStore interface.
func (m *MockPinnedStore) Add(pin schema.PinnedCombination) error {
	args := m.Called(pin)
	return args.Error(0)
}

// Remove implements the PinnedStore interface.
func (m *MockPinnedStore) Remove(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

// Rename implements the PinnedStore interface.
func (m *MockPinnedStore) Rename(id, name string) (bool, error) {
	args := m.Called(id, name)
	return args.Bool(0), args.Error(1)
}

// Clear implements the PinnedStore interface.
func (m *MockPinnedStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the PinnedStore interface.
func (m *MockPinnedStore) GetStatus() (schema.PinnedStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.PinnedStatus), args.Error(1)
}

// Close implements the PinnedStore interface.
func (m *MockPinnedStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
