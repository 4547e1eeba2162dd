package snapstore

import (
	"github.com/stretchr/testify/mock"
	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/schema"
)

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// Save implements the SnapshotStore interface.
func (m *MockSnapshotStore) Save(name string, snapshot schema.Snapshot) error {
	args := m.Called(name, snapshot)
	return args.Error(0)
}

// Load implements the SnapshotStore interface.
func (m *MockSnapshotStore) Load(name string) (schema.Snapshot, error) {
	args := m.Called(name)
	snapshot, _ := args.Get(0).(schema.Snapshot)
	return snapshot, args.Error(1)
}

// List implements the SnapshotStore interface.
func (m *MockSnapshotStore) List() ([]schema.SnapshotInfo, error) {
	args := m.Called()
	infos, _ := args.Get(0).([]schema.SnapshotInfo)
	return infos, args.Error(1)
}

// Delete implements the SnapshotStore interface.
func (m *MockSnapshotStore) Delete(name string) error {
	args := m.Called(name)
	return args.Error(0)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	status, _ := args.Get(0).(schema.StoreStatus)
	return status, args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
