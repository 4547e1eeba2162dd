package schema

import "time"

// SnapshotInfo describes one stored snapshot without its payload.
type SnapshotInfo struct {
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	MethodCount int       `json:"methodCount"`
	SizeBytes   int64     `json:"sizeBytes"` // Compressed payload size on disk
}

// StoreStatus holds status information about the snapshot store.
type StoreStatus struct {
	Backend       DatabaseBackend `json:"backend"`
	Location      string          `json:"location"` // File path for sqlite, redacted DSN otherwise
	SnapshotCount int             `json:"snapshotCount"`
	TotalBytes    int64           `json:"totalBytes"`
}
