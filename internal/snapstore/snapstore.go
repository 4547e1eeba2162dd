// Package snapstore persists named performance snapshots.
package snapstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/tracelens/tracelens/internal/codec"
	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

const tableName = "tracelens_snapshots"

// SnapshotStoreImpl handles durable snapshot storage using various database
// backends. Payloads are stored gzip-compressed.
type SnapshotStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.SnapshotStore = &SnapshotStoreImpl{} // Compile-time check

// NewSnapshotStore initializes and returns a new SnapshotStore based on the
// backend type.
func NewSnapshotStore(backend schema.DatabaseBackend, connStr string) (contract.SnapshotStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &SnapshotStoreImpl{db: nil, backend: backend, connStr: connStr}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection (skip for NoneBackend)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &SnapshotStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
func getCreateTableQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_name VARCHAR(255) PRIMARY KEY,
				payload MEDIUMBLOB NOT NULL,
				method_count INT NOT NULL,
				size_bytes BIGINT NOT NULL,
				created_at BIGINT NOT NULL
			);
		`, tableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_name TEXT PRIMARY KEY,
				payload BYTEA NOT NULL,
				method_count INTEGER NOT NULL,
				size_bytes BIGINT NOT NULL,
				created_at BIGINT NOT NULL
			);
		`, tableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				snapshot_name TEXT PRIMARY KEY,
				payload BLOB NOT NULL,
				method_count INTEGER NOT NULL,
				size_bytes INTEGER NOT NULL,
				created_at INTEGER NOT NULL
			);
		`, tableName)
	}
}

// Save persists a named snapshot, replacing any existing one with the same name.
func (ss *SnapshotStoreImpl) Save(name string, snapshot schema.Snapshot) error {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return fmt.Errorf("snapshot persistence is disabled (backend: none)")
	}
	if name == "" {
		return fmt.Errorf("snapshot name must not be empty")
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("cannot serialize snapshot %q: %w", name, err)
	}
	payload, err := codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("cannot compress snapshot %q: %w", name, err)
	}

	_, err = ss.db.Exec(ss.getUpsertQuery(), name, payload, len(snapshot), int64(len(payload)), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("cannot save snapshot %q: %w", name, err)
	}
	return nil
}

// Load retrieves a snapshot by name.
func (ss *SnapshotStoreImpl) Load(name string) (schema.Snapshot, error) {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, fmt.Errorf("snapshot persistence is disabled (backend: none)")
	}

	query := fmt.Sprintf(`SELECT payload FROM %s WHERE snapshot_name = %s`, tableName, ss.getPlaceholder(1))
	var payload []byte
	if err := ss.db.QueryRow(query, name).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot %q not found", name)
		}
		return nil, fmt.Errorf("cannot load snapshot %q: %w", name, err)
	}

	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("cannot decompress snapshot %q: %w", name, err)
	}
	var snapshot schema.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("cannot deserialize snapshot %q: %w", name, err)
	}
	return snapshot, nil
}

// List returns metadata for all stored snapshots, newest first.
func (ss *SnapshotStoreImpl) List() ([]schema.SnapshotInfo, error) {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT snapshot_name, method_count, size_bytes, created_at FROM %s ORDER BY created_at DESC, snapshot_name ASC`, tableName)
	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("cannot list snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var infos []schema.SnapshotInfo
	for rows.Next() {
		var info schema.SnapshotInfo
		var createdAt int64
		if err := rows.Scan(&info.Name, &info.MethodCount, &info.SizeBytes, &createdAt); err != nil {
			return nil, fmt.Errorf("cannot scan snapshot row: %w", err)
		}
		info.CreatedAt = time.Unix(createdAt, 0)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a stored snapshot by name.
func (ss *SnapshotStoreImpl) Delete(name string) error {
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return fmt.Errorf("snapshot persistence is disabled (backend: none)")
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE snapshot_name = %s`, tableName, ss.getPlaceholder(1))
	res, err := ss.db.Exec(query, name)
	if err != nil {
		return fmt.Errorf("cannot delete snapshot %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("snapshot %q not found", name)
	}
	return nil
}

// GetStatus returns status information about the snapshot store.
func (ss *SnapshotStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:  ss.backend,
		Location: ss.location(),
	}
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return status, nil
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*), COALESCE(SUM(size_bytes), 0) FROM %s`, tableName)
	if err := ss.db.QueryRow(countQuery).Scan(&status.SnapshotCount, &status.TotalBytes); err != nil {
		return status, fmt.Errorf("failed to get store status: %w", err)
	}
	return status, nil
}

// Close closes the underlying DB connection.
func (ss *SnapshotStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// location describes where the store lives without leaking credentials.
func (ss *SnapshotStoreImpl) location() string {
	switch ss.backend {
	case schema.SQLiteBackend:
		if ss.connStr != "" {
			return ss.connStr
		}
		return contract.GetStoreDBFilePath()
	case schema.NoneBackend:
		return ""
	default:
		return string(ss.backend) + " (connection string redacted)"
	}
}

// getPlaceholder returns the parameter placeholder for the backend.
func (ss *SnapshotStoreImpl) getPlaceholder(n int) string {
	switch ss.backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("$%d", n)
	default: // SQLite and MySQL
		return "?"
	}
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ss *SnapshotStoreImpl) getUpsertQuery() string {
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (snapshot_name, payload, method_count, size_bytes, created_at) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE payload = new.payload, method_count = new.method_count, size_bytes = new.size_bytes, created_at = new.created_at`, tableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (snapshot_name, payload, method_count, size_bytes, created_at) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (snapshot_name) DO UPDATE SET payload = EXCLUDED.payload, method_count = EXCLUDED.method_count, size_bytes = EXCLUDED.size_bytes, created_at = EXCLUDED.created_at`, tableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (snapshot_name, payload, method_count, size_bytes, created_at) VALUES (?, ?, ?, ?, ?)`, tableName)
	}
}
