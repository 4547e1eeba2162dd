//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/tracelens/tracelens/internal/snapstore"
	"github.com/tracelens/tracelens/schema"
)

func sampleSnapshot() schema.Snapshot {
	return schema.Snapshot{
		"OrderService.Process": {AverageDuration: 100.5, Executions: []float64{90, 111}},
		"Cache.Get":            {AverageDuration: 2},
	}
}

// exerciseStore runs a save/load/list/delete round trip against a live backend.
func exerciseStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	store, err := snapstore.NewSnapshotStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Save("it-base", sampleSnapshot()))

	loaded, err := store.Load("it-base")
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), loaded)

	infos, err := store.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "it-base", infos[0].Name)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.SnapshotCount)

	require.NoError(t, store.Delete("it-base"))
	_, err = store.Load("it-base")
	require.Error(t, err)
}

// TestSnapshotStoreWithMySQL tests the snapshot store against a MySQL container.
func TestSnapshotStoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "tracelens",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/tracelens?parseTime=true", host, port.Port())

	require.NoError(t, snapstore.MigrateStore(schema.MySQLBackend, connStr, -1))
	exerciseStore(t, schema.MySQLBackend, connStr)
}

// TestSnapshotStoreWithPostgres tests the snapshot store against a PostgreSQL container.
func TestSnapshotStoreWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	require.NoError(t, snapstore.MigrateStore(schema.PostgreSQLBackend, connStr, -1))
	exerciseStore(t, schema.PostgreSQLBackend, connStr)
}
