package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tracelens/tracelens/core"
	"github.com/tracelens/tracelens/internal/contract"
	"github.com/tracelens/tracelens/internal/snapstore"
	"github.com/tracelens/tracelens/schema"
)

// snapshotMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create
// tables, allowing migrations to run on a fresh database.
func snapshotMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// snapshotMigrateSetupWrapper wraps snapshotMigrateSetup to provide PreRunE for migrate command.
func snapshotMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotMigrateSetup()
}

// snapshotCmd manages stored performance snapshots.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage stored performance snapshots",
	Long: `Persist performance snapshots so later runs can compare against them by name.

Snapshots are stored gzip-compressed in the configured backend.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  save    - Persist a snapshot file under a name
  list    - List stored snapshots
  delete  - Remove a stored snapshot
  status  - Show storage statistics
  export  - Write a stored snapshot back out as JSON
  migrate - Run database schema migrations

Examples:
  # Save a CI baseline
  tracelens snapshot save release-1.4 baseline.json

  # Compare against it later by name
  tracelens compare release-1.4 current.json --stored`,
}

// snapshotSaveCmd persists a snapshot file under a name.
var snapshotSaveCmd = &cobra.Command{
	Use:     "save <name> <snapshot-file>",
	Short:   "Persist a snapshot file under a name",
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteSnapshotSave(cfg, snapshotStore, args[0], args[1]); err != nil {
			contract.LogFatal("Cannot save snapshot", err)
		}
	},
}

// snapshotListCmd lists stored snapshots.
var snapshotListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List stored snapshots",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSnapshotList(cfg, snapshotStore); err != nil {
			contract.LogFatal("Cannot list snapshots", err)
		}
	},
}

// snapshotDeleteCmd removes a stored snapshot.
var snapshotDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Short:   "Remove a stored snapshot",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteSnapshotDelete(cfg, snapshotStore, args[0]); err != nil {
			contract.LogFatal("Cannot delete snapshot", err)
		}
	},
}

// snapshotStatusCmd shows storage statistics.
var snapshotStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show snapshot storage statistics",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSnapshotStatus(cfg, snapshotStore); err != nil {
			contract.LogFatal("Cannot get snapshot status", err)
		}
	},
}

// snapshotExportCmd writes a stored snapshot back out as JSON.
var snapshotExportCmd = &cobra.Command{
	Use:     "export <name>",
	Short:   "Write a stored snapshot back out as JSON",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteSnapshotExport(cfg, snapshotStore, args[0]); err != nil {
			contract.LogFatal("Cannot export snapshot", err)
		}
	},
}

// snapshotMigrateCmd runs database schema migrations for the snapshot store.
var snapshotMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run snapshot store schema migrations",
	Long: `Apply database schema migrations to the snapshot store.

Use --target-version to control the migration target:
  -1 (default) migrates to the latest version
   0 rolls back to the initial (empty) state
   n migrates to the specific version n

Examples:
  # Migrate the default SQLite store to the latest schema
  tracelens snapshot migrate

  # Migrate a PostgreSQL store
  tracelens snapshot migrate --store-backend postgresql --store-db-connect "host=localhost user=app dbname=tracelens"`,
	Args:    cobra.NoArgs,
	PreRunE: snapshotMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := snapstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Cannot migrate snapshot store", err)
		}
	},
}
