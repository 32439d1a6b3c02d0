package iocache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/loadout/internal/contract"
	"github.com/huangsam/loadout/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// pinnedTable is the name of the table for pinned combinations.
const pinnedTable = "pinned_combinations"

// timeLayout is fixed width so that stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000Z"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// PinnedStoreImpl handles durable storage of pinned combinations using various database backends.
type PinnedStoreImpl struct {
	db         *sql.DB
	tableName  string
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.PinnedStore = &PinnedStoreImpl{} // Compile-time check

// NewPinnedStore initializes and returns a new PinnedStore based on the backend type.
func NewPinnedStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.PinnedStore, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetPinnedDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled pinning
		return &PinnedStoreImpl{
			tableName: tableName,
			backend:   backend,
			connStr:   connStr,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported pinned backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &PinnedStoreImpl{
		db:         db,
		tableName:  tableName,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// validateTableName rejects names that are unsafe to interpolate into SQL.
func validateTableName(name string) error {
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name %q: must start with a letter or underscore and contain only letters, digits and underscores (max 63 chars)", name)
	}
	return nil
}

// quoteTableName quotes the table name for the backend's SQL dialect.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// getCreateTableQuery returns the CREATE TABLE query for the pinned table.
// Column types are shared with the embedded migrations.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	payloadType := "TEXT"
	if backend == schema.MySQLBackend {
		payloadType = "MEDIUMTEXT"
	}
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id VARCHAR(64) NOT NULL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_at VARCHAR(40) NOT NULL,
			archetype_count INTEGER NOT NULL,
			score INTEGER NOT NULL,
			target_achieved INTEGER NOT NULL,
			custom_tier INTEGER NOT NULL,
			payload %s NOT NULL
		);
	`, quoteTableName(tableName, backend), payloadType)
}

// placeholders returns n parameter placeholders for the backend.
func (ps *PinnedStoreImpl) placeholders(n int) []any {
	out := make([]any, n)
	for i := range out {
		if ps.backend == schema.PostgreSQLBackend {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// List returns every pinned combination ordered by creation time. A corrupt
// payload is reported and the store is treated as empty.
func (ps *PinnedStoreImpl) List() ([]schema.PinnedCombination, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return []schema.PinnedCombination{}, nil
	}

	query := fmt.Sprintf("SELECT id, payload FROM %s ORDER BY created_at, id", quoteTableName(ps.tableName, ps.backend))
	rows, err := ps.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pinned combinations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	pins := []schema.PinnedCombination{}
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan pinned combination: %w", err)
		}
		var pin schema.PinnedCombination
		if err := json.Unmarshal([]byte(payload), &pin); err != nil {
			contract.LogWarn(fmt.Sprintf("corrupt pinned combination %s", id), err)
			return []schema.PinnedCombination{}, nil
		}
		pins = append(pins, pin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pinned combinations: %w", err)
	}
	return pins, nil
}

// Add stores a new pinned combination.
func (ps *PinnedStoreImpl) Add(pin schema.PinnedCombination) error {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil
	}

	payload, err := json.Marshal(pin)
	if err != nil {
		return fmt.Errorf("failed to marshal pinned combination: %w", err)
	}

	p := ps.placeholders(8)
	query := fmt.Sprintf(`INSERT INTO %s (id, name, created_at, archetype_count, score, target_achieved, custom_tier, payload)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s)`, append([]any{quoteTableName(ps.tableName, ps.backend)}, p...)...)
	_, err = ps.db.Exec(query,
		pin.ID, pin.Name, formatTime(pin.CreatedAt), pin.ArchetypeCount, pin.Score,
		boolToInt(pin.TargetAchieved), boolToInt(pin.IsCustomTier), string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to insert pinned combination %s: %w", pin.ID, err)
	}
	return nil
}

// Remove deletes a pinned combination and reports whether it existed.
func (ps *PinnedStoreImpl) Remove(id string) (bool, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return false, nil
	}

	p := ps.placeholders(1)
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", quoteTableName(ps.tableName, ps.backend), p[0])
	res, err := ps.db.Exec(query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete pinned combination %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Rename changes the display name and reports whether the id existed.
// The name lives in both its own column and the payload.
func (ps *PinnedStoreImpl) Rename(id, name string) (bool, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return false, nil
	}

	quoted := quoteTableName(ps.tableName, ps.backend)
	p := ps.placeholders(3)

	var payload string
	row := ps.db.QueryRow(fmt.Sprintf("SELECT payload FROM %s WHERE id = %s", quoted, p[0]), id)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read pinned combination %s: %w", id, err)
	}

	var pin schema.PinnedCombination
	if err := json.Unmarshal([]byte(payload), &pin); err != nil {
		return false, fmt.Errorf("failed to decode pinned combination %s: %w", id, err)
	}
	pin.Name = name
	updated, err := json.Marshal(pin)
	if err != nil {
		return false, fmt.Errorf("failed to marshal pinned combination: %w", err)
	}

	query := fmt.Sprintf("UPDATE %s SET name = %s, payload = %s WHERE id = %s", quoted, p[0], p[1], p[2])
	if _, err := ps.db.Exec(query, name, string(updated), id); err != nil {
		return false, fmt.Errorf("failed to rename pinned combination %s: %w", id, err)
	}
	return true, nil
}

// Clear deletes every pinned combination.
func (ps *PinnedStoreImpl) Clear() error {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil
	}
	_, err := ps.db.Exec(fmt.Sprintf("DELETE FROM %s", quoteTableName(ps.tableName, ps.backend)))
	return err
}

// Close closes the underlying DB connection.
func (ps *PinnedStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

// GetStatus returns status information about the pinned store.
func (ps *PinnedStoreImpl) GetStatus() (schema.PinnedStatus, error) {
	status := schema.PinnedStatus{
		Backend:   string(ps.backend),
		Connected: ps.db != nil,
	}

	if ps.backend == schema.NoneBackend || ps.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(ps.tableName, ps.backend)

	row := ps.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName))
	if err := row.Scan(&status.TotalPinned); err != nil {
		return status, fmt.Errorf("failed to get total pinned: %w", err)
	}

	if status.TotalPinned == 0 {
		return status, nil
	}

	var newest, oldest string
	row = ps.db.QueryRow(fmt.Sprintf("SELECT MAX(created_at), MIN(created_at) FROM %s", quotedTableName))
	if err := row.Scan(&newest, &oldest); err != nil {
		return status, fmt.Errorf("failed to get pin times: %w", err)
	}
	var err error
	if status.NewestPin, err = parseTime(newest); err != nil {
		return status, fmt.Errorf("failed to parse newest pin time: %w", err)
	}
	if status.OldestPin, err = parseTime(oldest); err != nil {
		return status, fmt.Errorf("failed to parse oldest pin time: %w", err)
	}

	row = ps.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE target_achieved = 1", quotedTableName))
	if err := row.Scan(&status.Achieving); err != nil {
		return status, fmt.Errorf("failed to count achieving pins: %w", err)
	}

	status.TableSize = ps.tableSize(int64(status.TotalPinned))
	return status, nil
}

// tableSize estimates the on-disk size of the pinned table.
func (ps *PinnedStoreImpl) tableSize(rows int64) int64 {
	estimate := rows * 2000 // Rough estimate
	var size int64
	switch ps.backend {
	case schema.SQLiteBackend:
		row := ps.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&size); err != nil {
			return 0
		}
		return size
	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ps.connStr)
		if err != nil || cfg.DBName == "" {
			return estimate
		}
		row := ps.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, ps.tableName)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
		return size
	case schema.PostgreSQLBackend:
		row := ps.db.QueryRow("SELECT pg_total_relation_size($1)", ps.tableName)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
		return size
	default:
		return estimate
	}
}
