package database

import (
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
)

const oracleMigrationsDir = "migrations/oracle"

// oracleMigrator runs the embedded Oracle scripts in version order and
// records applied versions in schema_migrations. golang-migrate ships no
// pure-Go Oracle driver.
type oracleMigrator struct {
	db    *sql.DB
	files fs.FS
}

type migrationFile struct {
	version uint
	name    string
}

func newOracleMigrator(db *sql.DB) *oracleMigrator {
	return &oracleMigrator{db: db, files: migrationsFS}
}

// migrationFiles lists the files with the given direction ("up" or "down")
// in ascending version order.
func (o *oracleMigrator) migrationFiles(direction string) ([]migrationFile, error) {
	entries, err := fs.ReadDir(o.files, oracleMigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	suffix := "." + direction + ".sql"
	var files []migrationFile
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, suffix) {
			continue
		}
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s has no version prefix", name)
		}
		version, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s has invalid version: %w", name, err)
		}
		files = append(files, migrationFile{version: uint(version), name: name})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

func (o *oracleMigrator) ensureVersionTable() error {
	var count int
	err := o.db.QueryRow(`SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`).Scan(&count)
	if err != nil {
		return fmt.Errorf("could not inspect schema_migrations: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := o.db.Exec(`CREATE TABLE schema_migrations (version NUMBER(19) PRIMARY KEY)`); err != nil {
		return fmt.Errorf("could not create schema_migrations: %w", err)
	}
	return nil
}

func (o *oracleMigrator) currentVersion() (uint, error) {
	var version sql.NullInt64
	if err := o.db.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("could not read migration version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return uint(version.Int64), nil
}

func (o *oracleMigrator) exec(file migrationFile) error {
	content, err := fs.ReadFile(o.files, path.Join(oracleMigrationsDir, file.name))
	if err != nil {
		return fmt.Errorf("could not read migration file %s: %w", file.name, err)
	}
	// go-ora rejects a trailing statement terminator.
	stmt := strings.TrimRight(strings.TrimSpace(string(content)), ";")
	if _, err := o.db.Exec(stmt); err != nil {
		return fmt.Errorf("could not execute migration %s: %w", file.name, err)
	}
	return nil
}

func (o *oracleMigrator) Up() error {
	if err := o.ensureVersionTable(); err != nil {
		return err
	}
	current, err := o.currentVersion()
	if err != nil {
		return err
	}
	files, err := o.migrationFiles("up")
	if err != nil {
		return err
	}

	for _, file := range files {
		if file.version <= current {
			continue
		}
		if err := o.exec(file); err != nil {
			return err
		}
		if _, err := o.db.Exec(`INSERT INTO schema_migrations (version) VALUES (:1)`, int64(file.version)); err != nil {
			return fmt.Errorf("could not record migration %s: %w", file.name, err)
		}
	}
	return nil
}

func (o *oracleMigrator) Down(steps int) error {
	if steps < 1 {
		steps = 1
	}
	if err := o.ensureVersionTable(); err != nil {
		return err
	}
	current, err := o.currentVersion()
	if err != nil {
		return err
	}
	files, err := o.migrationFiles("down")
	if err != nil {
		return err
	}

	for i := len(files) - 1; i >= 0 && steps > 0; i-- {
		file := files[i]
		if file.version > current {
			continue
		}
		if err := o.exec(file); err != nil {
			return err
		}
		if _, err := o.db.Exec(`DELETE FROM schema_migrations WHERE version = :1`, int64(file.version)); err != nil {
			return fmt.Errorf("could not unrecord migration %s: %w", file.name, err)
		}
		steps--
	}
	return nil
}

func (o *oracleMigrator) Version() (uint, bool, error) {
	if err := o.ensureVersionTable(); err != nil {
		return 0, false, err
	}
	version, err := o.currentVersion()
	return version, false, err
}

func (o *oracleMigrator) Close() error {
	return o.db.Close()
}
