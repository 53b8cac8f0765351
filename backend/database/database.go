package database

import (
	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/sqlite"
	"os"
	"path/filepath"
	"vincit.fi/imgsmlr/common/logger"
)

type TableExist bool

const (
	TableNotExist TableExist = false
	TableExists   TableExist = true
)

type Database struct {
	session db.Session
	dbPath  string
}

func NewInMemoryDatabase() *Database {
	logger.Info.Printf("Initializing in-memory database")
	var settings = sqlite.ConnectionURL{
		Database: "memory.db",
		Options: map[string]string{
			"mode": "memory",
		},
	}

	session, err := sqlite.Open(settings)
	if err != nil {
		logger.Error.Fatal("Error opening database ", err)
	}

	database := Database{session: session, dbPath: ":memory:"}
	if _, err := database.Migrate(); err != nil {
		logger.Error.Fatal("Error while running migrations ", err)
	}

	return &database
}

func NewDatabase() *Database {
	return &Database{}
}

// InitializeForFile opens the database file, creating it and its directory
// when needed.
func (s *Database) InitializeForFile(file string) error {
	if directory := filepath.Dir(file); directory != "" {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return err
		}
	}

	s.dbPath = file
	logger.Info.Printf("Initializing database %s", s.dbPath)
	var settings = sqlite.ConnectionURL{
		Database: s.dbPath,
	}

	session, err := sqlite.Open(settings)
	if err != nil {
		return err
	}
	s.session = session

	var version map[string]interface{}
	if err := s.session.SQL().Select(db.Func("sqlite_version")).One(&version); err != nil {
		return err
	}
	logger.Info.Printf("Database initialized. Using SQLite version %s", version["sqlite_version()"])

	return nil
}

func (s *Database) Path() string {
	return s.dbPath
}

func (s *Database) Session() db.Session {
	return s.session
}

// Migrate runs all migrations that have not been run yet. The result tells
// whether the database had been migrated before.
func (s *Database) Migrate() (TableExist, error) {
	logger.Info.Printf("Running migrations")
	tablesExists := s.doesTablesExists()

	if !tablesExists {
		logger.Info.Print("Initial databases don't exist. Creating...")
		err := s.session.Tx(func(session db.Session) error {
			_, err := session.SQL().Exec(`
				CREATE TABLE migration (
					id INTEGER PRIMARY KEY
				)
			`)
			return err
		})
		if err != nil {
			return TableNotExist, err
		}
	}

	logger.Info.Print("Start migrations...")
	if err := s.migrate(); err != nil {
		return TableNotExist, err
	}
	logger.Info.Print("All migrations done")

	if tablesExists {
		return TableExists, nil
	} else {
		return TableNotExist, nil
	}
}

func (s *Database) doesTablesExists() bool {
	rows, err := s.session.SQL().Query(`
		SELECT name FROM sqlite_master WHERE type='table' AND name= 'migration';
	`)

	if err != nil {
		return false
	}

	defer rows.Close()
	return rows.Next()
}

func (s *Database) migrate() error {
	return s.session.Tx(func(session db.Session) error {
		migrationStatusesById, err := s.findAlreadyRunMigrations(session)
		if err != nil {
			return err
		}

		for _, migration := range migrations {
			if err := s.runMigration(session, migration, migrationStatusesById); err != nil {
				logger.Error.Print("Failed to run migration ", err)
				return err
			}
		}

		logger.Debug.Printf("Commit migrations")
		return nil
	})
}

func (s *Database) runMigration(session db.Session, migration migration, migrationStatusesById map[MigrationId]bool) error {
	migrationId := migration.id
	logger.Info.Printf("Prepare migration %d: %s", migrationId, migration.description)

	if migrationStatusesById[migrationId] {
		logger.Info.Printf("Migration %d is already done", migrationId)
		return nil
	}

	logger.Debug.Printf("Mark %d as run", migrationId)
	if _, err := session.Collection("migration").Insert(&Migration{Id: migrationId}); err != nil {
		return err
	}

	logger.Info.Printf("Running migration %d", migrationId)
	_, err := session.SQL().Exec(migration.query)
	return err
}

func (s *Database) findAlreadyRunMigrations(session db.Session) (map[MigrationId]bool, error) {
	var runMigrations []Migration
	if err := session.Collection("migration").Find().All(&runMigrations); err != nil {
		return nil, err
	}

	var migrationStatusesById = map[MigrationId]bool{}
	for _, migration := range runMigrations {
		migrationStatusesById[migration.Id] = true
	}
	return migrationStatusesById, nil
}

// DoInTransaction runs fn in a single transaction. Stores created with
// the given session take part in the transaction.
func (s *Database) DoInTransaction(fn func(session db.Session) error) error {
	return s.session.Tx(fn)
}

func (s *Database) Close() {
	logger.Info.Printf("Closing database %s", s.dbPath)
	if s.session != nil {
		if err := s.session.Close(); err != nil {
			logger.Error.Print("Error while trying to close database ", err)
		}
	} else {
		logger.Warn.Printf("No database instance to close")
	}
}
