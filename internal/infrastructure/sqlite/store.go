// Package sqlite implementa los puertos de almacenamiento sobre un archivo
// SQLite local: el despliegue por defecto para un solo usuario.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store conexión SQLite compartida por los adaptadores de catálogo y log.
type Store struct {
	db *sql.DB
}

// NewStore abre (o crea) el archivo y asegura el esquema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS catalog_items (
			name TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			bulk_capacity TEXT NOT NULL,
			bulk_unit_label TEXT NOT NULL,
			input_unit_label TEXT NOT NULL,
			sub_unit_label TEXT NOT NULL,
			conversion_factor TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS movements (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			vehicle_id TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT '',
			destination TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			item_name TEXT NOT NULL,
			bulk_qty INTEGER NOT NULL,
			sub_qty TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("init esquema: %w", err)
		}
	}
	return nil
}

// Items devuelve el adaptador del catálogo.
func (s *Store) Items() *ItemRepo { return &ItemRepo{db: s.db} }

// Movements devuelve el adaptador del log.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{db: s.db} }

// Close cierra la conexión.
func (s *Store) Close() error { return s.db.Close() }
