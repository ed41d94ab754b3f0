// Package sheetcsv implementa los puertos de almacenamiento sobre archivos
// CSV con el mismo esquema de la planilla original (master.csv y log.csv).
// Sirve para importar datos históricos y para despliegues sin base de datos.
//
// Esquemas aceptados en log.csv, por número de columnas:
//
//	9: id, date, vehicle_id, origin, destination, type, item_name, bulk_qty, sub_qty (formato actual)
//	8: igual, sin id (planilla con ubicaciones)
//	6: date, vehicle_id, type, item_name, bulk_qty, sub_qty (planilla legada, sin ubicaciones)
//
// Las ubicaciones ausentes se normalizan a cadena vacía. Las filas sin id
// reciben un id posicional estable ("m<fila>") para que el borrado por id
// funcione; se persisten tal cual en la siguiente reescritura.
package sheetcsv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

const (
	masterFile = "master.csv"
	logFile    = "log.csv"
)

// Store par de archivos CSV en un directorio.
type Store struct {
	dir string
}

// NewStore construye el store; crea el directorio si no existe. Los archivos
// no se crean hasta la primera escritura: un archivo ausente se reporta como
// tabla no inicializada, no como tabla vacía.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de hojas: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Items devuelve el adaptador del catálogo.
func (s *Store) Items() *ItemRepo { return &ItemRepo{store: s} }

// Movements devuelve el adaptador del log.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{store: s} }

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readRows lee todas las filas de un archivo. ok=false cuando el archivo no
// existe todavía.
func (s *Store) readRows(name string) (rows [][]string, ok bool, err error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("abrir %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // los esquemas legados tienen menos columnas
	rows, err = r.ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("leer %s: %w", name, err)
	}
	return rows, true, nil
}

// writeRows reescribe un archivo completo de forma atómica (temporal +
// rename), que es lo más cerca de "sobrescribir la hoja" que permite un
// sistema de archivos.
func (s *Store) writeRows(name string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("crear temporal de %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir encabezado de %s: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir %s: %w", name, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal de %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("reemplazar %s: %w", name, err)
	}
	return nil
}
