// Package storage persiste la sesión de la consola (token, nombre y id de usuario)
// entre reinicios, como lo hacía el localStorage del navegador.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/inventario-console/internal/domain/repository"
)

var _ repository.SessionStorage = (*SQLiteSession)(nil)

// SQLiteSession almacenamiento clave/valor sobre SQLite (driver puro Go).
type SQLiteSession struct {
	db *sql.DB
}

// OpenSQLiteSession abre (o crea) la base en path y asegura la tabla.
func OpenSQLiteSession(path string) (*SQLiteSession, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session_kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("crear tabla session_kv: %w", err)
	}
	return &SQLiteSession{db: db}, nil
}

// Get devuelve el valor y si existe.
func (s *SQLiteSession) Get(key string) (string, bool, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM session_kv WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("leer %s: %w", key, err)
	}
	return v, true, nil
}

// Set inserta o reemplaza el valor.
func (s *SQLiteSession) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO session_kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')`, key, value)
	if err != nil {
		return fmt.Errorf("guardar %s: %w", key, err)
	}
	return nil
}

// Remove borra las claves indicadas; las inexistentes se ignoran.
func (s *SQLiteSession) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	if _, err := s.db.Exec("DELETE FROM session_kv WHERE key IN ("+placeholders+")", args...); err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}

// Close libera la conexión.
func (s *SQLiteSession) Close() error {
	return s.db.Close()
}
