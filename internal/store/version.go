// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"commonroom/internal/models"
)

// versionColumns lists all columns for content_versions SELECTs.
const versionColumns = `id, content_kind, content_id, content, version, created_at`

// VersionStore provides access to content version snapshots. Versions are
// append-only: there is no update, archive, or delete.
type VersionStore struct {
	db *sql.DB
}

// NewVersionStore creates a new VersionStore backed by the given database.
func NewVersionStore(db *sql.DB) *VersionStore {
	return &VersionStore{db: db}
}

// scanVersion scans a single content_versions row into a ContentVersion.
func scanVersion(scanner interface{ Scan(...any) error }) (*models.ContentVersion, error) {
	var v models.ContentVersion
	err := scanner.Scan(
		&v.ID, &v.Ref.Kind, &v.Ref.ID, &v.Content, &v.Version, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new version snapshot. The unique constraint on
// (kind, content id, version) rejects duplicate numbers at the store level.
func (s *VersionStore) Create(v *models.ContentVersion) error {
	_, err := s.db.Exec(`
		INSERT INTO content_versions (id, content_kind, content_id, content, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, v.ID, v.Ref.Kind, v.Ref.ID, v.Content, v.Version, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("create content version: %w", err)
	}
	return nil
}

// FindByID returns a single version by its ID. Returns nil if not found.
func (s *VersionStore) FindByID(id uuid.UUID) (*models.ContentVersion, error) {
	row := s.db.QueryRow(`
		SELECT `+versionColumns+` FROM content_versions WHERE id = $1
	`, id)
	v, err := scanVersion(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find version by id: %w", err)
	}
	return v, nil
}

// ListByRef returns all versions for a content reference, lowest number
// first.
func (s *VersionStore) ListByRef(ref models.ContentRef) ([]*models.ContentVersion, error) {
	rows, err := s.db.Query(`
		SELECT `+versionColumns+` FROM content_versions
		WHERE content_kind = $1 AND content_id = $2
		ORDER BY version ASC
	`, ref.Kind, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var versions []*models.ContentVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// CountByRef returns the number of versions recorded for a content
// reference. The next sequential version number is this count plus one,
// computed inside the same operation that mutates the content.
func (s *VersionStore) CountByRef(ref models.ContentRef) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM content_versions WHERE content_kind = $1 AND content_id = $2
	`, ref.Kind, ref.ID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count versions: %w", err)
	}
	return count, nil
}
