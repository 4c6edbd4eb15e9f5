// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a handful of
// users so posts, comments, and notifications can be exercised immediately.
// It is a no-op when users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// All dev users share the same throwaway password.
	hash, err := bcrypt.GenerateFromPassword([]byte("commonroom"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	users := []struct {
		email, name string
	}{
		{"ann@commonroom.local", "Ann"},
		{"ben@commonroom.local", "Ben"},
		{"carol@commonroom.local", "Carol"},
	}

	for _, u := range users {
		_, err = db.Exec(`
			INSERT INTO users (email, password_hash, display_name)
			VALUES ($1, $2, $3)
		`, u.email, string(hash), u.name)
		if err != nil {
			return fmt.Errorf("seed insert user %s: %w", u.email, err)
		}
	}

	slog.Info("database seeded with development users", "count", len(users))
	return nil
}
