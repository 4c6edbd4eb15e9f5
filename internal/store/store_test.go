// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"commonroom/internal/database"
	"commonroom/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "commonroom")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "commonroom")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser inserts a throwaway user and registers cleanup for its rows.
func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	email := "store-test-" + uuid.NewString()[:8] + "@commonroom.local"
	u, err := NewUserStore(db).Create(&models.User{
		Email:        email,
		PasswordHash: "x",
		DisplayName:  "Store Test",
	})
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM notifications WHERE user_id = $1 OR actor_id = $1", u.ID)
		db.Exec("DELETE FROM comments WHERE author_id = $1", u.ID)
		db.Exec("DELETE FROM posts WHERE author_id = $1", u.ID)
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// testPost inserts a draft post owned by author.
func testPost(t *testing.T, db *sql.DB, author *models.User) *models.Post {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	p, err := models.NewPost(uuid.New(), uuid.New(), author.ID,
		"Store test post", "store test post content", now)
	if err != nil {
		t.Fatalf("build test post: %v", err)
	}
	if err := NewPostStore(db).Create(p); err != nil {
		t.Fatalf("create test post: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM content_versions WHERE content_id = $1", p.ID)
		db.Exec("DELETE FROM comments WHERE post_id = $1", p.ID)
	})
	return p
}
