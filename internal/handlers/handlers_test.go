// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"commonroom/internal/models"
	"commonroom/internal/service"
)

// Map-backed store fakes. Mutex-guarded because the service's fan-out
// runs on its own goroutine.

type fakePosts struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*models.Post
}

func (s *fakePosts) Create(p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}

func (s *fakePosts) FindByID(id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakePosts) FindByIDAny(id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakePosts) ListByCommunity(communityID uuid.UUID) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Post
	for _, p := range s.posts {
		if p.CommunityID == communityID && p.DeletedAt == nil {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakePosts) Update(p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}

func (s *fakePosts) bump(id uuid.UUID, fn func(*models.Post)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return fmt.Errorf("post %s not stored", id)
	}
	fn(p)
	return nil
}

func (s *fakePosts) IncrementLike(id uuid.UUID) error {
	return s.bump(id, func(p *models.Post) { p.LikeCount++ })
}
func (s *fakePosts) IncrementHelpful(id uuid.UUID) error {
	return s.bump(id, func(p *models.Post) { p.HelpfulCount++ })
}
func (s *fakePosts) IncrementView(id uuid.UUID) error {
	return s.bump(id, func(p *models.Post) { p.ViewCount++ })
}
func (s *fakePosts) IncrementComments(id uuid.UUID) error {
	return s.bump(id, func(p *models.Post) { p.CommentCount++ })
}
func (s *fakePosts) DecrementComments(id uuid.UUID) error {
	return s.bump(id, func(p *models.Post) {
		if p.CommentCount > 0 {
			p.CommentCount--
		}
	})
}

type fakeComments struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*models.Comment
}

func (s *fakeComments) Create(c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.comments[c.ID] = &cp
	return nil
}

func (s *fakeComments) FindByID(id uuid.UUID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *fakeComments) FindByIDAny(id uuid.UUID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *fakeComments) ListByPost(postID uuid.UUID) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID && c.DeletedAt == nil {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeComments) Update(c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.comments[c.ID] = &cp
	return nil
}

func (s *fakeComments) IncrementLike(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.comments[id]; ok {
		c.LikeCount++
	}
	return nil
}

func (s *fakeComments) IncrementHelpful(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.comments[id]; ok {
		c.HelpfulCount++
	}
	return nil
}

type fakeVersions struct {
	mu       sync.Mutex
	versions []*models.ContentVersion
}

func (s *fakeVersions) Create(v *models.ContentVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *v
	s.versions = append(s.versions, &cp)
	return nil
}

func (s *fakeVersions) ListByRef(ref models.ContentRef) ([]*models.ContentVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.ContentVersion
	for _, v := range s.versions {
		if v.Ref == ref {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeVersions) CountByRef(ref models.ContentRef) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, v := range s.versions {
		if v.Ref == ref {
			count++
		}
	}
	return count, nil
}

type fakeNotifications struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func (s *fakeNotifications) Create(n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.notifications = append(s.notifications, &cp)
	return nil
}

func (s *fakeNotifications) FindByID(id uuid.UUID) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id && n.DeletedAt == nil {
			cp := *n
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeNotifications) ListByUser(userID uuid.UUID, limit int) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID && n.DeletedAt == nil {
			cp := *n
			out = append(out, &cp)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeNotifications) UnreadCount(userID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead && n.DeletedAt == nil {
			count++
		}
	}
	return count, nil
}

func (s *fakeNotifications) MarkRead(id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &at
		}
	}
	return nil
}

func (s *fakeNotifications) MarkAllRead(userID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			n.ReadAt = &at
		}
	}
	return nil
}

func (s *fakeNotifications) Archive(id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id && n.DeletedAt == nil {
			n.DeletedAt = &at
		}
	}
	return nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func (s *fakeUsers) FindByID(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// testAPI wires handlers over a service backed by the fakes, mounted on
// the same route shapes the real router uses.
type testAPI struct {
	router *chi.Mux
	users  *fakeUsers
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	users := &fakeUsers{users: make(map[uuid.UUID]*models.User)}
	svc := service.New(service.Deps{
		Posts:         &fakePosts{posts: make(map[uuid.UUID]*models.Post)},
		Comments:      &fakeComments{comments: make(map[uuid.UUID]*models.Comment)},
		Versions:      &fakeVersions{},
		Notifications: &fakeNotifications{},
		Users:         users,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	posts := NewPosts(svc)
	comments := NewComments(svc)
	notifications := NewNotifications(svc)

	r := chi.NewRouter()
	r.Post("/posts", posts.Create)
	r.Get("/posts/{postID}", posts.Get)
	r.Patch("/posts/{postID}", posts.Update)
	r.Delete("/posts/{postID}", posts.Archive)
	r.Post("/posts/{postID}/restore", posts.Restore)
	r.Post("/posts/{postID}/publish", posts.Publish)
	r.Post("/posts/{postID}/pin", posts.Pin)
	r.Post("/posts/{postID}/like", posts.Like)
	r.Get("/posts/{postID}/versions", posts.Versions)
	r.Get("/communities/{communityID}/posts", posts.ListByCommunity)
	r.Post("/posts/{postID}/comments", comments.Create)
	r.Get("/posts/{postID}/comments", comments.List)
	r.Get("/comments/{commentID}", comments.Get)
	r.Patch("/comments/{commentID}", comments.Update)
	r.Delete("/comments/{commentID}", comments.Archive)
	r.Get("/users/{userID}/notifications", notifications.List)
	r.Get("/users/{userID}/notifications/unread", notifications.UnreadCount)
	r.Post("/notifications/{notificationID}/read", notifications.MarkRead)

	return &testAPI{router: r, users: users}
}

func (a *testAPI) addUser(name string) *models.User {
	a.users.mu.Lock()
	defer a.users.mu.Unlock()
	u := &models.User{
		ID:          uuid.New(),
		Email:       name + "@commonroom.local",
		DisplayName: name,
	}
	a.users.users[u.ID] = u
	return u
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) createPost(t *testing.T, author *models.User) *models.Post {
	t.Helper()

	w := a.do(t, http.MethodPost, "/posts", map[string]any{
		"community_id": uuid.New(),
		"author_id":    author.ID,
		"title":        "A post title",
		"content":      "long enough content here",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create post status = %d: %s", w.Code, w.Body)
	}
	var p models.Post
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	return &p
}
