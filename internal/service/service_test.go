// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"commonroom/internal/models"
	"commonroom/internal/notify"
)

var testNow = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

// In-memory store fakes. They mirror the SQL stores' contracts, including
// the nil-on-miss find semantics and the active-only default visibility.

type memPostStore struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*models.Post
}

func newMemPostStore() *memPostStore {
	return &memPostStore{posts: make(map[uuid.UUID]*models.Post)}
}

func clonePost(p *models.Post) *models.Post {
	cp := *p
	cp.Mentions = append([]string(nil), p.Mentions...)
	return &cp
}

func (s *memPostStore) Create(p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = clonePost(p)
	return nil
}

func (s *memPostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	return clonePost(p), nil
}

func (s *memPostStore) FindByIDAny(id uuid.UUID) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	return clonePost(p), nil
}

func (s *memPostStore) ListByCommunity(communityID uuid.UUID) ([]*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Post
	for _, p := range s.posts {
		if p.CommunityID == communityID && p.DeletedAt == nil {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memPostStore) Update(p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[p.ID]; !ok {
		return fmt.Errorf("post %s not stored", p.ID)
	}
	s.posts[p.ID] = clonePost(p)
	return nil
}

func (s *memPostStore) bump(id uuid.UUID, fn func(*models.Post)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return fmt.Errorf("post %s not stored", id)
	}
	fn(p)
	return nil
}

func (s *memPostStore) IncrementLike(id uuid.UUID) error {
	return s.bump(id, func(p *models.Post) { p.LikeCount++ })
}

func (s *memPostStore) IncrementHelpful(id uuid.UUID) error {
	return s.bump(id, func(p *models.Post) { p.HelpfulCount++ })
}

func (s *memPostStore) IncrementView(id uuid.UUID) error {
	return s.bump(id, func(p *models.Post) { p.ViewCount++ })
}

func (s *memPostStore) IncrementComments(id uuid.UUID) error {
	return s.bump(id, func(p *models.Post) { p.CommentCount++ })
}

func (s *memPostStore) DecrementComments(id uuid.UUID) error {
	return s.bump(id, func(p *models.Post) {
		if p.CommentCount > 0 {
			p.CommentCount--
		}
	})
}

type memCommentStore struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*models.Comment
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{comments: make(map[uuid.UUID]*models.Comment)}
}

func cloneComment(c *models.Comment) *models.Comment {
	cp := *c
	cp.Mentions = append([]string(nil), c.Mentions...)
	return &cp
}

func (s *memCommentStore) Create(c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[c.ID] = cloneComment(c)
	return nil
}

func (s *memCommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok || c.DeletedAt != nil {
		return nil, nil
	}
	return cloneComment(c), nil
}

func (s *memCommentStore) FindByIDAny(id uuid.UUID) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, nil
	}
	return cloneComment(c), nil
}

func (s *memCommentStore) ListByPost(postID uuid.UUID) ([]*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Comment
	for _, c := range s.comments {
		if c.PostID == postID && c.DeletedAt == nil {
			out = append(out, cloneComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *memCommentStore) Update(c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[c.ID]; !ok {
		return fmt.Errorf("comment %s not stored", c.ID)
	}
	s.comments[c.ID] = cloneComment(c)
	return nil
}

func (s *memCommentStore) IncrementLike(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return fmt.Errorf("comment %s not stored", id)
	}
	c.LikeCount++
	return nil
}

func (s *memCommentStore) IncrementHelpful(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.comments[id]
	if !ok {
		return fmt.Errorf("comment %s not stored", id)
	}
	c.HelpfulCount++
	return nil
}

type memVersionStore struct {
	mu       sync.Mutex
	versions []*models.ContentVersion
}

func (s *memVersionStore) Create(v *models.ContentVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, old := range s.versions {
		if old.Ref == v.Ref && old.Version == v.Version {
			return fmt.Errorf("duplicate version %d for %s", v.Version, v.Ref.ID)
		}
	}
	cp := *v
	s.versions = append(s.versions, &cp)
	return nil
}

func (s *memVersionStore) ListByRef(ref models.ContentRef) ([]*models.ContentVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.ContentVersion
	for _, v := range s.versions {
		if v.Ref == ref {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func (s *memVersionStore) CountByRef(ref models.ContentRef) (int, error) {
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

type memNotificationStore struct {
	mu            sync.Mutex
	notifications []*models.Notification
	failCreateFor map[uuid.UUID]bool // recipient ids whose creates error
}

func newMemNotificationStore() *memNotificationStore {
	return &memNotificationStore{failCreateFor: make(map[uuid.UUID]bool)}
}

func (s *memNotificationStore) Create(n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreateFor[n.UserID] {
		return fmt.Errorf("injected create failure for %s", n.UserID)
	}
	cp := *n
	s.notifications = append(s.notifications, &cp)
	return nil
}

func (s *memNotificationStore) FindByID(id uuid.UUID) (*models.Notification, error) {
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

func (s *memNotificationStore) ListByUser(userID uuid.UUID, limit int) ([]*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID && n.DeletedAt == nil {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memNotificationStore) UnreadCount(userID uuid.UUID) (int, error) {
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

func (s *memNotificationStore) MarkRead(id uuid.UUID, at time.Time) error {
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

func (s *memNotificationStore) MarkAllRead(userID uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.UserID == userID && !n.IsRead && n.DeletedAt == nil {
			n.IsRead = true
			n.ReadAt = &at
		}
	}
	return nil
}

func (s *memNotificationStore) Archive(id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id && n.DeletedAt == nil {
			n.DeletedAt = &at
		}
	}
	return nil
}

func (s *memNotificationStore) byType(typ models.NotificationType) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, n := range s.notifications {
		if n.Type == typ {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out
}

func (s *memNotificationStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notifications)
}

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *memUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) add(displayName string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{
		ID:          uuid.New(),
		Email:       displayName + "@commonroom.local",
		DisplayName: displayName,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
	s.users[u.ID] = u
	return u
}

type recordMailer struct {
	mu   sync.Mutex
	sent []notify.Email
	fail bool
}

func (m *recordMailer) Send(e notify.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("injected mailer failure")
	}
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// fixture wires a Service over the fakes with a synchronous spawn and a
// fixed clock, so every fan-out completes before the use case returns.
type fixture struct {
	svc           *Service
	posts         *memPostStore
	comments      *memCommentStore
	versions      *memVersionStore
	notifications *memNotificationStore
	users         *memUserStore
	mailer        *recordMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		posts:         newMemPostStore(),
		comments:      newMemCommentStore(),
		versions:      &memVersionStore{},
		notifications: newMemNotificationStore(),
		users:         newMemUserStore(),
		mailer:        &recordMailer{},
	}
	f.svc = New(Deps{
		Posts:         f.posts,
		Comments:      f.comments,
		Versions:      f.versions,
		Notifications: f.notifications,
		Users:         f.users,
		Mailer:        f.mailer,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	f.svc.now = func() time.Time { return testNow }
	f.svc.spawn = func(fn func()) { fn() }
	return f
}

func (f *fixture) createPost(t *testing.T, author *models.User, content string) *models.Post {
	t.Helper()
	p, err := f.svc.CreatePost(context.Background(), CreatePostInput{
		CommunityID: uuid.New(),
		AuthorID:    author.ID,
		Title:       "A post title",
		Content:     content,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	return p
}

func mentionTag(u *models.User) string {
	return fmt.Sprintf("@[%s:%s]", u.ID, u.DisplayName)
}
