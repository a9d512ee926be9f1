package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/fast-note-link-service/internal/cache"
	"github.com/haierkeys/fast-note-link-service/internal/domain"
	"gorm.io/gorm"
)

var errStoreDown = errors.New("store down")

// memNoteRepo keeps notes in insertion order, which matches created_at order
type memNoteRepo struct {
	mu     sync.Mutex
	notes  []*domain.Note
	seq    int
	clock  time.Time
	failOn map[string]bool
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		failOn: map[string]bool{},
	}
}

func (m *memNoteRepo) fail(op string) bool {
	return m.failOn[op]
}

func clone(n *domain.Note) *domain.Note {
	c := *n
	if n.UpdatedAt != nil {
		t := *n.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

func (m *memNoteRepo) GetByID(_ context.Context, id string) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail("get") {
		return nil, errStoreDown
	}
	for _, n := range m.notes {
		if n.ID == id {
			return clone(n), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memNoteRepo) GetByOwnerAndTitle(_ context.Context, ownerID, title string) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail("title") {
		return nil, errStoreDown
	}
	for _, n := range m.notes {
		if n.OwnerID == ownerID && n.Title == title {
			return clone(n), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memNoteRepo) ListByOwner(_ context.Context, ownerID string) ([]*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail("list") {
		return nil, errStoreDown
	}
	out := make([]*domain.Note, 0)
	for _, n := range m.notes {
		if n.OwnerID == ownerID {
			out = append(out, clone(n))
		}
	}
	return out, nil
}

func (m *memNoteRepo) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail("create") {
		return nil, errStoreDown
	}
	m.seq++
	m.clock = m.clock.Add(time.Second)
	n := clone(note)
	if n.ID == "" {
		n.ID = fmt.Sprintf("note-%03d", m.seq)
	}
	n.CreatedAt = m.clock
	n.UpdatedAt = nil
	m.notes = append(m.notes, n)
	return clone(n), nil
}

func (m *memNoteRepo) Update(_ context.Context, note *domain.Note) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail("update") {
		return nil, errStoreDown
	}
	for _, n := range m.notes {
		if n.ID == note.ID && n.OwnerID == note.OwnerID {
			m.clock = m.clock.Add(time.Second)
			now := m.clock
			n.Title = note.Title
			n.Content = note.Content
			n.UpdatedAt = &now
			if m.fail("update-late") {
				// 已写入，但调用方收到超时
				return nil, errStoreDown
			}
			return clone(n), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memNoteRepo) Delete(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail("delete") {
		return errStoreDown
	}
	for i, n := range m.notes {
		if n.ID == id && n.OwnerID == ownerID {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			if m.fail("delete-late") {
				return errStoreDown
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memNoteRepo) count(ownerID string) int {
	notes, _ := m.ListByOwner(context.Background(), ownerID)
	return len(notes)
}

// spyCache wraps the real cache and records loader runs and invalidations
type spyCache struct {
	inner         *cache.NoteListCache
	mu            sync.Mutex
	loads         int
	invalidations int
	failInvalid   bool
}

func newSpyCache() *spyCache {
	return &spyCache{inner: cache.NewNoteListCache(cache.NewMemoryStore(), time.Minute, nil)}
}

func (s *spyCache) GetOrLoad(ctx context.Context, ownerID string, loader cache.Loader) ([]*domain.Note, error) {
	return s.inner.GetOrLoad(ctx, ownerID, func(ctx context.Context) ([]*domain.Note, error) {
		s.mu.Lock()
		s.loads++
		s.mu.Unlock()
		return loader(ctx)
	})
}

func (s *spyCache) Invalidate(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	s.invalidations++
	s.mu.Unlock()
	if s.failInvalid {
		return errors.New("cache down")
	}
	// 与远程缓存一致，已取消的上下文无法失效
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.inner.Invalidate(ctx, ownerID)
}

func (s *spyCache) stats() (loads, invalidations int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads, s.invalidations
}

// memUserRepo 内存用户仓储
type memUserRepo struct {
	mu    sync.Mutex
	users []*domain.User
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return nil, gorm.ErrDuplicatedKey
		}
	}
	c := *user
	c.ID = fmt.Sprintf("user-%d", len(m.users)+1)
	c.CreatedAt = time.Now()
	m.users = append(m.users, &c)
	out := c
	return &out, nil
}

func newNote(ownerID, title, content string) *domain.Note {
	return &domain.Note{OwnerID: ownerID, Title: title, Content: content}
}
