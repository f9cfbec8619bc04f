package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"threadnest/internal/domain"
)

// MemoryStore is a development/test implementation of the comment and post
// stores backed by maps. It honors the same contracts as the Postgres
// repositories: (nil, nil) lookup misses, order-preserving bulk fetch, and
// reply-list/count mutation as one step under the lock.
type MemoryStore struct {
	mu       sync.RWMutex
	comments map[uuid.UUID]*domain.Comment
	posts    map[uuid.UUID]*domain.Post
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		comments: make(map[uuid.UUID]*domain.Comment),
		posts:    make(map[uuid.UUID]*domain.Post),
	}
}

func (s *MemoryStore) Comments() CommentRepository { return &memoryComments{s} }
func (s *MemoryStore) Posts() PostRepository       { return &memoryPosts{s} }

// PutComment stores a comment record as-is, reply list included. Tests use
// it to assemble arbitrary reply graphs, malformed ones included.
func (s *MemoryStore) PutComment(c domain.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := c
	cp.Replies = append([]uuid.UUID(nil), c.Replies...)
	cp.RepliesCount = len(cp.Replies)
	s.comments[cp.ID] = &cp
}

func (s *MemoryStore) PutPost(p domain.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	cp.Replies = append([]uuid.UUID(nil), p.Replies...)
	cp.RepliesCount = len(cp.Replies)
	s.posts[cp.ID] = &cp
}

// Drop removes a comment record outright, simulating a node vanishing
// between a parent fetch and a child fetch.
func (s *MemoryStore) Drop(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.comments, id)
}

func copyComment(c *domain.Comment) *domain.Comment {
	cp := *c
	cp.Replies = append([]uuid.UUID(nil), c.Replies...)
	return &cp
}

type memoryComments struct {
	s *MemoryStore
}

func (m *memoryComments) Create(_ context.Context, comment *domain.Comment) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	comment.CreatedAt = time.Now().UTC()
	if comment.Replies == nil {
		comment.Replies = []uuid.UUID{}
	}
	m.s.comments[comment.ID] = copyComment(comment)
	return nil
}

func (m *memoryComments) FindByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	c, ok := m.s.comments[id]
	if !ok {
		return nil, nil
	}
	return copyComment(c), nil
}

func (m *memoryComments) FindManyByID(_ context.Context, ids []uuid.UUID) ([]domain.Comment, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	comments := make([]domain.Comment, 0, len(ids))
	for _, id := range ids {
		if c, ok := m.s.comments[id]; ok {
			comments = append(comments, *copyComment(c))
		}
	}
	return comments, nil
}

func (m *memoryComments) UpdateText(_ context.Context, id uuid.UUID, text string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	c, ok := m.s.comments[id]
	if !ok {
		return domain.ErrCommentNotFound
	}
	c.Text = text
	return nil
}

func (m *memoryComments) AppendReply(_ context.Context, parentID, childID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	p, ok := m.s.comments[parentID]
	if !ok {
		return domain.ErrCommentNotFound
	}
	for _, id := range p.Replies {
		if id == childID {
			return nil
		}
	}
	p.Replies = append(p.Replies, childID)
	p.RepliesCount = len(p.Replies)
	return nil
}

func (m *memoryComments) RemoveReply(_ context.Context, parentID, childID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	p, ok := m.s.comments[parentID]
	if !ok {
		return nil
	}
	for i, id := range p.Replies {
		if id == childID {
			p.Replies = append(p.Replies[:i], p.Replies[i+1:]...)
			p.RepliesCount = len(p.Replies)
			return nil
		}
	}
	return nil
}

func (m *memoryComments) MarkDeleted(_ context.Context, ids []uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for _, id := range ids {
		if c, ok := m.s.comments[id]; ok {
			c.IsDeleted = true
		}
	}
	return nil
}

type memoryPosts struct {
	s *MemoryStore
}

func (m *memoryPosts) Create(_ context.Context, post *domain.Post) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	post.CreatedAt = time.Now().UTC()
	if post.Replies == nil {
		post.Replies = []uuid.UUID{}
	}
	cp := *post
	cp.Replies = append([]uuid.UUID(nil), post.Replies...)
	m.s.posts[post.ID] = &cp
	return nil
}

func (m *memoryPosts) FindByID(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	p, ok := m.s.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.Replies = append([]uuid.UUID(nil), p.Replies...)
	return &cp, nil
}

func (m *memoryPosts) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	_, ok := m.s.posts[id]
	return ok, nil
}

func (m *memoryPosts) AppendReply(_ context.Context, postID, childID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	p, ok := m.s.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	for _, id := range p.Replies {
		if id == childID {
			return nil
		}
	}
	p.Replies = append(p.Replies, childID)
	p.RepliesCount = len(p.Replies)
	return nil
}

func (m *memoryPosts) RemoveReply(_ context.Context, postID, childID uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	p, ok := m.s.posts[postID]
	if !ok {
		return nil
	}
	for i, id := range p.Replies {
		if id == childID {
			p.Replies = append(p.Replies[:i], p.Replies[i+1:]...)
			p.RepliesCount = len(p.Replies)
			return nil
		}
	}
	return nil
}
