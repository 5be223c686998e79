package handlers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	repo "github.com/oksasatya/clubhouse/internal/domain/repository"
)

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
	err  error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) Insert(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, e := range m.byID {
		if e.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) update(id string, fn func(*entity.User)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	fn(u)
	return nil
}

func (m *memUsers) SetAdminFlags(_ context.Context, id string, f entity.RoleFlags) error {
	return m.update(id, func(u *entity.User) { u.Admin, u.MembershipStatus = f.Admin, f.MembershipStatus })
}

func (m *memUsers) SetAdminFlag(_ context.Context, id string) error {
	return m.update(id, func(u *entity.User) { u.Admin = true })
}

func (m *memUsers) SetMembershipFlag(_ context.Context, id string) error {
	return m.update(id, func(u *entity.User) { u.MembershipStatus = true })
}

type memMessages struct {
	mu    sync.Mutex
	users *memUsers
	rows  []entity.Message
	seq   int
}

func (m *memMessages) Create(_ context.Context, msg *entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Unix(int64(m.seq), 0)
	m.rows = append(m.rows, *msg)
	return nil
}

func (m *memMessages) Feed(ctx context.Context) ([]entity.FeedRow, error) {
	m.mu.Lock()
	rows := append([]entity.Message(nil), m.rows...)
	m.mu.Unlock()
	out := make([]entity.FeedRow, 0, len(rows))
	for _, r := range rows {
		author, err := m.users.FindByID(ctx, r.UserID)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.FeedRow{
			Message:                    r,
			AuthorSpecialMemberName:    author.SpecialMemberName,
			AuthorNonMemberDisplayName: author.NonMemberDisplayName,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memMessages) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

type memAudit struct {
	mu      sync.Mutex
	entries []entity.AuditEntry
}

func (m *memAudit) Insert(_ context.Context, e entity.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memAudit) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}
