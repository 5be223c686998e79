package application

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/clubhouse/internal/domain/entity"
	repo "github.com/oksasatya/clubhouse/internal/domain/repository"
	"github.com/oksasatya/clubhouse/pkg/helpers"
)

// --- users ---

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	nextID  int
	inserts int
	writes  int

	findErr   error
	insertErr error
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (f *fakeUserRepo) add(u entity.User) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID == "" {
		f.nextID++
		u.ID = "u-" + strconv.Itoa(f.nextID)
	}
	cp := u
	f.byID[u.ID] = &cp
	return &u
}

func (f *fakeUserRepo) get(id string) entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.byID[id]
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
	}
	f.inserts++
	f.nextID++
	u.ID = "u-" + strconv.Itoa(f.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) update(id string, fn func(u *entity.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	f.writes++
	fn(u)
	return nil
}

func (f *fakeUserRepo) SetAdminFlags(_ context.Context, id string, flags entity.RoleFlags) error {
	return f.update(id, func(u *entity.User) {
		u.Admin = flags.Admin
		u.MembershipStatus = flags.MembershipStatus
	})
}

func (f *fakeUserRepo) SetAdminFlag(_ context.Context, id string) error {
	return f.update(id, func(u *entity.User) { u.Admin = true })
}

func (f *fakeUserRepo) SetMembershipFlag(_ context.Context, id string) error {
	return f.update(id, func(u *entity.User) { u.MembershipStatus = true })
}

var _ repo.UserRepository = (*fakeUserRepo)(nil)

// --- sessions ---

type fakeSessionRepo struct {
	mu       sync.Mutex
	bindings map[string]string
	err      error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{bindings: map[string]string{}}
}

func (f *fakeSessionRepo) Get(_ context.Context, token string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", false, f.err
	}
	uid, ok := f.bindings[token]
	return uid, ok, nil
}

func (f *fakeSessionRepo) Bind(_ context.Context, token, userID string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.bindings[token] = userID
	return nil
}

func (f *fakeSessionRepo) Unbind(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	delete(f.bindings, token)
	return nil
}

// --- messages ---

type fakeMessageRepo struct {
	mu      sync.Mutex
	rows    map[string]entity.FeedRow
	authors map[string]*entity.User
	err     error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{rows: map[string]entity.FeedRow{}, authors: map[string]*entity.User{}}
}

func (f *fakeMessageRepo) Create(_ context.Context, m *entity.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	m.ID = "00000000-0000-4000-8000-" + leftPad(len(f.rows)+1)
	m.CreatedAt = time.Now().Add(time.Duration(len(f.rows)) * time.Second)
	row := entity.FeedRow{Message: *m}
	if a, ok := f.authors[m.UserID]; ok {
		row.AuthorSpecialMemberName = a.SpecialMemberName
		row.AuthorNonMemberDisplayName = a.NonMemberDisplayName
	}
	f.rows[m.ID] = row
	return nil
}

func (f *fakeMessageRepo) Feed(context.Context) ([]entity.FeedRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entity.FeedRow, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeMessageRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func leftPad(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 12 {
		s = "0" + s
	}
	return s
}

// --- search index ---

type fakeIndex struct {
	indexed map[string]entity.FeedRow
	deleted []string
	err     error
}

func (f *fakeIndex) Index(_ context.Context, row entity.FeedRow) error {
	if f.err != nil {
		return f.err
	}
	if f.indexed == nil {
		f.indexed = map[string]entity.FeedRow{}
	}
	f.indexed[row.ID] = row
	return nil
}

func (f *fakeIndex) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeIndex) Search(_ context.Context, _ string, _ int) ([]entity.FeedRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]entity.FeedRow, 0, len(f.indexed))
	for _, r := range f.indexed {
		out = append(out, r)
	}
	return out, nil
}

// --- publisher ---

type fakePublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, body)
	return nil
}

func testHasher() *helpers.PasswordHasher {
	return helpers.NewPasswordHasher(bcrypt.MinCost)
}
