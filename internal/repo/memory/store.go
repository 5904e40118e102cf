// Package memory keeps every repository behind one shared Store: the
// catalog filters need to see the status rows, so splitting the state
// per repository would just force cross references.
//
// Used by the engine tests and for dependency-free local runs. Semantics
// mirror the gorm repositories exactly, except the all-values preference
// short-circuit: this implementation always applies the explicit filter,
// which pins the two code paths to the same results under the shared tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"dogmatch/internal/domain"
)

type statusKey struct{ userID, dogID uint }

type Store struct {
	mu         sync.RWMutex
	dogs       map[uint]domain.Dog
	statuses   map[statusKey]domain.Status
	prefs      map[uint]domain.UserPref // by user id
	users      map[uint]domain.User
	nextDogID  uint
	nextUserID uint
	nextPrefID uint
}

func NewStore() *Store {
	return &Store{
		dogs:       make(map[uint]domain.Dog),
		statuses:   make(map[statusKey]domain.Status),
		prefs:      make(map[uint]domain.UserPref),
		users:      make(map[uint]domain.User),
		nextDogID:  1,
		nextUserID: 1,
		nextPrefID: 1,
	}
}

// ---------- domain.DogRepository ----------

func (s *Store) Create(ctx context.Context, d *domain.Dog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.nextDogID
	s.nextDogID++ // ids are never reused, even after deletes
	s.dogs[d.ID] = *d
	return nil
}

func (s *Store) Update(ctx context.Context, d *domain.Dog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dogs[d.ID]; !ok {
		return domain.ErrNotFound
	}
	s.dogs[d.ID] = *d
	return nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dogs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.dogs, id)
	for k := range s.statuses {
		if k.dogID == id {
			delete(s.statuses, k)
		}
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uint) (*domain.Dog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dogs[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Dog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedDogs(func(domain.Dog) bool { return true }), nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.dogs)), nil
}

func (s *Store) ByOffset(ctx context.Context, offset int) (*domain.Dog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := s.sortedDogs(func(domain.Dog) bool { return true })
	if offset < 0 || offset >= len(all) {
		return nil, nil
	}
	return &all[offset], nil
}

func (s *Store) FirstWithStatus(ctx context.Context, userID uint, status domain.Status, prefs *domain.UserPref) (*domain.Dog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.restricted(userID, status, prefs) {
		return &d, nil
	}
	return nil, nil
}

func (s *Store) NextWithStatus(ctx context.Context, userID uint, status domain.Status, prefs *domain.UserPref, afterID uint) (*domain.Dog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.restricted(userID, status, prefs) {
		if d.ID > afterID {
			return &d, nil
		}
	}
	return nil, nil
}

func (s *Store) Unloved(ctx context.Context) ([]domain.Dog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	likes := make(map[uint]int, len(s.dogs))
	for id := range s.dogs {
		likes[id] = 0
	}
	for k, st := range s.statuses {
		if st == domain.StatusLiked {
			if _, ok := likes[k.dogID]; ok {
				likes[k.dogID]++
			}
		}
	}
	min := -1
	for _, n := range likes {
		if min == -1 || n < min {
			min = n
		}
	}
	return s.sortedDogs(func(d domain.Dog) bool { return likes[d.ID] == min }), nil
}

func (s *Store) restricted(userID uint, status domain.Status, prefs *domain.UserPref) []domain.Dog {
	return s.sortedDogs(func(d domain.Dog) bool {
		st, has := s.statuses[statusKey{userID, d.ID}]
		if status.Stored() {
			if !has || st != status {
				return false
			}
		} else if has {
			return false
		}
		return prefs == nil || prefs.MatchesDog(&d)
	})
}

func (s *Store) sortedDogs(keep func(domain.Dog) bool) []domain.Dog {
	out := make([]domain.Dog, 0, len(s.dogs))
	for _, d := range s.dogs {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---------- domain.UserDogRepository ----------

func (s *Store) Upsert(ctx context.Context, userID, dogID uint, status domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[statusKey{userID, dogID}] = status
	return nil
}

func (s *Store) Remove(ctx context.Context, userID, dogID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.statuses, statusKey{userID, dogID})
	return nil
}

func (s *Store) Get(ctx context.Context, userID, dogID uint) (*domain.UserDog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.statuses[statusKey{userID, dogID}]
	if !ok {
		return nil, nil
	}
	return &domain.UserDog{UserID: userID, DogID: dogID, Status: st}, nil
}

// ---------- domain.UserPrefRepository ----------

func (s *Store) CreatePrefs(ctx context.Context, p *domain.UserPref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextPrefID
	s.nextPrefID++
	s.prefs[p.UserID] = *p
	return nil
}

func (s *Store) GetByUser(ctx context.Context, userID uint) (*domain.UserPref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) UpdatePrefs(ctx context.Context, p *domain.UserPref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.prefs[p.UserID]; !ok {
		return domain.ErrNotFound
	}
	s.prefs[p.UserID] = *p
	return nil
}

// ---------- domain.UserRepository ----------

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return domain.ErrIntegrity
		}
	}
	u.ID = s.nextUserID
	s.nextUserID++
	s.users[u.ID] = *u
	return nil
}

func (s *Store) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

func (s *Store) ListUsers(ctx context.Context, offset, limit int) ([]domain.User, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset < 0 {
		offset = 0 // gorm 的 Offset(-1) 等于不分页，这里对齐
	}
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}
