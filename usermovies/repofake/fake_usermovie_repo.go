package fakeusermovierepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/movies-auth/usermovies"
)

var _ usermovies.Repo = (*FakeUserMovieRepo)(nil)

type FakeUserMovieRepo struct {
	entries map[string]*usermovies.UserMovie
	lock    sync.RWMutex
}

func NewFakeUserMovieRepo() *FakeUserMovieRepo {
	return &FakeUserMovieRepo{entries: make(map[string]*usermovies.UserMovie)}
}

func (r *FakeUserMovieRepo) Create(_ context.Context, um *usermovies.UserMovie) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if um.ID == "" {
		um.ID = uuid.New().String()
	}
	c := *um
	r.entries[um.ID] = &c
	return nil
}

func (r *FakeUserMovieRepo) Delete(_ context.Context, id, userID string) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	um, ok := r.entries[id]
	if !ok || (userID != "" && um.UserID != userID) {
		return usermovies.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *FakeUserMovieRepo) List(_ context.Context, userID string) ([]*usermovies.UserMovie, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	list := make([]*usermovies.UserMovie, 0)
	for _, v := range r.entries {
		if userID != "" && v.UserID != userID {
			continue
		}
		c := *v
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list, nil
}
