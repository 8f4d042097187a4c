package fakeapikeyrepo

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/jrsteele09/movies-auth/apikeys"
)

var _ apikeys.Repo = (*FakeAPIKeyRepo)(nil)

type FakeAPIKeyRepo struct {
	keys map[string]*apikeys.APIKey
	lock sync.RWMutex
}

func NewFakeAPIKeyRepo(keys ...*apikeys.APIKey) *FakeAPIKeyRepo {
	r := &FakeAPIKeyRepo{keys: make(map[string]*apikeys.APIKey)}
	for _, k := range keys {
		_ = r.Create(context.Background(), k)
	}
	return r
}

func (r *FakeAPIKeyRepo) Create(_ context.Context, key *apikeys.APIKey) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.keys[key.Token] = copyKey(key)
	return nil
}

func (r *FakeAPIKeyRepo) Get(_ context.Context, token string) (*apikeys.APIKey, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	key, ok := r.keys[token]
	if !ok {
		return nil, apikeys.ErrNotFound
	}
	return copyKey(key), nil
}

func (r *FakeAPIKeyRepo) List(_ context.Context) ([]*apikeys.APIKey, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	keys := make([]*apikeys.APIKey, 0, len(r.keys))
	for _, v := range r.keys {
		keys = append(keys, copyKey(v))
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Token < keys[j].Token
	})
	return keys, nil
}

func copyKey(k *apikeys.APIKey) *apikeys.APIKey {
	c := *k
	c.Scopes = slices.Clone(k.Scopes)
	return &c
}
