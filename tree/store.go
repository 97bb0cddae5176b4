package tree

import (
	"context"
	"sync"
)

/*
Store is an interface to manage a store where trees can be saved, retrieved
and deleted by name.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type Store interface {
	// Save takes a name and a subtree and stores
	// the subtree under the name, replacing any tree
	// previously stored with it. It returns an error
	// if the tree cannot be stored.
	Save(ctx context.Context, name string, st Subtree) error
	// Load takes a name and returns the tree stored
	// under it, ErrTreeNotFound if there is none
	// or another error if the store cannot be queried.
	Load(ctx context.Context, name string) (Subtree, error)
	// Delete takes a name and deletes the tree stored
	// under it. It returns an error if the tree exists
	// but the deletion cannot be performed.
	Delete(ctx context.Context, name string) error
	// Close closes the store, implementations should
	// freeing any resources in use as well as ensure
	// any pending changes are applied before returning
	// (unless the context expires). It returns an error
	// if the Close cannot be completed (because of the
	// context or another error)
	Close(ctx context.Context) error
}

type memoryStore struct {
	trees map[string]Subtree
	lock  *sync.RWMutex
}

// NewMemoryStore returns an implementation
// of Store with the process memory space
// as underlying backend. Trees are copied
// when saved and loaded, so changes on them
// never reach the store.
func NewMemoryStore() Store {
	return &memoryStore{
		trees: make(map[string]Subtree),
		lock:  &sync.RWMutex{},
	}
}

func (ms *memoryStore) Save(ctx context.Context, name string, st Subtree) error {
	st = st.Copy()
	return ms.withLock(ctx, func(ctx context.Context) error {
		ms.trees[name] = st
		return nil
	})
}

func (ms *memoryStore) Load(ctx context.Context, name string) (Subtree, error) {
	var st Subtree
	var ok bool
	err := ms.withRLock(ctx, func(ctx context.Context) error {
		st, ok = ms.trees[name]
		return nil
	})
	if err != nil {
		return Subtree{}, err
	}
	if !ok {
		return Subtree{}, ErrTreeNotFound
	}
	return st.Copy(), nil
}

func (ms *memoryStore) Delete(ctx context.Context, name string) error {
	return ms.withLock(ctx, func(ctx context.Context) error {
		delete(ms.trees, name)
		return nil
	})
}

func (ms *memoryStore) Close(ctx context.Context) error {
	return nil
}

func (ms *memoryStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		ms.lock.Lock()
		select {
		case <-ctx.Done():
			ms.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.Unlock()
	}
	return f(ctx)
}

func (ms *memoryStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		ms.lock.RLock()
		select {
		case <-ctx.Done():
			ms.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer ms.lock.RUnlock()
	}
	return f(ctx)
}
