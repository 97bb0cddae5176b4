/*
Package redisstore provides an implementation of tree.Store backed by a
Redis database.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/pbanos/arbor/tree"
	"gopkg.in/redis.v5"
)

/*
EncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
tree/json provides one.
*/
type EncodeDecoder interface {
	Encode(tree.Subtree) ([]byte, error)
	Decode([]byte) (tree.Subtree, error)
}

type redisStore struct {
	rc     *redis.Client
	prefix string
	encdec EncodeDecoder
}

//New builds a tree.Store backed by a redis DB
//that stores every tree under the key made of
//the given prefix and the tree's name
func New(rc *redis.Client, prefix string, encdec EncodeDecoder) tree.Store {
	return &redisStore{rc, prefix, encdec}
}

/*
Open takes a redis URL (redis://[:password@]host:port/db), a prefix and an
EncodeDecoder and returns a tree.Store backed by the redis database at the
URL or an error if the URL cannot be parsed or the database is not reachable.
Closing the store closes the connection.
*/
func Open(url, prefix string, encdec EncodeDecoder) (tree.Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL %q: %v", url, err)
	}
	rc := redis.NewClient(opts)
	err = rc.Ping().Err()
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis at %q: %v", url, err)
	}
	return &closingRedisStore{redisStore{rc, prefix, encdec}}, nil
}

func (rs *redisStore) Save(ctx context.Context, name string, st tree.Subtree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(name)
	data, err := rs.encdec.Encode(st)
	if err != nil {
		return fmt.Errorf("storing tree %q: encoding tree: %v", key, err)
	}
	_, err = rs.rc.Set(key, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing tree %q in redis: %v", key, err)
	}
	return nil
}

func (rs *redisStore) Load(ctx context.Context, name string) (tree.Subtree, error) {
	if err := ctx.Err(); err != nil {
		return tree.Subtree{}, err
	}
	key := rs.keyFor(name)
	data, err := rs.rc.Get(key).Result()
	if err == redis.Nil {
		return tree.Subtree{}, tree.ErrTreeNotFound
	}
	if err != nil {
		return tree.Subtree{}, fmt.Errorf("retrieving tree %q: %v", key, err)
	}
	st, err := rs.encdec.Decode([]byte(data))
	if err != nil {
		return tree.Subtree{}, fmt.Errorf("retrieving tree %q: decoding %q: %v", key, data, err)
	}
	return st, nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(name)
	_, err := rs.rc.Del(key).Result()
	if err != nil {
		return fmt.Errorf("deleting tree %q from redis: %v", key, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return nil
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}

type closingRedisStore struct {
	redisStore
}

func (crs *closingRedisStore) Close(ctx context.Context) error {
	return crs.rc.Close()
}
