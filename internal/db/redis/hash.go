package redis

import (
	"context"

	"github.com/kailas-cloud/prodex/internal/db"
)

// HGetAll reads all fields of a hash document. Missing keys yield
// db.ErrKeyNotFound (Redis returns an empty map for absent hashes).
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	if len(m) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return m, nil
}
