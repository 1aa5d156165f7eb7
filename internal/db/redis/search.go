package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/prodex/internal/db"
)

// SearchText runs a BM25-scored text search via FT.SEARCH.
//
// Relevance order is the engine default; a non-empty SortBy overrides it
// with SORTBY. Scores are always requested so lexical hits carry their
// BM25 score regardless of sort order.
func (s *Store) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Predicate == "" {
		return nil, fmt.Errorf("predicate is required")
	}

	args := []string{q.IndexName, q.Predicate}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	args = append(args, "WITHSCORES")

	if q.SortBy != "" {
		dir := "DESC"
		if q.SortAsc {
			dir = "ASC"
		}
		args = append(args, "SORTBY", q.SortBy, dir)
	}

	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseScoredResult(raw)
}

// SearchKNN runs a vector similarity search via FT.SEARCH.
//
// The distance is bound to db.ScoreAlias and converted to a cosine
// similarity in [0,1]; rows come back ordered by ascending distance.
func (s *Store) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if len(q.Vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if q.K <= 0 {
		return nil, fmt.Errorf("k must be positive")
	}

	knnPart := fmt.Sprintf("[KNN %d @%s $BLOB AS %s]", q.K, db.FieldEmbedding, db.ScoreAlias)
	var queryStr string
	if q.Predicate != "" && q.Predicate != "*" {
		queryStr = fmt.Sprintf("(%s)=>%s", q.Predicate, knnPart)
	} else {
		queryStr = fmt.Sprintf("*=>%s", knnPart)
	}

	args := []string{q.IndexName, queryStr}

	returnFields := q.ReturnFields
	if len(returnFields) > 0 {
		withScore := make([]string, 0, len(returnFields)+1)
		withScore = append(withScore, returnFields...)
		withScore = append(withScore, db.ScoreAlias)
		args = append(args, "RETURN", strconv.Itoa(len(withScore)))
		args = append(args, withScore...)
	}

	args = append(args,
		"SORTBY", db.ScoreAlias, "ASC",
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"PARAMS", "2", "BLOB", vectorToBytes(q.Vector),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseKNNResult(raw)
}

// SearchCount returns the number of documents matching the predicate via
// FT.SEARCH with LIMIT 0 0.
func (s *Store) SearchCount(ctx context.Context, index, predicate string) (int64, error) {
	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(index, predicate, "LIMIT", "0", "0", "DIALECT", "2").
		Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return total, nil
}

// --- Result parsing ---

// parseScoredResult handles WITHSCORES replies.
// 3-stride: [total, key1, score1, fields1, key2, score2, fields2, ...]
func parseScoredResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{Total: 0}, nil
	}

	entries := make([]db.SearchEntry, 0, total)
	for i := 1; i+2 < len(raw); i += 3 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		// Score slot is present even under SORTBY; treat unparsable as 0.
		var score float64
		if scoreStr, err := raw[i+1].ToString(); err == nil {
			score, _ = strconv.ParseFloat(scoreStr, 64)
		}

		fields, err := raw[i+2].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Score:  score,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: total, Entries: entries}, nil
}

// parseKNNResult handles KNN replies.
// 2-stride: [total, key1, fields1, key2, fields2, ...]; the distance comes
// back as the db.ScoreAlias field and is converted to similarity.
func parseKNNResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{Total: 0}, nil
	}

	entries := make([]db.SearchEntry, 0, total)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entry := db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		}

		if distStr, ok := entry.Fields[db.ScoreAlias]; ok {
			if d, err := strconv.ParseFloat(distStr, 64); err == nil {
				entry.Score = max(0, 1.0-d) // cosine distance → similarity, clamped to [0,1]
			}
			delete(entry.Fields, db.ScoreAlias)
		}

		entries = append(entries, entry)
	}

	return &db.SearchResult{Total: total, Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// vectorToBytes serializes a []float32 to the little-endian binary string
// FT.SEARCH expects for the $BLOB parameter.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
