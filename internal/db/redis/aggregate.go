package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/prodex/internal/db"
)

// Aggregate runs an FT.AGGREGATE pipeline and returns one attribute map
// per group row.
func (s *Store) Aggregate(ctx context.Context, q *db.AggregateQuery) ([]map[string]string, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Predicate == "" {
		return nil, fmt.Errorf("predicate is required")
	}

	args := []string{q.IndexName, q.Predicate}

	if len(q.Load) > 0 {
		args = append(args, "LOAD", strconv.Itoa(len(q.Load)))
		for _, f := range q.Load {
			args = append(args, "@"+f)
		}
	}

	if q.ApplyExpr != "" {
		args = append(args, "APPLY", q.ApplyExpr, "AS", q.ApplyAs)
	}

	// REDUCE requires a GROUPBY clause; GROUPBY 0 groups the whole set.
	if len(q.GroupBy) > 0 || len(q.Reducers) > 0 {
		args = append(args, "GROUPBY", strconv.Itoa(len(q.GroupBy)))
		for _, f := range q.GroupBy {
			args = append(args, "@"+f)
		}
	}
	for _, r := range q.Reducers {
		args = append(args, "REDUCE", r.Function, strconv.Itoa(len(r.Args)))
		for _, a := range r.Args {
			args = append(args, "@"+a)
		}
		args = append(args, "AS", r.As)
	}

	if q.SortBy != "" {
		dir := "DESC"
		if q.SortAsc {
			dir = "ASC"
		}
		args = append(args, "SORTBY", "2", "@"+q.SortBy, dir)
	}

	if q.Limit > 0 {
		args = append(args, "LIMIT", "0", strconv.Itoa(q.Limit))
	}

	args = append(args, "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.AGGREGATE").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpAggregate, Err: err}
	}

	return parseAggregateResult(raw), nil
}

// parseAggregateResult handles RESP2 FT.AGGREGATE replies.
// Shape: [total, row1, row2, ...] where each row is a flat [k, v, k, v, ...]
// attribute array.
func parseAggregateResult(raw []rueidis.RedisMessage) []map[string]string {
	if len(raw) < 2 {
		return nil
	}

	rows := make([]map[string]string, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		pairs, err := raw[i].ToArray()
		if err != nil {
			continue
		}
		rows = append(rows, parseFieldPairs(pairs))
	}
	return rows
}
