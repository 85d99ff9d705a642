package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// roadmapRepo implements RoadmapRepo.
type roadmapRepo struct {
	db *sql.DB
}

var roadmapSelectColumns = []string{
	"id", "topic", "language", "modules", "further_topics",
	"progress", "bonus_awarded", "active", "created_at",
}

func (r *roadmapRepo) Active(ctx context.Context) (*RoadmapRecord, error) {
	query, args := builder().
		Select(roadmapSelectColumns...).
		From(entsql.Table(roadmapsTable.Name)).
		Where(entsql.EQ("active", true)).
		OrderBy(entsql.Desc("created_at")).
		Limit(1).
		Query()

	rec, err := scanRoadmap(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query active roadmap: %w", err)
	}
	return rec, nil
}

func (r *roadmapRepo) Create(ctx context.Context, rec RoadmapRecord) error {
	modules, err := json.Marshal(rec.Modules)
	if err != nil {
		return fmt.Errorf("marshal modules: %w", err)
	}
	further, err := json.Marshal(nonNil(rec.FurtherTopics))
	if err != nil {
		return fmt.Errorf("marshal further topics: %w", err)
	}
	progress, err := json.Marshal(rec.Progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create roadmap: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().
		Update(roadmapsTable.Name).
		Set("active", false).
		Where(entsql.EQ("active", true)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("deactivate roadmaps: %w", err)
	}

	query, args = builder().
		Insert(roadmapsTable.Name).
		Columns(roadmapSelectColumns...).
		Values(rec.ID, rec.Topic, rec.Language, string(modules), string(further),
			string(progress), rec.BonusAwarded, true, rec.CreatedAt).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert roadmap: %w", err)
	}

	return tx.Commit()
}

func (r *roadmapRepo) SaveProgress(ctx context.Context, id string, progress []bool, bonusAwarded bool) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	query, args := builder().
		Update(roadmapsTable.Name).
		Set("progress", string(data)).
		Set("bonus_awarded", bonusAwarded).
		Where(entsql.EQ("id", id)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("save progress: roadmap %s not found", id)
	}
	return nil
}

func (r *roadmapRepo) List(ctx context.Context, opts QueryOpts) ([]RoadmapRecord, error) {
	sel := builder().
		Select(roadmapSelectColumns...).
		From(entsql.Table(roadmapsTable.Name)).
		OrderBy(entsql.Desc("created_at"))
	applyTimeOpts(sel, opts, "created_at")
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query roadmaps: %w", err)
	}
	defer rows.Close()

	var out []RoadmapRecord
	for rows.Next() {
		rec, err := scanRoadmap(rows)
		if err != nil {
			return nil, fmt.Errorf("scan roadmap: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoadmap(row rowScanner) (*RoadmapRecord, error) {
	var (
		rec                        RoadmapRecord
		modules, further, progress []byte
	)
	err := row.Scan(&rec.ID, &rec.Topic, &rec.Language, &modules, &further,
		&progress, &rec.BonusAwarded, &rec.Active, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(modules, &rec.Modules); err != nil {
		return nil, fmt.Errorf("unmarshal modules: %w", err)
	}
	if err := json.Unmarshal(further, &rec.FurtherTopics); err != nil {
		return nil, fmt.Errorf("unmarshal further topics: %w", err)
	}
	if err := json.Unmarshal(progress, &rec.Progress); err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}
	return &rec, nil
}

// applyTimeOpts applies the Limit/From/To part of opts to a selector.
func applyTimeOpts(sel *entsql.Selector, opts QueryOpts, tsCol string) {
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(tsCol, opts.From))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(tsCol, opts.To))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

// applySeqOpts applies every field of opts to a selector over an event table.
func applySeqOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	applyTimeOpts(sel, opts, "timestamp")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
