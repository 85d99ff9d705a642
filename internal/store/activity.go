package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// activityRepo implements ActivityRepo.
type activityRepo struct {
	db *sql.DB
}

func (r *activityRepo) Append(ctx context.Context, rec ActivityRecord) error {
	query, args := builder().
		Insert(activityTable.Name).
		Columns("day", "time_spent_seconds", "completed_any_module").
		Values(rec.Day, rec.TimeSpentSeconds, rec.CompletedAnyModule).
		OnConflict(
			entsql.ConflictColumns("day"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add("time_spent_seconds", rec.TimeSpentSeconds)
				if rec.CompletedAnyModule {
					u.SetExcluded("completed_any_module")
				} else {
					u.SetIgnore("completed_any_module")
				}
			}),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append activity %s: %w", rec.Day, err)
	}
	return nil
}

func (r *activityRepo) Since(ctx context.Context, day string) ([]ActivityRecord, error) {
	sel := builder().
		Select("day", "time_spent_seconds", "completed_any_module").
		From(entsql.Table(activityTable.Name)).
		OrderBy("day")
	if day != "" {
		sel.Where(entsql.GTE("day", day))
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []ActivityRecord
	for rows.Next() {
		var rec ActivityRecord
		if err := rows.Scan(&rec.Day, &rec.TimeSpentSeconds, &rec.CompletedAnyModule); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
