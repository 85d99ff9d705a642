package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// learnerID is the primary key of the single local learner row.
const learnerID = 1

// learnerRepo implements LearnerRepo.
type learnerRepo struct {
	db *sql.DB
}

func (r *learnerRepo) Get(ctx context.Context) (*LearnerRecord, error) {
	query, args := builder().
		Select("name", "bio", "phone", "preferred_language", "created_at", "balance",
			"current_streak", "highest_streak", "last_activity", "bypass_attempts_used").
		From(entsql.Table(learnersTable.Name)).
		Where(entsql.EQ("id", learnerID)).
		Query()

	var (
		rec  LearnerRecord
		last sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.Name, &rec.Bio, &rec.Phone, &rec.PreferredLanguage, &rec.CreatedAt, &rec.Balance,
		&rec.CurrentStreak, &rec.HighestStreak, &last, &rec.BypassAttemptsUsed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query learner: %w", err)
	}
	rec.LastActivity = last.String
	return &rec, nil
}

func (r *learnerRepo) Save(ctx context.Context, rec LearnerRecord) error {
	var last any
	if rec.LastActivity != "" {
		last = rec.LastActivity
	}
	query, args := builder().
		Insert(learnersTable.Name).
		Columns("id", "name", "bio", "phone", "preferred_language", "created_at", "balance",
			"current_streak", "highest_streak", "last_activity", "bypass_attempts_used", "updated_at").
		Values(learnerID, rec.Name, rec.Bio, rec.Phone, rec.PreferredLanguage, rec.CreatedAt, rec.Balance,
			rec.CurrentStreak, rec.HighestStreak, last, rec.BypassAttemptsUsed, time.Now()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save learner: %w", err)
	}
	return nil
}
