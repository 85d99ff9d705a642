package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// communityRepo implements CommunityRepo.
type communityRepo struct {
	db *sql.DB
}

func (r *communityRepo) Upsert(ctx context.Context, g StudyGroupRecord) error {
	query, args := builder().
		Insert(groupsTable.Name).
		Columns("id", "name", "topic", "description", "members", "joined", "created_at").
		Values(g.ID, g.Name, g.Topic, g.Description, g.Members, g.Joined, g.CreatedAt).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save study group %s: %w", g.ID, err)
	}
	return nil
}

func (r *communityRepo) Join(ctx context.Context, id string) (bool, error) {
	query, args := builder().
		Update(groupsTable.Name).
		Set("joined", true).
		Add("members", 1).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("joined", false))).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("join study group %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("join study group %s: %w", id, err)
	}
	return n > 0, nil
}

func (r *communityRepo) Groups(ctx context.Context) ([]StudyGroupRecord, error) {
	query, args := builder().
		Select("id", "name", "topic", "description", "members", "joined", "created_at").
		From(entsql.Table(groupsTable.Name)).
		OrderBy(entsql.Desc("created_at"), "name").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query study groups: %w", err)
	}
	defer rows.Close()

	var out []StudyGroupRecord
	for rows.Next() {
		var g StudyGroupRecord
		if err := rows.Scan(&g.ID, &g.Name, &g.Topic, &g.Description, &g.Members, &g.Joined, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan study group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
