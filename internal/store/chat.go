package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendChatMessage(ctx context.Context, data ChatMessageData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(chatTable.Name).
		Columns("sequence", "timestamp", "thread_id", "role", "content").
		Values(seqNum, time.Now(), data.ThreadID, data.Role, data.Content).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save chat message event: %w", err)
	}
	return nil
}

// ChatThread returns the messages of a thread in conversation order. A
// Limit keeps the most recent messages.
func (r *eventRepo) ChatThread(ctx context.Context, threadID string, opts QueryOpts) ([]ChatMessageRecord, error) {
	sel := builder().
		Select("id", "sequence", "timestamp", "thread_id", "role", "content").
		From(entsql.Table(chatTable.Name)).
		Where(entsql.EQ("thread_id", threadID)).
		OrderBy(entsql.Desc("sequence"))
	applySeqOpts(sel, opts)
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chat thread: %w", err)
	}
	defer rows.Close()

	var out []ChatMessageRecord
	for rows.Next() {
		var m ChatMessageRecord
		if err := rows.Scan(&m.ID, &m.Sequence, &m.Timestamp, &m.ThreadID, &m.Role, &m.Content); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// LatestChatThread returns the thread of the most recent message, or "".
func (r *eventRepo) LatestChatThread(ctx context.Context) (string, error) {
	query, args := builder().
		Select("thread_id").
		From(entsql.Table(chatTable.Name)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var id string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query latest chat thread: %w", err)
	}
	return id, nil
}
