package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendPurchase(ctx context.Context, data PurchaseData) (bool, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return false, fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(purchasesTable.Name).
		Columns("payment_id", "sequence", "timestamp", "pack_id", "diamonds", "amount_paise").
		Values(data.PaymentID, seqNum, time.Now(), data.PackID, data.Diamonds, data.AmountPaise).
		OnConflict(
			entsql.ConflictColumns("payment_id"),
			entsql.DoNothing(),
		).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("save purchase event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save purchase event: %w", err)
	}
	return n > 0, nil
}

func (r *eventRepo) QueryPurchases(ctx context.Context, opts QueryOpts) ([]PurchaseRecord, error) {
	sel := builder().
		Select("payment_id", "sequence", "timestamp", "pack_id", "diamonds", "amount_paise").
		From(entsql.Table(purchasesTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	applySeqOpts(sel, opts)
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query purchases: %w", err)
	}
	defer rows.Close()

	var out []PurchaseRecord
	for rows.Next() {
		var p PurchaseRecord
		if err := rows.Scan(&p.PaymentID, &p.Sequence, &p.Timestamp, &p.PackID, &p.Diamonds, &p.AmountPaise); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *eventRepo) AppendJobApplication(ctx context.Context, jobID string) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().
		Insert(applicationsTable.Name).
		Columns("job_id", "sequence", "timestamp").
		Values(jobID, seqNum, time.Now()).
		OnConflict(
			entsql.ConflictColumns("job_id"),
			entsql.DoNothing(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save job application event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryJobApplications(ctx context.Context, opts QueryOpts) ([]JobApplicationRecord, error) {
	sel := builder().
		Select("job_id", "sequence", "timestamp").
		From(entsql.Table(applicationsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	applySeqOpts(sel, opts)
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query job applications: %w", err)
	}
	defer rows.Close()

	var out []JobApplicationRecord
	for rows.Next() {
		var a JobApplicationRecord
		if err := rows.Scan(&a.JobID, &a.Sequence, &a.Timestamp); err != nil {
			return nil, fmt.Errorf("scan job application: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
