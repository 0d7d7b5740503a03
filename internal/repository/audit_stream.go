package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgtype"
)

// ErrStopStream is returned by a StreamPayoutAudit callback to end the scan early.
var ErrStopStream = errors.New("stop audit stream")

// StreamPayoutAudit runs ListPayoutAudit and hands rows to fn one at a time
// without buffering the result set. Returning ErrStopStream from fn closes the
// cursor and StreamPayoutAudit returns nil.
func (q *Queries) StreamPayoutAudit(ctx context.Context, payoutID pgtype.UUID, fn func(ListPayoutAuditRow) error) error {
	rows, err := q.db.Query(ctx, listPayoutAudit, payoutID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var i ListPayoutAuditRow
		if err := rows.Scan(
			&i.ID,
			&i.PayoutID,
			&i.Action,
			&i.PerformedBy,
			&i.CreatedAt,
			&i.PerformerEmail,
			&i.PerformerRole,
		); err != nil {
			return err
		}
		if err := fn(i); err != nil {
			if errors.Is(err, ErrStopStream) {
				return nil
			}
			return err
		}
	}
	return rows.Err()
}
