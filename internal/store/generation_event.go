package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var generationEventFields = []string{
	"request_id", "age_group", "content_type",
	"topic", "failed", "error_kind", "items", "latency_ms",
}

func (r *eventRepo) AppendGeneration(ctx context.Context, data GenerationEventData) error {
	_, err := r.events.append(ctx, generationEventsTable, generationEventFields,
		data.RequestID, data.AgeGroup, data.ContentType, data.Topic,
		data.Failed, data.ErrorKind, data.Items, data.LatencyMs,
	)
	if err != nil {
		return fmt.Errorf("save generation event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEventRecord, error) {
	b := builder()
	sel := b.Select(withBase(generationEventFields)...).
		From(b.Table(generationEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	applyTimeRange(sel, opts)
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generation events: %w", err)
	}
	defer rows.Close()

	var out []GenerationEventRecord
	for rows.Next() {
		var rec GenerationEventRecord
		err := rows.Scan(
			&rec.ID, &rec.Sequence, &rec.Timestamp,
			&rec.RequestID, &rec.AgeGroup, &rec.ContentType, &rec.Topic,
			&rec.Failed, &rec.ErrorKind, &rec.Items, &rec.LatencyMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan generation event: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
