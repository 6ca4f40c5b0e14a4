package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

type eventRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

const llmEventColumns = `id, created_at_ms, provider, model, purpose, variant, input_tokens,
	output_tokens, latency_ms, success, error_message, error_kind, request_body, response_body`

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_requests (
			created_at_ms, provider, model, purpose, variant, input_tokens, output_tokens,
			latency_ms, success, error_message, error_kind, request_body, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.now().UTC().UnixMilli(),
		data.Provider,
		data.Model,
		data.Purpose,
		data.Variant,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
		data.ErrorKind,
		data.RequestBody,
		data.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	var (
		where []string
		args  []any
	)
	if opts.Purpose != "" {
		where = append(where, "purpose = ?")
		args = append(args, opts.Purpose)
	}
	if opts.Variant != "" {
		where = append(where, "variant = ?")
		args = append(args, opts.Variant)
	}
	if !opts.From.IsZero() {
		where = append(where, "created_at_ms >= ?")
		args = append(args, opts.From.UTC().UnixMilli())
	}

	q := "SELECT " + llmEventColumns + " FROM llm_requests"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	var events []LLMRequestEvent
	if err := r.db.SelectContext(ctx, &events, q, args...); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	for i := range events {
		events[i].Timestamp = time.UnixMilli(events[i].CreatedAtMs)
	}
	return events, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error) {
	var e LLMRequestEvent
	err := r.db.GetContext(ctx, &e, "SELECT "+llmEventColumns+" FROM llm_requests WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	e.Timestamp = time.UnixMilli(e.CreatedAtMs)
	return &e, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	var out []PurposeUsage
	err := r.db.SelectContext(ctx, &out, `
		SELECT purpose,
		       COUNT(*) AS calls,
		       COALESCE(SUM(input_tokens), 0) AS input_tokens,
		       COALESCE(SUM(output_tokens), 0) AS output_tokens,
		       CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER) AS avg_latency_ms
		FROM llm_requests
		GROUP BY purpose
		ORDER BY calls DESC, purpose`)
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	var out []ModelUsage
	err := r.db.SelectContext(ctx, &out, `
		SELECT model,
		       COUNT(*) AS calls,
		       COALESCE(SUM(input_tokens), 0) AS input_tokens,
		       COALESCE(SUM(output_tokens), 0) AS output_tokens
		FROM llm_requests
		WHERE success = 1
		GROUP BY model
		ORDER BY calls DESC, model`)
	if err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	return out, nil
}
