package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/common"
	"github.com/PMCGrupo4/handwritely-excelizer-73/internal/entity"
)

// CommandRepository persists parsed comandas ("commands"), keyed by the auth
// provider's opaque user identifier. Rows are stored with their items as JSONB
// so edited quantities/prices round-trip without schema churn.
type CommandRepository interface {
	Save(ctx context.Context, r *entity.Receipt) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Receipt, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type commandRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCommandRepository(pool *pgxpool.Pool, logger *slog.Logger) CommandRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &commandRepository{pool: pool, logger: logger}
}

func (r *commandRepository) Save(ctx context.Context, rec *entity.Receipt) error {
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO commands (id, user_id, image_url, items, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET items = EXCLUDED.items`,
		rec.ID, rec.UserID, rec.ImageSource, items, rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to save command", "command_id", rec.ID, "error", err)
		return common.WrapError(err, "save command")
	}
	return nil
}

func (r *commandRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, user_id, image_url, items, created_at FROM commands WHERE id = $1`, id)
	rec, err := scanCommand(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get command", "command_id", id, "error", err)
		return nil, common.WrapError(err, "get command")
	}
	return rec, nil
}

func (r *commandRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Receipt, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, image_url, items, created_at
		 FROM commands WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		r.logger.Error("failed to list commands", "user_id", userID, "error", err)
		return nil, common.WrapError(err, "list commands")
	}
	defer rows.Close()

	var out []*entity.Receipt
	for rows.Next() {
		rec, err := scanCommand(rows)
		if err != nil {
			return nil, common.WrapError(err, "scan command")
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *commandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM commands WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("failed to delete command", "command_id", id, "error", err)
		return common.WrapError(err, "delete command")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	return nil
}

func scanCommand(row pgx.Row) (*entity.Receipt, error) {
	var rec entity.Receipt
	var items []byte
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.ImageSource, &items, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &rec.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &rec, nil
}
