package store

import (
	"context"
	"embed"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rangeview/server/heatmap"
)

//go:embed schema.sql
var schema embed.FS

// ErrNotFound is returned when a snapshot id does not exist.
var ErrNotFound = errors.New("snapshot not found")

type DB struct{ *pgxpool.Pool }

func Open(dsn string) (*DB, error) {
	p, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close(ctx context.Context)      { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

type Snapshot struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	Reason    *string   `json:"reason"`
	CellCount int       `json:"cell_count"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordSnapshot stores a Ready grid and its cells in one transaction.
func (db *DB) RecordSnapshot(ctx context.Context, sessionID, source string, cells []heatmap.Cell) (int64, error) {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO heatmap_snapshots(session_id, source, status, cell_count)
		VALUES ($1, $2, 'ready', $3)
		RETURNING id
	`, sessionID, source, len(cells)).Scan(&id); err != nil {
		return 0, err
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"heatmap_cells"},
		[]string{"snapshot_id", "ord", "hand", "rank_x", "rank_y", "equity"},
		pgx.CopyFromSlice(len(cells), func(i int) ([]any, error) {
			c := cells[i]
			return []any{id, i, c.Hand, c.RankX.String(), c.RankY.String(), c.Equity}, nil
		}),
	)
	if err != nil {
		return 0, err
	}
	return id, tx.Commit(ctx)
}

// RecordFailure stores the reason of a Failed session.
func (db *DB) RecordFailure(ctx context.Context, sessionID, source, reason string) (int64, error) {
	var id int64
	err := db.QueryRow(ctx, `
		INSERT INTO heatmap_snapshots(session_id, source, status, reason)
		VALUES ($1, $2, 'failed', $3)
		RETURNING id
	`, sessionID, source, reason).Scan(&id)
	return id, err
}

func (db *DB) RecentSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := db.Query(ctx, `
		SELECT id, session_id, source, status, reason, cell_count, created_at
		  FROM heatmap_snapshots
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Snapshot{}
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.SessionID, &s.Source, &s.Status, &s.Reason, &s.CellCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// SnapshotCells returns the stored grid of a snapshot in its original order.
func (db *DB) SnapshotCells(ctx context.Context, snapshotID int64) ([]heatmap.Cell, error) {
	var exists bool
	if err := db.QueryRow(ctx, `SELECT true FROM heatmap_snapshots WHERE id = $1`, snapshotID).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rows, err := db.Query(ctx, `
		SELECT hand, rank_x, rank_y, equity
		  FROM heatmap_cells
		 WHERE snapshot_id = $1
		 ORDER BY ord
	`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []heatmap.Cell{}
	for rows.Next() {
		var c heatmap.Cell
		var rx, ry string
		if err := rows.Scan(&c.Hand, &rx, &ry, &c.Equity); err != nil {
			return nil, err
		}
		if err := c.RankX.UnmarshalText([]byte(rx)); err != nil {
			return nil, err
		}
		if err := c.RankY.UnmarshalText([]byte(ry)); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
