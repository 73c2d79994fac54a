package task

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ================== Error กลาง ==================

var ErrNotFound = errors.New("task not found")

// ใช้ร่วมกับ DELETE เพื่อตรวจว่าโดนลบจริงกี่แถว
func checkRowsAffectedOne(cmdTag pgconn.CommandTag) error {
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ================== Interface ==================

// TaskRepository owns the task collection and the identifier counter.
// List returns tasks in insertion order and never returns a nil slice.
type TaskRepository interface {
	Create(ctx context.Context, title, description string) (*Task, error)
	List(ctx context.Context) ([]Task, error)
	GetByID(ctx context.Context, id string) (*Task, error)
	Update(ctx context.Context, id string, p Patch) (*Task, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// ================== Postgres ==================

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS tasks (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'Not Started',
		created_at  TIMESTAMPTZ NOT NULL
	)
`

type PostgresRepo struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates the tasks table if needed.
func NewPostgresRepository(ctx context.Context, db *pgxpool.Pool) (TaskRepository, error) {
	if _, err := db.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("create tasks table: %w", err)
	}
	return &PostgresRepo{db: db}, nil
}

// ids in postgres are BIGSERIAL; anything that isn't a positive integer can't match a row
func parseSerialID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func scanTask(row pgx.Row) (*Task, error) {
	var (
		t  Task
		id int64
	)
	if err := row.Scan(&id, &t.Title, &t.Description, &t.Status, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t.ID = strconv.FormatInt(id, 10)
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func (r *PostgresRepo) Create(ctx context.Context, title, description string) (*Task, error) {
	query := `
		INSERT INTO tasks (title, description, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, status, created_at
	`
	t := newTask(title, description)
	return scanTask(r.db.QueryRow(ctx, query, t.Title, t.Description, t.Status, t.CreatedAt))
}

func (r *PostgresRepo) List(ctx context.Context) ([]Task, error) {
	query := `
		SELECT id, title, description, status, created_at
		FROM tasks
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (*Task, error) {
	n, ok := parseSerialID(id)
	if !ok {
		return nil, ErrNotFound
	}

	query := `
		SELECT id, title, description, status, created_at
		FROM tasks
		WHERE id = $1
	`
	return scanTask(r.db.QueryRow(ctx, query, n))
}

func (r *PostgresRepo) Update(ctx context.Context, id string, p Patch) (*Task, error) {
	n, ok := parseSerialID(id)
	if !ok {
		return nil, ErrNotFound
	}

	// COALESCE: ถ้า patch ส่ง NULL มา ให้ใช้ค่าเดิม
	query := `
		UPDATE tasks
		SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			status = COALESCE($3, status)
		WHERE id = $4
		RETURNING id, title, description, status, created_at
	`
	return scanTask(r.db.QueryRow(ctx, query, p.Title, p.Description, p.Status, n))
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	n, ok := parseSerialID(id)
	if !ok {
		return ErrNotFound
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, n)
	if err != nil {
		return err
	}

	return checkRowsAffectedOne(cmdTag)
}

// Clear also restarts the id sequence so the next task is "1" again.
func (r *PostgresRepo) Clear(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `TRUNCATE tasks RESTART IDENTITY`)
	return err
}
