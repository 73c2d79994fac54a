package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteTask is the row model; ID is INTEGER PRIMARY KEY AUTOINCREMENT so
// deleted ids are never handed out again.
type sqliteTask struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"not null"`
	Description string `gorm:"not null;default:''"`
	Status      string `gorm:"not null;default:'Not Started'"`
	CreatedAt   time.Time
}

func (sqliteTask) TableName() string { return "tasks" }

func (row sqliteTask) toTask() Task {
	return Task{
		ID:          strconv.FormatUint(uint64(row.ID), 10),
		Title:       row.Title,
		Description: row.Description,
		Status:      Status(row.Status),
		CreatedAt:   row.CreatedAt.UTC(),
	}
}

type SQLiteRepo struct {
	db *gorm.DB
}

// gormLogWriter routes gorm's Printf-style logger into slog.
type gormLogWriter struct {
	l *slog.Logger
}

func (w gormLogWriter) Printf(format string, args ...any) {
	w.l.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)), "component", "gorm")
}

// OpenSQLite opens (creating if needed) the database file and migrates the tasks table.
func OpenSQLite(dsn string, l *slog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		dsn = filepath.Join("data", "tasks.db")
	}
	if l == nil {
		l = slog.Default()
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		gormLogWriter{l: l},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.AutoMigrate(&sqliteTask{}); err != nil {
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	return db, nil
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}

func NewSQLiteRepository(db *gorm.DB) *SQLiteRepo {
	return &SQLiteRepo{db: db}
}

func parseRowID(id string) (uint, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func (r *SQLiteRepo) find(ctx context.Context, id string) (*sqliteTask, error) {
	n, ok := parseRowID(id)
	if !ok {
		return nil, ErrNotFound
	}
	var row sqliteTask
	if err := r.db.WithContext(ctx).First(&row, n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &row, nil
}

func (r *SQLiteRepo) Create(ctx context.Context, title, description string) (*Task, error) {
	t := newTask(title, description)
	row := sqliteTask{
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	out := row.toTask()
	return &out, nil
}

func (r *SQLiteRepo) List(ctx context.Context) ([]Task, error) {
	var rows []sqliteTask
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	tasks := make([]Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toTask())
	}
	return tasks, nil
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (*Task, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	t := row.toTask()
	return &t, nil
}

func (r *SQLiteRepo) Update(ctx context.Context, id string, p Patch) (*Task, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	t := row.toTask()
	p.apply(&t)
	row.Title = t.Title
	row.Description = t.Description
	row.Status = string(t.Status)

	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &t, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, id string) error {
	n, ok := parseRowID(id)
	if !ok {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Delete(&sqliteTask{}, n)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear empties the table and resets the AUTOINCREMENT counter.
func (r *SQLiteRepo) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM tasks").Error; err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}
		// sqlite_sequence only exists after the first AUTOINCREMENT insert
		var n int64
		if err := tx.Raw("SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'sqlite_sequence'").Scan(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", "tasks").Error
	})
}
