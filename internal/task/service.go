package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput  = errors.New("title is required")
	ErrInvalidStatus = errors.New("invalid status value")
)

// Service คือ business logic layer
type Service interface {
	CreateTask(ctx context.Context, in CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context) ([]Task, error)
	UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*Task, error)
	DeleteTask(ctx context.Context, id string) error
	ClearTasks(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
}

type service struct {
	repo TaskRepository
}

func NewService(repo TaskRepository) Service {
	return &service{repo: repo}
}

// ===== Create =====

func (s *service) CreateTask(ctx context.Context, in CreateTaskInput) (*Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	t, err := s.repo.Create(ctx, title, in.Description)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// ===== Get / List =====

func (s *service) GetTask(ctx context.Context, id string) (*Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListTasks(ctx context.Context) ([]Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(tasks), nil
}

// ===== Update =====

func (s *service) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*Task, error) {
	// status (optional แต่ถ้าส่งมา ต้องเป็นหนึ่งในสามค่า)
	if in.Status != nil && !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	// title (optional แต่ถ้าส่งมา ห้ามค่าว่าง)
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ErrInvalidInput
		}
		in.Title = &title
	}

	t, err := s.repo.Update(ctx, id, in.patch())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update task %s: %w", id, err)
	}
	return t, nil
}

// ===== Delete =====

func (s *service) DeleteTask(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ClearTasks(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
