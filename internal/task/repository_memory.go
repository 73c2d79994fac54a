package task

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepo is volatile: everything is lost when the process exits.
// IDs are random UUIDs, so there is no counter to reset.
type MemoryRepo struct {
	mu    sync.RWMutex
	tasks []Task
}

func NewMemoryRepository() *MemoryRepo {
	return &MemoryRepo{tasks: []Task{}}
}

func (r *MemoryRepo) index(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *MemoryRepo) Create(ctx context.Context, title, description string) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := newTask(title, description)
	t.ID = uuid.NewString()
	r.tasks = append(r.tasks, t)
	return &t, nil
}

func (r *MemoryRepo) List(ctx context.Context) ([]Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	t := r.tasks[i]
	return &t, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, p Patch) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p.apply(&r.tasks[i])
	t := r.tasks[i]
	return &t, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return ErrNotFound
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

func (r *MemoryRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = []Task{}
	return nil
}
