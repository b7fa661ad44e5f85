package task

import (
	"errors"
	"strings"
	"time"
)

type ServiceTask interface {
	GetAll() []*Task
	GetByID(id string) (*Task, error)
	CreateTask(task *Task, createdBy string) error
	UpdateTask(id string, task *Task) (*Task, error)
	Delete(id string) error
	Filter(filter Filter) []*Task
	Stats() Stats
}

// Filter narrows a task listing: free-text term over title and
// description, plus exact matches on the enumerated fields.
type Filter struct {
	Query    string
	Status   string
	Priority string
	Assignee string
}

type Stats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

var (
	validStatus   = map[string]bool{StatusPending: true, StatusInProgress: true, StatusDone: true}
	validPriority = map[string]bool{PriorityLow: true, PriorityMedium: true, PriorityHigh: true}
)

type TaskService struct {
	Repo Repository
	Now  func() time.Time
}

func NewService(repo Repository) *TaskService {
	return &TaskService{Repo: repo, Now: time.Now}
}

func (s *TaskService) GetAll() []*Task {
	return s.Repo.GetAll()
}

func (s *TaskService) GetByID(id string) (*Task, error) {
	return s.Repo.GetByID(id)
}

func (s *TaskService) CreateTask(task *Task, createdBy string) error {
	if err := validate(task); err != nil {
		return err
	}

	now := s.Now()
	task.CreatedBy = createdBy
	task.CreatedAt = now
	task.UpdatedAt = now

	return s.Repo.Create(task)
}

func (s *TaskService) UpdateTask(id string, task *Task) (*Task, error) {
	if err := validate(task); err != nil {
		return nil, err
	}

	task.UpdatedAt = s.Now()
	return s.Repo.Update(id, task)
}

func (s *TaskService) Delete(id string) error {
	return s.Repo.Delete(id)
}

func (s *TaskService) Filter(filter Filter) []*Task {
	term := strings.ToLower(strings.TrimSpace(filter.Query))

	var matched []*Task
	for _, task := range s.Repo.GetAll() {
		if term != "" &&
			!strings.Contains(strings.ToLower(task.Title), term) &&
			!strings.Contains(strings.ToLower(task.Description), term) {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && task.Priority != filter.Priority {
			continue
		}
		if filter.Assignee != "" && task.Assignee != filter.Assignee {
			continue
		}
		matched = append(matched, task)
	}
	return matched
}

func (s *TaskService) Stats() Stats {
	var stats Stats
	for _, task := range s.Repo.GetAll() {
		stats.Total++
		switch task.Status {
		case StatusPending:
			stats.Pending++
		case StatusInProgress:
			stats.InProgress++
		case StatusDone:
			stats.Done++
		}
	}
	return stats
}

func validate(task *Task) error {
	if strings.TrimSpace(task.Title) == "" {
		return errors.New("title is required")
	}
	if task.Status == "" {
		task.Status = StatusPending
	}
	if !validStatus[task.Status] {
		return errors.New("invalid status")
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	if !validPriority[task.Priority] {
		return errors.New("invalid priority")
	}
	return nil
}
