package task

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status and priority wire values are stored as-is in the database.
const (
	StatusPending    = "pendente"
	StatusInProgress = "andamento"
	StatusDone       = "concluido"

	PriorityLow    = "baixa"
	PriorityMedium = "media"
	PriorityHigh   = "alta"
)

type Task struct {
	MongoID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID          string             `bson:"-" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Priority    string             `bson:"priority" json:"priority"`
	Status      string             `bson:"status" json:"status"`
	StartDate   string             `bson:"startDate,omitempty" json:"startDate,omitempty"`
	DueDate     string             `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Assignee    string             `bson:"assignee,omitempty" json:"assignee,omitempty"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Repository interface {
	Create(task *Task) error
	GetByID(id string) (*Task, error)
	GetAll() []*Task
	Update(id string, task *Task) (*Task, error)
	Delete(id string) error
}
