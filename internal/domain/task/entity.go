package task

import (
	"time"

	"github.com/clinichr/clinic-hr-backend/internal/pkg/validator"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID          string
	Title       string
	Description *string
	AssignedTo  string // employee id
	Priority    Priority
	DueDate     time.Time
	CreatedAt   time.Time
}

type CreateRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	AssignedTo  string  `json:"assigned_to"`
	Priority    string  `json:"priority"`
	DueDate     string  `json:"due_date"`
}

func (r CreateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if validator.IsEmpty(r.AssignedTo) {
		errs = append(errs, validator.ValidationError{Field: "assigned_to", Message: "assignee is required"})
	}
	switch Priority(r.Priority) {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "must be one of low, medium, high"})
	}
	if _, ok := validator.IsValidDate(r.DueDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "due_date", Message: "expected YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Response struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	AssignedTo  string  `json:"assigned_to"`
	Priority    string  `json:"priority"`
	DueDate     string  `json:"due_date"`
}

func ToResponse(t Task) Response {
	return Response{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		AssignedTo:  t.AssignedTo,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate.Format("2006-01-02"),
	}
}
