package notification

import "time"

type Notification struct {
	ID         string
	EmployeeID string
	Title      string
	Message    string
	CreatedAt  time.Time
}

type Response struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	CreatedAt  string `json:"created_at"`
}

func ToResponse(n Notification) Response {
	return Response{
		ID:         n.ID,
		EmployeeID: n.EmployeeID,
		Title:      n.Title,
		Message:    n.Message,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
	}
}
