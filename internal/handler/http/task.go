package http

import (
	"encoding/json"
	"net/http"

	"github.com/clinichr/clinic-hr-backend/internal/domain/notification"
	"github.com/clinichr/clinic-hr-backend/internal/domain/task"
	"github.com/clinichr/clinic-hr-backend/internal/handler/http/response"
	taskservice "github.com/clinichr/clinic-hr-backend/internal/service/task"
	"github.com/go-chi/chi/v5"
)

// TaskHandler defines the task and notification handler interface
type TaskHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	ListNotifications(w http.ResponseWriter, r *http.Request)
	DeleteNotification(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService      *taskservice.Service
	notificationRepo notification.NotificationRepository
}

func NewTaskHandler(taskService *taskservice.Service, notificationRepo notification.NotificationRepository) TaskHandler {
	return &taskHandlerImpl{
		taskService:      taskService,
		notificationRepo: notificationRepo,
	}
}

func (h *taskHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req task.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.taskService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Task created", task.ToResponse(created))
}

func (h *taskHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]task.Response, 0, len(tasks))
	for _, t := range tasks {
		responses = append(responses, task.ToResponse(t))
	}

	response.Success(w, responses)
}

func (h *taskHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task deleted", nil)
}

func (h *taskHandlerImpl) ListNotifications(w http.ResponseWriter, r *http.Request) {
	employeeID := getEmployeeIDFromContext(r)
	if employeeID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	notifications, err := h.notificationRepo.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]notification.Response, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notification.ToResponse(n))
	}

	response.Success(w, responses)
}

func (h *taskHandlerImpl) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationRepo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Notification deleted", nil)
}
