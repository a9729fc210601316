package handler

import (
	"hospital-management-api/internal/middleware"
	"hospital-management-api/internal/models"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// WorkerHandler serves the staff routes. Account changes need the hospital
// role, except that a worker may change their own password.
type WorkerHandler struct {
	resource[models.Worker, service.WorkerInput]
	workers *service.WorkerService
}

func NewWorkerHandler(workers *service.WorkerService) *WorkerHandler {
	return &WorkerHandler{
		resource: resource[models.Worker, service.WorkerInput]{
			entity:  "worker",
			plural:  "workers",
			idParam: "worker_id",
			list:    workers.List,
			search:  workers.Search,
			get:     workers.Get,
		},
		workers: workers,
	}
}

func (h *WorkerHandler) Register(g *gin.RouterGroup) {
	h.register(g)

	owner := middleware.RequireRole(models.RoleHospital)
	g.POST("/workers-add", owner, h.Add)
	g.PUT("/workers-edit", owner, h.Edit)
	g.DELETE("/workers-delete", owner, h.Delete)
	g.PUT("/workers-change-password", h.ChangePassword)
}

func (h *WorkerHandler) Add(c *gin.Context) {
	var in service.WorkerInput
	if !bindJSON(c, &in) {
		return
	}

	worker, err := h.workers.Create(c.Request.Context(), middleware.TenantID(c), in, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to add worker")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Worker added successfully",
		"worker":  worker,
	})
}

func (h *WorkerHandler) Edit(c *gin.Context) {
	id, ok := queryID(c, "worker_id")
	if !ok {
		return
	}
	var in service.WorkerEdit
	if !bindJSON(c, &in) {
		return
	}

	worker, err := h.workers.Update(c.Request.Context(), middleware.TenantID(c), id, in, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to edit worker")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Worker updated successfully",
		"worker":  worker,
	})
}

func (h *WorkerHandler) ChangePassword(c *gin.Context) {
	id, ok := queryID(c, "worker_id")
	if !ok {
		return
	}
	var in service.PasswordChange
	if !bindJSON(c, &in) {
		return
	}

	if _, err := h.workers.ChangePassword(c.Request.Context(), middleware.TenantID(c), id, in, actorOf(c)); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	utils.MessageResponse(c, "Password changed successfully")
}

func (h *WorkerHandler) Delete(c *gin.Context) {
	id, ok := queryID(c, "worker_id")
	if !ok {
		return
	}

	if err := h.workers.Remove(c.Request.Context(), middleware.TenantID(c), id, actorOf(c)); err != nil {
		respondError(c, err, "Failed to delete worker")
		return
	}
	utils.MessageResponse(c, "Worker deleted successfully")
}
