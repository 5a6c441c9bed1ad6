package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/recurrence"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type PendingReturnHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPendingReturnHandler(db *gorm.DB, audit *audit.Dispatcher) *PendingReturnHandler {
	return &PendingReturnHandler{db: db, audit: audit}
}

type ResolveReturnRequest struct {
	Status string `json:"status" binding:"required,oneof=done cancelled"`
}

// List filtra por status (?status=pending) e cronograma (?template_id=).
func (h *PendingReturnHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("salon_id = ?", salonIDFrom(c))

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if templateID := c.Query("template_id"); templateID != "" {
		q = q.Where("template_id = ?", templateID)
	}

	var returns []models.PendingReturn
	if err := q.Order("target_date ASC, id ASC").Find(&returns).Error; err != nil {
		httperr.Internal(c, "failed_to_list_returns", "Erro ao listar retornos.")
		return
	}

	httpresp.List(c, returns)
}

func (h *PendingReturnHandler) Resolve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req ResolveReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var pr models.PendingReturn
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND salon_id = ?", id, salonIDFrom(c)).
		First(&pr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "return_not_found", "Retorno não encontrado.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_return", "Erro ao buscar retorno.")
		return
	}

	next := recurrence.ReturnStatus(req.Status)
	if err := recurrence.CanResolveReturn(recurrence.ReturnStatus(pr.Status), next); err != nil {
		writeError(c, err, "invalid_state", "Retorno já resolvido.")
		return
	}

	pr.Status = string(next)
	if err := h.db.WithContext(c.Request.Context()).Save(&pr).Error; err != nil {
		httperr.Internal(c, "failed_to_update_return", "Erro ao atualizar retorno.")
		return
	}

	h.audit.Dispatch(auditFrom(c, "pending_return_"+req.Status, "pending_return", &pr.ID, nil))

	c.JSON(http.StatusOK, pr)
}
