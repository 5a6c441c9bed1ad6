package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ClosureHandler cuida dos dias fechados (feriado, folga coletiva).
type ClosureHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewClosureHandler(db *gorm.DB, audit *audit.Dispatcher) *ClosureHandler {
	return &ClosureHandler{db: db, audit: audit}
}

type CreateClosureRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

func (h *ClosureHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("salon_id = ?", salonIDFrom(c))

	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date < ?", to)
	}

	var closures []models.SalonClosure
	if err := q.Order("date ASC").Find(&closures).Error; err != nil {
		httperr.Internal(c, "failed_to_list_closures", "Erro ao listar fechamentos.")
		return
	}

	httpresp.List(c, closures)
}

func (h *ClosureHandler) Create(c *gin.Context) {
	var req CreateClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	date, err := schedule.ParseDate(req.Date, time.UTC)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	closure := models.SalonClosure{
		SalonID: salonIDFrom(c),
		Date:    schedule.FormatDate(date),
		Reason:  req.Reason,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&closure).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Conflict(c, "closure_exists", "Dia já está fechado.")
			return
		}
		httperr.Internal(c, "failed_to_create_closure", "Erro ao fechar o dia.")
		return
	}

	h.audit.Dispatch(auditFrom(c, "closure_created", "salon_closure", &closure.ID, gin.H{"date": closure.Date}))

	c.JSON(http.StatusCreated, closure)
}

func (h *ClosureHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND salon_id = ?", id, salonIDFrom(c)).
		Delete(&models.SalonClosure{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_closure", "Erro ao reabrir o dia.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "closure_not_found", "Fechamento não encontrado.")
		return
	}

	h.audit.Dispatch(auditFrom(c, "closure_deleted", "salon_closure", &id, nil))

	c.Status(http.StatusNoContent)
}
