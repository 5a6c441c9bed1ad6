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
	ucRecurrence "github.com/BruksfildServices01/salon-scheduler/internal/usecase/recurrence"
)

// ======================================================
// HANDLER
// ======================================================

type RecurringTemplateHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	expand *ucRecurrence.ExpandTemplate
}

func NewRecurringTemplateHandler(
	db *gorm.DB,
	audit *audit.Dispatcher,
	expand *ucRecurrence.ExpandTemplate,
) *RecurringTemplateHandler {
	return &RecurringTemplateHandler{db: db, audit: audit, expand: expand}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateTemplateRequest struct {
	ClientID  uint    `json:"client_id" binding:"required"`
	ServiceID uint    `json:"service_id" binding:"required"`
	Weekday   int     `json:"weekday" binding:"min=0,max=6"`
	StartTime string  `json:"start_time" binding:"required"`
	EndTime   string  `json:"end_time" binding:"required"`
	Cadence   string  `json:"cadence" binding:"required"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   *string `json:"end_date"`
}

type ExpandTemplateRequest struct {
	AnchorAppointmentID uint `json:"anchor_appointment_id" binding:"required"`
	Count               int  `json:"count" binding:"min=0,max=52"`
}

// ======================================================
// CREATE
// ======================================================

func (h *RecurringTemplateHandler) Create(c *gin.Context) {
	salonID := salonIDFrom(c)
	ctx := c.Request.Context()

	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	tpl := models.RecurringTemplate{
		SalonID:   salonID,
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		Weekday:   req.Weekday,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Cadence:   req.Cadence,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    true,
	}
	if err := recurrence.ValidateTemplate(tpl); err != nil {
		writeError(c, err, "invalid_template", "Cronograma inválido.")
		return
	}

	// cliente e serviço precisam ser do salão
	var count int64
	if err := h.db.WithContext(ctx).Model(&models.Client{}).
		Where("id = ? AND salon_id = ?", req.ClientID, salonID).
		Count(&count).Error; err != nil {
		writeError(c, err, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}
	if count == 0 {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	if err := h.db.WithContext(ctx).Model(&models.SalonService{}).
		Where("id = ? AND salon_id = ?", req.ServiceID, salonID).
		Count(&count).Error; err != nil {
		writeError(c, err, "failed_to_get_service", "Erro ao buscar serviço.")
		return
	}
	if count == 0 {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	if err := h.db.WithContext(ctx).Create(&tpl).Error; err != nil {
		httperr.Internal(c, "failed_to_create_template", "Erro ao criar cronograma.")
		return
	}

	h.audit.Dispatch(auditFrom(c, "recurring_template_created", "recurring_template", &tpl.ID, nil))

	c.JSON(http.StatusCreated, tpl)
}

// ======================================================
// LIST
// ======================================================

func (h *RecurringTemplateHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Where("salon_id = ?", salonIDFrom(c))

	switch c.Query("active") {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	var templates []models.RecurringTemplate
	if err := q.Order("id ASC").Find(&templates).Error; err != nil {
		httperr.Internal(c, "failed_to_list_templates", "Erro ao listar cronogramas.")
		return
	}

	httpresp.List(c, templates)
}

// ======================================================
// DEACTIVATE
// ======================================================

func (h *RecurringTemplateHandler) Deactivate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var tpl models.RecurringTemplate
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND salon_id = ?", id, salonIDFrom(c)).
		First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "template_not_found", "Cronograma não encontrado.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_template", "Erro ao buscar cronograma.")
		return
	}

	// Update explícito: false é zero value e o default do campo é true
	if err := h.db.WithContext(c.Request.Context()).
		Model(&tpl).
		Update("active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_update_template", "Erro ao desativar cronograma.")
		return
	}
	tpl.Active = false

	h.audit.Dispatch(auditFrom(c, "recurring_template_deactivated", "recurring_template", &tpl.ID, nil))

	c.JSON(http.StatusOK, tpl)
}

// ======================================================
// EXPAND
// ======================================================

func (h *RecurringTemplateHandler) Expand(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req ExpandTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.expand.Execute(c.Request.Context(), ucRecurrence.ExpandTemplateInput{
		SalonID:             salonIDFrom(c),
		UserID:              userIDFrom(c),
		TemplateID:          id,
		AnchorAppointmentID: req.AnchorAppointmentID,
		Count:               req.Count,
	})
	if err != nil {
		writeError(c, err, "failed_to_expand_template", "Erro ao gerar agendamentos do cronograma.")
		return
	}

	c.JSON(http.StatusOK, out)
}
