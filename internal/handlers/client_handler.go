package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

// ======================================================
// LIST CLIENTS (PAINEL DO SALÃO)
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("salon_id = ?", salonIDFrom(c))

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// HISTORY (agendamentos + retornos do cronograma)
// ======================================================

func (h *ClientHandler) History(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}
	salonID := salonIDFrom(c)
	db := h.db.WithContext(c.Request.Context())

	var client models.Client
	err := db.Where("id = ? AND salon_id = ?", id, salonID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	var appointments []models.Appointment
	if err := db.
		Preload("Service").
		Where("salon_id = ? AND client_id = ?", salonID, id).
		Order("date DESC, start_time DESC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	var returns []models.PendingReturn
	if err := db.
		Where("salon_id = ? AND client_id = ? AND status = ?", salonID, id, "pending").
		Order("target_date ASC").
		Find(&returns).Error; err != nil {
		httperr.Internal(c, "failed_to_list_returns", "Erro ao listar retornos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client":          client,
		"appointments":    dto.AppointmentList(appointments),
		"pending_returns": returns,
	})
}
