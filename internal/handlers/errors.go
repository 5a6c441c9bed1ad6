package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type errorInfo struct {
	status  int
	message string
}

// Códigos de negócio conhecidos. Indisponibilidade nunca chega aqui: vira
// lista vazia ou item pulado.
var businessErrors = map[string]errorInfo{
	"invalid_duration":       {http.StatusBadRequest, "Duração do serviço inválida."},
	"invalid_template":       {http.StatusBadRequest, "Cronograma inválido."},
	"invalid_payment_amount": {http.StatusBadRequest, "Valor inválido para o agendamento."},
	"invalid_state":          {http.StatusConflict, "Operação não permitida no status atual."},
	"invalid_working_hours":  {http.StatusBadRequest, "Horário de funcionamento inválido."},
	"invalid_time":           {http.StatusBadRequest, "Horário inválido."},
	"invalid_date_or_time":   {http.StatusBadRequest, "Data ou hora inválida."},
	"invalid_origin":         {http.StatusBadRequest, "Origem do agendamento inválida."},
	"invalid_anchor":         {http.StatusBadRequest, "Agendamento de referência inválido."},
	"too_soon":               {http.StatusBadRequest, "Horário inválido."},
	"outside_working_hours":  {http.StatusBadRequest, "Fora do horário de atendimento."},
	"time_conflict":          {http.StatusConflict, "Conflito de horário."},
	"booking_busy":           {http.StatusConflict, "Agenda ocupada, tente novamente."},
	"salon_not_found":        {http.StatusNotFound, "Salão não encontrado."},
	"service_not_found":      {http.StatusNotFound, "Serviço não encontrado."},
	"appointment_not_found":  {http.StatusNotFound, "Agendamento não encontrado."},
	"template_not_found":     {http.StatusNotFound, "Cronograma não encontrado."},
}

// writeError responde no formato {error_code, message}.
func writeError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	if code, ok := httperr.BusinessCode(err); ok {
		if info, known := businessErrors[code]; known {
			httperr.Write(c, info.status, code, info.message)
			return
		}
		httperr.BadRequest(c, code, fallbackMessage)
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	_ = c.Error(err)
	httperr.Internal(c, fallbackCode, fallbackMessage)
}
