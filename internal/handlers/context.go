package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

func salonIDFrom(c *gin.Context) uint {
	return c.MustGet(middleware.ContextSalonID).(uint)
}

func userIDFrom(c *gin.Context) *uint {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id := v.(uint)
	return &id
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// auditFrom monta o evento de auditoria com salão e usuário da requisição.
func auditFrom(c *gin.Context, action, entity string, entityID *uint, meta any) audit.Event {
	return audit.Event{
		SalonID:  salonIDFrom(c),
		UserID:   userIDFrom(c),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: meta,
	}
}
