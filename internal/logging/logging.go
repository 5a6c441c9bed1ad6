package logging

import (
	"log"

	"go.uber.org/zap"
)

// New devolve logger JSON em produção e console colorido em dev.
func New(development bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if development {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Printf("zap init failed, falling back to nop logger: %v", err)
		return zap.NewNop()
	}
	return logger
}
