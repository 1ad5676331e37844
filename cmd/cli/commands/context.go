package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/tcallaghan/recall-roster/internal/config"
	"github.com/tcallaghan/recall-roster/pkg/core/services"
	"github.com/tcallaghan/recall-roster/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	// Notifier is nil when no gmail account is configured; awards then
	// skip the notification step
	Notifier services.Notifier
	Logger   *zap.Logger
	Ctx      context.Context
}
