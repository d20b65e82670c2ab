package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/sportsync/refassign/internal/config"
	"github.com/sportsync/refassign/pkg/core/suggest"
	"github.com/sportsync/refassign/pkg/db"
	"github.com/sportsync/refassign/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Postgres *postgres.DB
	Service  *suggest.Service
	Logger   *zap.Logger
	Ctx      context.Context
}
