// Package modkit wires modules to the shared process dependencies
package modkit

import (
	"trainerbot/internal/platform/config"
	"trainerbot/internal/platform/logger"
	"trainerbot/internal/platform/store/pg"
)

// Deps is what every module constructor receives
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	// PG is nil unless MATERIALS_PG_DBURL is set
	PG *pg.PG
}
