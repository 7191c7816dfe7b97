package plan

import (
	"github.com/velozity/opsboard/internal/plan/repository"
	"github.com/velozity/opsboard/internal/plan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("plan.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
