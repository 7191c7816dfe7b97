package record

import (
	"github.com/velozity/opsboard/internal/record/repository"
	"github.com/velozity/opsboard/internal/record/service"
	"go.uber.org/fx"
)

var Module = fx.Module("record.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
