package bin

import (
	"github.com/velozity/opsboard/internal/bin/repository"
	"github.com/velozity/opsboard/internal/bin/service"
	"go.uber.org/fx"
)

var Module = fx.Module("bin.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
