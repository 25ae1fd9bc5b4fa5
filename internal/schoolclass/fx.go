package schoolclass

import (
	"github.com/turmapay/turmapay/internal/schoolclass/repository"
	"github.com/turmapay/turmapay/internal/schoolclass/service"
	"go.uber.org/fx"
)

var Module = fx.Module("schoolclass.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
