package enrollment

import (
	"github.com/turmapay/turmapay/internal/enrollment/repository"
	"github.com/turmapay/turmapay/internal/enrollment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("enrollment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
