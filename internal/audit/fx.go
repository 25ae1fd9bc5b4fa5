package audit

import (
	"github.com/turmapay/turmapay/internal/audit/repository"
	"github.com/turmapay/turmapay/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
