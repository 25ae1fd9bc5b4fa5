package payment

import (
	"github.com/turmapay/turmapay/internal/payment/repository"
	"github.com/turmapay/turmapay/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
