package billingcustomer

import (
	"github.com/turmapay/turmapay/internal/asaas"
	"github.com/turmapay/turmapay/internal/billingcustomer/domain"
	"github.com/turmapay/turmapay/internal/billingcustomer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billingcustomer.service",
	fx.Provide(func(client *asaas.Client) domain.CustomerProvider { return client }),
	fx.Provide(service.NewService),
)
