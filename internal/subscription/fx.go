package subscription

import (
	"github.com/turmapay/turmapay/internal/asaas"
	"github.com/turmapay/turmapay/internal/subscription/domain"
	"github.com/turmapay/turmapay/internal/subscription/repository"
	"github.com/turmapay/turmapay/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(func(client *asaas.Client) domain.SubscriptionProvider { return client }),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
