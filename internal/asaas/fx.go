package asaas

import "go.uber.org/fx"

// Module provides the billing provider client.
var Module = fx.Module("asaas",
	fx.Provide(NewClient),
)
