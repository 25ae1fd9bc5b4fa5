package cache

import "go.uber.org/fx"

// Module provides process-local caches.
var Module = fx.Module("cache",
	fx.Provide(NewProfileValidationCache),
)
