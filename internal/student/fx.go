package student

import (
	"github.com/turmapay/turmapay/internal/student/repository"
	"github.com/turmapay/turmapay/internal/student/service"
	"go.uber.org/fx"
)

var Module = fx.Module("student.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
