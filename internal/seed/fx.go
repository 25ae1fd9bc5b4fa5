package seed

import (
	"github.com/turmapay/turmapay/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("seed",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, log *zap.Logger) error {
		if cfg.IsProduction() {
			return nil
		}
		if err := EnsureDemoData(conn); err != nil {
			log.Warn("demo seed failed", zap.Error(err))
		}
		return nil
	}),
)
