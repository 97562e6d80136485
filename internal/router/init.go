package router

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oksasatya/urex-bootcamp/internal/application"
	"github.com/oksasatya/urex-bootcamp/internal/container"
	pginfra "github.com/oksasatya/urex-bootcamp/internal/infrastructure/postgres"
	"github.com/oksasatya/urex-bootcamp/internal/infrastructure/search"
	"github.com/oksasatya/urex-bootcamp/internal/infrastructure/storage"
	handlers "github.com/oksasatya/urex-bootcamp/internal/interface/http"
	"github.com/oksasatya/urex-bootcamp/internal/router/modules"
)

type services struct {
	Registration *application.RegistrationService
	Auth         *application.AuthService
	Dashboard    *application.DashboardService
}

// optional infrastructure is only wrapped when present, so services see a nil interface.
func indexer() application.RegistrationIndexer {
	if es := container.GetES(); es != nil {
		return search.NewRegistrationIndex(es, container.GetConfig().ESRegistrationsIndex)
	}
	return nil
}

func publisher() application.JobPublisher {
	if p := container.GetRabbitPub(); p != nil {
		return p
	}
	return nil
}

func archiver() application.ExportArchiver {
	cfg := container.GetConfig()
	if gcs := container.GetGCS(); gcs != nil && cfg.ExportArchiveBucket != "" {
		return storage.NewExportArchive(gcs, cfg.ExportArchiveBucket)
	}
	return nil
}

func buildServices() services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	m := container.GetMetrics()
	regs := pginfra.NewRegistrationRepository(container.GetPGPool())
	admins := pginfra.NewAdminRepository(container.GetPGPool())
	idx := indexer()

	return services{
		Registration: application.NewRegistrationService(regs, idx, publisher(), m, logger,
			cfg.AppName, cfg.AdminNotifyEmail, cfg.MailSendEnabled),
		Auth:      application.NewAuthService(admins, container.GetJWT(), container.GetRedis(), m, logger),
		Dashboard: application.NewDashboardService(regs, idx, archiver(), m, logger, cfg.ExportDateLayout),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, gatherer prometheus.Gatherer) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	rdb := container.GetRedis()
	svc := buildServices()

	r.Add(modules.NewRegistrationModule(handlers.NewRegistrationHandler(svc.Registration, logger), rdb))
	r.Add(modules.NewAdminModule(
		handlers.NewAdminHandler(svc.Auth, logger, cfg.CookieDomain, cfg.CookieSecure),
		handlers.NewDashboardHandler(svc.Dashboard, logger),
		svc.Auth,
		rdb,
	))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(rdb))
	}

	web := handlers.NewWebHandler(svc.Registration, svc.Auth, svc.Dashboard, logger,
		cfg.CookieDomain, cfg.CookieSecure, cfg.LoadingStep, cfg.ExportDateLayout)
	r.AddPages(modules.NewWebModule(web, svc.Auth, rdb))
	r.AddPages(modules.NewMetricsModule(gatherer))
}
