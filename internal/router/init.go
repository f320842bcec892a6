package router

import (
	"github.com/medibook/medibook-api/internal/application"
	"github.com/medibook/medibook-api/internal/container"
	pginfra "github.com/medibook/medibook-api/internal/infrastructure/postgres"
	handlers "github.com/medibook/medibook-api/internal/interface/http"
	"github.com/medibook/medibook-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers them with the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	accounts := pginfra.NewAccountRepository(pool)
	doctors := pginfra.NewDoctorRepository(pool)
	appointments := pginfra.NewAppointmentRepository(pool)
	records := pginfra.NewMedicalRecordRepository(pool)

	authService := application.NewAuthService(
		accounts,
		container.GetJWT(),
		container.GetRabbitPub(),
		logger,
		cfg.MailSendEnabled,
	)
	doctorService := application.NewDoctorService(
		doctors,
		container.GetRedis(),
		logger,
		container.GetES(),
		cfg.ESDoctorsIndex,
	)
	appointmentService := application.NewAppointmentService(
		appointments,
		doctors,
		accounts,
		container.GetRabbitPub(),
		logger,
		cfg.MailSendEnabled,
	)
	recordService := application.NewRecordService(
		records,
		container.GetGCS(),
		cfg.GCSBucket,
		logger,
	)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(pool, container.GetRedis())))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authService, logger), container.GetJWT()))
	r.Add(modules.NewDoctorModule(handlers.NewDoctorHandler(doctorService, logger)))
	r.Add(modules.NewAppointmentModule(handlers.NewAppointmentHandler(appointmentService, logger), container.GetJWT()))
	r.Add(modules.NewRecordModule(handlers.NewRecordHandler(recordService, logger), container.GetJWT()))
}
