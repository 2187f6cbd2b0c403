package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bizhub-api/infrastructure/database/postgres"
	"github.com/vfg2006/bizhub-api/infrastructure/mailer"
	"github.com/vfg2006/bizhub-api/infrastructure/repository"
	"github.com/vfg2006/bizhub-api/internal/api"
	"github.com/vfg2006/bizhub-api/internal/config"
	"github.com/vfg2006/bizhub-api/internal/scheduler"
	"github.com/vfg2006/bizhub-api/internal/usecases/authenticating"
	"github.com/vfg2006/bizhub-api/internal/usecases/campaigns"
	"github.com/vfg2006/bizhub-api/internal/usecases/contacts"
	"github.com/vfg2006/bizhub-api/internal/usecases/dashboards"
	"github.com/vfg2006/bizhub-api/internal/usecases/escrow"
	"github.com/vfg2006/bizhub-api/internal/usecases/metrics"
	"github.com/vfg2006/bizhub-api/internal/usecases/ticketing"
	"github.com/vfg2006/bizhub-api/internal/usecases/workspaces"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	workspaceRepo := repository.NewWorkspaceRepository(pgConn)
	contactRepo := repository.NewContactRepository(pgConn)
	contactListRepo := repository.NewContactListRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	ticketRepo := repository.NewTicketRepository(pgConn)
	escrowRepo := repository.NewEscrowRepository(pgConn)
	metricRepo := repository.NewMetricRepository(pgConn)
	activityRepo := repository.NewActivityRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, workspaceRepo, cfg)
	workspaceService := workspaces.NewWorkspaceService(workspaceRepo)
	contactService := contacts.NewContactService(contactRepo, contactListRepo)

	mailerService := mailer.NewService(&cfg.Mailer)
	campaignService := campaigns.NewCampaignService(campaignRepo, contactRepo, contactListRepo, mailerService)

	ticketService := ticketing.NewTicketService(ticketRepo)
	escrowService := escrow.NewEscrowService(escrowRepo)

	resolver := metrics.NewResolverService(activityRepo, metricRepo)
	dashboardService := dashboards.NewDashboardService(resolver, activityRepo)

	// Inicializa o agendador de rollup de métricas
	metricsRollupService := scheduler.NewMetricsRollupService(activityRepo, metricRepo, cfg)

	if err := metricsRollupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de rollup de métricas")
	} else {
		logrus.Info("Agendador de rollup de métricas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		workspaceService,
		contactService,
		campaignService,
		ticketService,
		escrowService,
		dashboardService,
		metricsRollupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
