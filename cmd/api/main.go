package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rgoulart/commission-tracker-api/infrastructure/database/postgres"
	"github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive"
	"github.com/rgoulart/commission-tracker-api/infrastructure/integrator/pipedrive/pipedriveclient"
	"github.com/rgoulart/commission-tracker-api/infrastructure/lock"
	"github.com/rgoulart/commission-tracker-api/infrastructure/repository"
	"github.com/rgoulart/commission-tracker-api/internal/api"
	"github.com/rgoulart/commission-tracker-api/internal/config"
	"github.com/rgoulart/commission-tracker-api/internal/scheduler"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/authenticating"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/commissioning"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/receivabling"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/selling"
	"github.com/rgoulart/commission-tracker-api/internal/usecases/syncing"
	"github.com/sirupsen/logrus"
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
	organizationRepo := repository.NewOrganizationRepository(pgConn)
	sellerRepo := repository.NewSellerRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	receivableRepo := repository.NewReceivableRepository(pgConn)
	credentialRepo := repository.NewCredentialRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	pipedriveClient := pipedriveclient.NewClient(cfg)
	tokenManager := pipedrive.NewTokenManager(credentialRepo, pipedriveClient)
	integrator := pipedrive.NewService(cfg, pipedriveClient, tokenManager, credentialRepo)

	policier := commissioning.NewService(organizationRepo, saleRepo)
	receivableService := receivabling.NewService(saleRepo, receivableRepo)
	sellerService := selling.NewService(sellerRepo, saleRepo, receivableRepo, organizationRepo)

	syncer := syncing.NewService(
		integrator,
		credentialRepo,
		organizationRepo,
		sellerRepo,
		saleRepo,
		syncing.NewThrottle(cfg.DealSync.ThrottleInterval),
		newLocker(cfg),
	)

	// Agendador de sincronização periódica de deals
	dealSyncService := scheduler.NewDealSyncService(syncer, credentialRepo, cfg)
	if err := dealSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de deals")
	} else {
		logrus.Info("Agendador de sincronização de deals iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		integrator,
		syncer,
		policier,
		sellerService,
		receivableService,
		dealSyncService,
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

// newLocker monta o lock consultivo por organização. Sem Redis configurado a
// sincronização conta apenas com o throttle por tempo.
func newLocker(cfg *config.Config) lock.Locker {
	if cfg.Redis.Addr == "" {
		logrus.Info("Redis não configurado, lock de sincronização desabilitado")
		return lock.NewNoopLocker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	logrus.WithField("addr", cfg.Redis.Addr).Info("Lock de sincronização via Redis habilitado")
	return lock.NewRedisLocker(client)
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
