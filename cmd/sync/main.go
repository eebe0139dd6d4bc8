package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/vfg2006/reddit-ads-sync/infrastructure/database/postgres"
	"github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit"
	"github.com/vfg2006/reddit-ads-sync/infrastructure/integrator/reddit/redditclient"
	"github.com/vfg2006/reddit-ads-sync/infrastructure/repository"
	"github.com/vfg2006/reddit-ads-sync/internal/config"
	"github.com/vfg2006/reddit-ads-sync/internal/usecases/syncing"
	"github.com/vfg2006/reddit-ads-sync/pkg/log"
	"github.com/vfg2006/reddit-ads-sync/pkg/utils"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	startDateFlag := pflag.String("start-date", "", "Data inicial do relatório (YYYY-MM-DD)")
	projectIDFlag := pflag.String("project-id", "", "Identificador do serviço no armazenamento de segredos")
	pflag.Parse()

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

	if *projectIDFlag != "" {
		cfg.Render.ServiceID = *projectIDFlag
	}

	startDateStr := *startDateFlag
	if startDateStr == "" {
		startDateStr = cfg.Sync.DefaultStartDate
	}
	startDate, err := utils.ParseDate(startDateStr)
	if err != nil {
		logrus.WithError(err).Fatalf("Data inicial inválida: %s", startDateStr)
	}

	runID, err := utils.GenerateRunID()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar o identificador da execução")
	}
	logrus.WithField("run_id", runID).Info("Iniciando sincronização do Reddit Ads")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx, _ = log.WithCorrelationID(ctx)

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	renderClient := config.NewRenderClient(cfg)

	// O gerenciador de tokens precisa completar a inicialização antes de
	// qualquer cliente da API de dados ser construído
	tokenManager := redditclient.NewTokenManager(cfg, renderClient)
	credentials, err := tokenManager.Initialize()
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar as credenciais do Reddit")
	}

	client := redditclient.NewClient(cfg, credentials)
	integrator := reddit.New(cfg, client)

	repo := repository.NewAdPerformanceRepository(pgConn, cfg.Warehouse)

	service := syncing.NewService(cfg, integrator, repo)
	if err := service.Run(ctx, *startDate); err != nil {
		// Falha derruba o processo com código de saída diferente de zero
		// para o agendador externo enxergar a execução como falha
		logrus.WithError(err).Fatal("Falha na execução da sincronização")
	}

	logrus.WithField("run_id", runID).Info("Sincronização concluída com sucesso")
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
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

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
