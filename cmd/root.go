package cmd

import (
	"context"
	"time"

	coreconfig "github.com/AzielCF/tg-relay/core/config"
	coreDB "github.com/AzielCF/tg-relay/core/database"
	domainConnection "github.com/AzielCF/tg-relay/domains/connection"
	domainExclusion "github.com/AzielCF/tg-relay/domains/exclusion"
	domainRelay "github.com/AzielCF/tg-relay/domains/relay"
	"github.com/AzielCF/tg-relay/infrastructure/storage"
	"github.com/AzielCF/tg-relay/infrastructure/telegram"
	"github.com/AzielCF/tg-relay/pkg/utils"
	"github.com/AzielCF/tg-relay/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	cfg *coreconfig.Config
	db  *gorm.DB

	// Usecase
	relayUsecase      domainRelay.IRelayUsecase
	exclusionUsecase  domainExclusion.IExclusionUsecase
	connectionUsecase domainConnection.IConnectionUsecase

	// Platform client
	telegramClient *telegram.Client
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tg-relay",
	Short: "Telegram message-relay webhook",
	Long: `Receives Telegram webhook updates, filters them against an allow list,
excluded usernames/chats and the Business pause state, and forwards
accepted messages to one fixed destination chat.`,
}

func init() {
	// Load environment variables first
	utils.LoadConfig(".")

	time.Local = time.UTC

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cobra.OnInitialize(initEnvConfig)
}

// initEnvConfig loads configuration from environment variables
func initEnvConfig() {
	loaded, err := coreconfig.LoadConfig()
	if err != nil {
		logrus.Fatalln("Failed to load configuration:", err)
	}
	cfg = loaded

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// initApp opens the database and wires repositories, services and the
// platform client. Commands that only touch the Bot API call
// initTelegramClient instead and skip the database entirely.
func initApp() {
	opened, err := coreDB.NewDatabase(cfg)
	if err != nil {
		logrus.Fatalln("Failed to open database:", err)
	}
	db = opened

	ctx := context.Background()

	exclusionRepo := storage.NewExclusionGormRepository(db)
	if err := exclusionRepo.Init(ctx); err != nil {
		logrus.Fatalln("Failed to migrate exclusion tables:", err)
	}
	connectionRepo := storage.NewConnectionGormRepository(db)
	if err := connectionRepo.Init(ctx); err != nil {
		logrus.Fatalln("Failed to migrate connection tables:", err)
	}

	initTelegramClient()

	relayUsecase = usecase.NewRelayService(cfg.Relay, exclusionRepo, connectionRepo, telegramClient)
	exclusionUsecase = usecase.NewExclusionService(cfg.Relay, exclusionRepo)
	connectionUsecase = usecase.NewConnectionService(connectionRepo)
}

func initTelegramClient() {
	telegramClient = telegram.NewClient(cfg.Telegram)
}

// StopApp releases process-wide resources on shutdown.
func StopApp() {
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalln(err)
	}
}
