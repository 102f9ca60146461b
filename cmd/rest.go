package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AzielCF/tg-relay/ui/rest"
	"github.com/AzielCF/tg-relay/ui/rest/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the relay webhook and the admin API over HTTP",
	Run:   restServer,
}

func init() {
	restCmd.Flags().String("port", "", "Port to listen on (overrides APP_PORT)")
	restCmd.Flags().String("basic-auth", "", "Basic auth for the admin API (format: user:pass,user2:pass2)")
	rootCmd.AddCommand(restCmd)
}

func restServer(cmd *cobra.Command, _ []string) {
	// Flag overrides
	if portFlag, _ := cmd.Flags().GetString("port"); portFlag != "" {
		cfg.App.Port = portFlag
	}
	if baFlag, _ := cmd.Flags().GetString("basic-auth"); baFlag != "" {
		cfg.App.BasicAuth = strings.Split(baFlag, ",")
	}

	// A relay without a credential or a destination cannot serve traffic.
	if err := cfg.Validate(); err != nil {
		logrus.Fatalln("Invalid configuration:", err)
	}

	initApp()

	app := fiber.New(fiber.Config{
		AppName:               "tg-relay " + cfg.App.Version,
		DisableStartupMessage: false,
		ServerHeader:          "Hidden",
	})

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.Recovery())

	if cfg.App.Debug {
		app.Use(logger.New())
	}

	// The platform webhook stays public; the URL itself is the secret.
	rest.InitRestWebhook(app.Group(cfg.App.BasePath), relayUsecase, connectionUsecase)

	// Admin API only comes up when credentials are configured.
	if len(cfg.App.BasicAuth) > 0 {
		account := make(map[string]string)
		for _, basicAuth := range cfg.App.BasicAuth {
			ba := strings.Split(basicAuth, ":")
			if len(ba) != 2 {
				logrus.Fatalln("Basic auth is not valid, please use the format <user>:<secret>")
			}
			account[ba[0]] = ba[1]
		}

		apiGroup := app.Group(cfg.App.BasePath + "/api")
		apiGroup.Use(basicauth.New(basicauth.Config{
			Users: account,
			Next: func(c *fiber.Ctx) bool {
				// Allow CORS preflight without credentials.
				return c.Method() == fiber.MethodOptions
			},
		}))

		rest.InitRestApp(apiGroup)
		rest.InitRestExclusion(apiGroup, exclusionUsecase)
		rest.InitRestConnection(apiGroup, connectionUsecase)
	} else {
		logrus.Warnln("[REST] APP_BASIC_AUTH not set; admin API disabled, only the webhook endpoint is served")
	}

	// Graceful shutdown handler
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Reception of termination signal, shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
		StopApp()
	}()

	logrus.WithFields(logrus.Fields{
		"port":        cfg.App.Port,
		"target_chat": cfg.Relay.TargetChatID,
		"allow_list":  len(cfg.Relay.AllowedSenderIDs),
	}).Info("[REST] Relay listening")

	if err := app.Listen(":" + cfg.App.Port); err != nil {
		logrus.Fatalln("Failed to start REST server:", err)
	}
}
