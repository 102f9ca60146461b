package cmd

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Manage the webhook registration with the Telegram Bot API",
}

var webhookSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Register the public webhook URL with Telegram",
	Run:   webhookSet,
}

var webhookDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the registered webhook",
	Run:   webhookDelete,
}

var webhookInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the currently registered webhook",
	Run:   webhookInfo,
}

func init() {
	webhookSetCmd.Flags().String("url", "", "Public HTTPS URL Telegram should deliver updates to (required)")
	_ = webhookSetCmd.MarkFlagRequired("url")

	webhookCmd.AddCommand(webhookSetCmd, webhookDeleteCmd, webhookInfoCmd)
	rootCmd.AddCommand(webhookCmd)
}

func webhookContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func webhookSet(cmd *cobra.Command, _ []string) {
	if cfg.Telegram.BotToken == "" {
		logrus.Fatalln("TELEGRAM_BOT_TOKEN is required")
	}
	initTelegramClient()

	url, _ := cmd.Flags().GetString("url")

	ctx, cancel := webhookContext()
	defer cancel()

	if err := telegramClient.SetWebhook(ctx, url); err != nil {
		logrus.Fatalln("Failed to set webhook:", err)
	}
	logrus.WithField("url", url).Info("Webhook registered")
}

func webhookDelete(_ *cobra.Command, _ []string) {
	if cfg.Telegram.BotToken == "" {
		logrus.Fatalln("TELEGRAM_BOT_TOKEN is required")
	}
	initTelegramClient()

	ctx, cancel := webhookContext()
	defer cancel()

	if err := telegramClient.DeleteWebhook(ctx); err != nil {
		logrus.Fatalln("Failed to delete webhook:", err)
	}
	logrus.Info("Webhook removed")
}

func webhookInfo(_ *cobra.Command, _ []string) {
	if cfg.Telegram.BotToken == "" {
		logrus.Fatalln("TELEGRAM_BOT_TOKEN is required")
	}
	initTelegramClient()

	ctx, cancel := webhookContext()
	defer cancel()

	info, err := telegramClient.GetWebhookInfo(ctx)
	if err != nil {
		logrus.Fatalln("Failed to get webhook info:", err)
	}

	fields := logrus.Fields{
		"url":             info.URL,
		"pending_updates": info.PendingUpdateCount,
	}
	if info.LastErrorMessage != "" {
		fields["last_error"] = info.LastErrorMessage
	}
	logrus.WithFields(fields).Info("Webhook info")
}
