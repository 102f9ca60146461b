package config

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// chatIDPattern matches signed decimal chat/sender identifiers.
var chatIDPattern = regexp.MustCompile(`^-?\d{1,20}$`)

// GetAllSettings returns a map of the dynamic settings currently loaded,
// for the debug/status surface.
func GetAllSettings() map[string]any {
	if Global == nil {
		return map[string]any{}
	}
	return map[string]any{
		"app_version":          Global.App.Version,
		"app_debug":            Global.App.Debug,
		"relay_target_chat_id": Global.Relay.TargetChatID,
		"relay_allow_list_len": len(Global.Relay.AllowedSenderIDs),
		"relay_audit_log":      Global.Relay.AuditLog,
		"telegram_timeout_s":   Global.Telegram.TimeoutSeconds,
		"db_driver":            Global.Database.Driver,
	}
}

// Helpers. All reads go through viper so explicit viper.Set overrides and
// AutomaticEnv resolve with the same precedence.
func getEnv(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := viper.GetString(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := viper.GetString(key); v != "" {
		vLower := strings.ToLower(v)
		return vLower == "1" || vLower == "true" || vLower == "yes" || vLower == "on"
	}
	return fallback
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
