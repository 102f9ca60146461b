package utils

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoadConfig reads a .env file (when present) and wires viper to the
// process environment. Called once from cmd init, before flag parsing;
// core/config resolves every setting through viper afterwards.
func LoadConfig(path string) {
	_ = godotenv.Load(path + "/.env")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}
