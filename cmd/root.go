package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "jasoseo-ai"
)

type Config struct {
	Listen     string         `mapstructure:"listen"`
	SessionTTL time.Duration  `mapstructure:"session-ttl"`
	AI         *AIConfig      `mapstructure:"ai"`
	Payment    *PaymentConfig `mapstructure:"payment"`
}

type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type PaymentConfig struct {
	Toss *TossConfig `mapstructure:"toss"`
}

type TossConfig struct {
	// ClientKey is publishable and handed to the browser SDK.
	ClientKey string `mapstructure:"client-key"`
	// SecretKey authenticates server-to-server confirmation calls and must
	// never reach a client.
	SecretKey     string `mapstructure:"secret-key"`
	SecretKeyFile string `mapstructure:"secret-key-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jasoseo-ai generates Korean cover letters with Gemini and sells access via Toss Payments",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"ai.gemini.api-key":            "GEMINI_API_KEY",
		"ai.gemini.api-key-file":       "GEMINI_API_KEY_FILE",
		"payment.toss.client-key":      "TOSS_CLIENT_KEY",
		"payment.toss.secret-key":      "TOSS_SECRET_KEY",
		"payment.toss.secret-key-file": "TOSS_SECRET_KEY_FILE",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jasoseo-ai.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is needed only for the serve and generate commands. Without a
	// config file the environment variables still apply.
	if serveCmd.CalledAs() == "" && generateCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Payment == nil {
		config.Payment = &PaymentConfig{}
	}
	if config.Payment.Toss == nil {
		config.Payment.Toss = &TossConfig{}
	}

	// Unmarshal does not see env-only keys, so fill them in explicitly.
	if config.AI.Gemini.APIKey == "" {
		config.AI.Gemini.APIKey = viper.GetString("ai.gemini.api-key")
	}
	if config.AI.Gemini.APIKeyFile == "" {
		config.AI.Gemini.APIKeyFile = viper.GetString("ai.gemini.api-key-file")
	}
	if config.Payment.Toss.ClientKey == "" {
		config.Payment.Toss.ClientKey = viper.GetString("payment.toss.client-key")
	}
	if config.Payment.Toss.SecretKey == "" {
		config.Payment.Toss.SecretKey = viper.GetString("payment.toss.secret-key")
	}
	if config.Payment.Toss.SecretKeyFile == "" {
		config.Payment.Toss.SecretKeyFile = viper.GetString("payment.toss.secret-key-file")
	}

	return config, nil
}
