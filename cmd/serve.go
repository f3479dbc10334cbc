package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hanseo-dev/jasoseo-ai/internal/ai/gemini"
	"github.com/hanseo-dev/jasoseo-ai/internal/logger"
	"github.com/hanseo-dev/jasoseo-ai/internal/payment/toss"
	"github.com/hanseo-dev/jasoseo-ai/internal/secrets"
	"github.com/hanseo-dev/jasoseo-ai/internal/server"
	"github.com/hanseo-dev/jasoseo-ai/internal/session"
)

const defaultListen = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cover letter generation and payment API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default :8080)")

	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serve(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jasoseo-ai server", zap.String("version", version))

	geminiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.AI.Gemini.APIKey,
		File:  config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		logger.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or GEMINI_API_KEY_FILE, or the 'ai.gemini.api-key' key in the configuration file"),
		)
	}

	tossSecret, err := secrets.Load(secrets.Source{
		Name:  "toss secret key",
		Value: config.Payment.Toss.SecretKey,
		File:  config.Payment.Toss.SecretKeyFile,
	})
	if err != nil {
		logger.Fatal(
			"loading toss secret key",
			zap.Error(err),
			zap.String("hint", "set TOSS_SECRET_KEY or TOSS_SECRET_KEY_FILE, or the 'payment.toss.secret-key' key in the configuration file"),
		)
	}

	if config.Payment.Toss.ClientKey == "" {
		logger.Fatal("toss client key is required", zap.String("hint", "set TOSS_CLIENT_KEY or 'payment.toss.client-key'"))
	}

	generator, err := gemini.NewGenerator(ctx, geminiKey, config.AI.Gemini.Model)
	if err != nil {
		logger.Fatal("creating gemini generator", zap.Error(err))
	}

	writer := gemini.NewWriter(generator, logger, config.AI.Gemini.MaxLogLength)
	confirmer := toss.New(logger, tossSecret)
	sessions := session.NewStore(config.SessionTTL)

	listen := config.Listen
	if listen == "" {
		listen = defaultListen
	}

	srv := server.New(
		server.Config{Listen: listen, ClientKey: config.Payment.Toss.ClientKey},
		writer,
		confirmer,
		sessions,
		logger,
	)

	if err := srv.Run(); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}
