package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hanseo-dev/jasoseo-ai/internal/ai/gemini"
	"github.com/hanseo-dev/jasoseo-ai/internal/coverletter"
	"github.com/hanseo-dev/jasoseo-ai/internal/logger"
	"github.com/hanseo-dev/jasoseo-ai/internal/secrets"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a cover letter interactively from the terminal",
	Run: func(_ *cobra.Command, _ []string) {
		generate()
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

// generate drives a single generation from interactive prompts. The
// operator runs this locally, so no paywall applies and all sections are
// printed in full.
func generate() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	geminiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.AI.Gemini.APIKey,
		File:  config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		logger.Fatal("loading gemini api key", zap.Error(err))
	}

	req, err := promptRequest()
	if err != nil {
		logger.Fatal("reading input", zap.Error(err))
	}

	generator, err := gemini.NewGenerator(ctx, geminiKey, config.AI.Gemini.Model)
	if err != nil {
		logger.Fatal("creating gemini generator", zap.Error(err))
	}

	writer := gemini.NewWriter(generator, logger, config.AI.Gemini.MaxLogLength)

	logger.Info("generating the cover letter",
		zap.String("company", req.Company),
		zap.String("position", req.Position),
	)

	result, err := writer.Write(ctx, req)
	if err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}

	fmt.Printf("\n## 지원동기\n\n%s\n", result.Motivation)
	fmt.Printf("\n## 성장과정\n\n%s\n", result.Growth)
	fmt.Printf("\n## 입사 후 포부\n\n%s\n", result.Vision)
}

func promptRequest() (coverletter.Request, error) {
	required := func(label string) func(string) error {
		return func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New(label + " is required")
			}
			return nil
		}
	}

	companyPrompt := promptui.Prompt{Label: "회사명", Validate: required("company")}
	company, err := companyPrompt.Run()
	if err != nil {
		return coverletter.Request{}, err
	}

	positionPrompt := promptui.Prompt{Label: "지원 직무", Validate: required("position")}
	position, err := positionPrompt.Run()
	if err != nil {
		return coverletter.Request{}, err
	}

	keywordsPrompt := promptui.Prompt{Label: "키워드 (선택, 쉼표로 구분)"}
	keywords, err := keywordsPrompt.Run()
	if err != nil {
		return coverletter.Request{}, err
	}

	return coverletter.Request{
		Company:  strings.TrimSpace(company),
		Position: strings.TrimSpace(position),
		Keywords: strings.TrimSpace(keywords),
	}, nil
}
