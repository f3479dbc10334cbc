package gemini

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/hanseo-dev/jasoseo-ai/internal/coverletter"
	"github.com/hanseo-dev/jasoseo-ai/internal/logger"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

const (
	providerName        = "gemini"
	defaultMaxLogLength = 200
)

// Writer turns a generation request into a cover letter: it composes the
// prompt, issues a single generation call and extracts the structured
// sections from the model output. A failed call or an unparseable reply is
// reported to the caller without retrying.
type Writer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewWriter(generator contentGenerator, log *zap.Logger, maxLogLength int) *Writer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Writer{
		generator: generator,
		logger:    logger.WithCommonFields(log, providerName, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (w *Writer) Write(ctx context.Context, req coverletter.Request) (*coverletter.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt := coverletter.BuildPrompt(req)

	w.logger.Debug("gemini generate content request",
		zap.String("company", req.Company),
		zap.String("position", req.Position),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, w.maxLogLen)),
	)

	raw, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate cover letter: %w", err)
	}

	w.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, w.maxLogLen)),
	)

	result, err := coverletter.Extract(raw)
	if err != nil {
		return nil, err
	}

	return result, nil
}
