package ai

import (
	"context"

	"github.com/hanseo-dev/jasoseo-ai/internal/coverletter"
)

// Writer produces a complete cover letter for a validated request.
type Writer interface {
	Write(ctx context.Context, req coverletter.Request) (*coverletter.Result, error)
}
