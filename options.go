package semcolar

import (
	"log/slog"

	"github.com/rangel3l/sem-colar-system/model"
	"github.com/rangel3l/sem-colar-system/rewrite"
)

// pipelineOptions holds the configuration accumulated by the fluent
// chain.
type pipelineOptions struct {
	seed       int64
	seedSet    bool
	outputDir  string
	versions   []string
	overrides  model.Overrides
	title      string
	shuffleAlt bool
	shuffleQ   bool

	rewriter      rewrite.Rewriter
	rewritePolicy rewrite.FailurePolicy

	workDir string
	logger  *slog.Logger
}

func defaultPipelineOptions() pipelineOptions {
	return pipelineOptions{
		outputDir:  "provas_geradas",
		versions:   []string{"A"},
		shuffleAlt: true,
		shuffleQ:   true,
	}
}

// clone deep-copies the options so each chain call yields an
// independent pipeline.
func (o pipelineOptions) clone() pipelineOptions {
	out := o
	out.versions = append([]string(nil), o.versions...)
	return out
}
