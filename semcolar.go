// Package semcolar provides a fluent API for turning an exam document
// into shuffled, print-ready variants.
//
// Basic usage:
//
//	results, err := semcolar.Open("prova.pdf").
//	    Seed(42).
//	    Versions("A", "B").
//	    OutputDir("out").
//	    Generate(ctx)
//	if err != nil {
//	    // handle error
//	}
//	for _, res := range results {
//	    fmt.Println(res.Version, res.ExamPath, res.KeyPath)
//	}
//
// For finer control the extract, segment, shuffle and render packages
// are also available directly.
package semcolar

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/rangel3l/sem-colar-system/answerkey"
	"github.com/rangel3l/sem-colar-system/extract"
	"github.com/rangel3l/sem-colar-system/model"
	"github.com/rangel3l/sem-colar-system/qrgen"
	"github.com/rangel3l/sem-colar-system/render"
	"github.com/rangel3l/sem-colar-system/rewrite"
	"github.com/rangel3l/sem-colar-system/segment"
	"github.com/rangel3l/sem-colar-system/shuffle"
)

// Pipeline is an immutable configuration chain: each method returns a
// new Pipeline, so partially configured pipelines can be reused.
type Pipeline struct {
	path string
	opts pipelineOptions
	err  error
}

// Open starts a pipeline over the document at path.
func Open(path string) *Pipeline {
	return &Pipeline{path: path, opts: defaultPipelineOptions()}
}

func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{path: p.path, opts: p.opts.clone(), err: p.err}
}

// Seed fixes the shuffle seed, making variant generation reproducible.
// Each version derives its own stream from this seed.
func (p *Pipeline) Seed(seed int64) *Pipeline {
	out := p.clone()
	out.opts.seed = seed
	out.opts.seedSet = true
	return out
}

// Versions sets the variant labels to generate, one exam per label.
func (p *Pipeline) Versions(labels ...string) *Pipeline {
	out := p.clone()
	if len(labels) == 0 {
		out.err = fmt.Errorf("semcolar: at least one version label is required")
		return out
	}
	out.opts.versions = append([]string(nil), labels...)
	return out
}

// OutputDir sets where generated exams and keys land.
func (p *Pipeline) OutputDir(dir string) *Pipeline {
	out := p.clone()
	out.opts.outputDir = dir
	return out
}

// Overrides supplies header identification fields applied at render
// time.
func (p *Pipeline) Overrides(ov model.Overrides) *Pipeline {
	out := p.clone()
	out.opts.overrides = ov
	return out
}

// Title sets the generated document title.
func (p *Pipeline) Title(title string) *Pipeline {
	out := p.clone()
	out.opts.title = title
	return out
}

// ShuffleQuestions toggles question-order shuffling. On by default.
func (p *Pipeline) ShuffleQuestions(on bool) *Pipeline {
	out := p.clone()
	out.opts.shuffleQ = on
	return out
}

// ShuffleAlternatives toggles per-question alternative shuffling. On by
// default.
func (p *Pipeline) ShuffleAlternatives(on bool) *Pipeline {
	out := p.clone()
	out.opts.shuffleAlt = on
	return out
}

// Rewrite routes every statement through the given rewriter before
// rendering, with the chosen failure policy.
func (p *Pipeline) Rewrite(rw rewrite.Rewriter, policy rewrite.FailurePolicy) *Pipeline {
	out := p.clone()
	out.opts.rewriter = rw
	out.opts.rewritePolicy = policy
	return out
}

// WorkDir uses a fixed scratch directory for extracted assets instead of
// a session temp dir, leaving the assets in place afterwards.
func (p *Pipeline) WorkDir(dir string) *Pipeline {
	out := p.clone()
	out.opts.workDir = dir
	return out
}

// Logger sets the pipeline logger. Defaults to slog.Default.
func (p *Pipeline) Logger(logger *slog.Logger) *Pipeline {
	out := p.clone()
	out.opts.logger = logger
	return out
}

// Result is one generated variant.
type Result struct {
	Version  string
	ExamPath string
	KeyPath  string
}

// Questions extracts and segments the document without generating any
// output, for callers that want to inspect or edit the question list.
func (p *Pipeline) Questions(ctx context.Context) ([]model.Question, error) {
	if p.err != nil {
		return nil, p.err
	}
	doc, sess, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Cleanup()
	result := segment.NewEngine().Segment(doc)
	return result.Questions, nil
}

// Generate runs the whole pipeline: extract, segment, optionally
// rewrite, then shuffle and render one exam per configured version.
func (p *Pipeline) Generate(ctx context.Context) ([]Result, error) {
	if p.err != nil {
		return nil, p.err
	}
	log := p.logger()

	doc, sess, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Cleanup()
	doc.Overrides = p.opts.overrides

	segmented := segment.NewEngine().Segment(doc)
	if len(segmented.Questions) == 0 {
		return nil, fmt.Errorf("semcolar: no questions found in %s", p.path)
	}
	log.Info("document segmented", "questions", len(segmented.Questions))

	questions := segmented.Questions
	if p.opts.rewriter != nil {
		questions, err = rewrite.Apply(ctx, p.opts.rewriter, questions, p.opts.rewritePolicy, log)
		if err != nil {
			return nil, err
		}
	}

	qr, err := qrgen.NewEncoder(sess.Dir())
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(render.Options{
		OutputDir: p.opts.outputDir,
		QR:        qr,
		Keys:      answerkey.NewWriter(),
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	examID := uuid.NewString()[:8]
	flags := render.SegmentFlags{
		HasOwnNumbering:  segmented.HasOwnNumbering,
		UsesQuestionWord: segmented.UsesQuestionWord,
	}

	results := make([]Result, 0, len(p.opts.versions))
	for i, version := range p.opts.versions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		variant := p.arrange(questions, int64(i))
		examPath, keyPath, err := renderer.Render(doc, variant, flags, render.ExamMeta{
			ExamID:  examID,
			Version: version,
			Title:   p.opts.title,
		})
		if err != nil {
			return nil, fmt.Errorf("rendering version %s: %w", version, err)
		}
		results = append(results, Result{Version: version, ExamPath: examPath, KeyPath: keyPath})
	}
	return results, nil
}

// arrange applies the configured shuffles for one version's stream.
func (p *Pipeline) arrange(questions []model.Question, stream int64) []model.Question {
	rng := p.rng(stream)
	switch {
	case p.opts.shuffleQ && p.opts.shuffleAlt:
		return shuffle.All(rng, questions)
	case p.opts.shuffleQ:
		return shuffle.Questions(rng, questions)
	case p.opts.shuffleAlt:
		out := make([]model.Question, len(questions))
		for i, q := range questions {
			out[i] = shuffle.Alternatives(rng, q)
		}
		return out
	default:
		out := make([]model.Question, len(questions))
		for i, q := range questions {
			out[i] = q.Clone()
		}
		return out
	}
}

func (p *Pipeline) rng(stream int64) *rand.Rand {
	if p.opts.seedSet {
		return rand.New(rand.NewSource(p.opts.seed + stream))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

func (p *Pipeline) load(ctx context.Context) (*model.SourceDocument, *extract.Session, error) {
	var sess *extract.Session
	var err error
	if p.opts.workDir != "" {
		sess = extract.SessionIn(p.opts.workDir, p.logger())
	} else {
		sess, err = extract.NewSession(p.logger())
		if err != nil {
			return nil, nil, err
		}
	}

	doc, err := extract.Extract(ctx, p.path, sess)
	if err != nil {
		sess.Cleanup()
		return nil, nil, err
	}
	return doc, sess, nil
}

func (p *Pipeline) logger() *slog.Logger {
	if p.opts.logger != nil {
		return p.opts.logger
	}
	return slog.Default()
}
