package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/YounGuru03/FormulaSnap/internal/imaging"
	"github.com/YounGuru03/FormulaSnap/internal/ocr"
	"github.com/YounGuru03/FormulaSnap/internal/typst"
)

// ErrBusy is returned when a job is submitted while another is in flight.
var ErrBusy = errors.New("a recognition job is already in flight")

// ErrNoImage is returned when a job is submitted without a bitmap.
var ErrNoImage = errors.New("no image to process")

// Result carries the outputs of one completed job.
type Result struct {
	// LaTeX is the recognized formula as produced by the engine or fallback.
	LaTeX typst.Notation

	// Typst is the Typst rendition derived from LaTeX.
	Typst typst.Notation

	// Normalized is the preprocessed bitmap that was fed to recognition.
	Normalized image.Image

	// Engine names the recognizer that produced the text.
	Engine string

	// Fallback is true when the heuristic guess answered instead of an engine.
	Fallback bool

	// Duration is the wall time of the whole job.
	Duration time.Duration
}

// Hooks are the discrete notifications fired by Start. Any hook may be nil.
type Hooks struct {
	OnStart    func()
	OnComplete func(Result)
	OnError    func(error)
}

// Runner executes recognition jobs, at most one at a time.
type Runner struct {
	recognizer *ocr.Recognizer
	hooks      Hooks
	sem        *semaphore.Weighted
}

// NewRunner creates a Runner using engine for recognition. A nil engine
// means every job answers from the heuristic fallback.
func NewRunner(engine ocr.Engine, hooks Hooks) *Runner {
	return &Runner{
		recognizer: ocr.New(engine),
		hooks:      hooks,
		sem:        semaphore.NewWeighted(1),
	}
}

// Run executes one job synchronously and returns its result. It returns
// ErrBusy without doing any work if another job is in flight.
func (r *Runner) Run(ctx context.Context, img image.Image) (Result, error) {
	if !r.sem.TryAcquire(1) {
		return Result{}, ErrBusy
	}
	defer r.sem.Release(1)

	return r.process(ctx, img)
}

// Start executes one job on its own goroutine so the caller stays
// responsive, reporting through the Runner's hooks: OnStart when the job
// begins, then exactly one of OnComplete or OnError. Start itself returns
// immediately; ErrBusy means the job was rejected and no hook will fire.
func (r *Runner) Start(ctx context.Context, img image.Image) error {
	if !r.sem.TryAcquire(1) {
		return ErrBusy
	}

	go func() {
		defer r.sem.Release(1)

		if r.hooks.OnStart != nil {
			r.hooks.OnStart()
		}
		res, err := r.process(ctx, img)
		if err != nil {
			if r.hooks.OnError != nil {
				r.hooks.OnError(err)
			}
			return
		}
		if r.hooks.OnComplete != nil {
			r.hooks.OnComplete(res)
		}
	}()
	return nil
}

// process runs the three stages. A panic anywhere inside (a misbehaving
// engine, a malformed bitmap slipping past validation) is caught and
// surfaced as a single error so the Runner stays usable for a retry.
func (r *Runner) process(ctx context.Context, img image.Image) (res Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("recognition failed unexpectedly: %v", rec)
		}
	}()

	if img == nil {
		return Result{}, ErrNoImage
	}

	start := time.Now()
	normalized := imaging.Normalize(img)
	recognition := r.recognizer.Recognize(ctx, normalized)

	return Result{
		LaTeX:      recognition.Notation,
		Typst:      typst.ToTypst(recognition.Notation),
		Normalized: normalized,
		Engine:     recognition.Engine,
		Fallback:   recognition.Fallback,
		Duration:   time.Since(start),
	}, nil
}
