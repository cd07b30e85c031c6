// Package orchestrator drives one generation run at a time through
// IDLE -> ANALYZING -> GENERATING_IMAGE -> COMPLETED, or into ERROR when
// extraction fails. It exclusively owns the current result; callers only
// ever receive copies.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"infographic/internal/domain"
	"infographic/internal/infra"
	"infographic/internal/layout"
	"infographic/internal/providers/background"
	"infographic/internal/providers/extract"
)

// Snapshot is a point-in-time copy of the orchestrator state.
type Snapshot struct {
	State      domain.State        `json:"state"`
	Result     *domain.Infographic `json:"result,omitempty"`
	Background domain.Background   `json:"background"`
	Error      string              `json:"error,omitempty"`
	RunID      uint64              `json:"runId"`
}

// Observer receives a snapshot after every state transition. Deliveries are
// serialised and never go backwards: a transition overtaken by a later one
// before it could be delivered is dropped. The observer may read Snapshot but
// must not start a run.
type Observer func(Snapshot)

// Options wires the orchestrator collaborators.
type Options struct {
	Extractor   extract.Extractor
	Synthesizer background.Synthesizer
	Selector    *layout.Selector
	Logger      *infra.Logger
	Observer    Observer
}

// Orchestrator sequences extraction, layout selection and background synthesis.
type Orchestrator struct {
	extractor   extract.Extractor
	synthesizer background.Synthesizer
	selector    *layout.Selector
	logger      *infra.Logger
	observer    Observer

	mu         sync.Mutex
	state      domain.State
	result     *domain.Infographic
	background domain.Background
	lastErr    error
	lastText   string
	lastImages []domain.SourceImage
	hasInput   bool
	run        uint64
	seq        uint64
	cancel     context.CancelFunc

	notifyMu sync.Mutex
	notified uint64
}

// New builds an idle orchestrator. A nil synthesizer disables backgrounds and
// a nil selector draws from the global random source.
func New(opts Options) *Orchestrator {
	synth := opts.Synthesizer
	if synth == nil {
		synth = background.Disabled{}
	}
	selector := opts.Selector
	if selector == nil {
		selector = layout.NewSelector(nil)
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.NopLogger()
	}
	return &Orchestrator{
		extractor:   opts.Extractor,
		synthesizer: synth,
		selector:    selector,
		logger:      logger,
		observer:    opts.Observer,
		state:       domain.StateIdle,
	}
}

// Generate runs one extraction followed by one background synthesis.
// Blank input is refused before anything changes. A run overtaken by a newer
// one returns domain.ErrSuperseded and leaves no trace in the state.
func (o *Orchestrator) Generate(ctx context.Context, text string, images []domain.SourceImage) error {
	if err := extract.ValidateInput(text, images); err != nil {
		o.logger.Debug().Err(err).Msg("orchestrator: refused empty input")
		return err
	}

	run, runCtx, cancel := o.begin(ctx, text, images)
	defer cancel()

	data, err := o.extractor.Extract(runCtx, text, images)
	if err == nil && data == nil {
		err = fmt.Errorf("%w: empty outline", domain.ErrExtraction)
	}
	if err != nil {
		return o.fail(run, err)
	}

	result, err := o.publish(run, *data)
	if err != nil {
		return err
	}

	bg := o.synthesizer.Synthesize(runCtx, result.Topic, result.Palette)
	return o.complete(run, bg)
}

// Regenerate repeats the last run with the same input: a fresh extraction,
// layout and background.
func (o *Orchestrator) Regenerate(ctx context.Context) error {
	o.mu.Lock()
	text, images, ok := o.lastText, o.lastImages, o.hasInput
	o.mu.Unlock()
	if !ok {
		return domain.ErrNoPreviousInput
	}
	return o.Generate(ctx, text, images)
}

// Relayout draws a new layout for the current result without contacting
// any backend. Topic and points stay untouched.
func (o *Orchestrator) Relayout() (domain.Layout, error) {
	o.mu.Lock()
	if o.result == nil {
		o.mu.Unlock()
		return "", domain.ErrNoResult
	}
	next := o.result.WithLayout(o.selector.Pick())
	o.result = &next
	snap, seq := o.snapshotLocked(), o.nextSeqLocked()
	o.mu.Unlock()

	o.logger.Info().Uint64("run", snap.RunID).Str("layout", string(next.Layout)).Msg("orchestrator: layout redrawn")
	o.notify(snap, seq)
	return next.Layout, nil
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) begin(ctx context.Context, text string, images []domain.SourceImage) (uint64, context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(ctx)

	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.run++
	run := o.run
	o.cancel = cancel
	o.state = domain.StateAnalyzing
	o.result = nil
	o.background = domain.NoBackground
	o.lastErr = nil
	o.lastText = text
	o.lastImages = append([]domain.SourceImage(nil), images...)
	o.hasInput = true
	snap, seq := o.snapshotLocked(), o.nextSeqLocked()
	o.mu.Unlock()

	o.logger.Info().Uint64("run", run).Int("images", len(images)).Msg("orchestrator: analyzing")
	o.notify(snap, seq)
	return run, runCtx, cancel
}

func (o *Orchestrator) fail(run uint64, err error) error {
	o.mu.Lock()
	if run != o.run {
		o.mu.Unlock()
		return domain.ErrSuperseded
	}
	o.state = domain.StateError
	o.result = nil
	o.background = domain.NoBackground
	o.lastErr = err
	o.cancel = nil
	snap, seq := o.snapshotLocked(), o.nextSeqLocked()
	o.mu.Unlock()

	o.logger.Error().Err(err).Uint64("run", run).Msg("orchestrator: extraction failed")
	o.notify(snap, seq)
	return err
}

func (o *Orchestrator) publish(run uint64, data domain.Infographic) (domain.Infographic, error) {
	o.mu.Lock()
	if run != o.run {
		o.mu.Unlock()
		return domain.Infographic{}, domain.ErrSuperseded
	}
	result := data.WithLayout(o.selector.Pick())
	o.result = &result
	o.state = domain.StateGeneratingImage
	snap, seq := o.snapshotLocked(), o.nextSeqLocked()
	o.mu.Unlock()

	o.logger.Info().
		Uint64("run", run).
		Str("topic", result.Topic).
		Int("points", len(result.Points)).
		Str("layout", string(result.Layout)).
		Msg("orchestrator: outline ready")
	o.notify(snap, seq)
	return result.Clone(), nil
}

func (o *Orchestrator) complete(run uint64, bg domain.Background) error {
	o.mu.Lock()
	if run != o.run {
		o.mu.Unlock()
		return domain.ErrSuperseded
	}
	o.background = bg
	o.state = domain.StateCompleted
	o.cancel = nil
	snap, seq := o.snapshotLocked(), o.nextSeqLocked()
	o.mu.Unlock()

	o.logger.Info().Uint64("run", run).Bool("background", bg.Present()).Msg("orchestrator: completed")
	o.notify(snap, seq)
	return nil
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	snap := Snapshot{
		State:      o.state,
		Background: o.background,
		RunID:      o.run,
	}
	if o.result != nil {
		c := o.result.Clone()
		snap.Result = &c
	}
	if o.lastErr != nil {
		snap.Error = domain.UserMessage(o.lastErr)
	}
	return snap
}

func (o *Orchestrator) nextSeqLocked() uint64 {
	o.seq++
	return o.seq
}

func (o *Orchestrator) notify(snap Snapshot, seq uint64) {
	if o.observer == nil {
		return
	}
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()
	if seq <= o.notified {
		return
	}
	o.notified = seq
	o.observer(snap)
}

// IsSuperseded reports whether err only means a newer run took over.
func IsSuperseded(err error) bool {
	return errors.Is(err, domain.ErrSuperseded)
}
