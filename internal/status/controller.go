package status

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oukeidos/tecta/internal/apperrors"
	"github.com/oukeidos/tecta/internal/logger"
	"github.com/oukeidos/tecta/internal/translation"
)

// CopiedResetDelay is how long the copied indicator stays on.
const CopiedResetDelay = 2 * time.Second

// Clipboard is the write-only clipboard surface the controller needs.
// fyne.Clipboard satisfies it.
type Clipboard interface {
	SetContent(content string)
}

// Snapshot is a consistent copy of the controller's view state.
type Snapshot struct {
	Input  string
	State  State
	Copied bool
}

// CanSubmit reports whether a submit from this snapshot would be accepted.
func (s Snapshot) CanSubmit() bool {
	_, ok := Submit(s.State, s.Input)
	return ok
}

type Option func(*Controller)

// WithClipboard sets the clipboard used by Copy.
func WithClipboard(c Clipboard) Option {
	return func(ctl *Controller) { ctl.clipboard = c }
}

// WithOnChange registers a callback run after every state change. It is
// called without the controller lock held, from whichever goroutine made the change.
func WithOnChange(fn func(Snapshot)) Option {
	return func(ctl *Controller) { ctl.onChange = fn }
}

// WithAfterFunc replaces time.AfterFunc for the copied-indicator reset.
func WithAfterFunc(fn func(time.Duration, func())) Option {
	return func(ctl *Controller) { ctl.afterFunc = fn }
}

// Controller drives State from user actions and translator outcomes.
type Controller struct {
	translator translation.Translator
	clipboard  Clipboard
	onChange   func(Snapshot)
	afterFunc  func(time.Duration, func())

	mu     sync.Mutex
	input  string
	state  State
	copied bool
	// gen identifies the current submission; Clear and Submit bump it so
	// late outcomes of superseded requests are dropped.
	gen     uint64
	copyGen uint64
}

func NewController(t translation.Translator, opts ...Option) *Controller {
	c := &Controller{
		translator: t,
		state:      Clear(),
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{Input: c.input, State: c.state, Copied: c.copied}
}

func (c *Controller) notify(s Snapshot) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

// SetInput replaces the input text. It never touches State.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	if c.input == text {
		c.mu.Unlock()
		return
	}
	c.input = text
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Submit starts a translation of the current input. It returns false, and
// issues no call, when the input is blank or a request is in flight. The
// returned channel is closed once the outcome has been applied or dropped.
func (c *Controller) Submit(ctx context.Context) (<-chan struct{}, bool) {
	c.mu.Lock()
	next, ok := Submit(c.state, c.input)
	if !ok {
		c.mu.Unlock()
		return nil, false
	}
	c.state = next
	c.copied = false
	c.gen++
	gen, input := c.gen, c.input
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)

	log := logger.ForRequest(logger.NewRequestID())
	done := make(chan struct{})
	go func() {
		defer close(done)
		resp, err := c.run(ctx, log, input)
		c.finish(gen, log, resp, err)
	}()
	return done, true
}

func (c *Controller) run(ctx context.Context, log *slog.Logger, input string) (resp *translation.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("translator panicked", "panic", fmt.Sprint(r))
			resp, err = nil, apperrors.New(apperrors.KindTransient, DefaultErrorMessage, fmt.Errorf("translator panic: %v", r))
		}
	}()
	log.Info("Translation started", "chars", utf8.RuneCountInString(input))
	started := time.Now()
	resp, err = c.translator.Translate(ctx, input)
	log.Debug("Translation finished", "elapsed", time.Since(started).Round(time.Millisecond))
	return resp, err
}

func (c *Controller) finish(gen uint64, log *slog.Logger, resp *translation.Response, err error) {
	c.mu.Lock()
	if gen != c.gen || c.state.Status != Loading {
		c.mu.Unlock()
		log.Debug("Dropping outcome of superseded request")
		return
	}
	if err == nil && resp == nil {
		err = apperrors.EmptyResponse(nil)
	}
	if err != nil {
		c.state = Reject(c.state, apperrors.PublicMessage(err))
	} else {
		c.state = Resolve(c.state, resp)
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if snap.State.Status == Error {
		kind, _ := apperrors.KindOf(err)
		log.Warn("Translation failed", "kind", string(kind), "error", snap.State.Err)
	} else {
		log.Info("Translation succeeded", "terms", len(snap.State.Data.TechnicalTerms))
	}
	c.notify(snap)
}

// Clear discards input, data, error and the copied flag.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.input = ""
	c.state = Clear()
	c.copied = false
	c.gen++
	c.copyGen++
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Copy writes the translated text to the clipboard and raises the copied
// indicator for CopiedResetDelay. It returns false outside the success state.
func (c *Controller) Copy() bool {
	c.mu.Lock()
	if c.state.Status != Success || c.clipboard == nil {
		c.mu.Unlock()
		return false
	}
	text := c.state.Data.TranslatedText
	c.copied = true
	c.copyGen++
	copyGen := c.copyGen
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.clipboard.SetContent(text)
	c.notify(snap)

	c.afterFunc(CopiedResetDelay, func() {
		c.mu.Lock()
		if copyGen != c.copyGen || !c.copied {
			c.mu.Unlock()
			return
		}
		c.copied = false
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.notify(snap)
	})
	return true
}
