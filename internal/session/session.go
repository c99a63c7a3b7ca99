package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/quote-studio/internal/model"
	"github.com/nurpe/quote-studio/internal/service"
	"github.com/nurpe/quote-studio/internal/styles"
)

type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateReady      State = "ready"
	StateFailed     State = "failed"
)

var (
	ErrSuperseded = errors.New("generation superseded by a newer request")
	ErrClosed     = errors.New("session closed")
)

type Generator interface {
	Check(q model.Quotation, style styles.Name) error
	Generate(ctx context.Context, q model.Quotation, style styles.Name) (*service.GenerateResult, error)
}

// Blob is a rendered document addressable by an opaque handle until it is
// replaced or the session closes.
type Blob struct {
	Handle      string
	FileName    string
	Content     []byte
	QuoteNumber string
	Style       styles.Name
	GeneratedAt time.Time
}

type Status struct {
	State       State       `json:"state"`
	Style       styles.Name `json:"style"`
	Seq         uint64      `json:"seq"`
	Handle      string      `json:"handle,omitempty"`
	FileName    string      `json:"file_name,omitempty"`
	QuoteNumber string      `json:"quote_number,omitempty"`
	GeneratedAt *time.Time  `json:"generated_at,omitempty"`
	Error       string      `json:"error,omitempty"`
	Err         error       `json:"-"`
}

// Session coordinates document generation for a single user. Only the
// most recent request may publish its result.
type Session struct {
	gen     Generator
	timeout time.Duration
	log     zerolog.Logger

	mu      sync.Mutex
	seq     uint64
	state   State
	style   styles.Name
	cancel  context.CancelFunc
	current *Blob
	err     error
	closed  bool

	wg sync.WaitGroup
}

func New(gen Generator, style styles.Name, timeout time.Duration, log zerolog.Logger) *Session {
	if !style.Valid() {
		style = styles.Modern
	}
	return &Session{
		gen:     gen,
		timeout: timeout,
		log:     log,
		state:   StateIdle,
		style:   style,
	}
}

// Generate starts rendering q in the given style and returns immediately.
// Validation errors are returned synchronously and leave the state alone.
// Any generation still in flight is cancelled and its result discarded.
func (s *Session) Generate(ctx context.Context, q model.Quotation, style styles.Name) (*Job, error) {
	if err := s.gen.Check(q, style); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	s.seq++
	seq := s.seq
	if s.cancel != nil {
		s.cancel()
	}

	// the job outlives the request that started it
	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	if s.timeout > 0 {
		var cancelTimeout context.CancelFunc
		jobCtx, cancelTimeout = context.WithTimeout(jobCtx, s.timeout)
		parent := cancel
		cancel = func() {
			cancelTimeout()
			parent()
		}
	}
	s.cancel = cancel
	s.state = StateGenerating
	s.style = style
	s.err = nil

	job := newJob(seq, style)
	s.wg.Add(1)
	go s.run(jobCtx, cancel, job, q.Clone())

	s.log.Debug().Uint64("seq", seq).Str("style", string(style)).Msg("generation started")
	return job, nil
}

func (s *Session) run(ctx context.Context, cancel context.CancelFunc, job *Job, q model.Quotation) {
	defer s.wg.Done()
	defer cancel()

	res, err := s.gen.Generate(ctx, q, job.Style)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || job.Seq != s.seq {
		s.log.Debug().Uint64("seq", job.Seq).Msg("discarding superseded generation")
		job.finish(nil, ErrSuperseded)
		return
	}
	s.cancel = nil

	if err != nil {
		s.state = StateFailed
		s.err = err
		s.log.Warn().Err(err).Uint64("seq", job.Seq).Str("style", string(job.Style)).Msg("generation failed")
		job.finish(nil, err)
		return
	}

	blob := &Blob{
		Handle:      uuid.NewString(),
		FileName:    res.FileName,
		Content:     res.Content,
		QuoteNumber: res.QuoteNumber,
		Style:       res.Style,
		GeneratedAt: res.GeneratedAt,
	}
	if s.current != nil {
		s.log.Debug().Str("handle", s.current.Handle).Msg("releasing document")
	}
	s.current = blob
	s.state = StateReady
	s.err = nil
	job.finish(blob, nil)
}

// SelectStyle records the style for the next generation. When a document
// exists or one is being generated, q is re-rendered in the new style.
func (s *Session) SelectStyle(ctx context.Context, q model.Quotation, style styles.Name) (*Job, error) {
	if !style.Valid() {
		return nil, fmt.Errorf("%w: %w: %q", service.ErrInvalidInput, styles.ErrUnknownStyle, style)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	rerender := s.current != nil || s.state == StateGenerating
	s.style = style
	s.mu.Unlock()

	if !rerender {
		return nil, nil
	}
	return s.Generate(ctx, q, style)
}

// Dismiss clears a failure notice. It returns the resulting state.
func (s *Session) Dismiss() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateFailed {
		s.err = nil
		if s.current != nil {
			s.state = StateReady
		} else {
			s.state = StateIdle
		}
	}
	return s.state
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{State: s.state, Style: s.style, Seq: s.seq, Err: s.err}
	if s.err != nil {
		st.Error = s.err.Error()
	}
	if s.current != nil {
		generated := s.current.GeneratedAt
		st.Handle = s.current.Handle
		st.FileName = s.current.FileName
		st.QuoteNumber = s.current.QuoteNumber
		st.GeneratedAt = &generated
	}
	return st
}

func (s *Session) Style() styles.Name {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.style
}

// Current returns the live document, if any.
func (s *Session) Current() (*Blob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != nil
}

// Blob looks a document up by handle. Released handles are not found.
func (s *Session) Blob(handle string) (*Blob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.Handle != handle {
		return nil, false
	}
	return s.current, true
}

// Close cancels any generation in flight, releases the live document and
// waits for background work to finish.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.current = nil
	s.state = StateIdle
	s.mu.Unlock()

	s.wg.Wait()
}
