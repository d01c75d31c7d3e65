package nav

import (
	"context"
	"sync"

	"github.com/racerready/racerready-manager-go/log"
)

type (
	// Panel is one screen within a stack; exactly one is active.
	Panel string
	// Trigger names a user action that may move the stack.
	Trigger string

	// Edge is one documented transition. Anything not listed is a no-op.
	Edge struct {
		From    Panel
		Trigger Trigger
		To      Panel
	}

	// EnterHook runs after a panel becomes active (e.g. list reloads).
	EnterHook func(ctx context.Context)

	// Selection is the per-stack context record replacing the original
	// app's ambient globals (current track, day, set, tire, build).
	Selection struct {
		TrackID   string
		DayID     string
		TireSetID string
		TireID    string
		EventID   string
		BuildID   string
		Category  string
	}
)

// Stack is a navigation state machine over a fixed set of panels. The
// transition table and the back edges are data; undocumented triggers
// leave the stack untouched.
type Stack struct {
	mu         sync.Mutex
	name       string
	current    Panel
	edges      map[Panel]map[Trigger]Panel
	back       map[Panel]Panel
	onEnter    map[Panel]EnterHook
	generation uint64
	selection  Selection
	log        *log.Logger
}

type Option func(*Stack)

func WithLogger(logger *log.Logger) Option {
	return func(s *Stack) { s.log = logger }
}

func WithEnterHook(panel Panel, hook EnterHook) Option {
	return func(s *Stack) { s.onEnter[panel] = hook }
}

func NewStack(
	name string, initial Panel, edges []Edge, back map[Panel]Panel, opts ...Option,
) *Stack {
	s := &Stack{
		name:    name,
		current: initial,
		edges:   map[Panel]map[Trigger]Panel{},
		back:    back,
		onEnter: map[Panel]EnterHook{},
		log:     log.Default().Named("nav." + name),
	}
	for _, e := range edges {
		byTrigger, ok := s.edges[e.From]
		if !ok {
			byTrigger = map[Trigger]Panel{}
			s.edges[e.From] = byTrigger
		}
		byTrigger[e.Trigger] = e.To
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stack) Current() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Fire applies trigger to the active panel. It reports whether a
// documented edge was taken; unknown triggers are no-ops.
func (s *Stack) Fire(ctx context.Context, trigger Trigger) bool {
	s.mu.Lock()
	next, ok := s.edges[s.current][trigger]
	if !ok {
		s.mu.Unlock()
		s.log.Debug("ignoring trigger without edge",
			log.String("panel", string(s.current)),
			log.String("trigger", string(trigger)))
		return false
	}
	s.activate(next)
	hook := s.onEnter[next]
	s.mu.Unlock()
	if hook != nil {
		hook(ctx)
	}
	return true
}

// Back returns to the panel's encoded parent. Panels without a back
// edge (the stack roots) stay put.
func (s *Stack) Back(ctx context.Context) bool {
	s.mu.Lock()
	parent, ok := s.back[s.current]
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.activate(parent)
	hook := s.onEnter[parent]
	s.mu.Unlock()
	if hook != nil {
		hook(ctx)
	}
	return true
}

// callers hold s.mu
func (s *Stack) activate(next Panel) {
	s.log.Debug("panel change",
		log.String("from", string(s.current)),
		log.String("to", string(next)))
	s.current = next
	s.generation++
}

// Generation identifies the current render cycle. A fetch started under
// an older generation must not paint its result (stale render guard).
func (s *Stack) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *Stack) StillCurrent(generation uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == generation
}

func (s *Stack) Select(update func(*Selection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	update(&s.selection)
}

func (s *Stack) Selection() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}
