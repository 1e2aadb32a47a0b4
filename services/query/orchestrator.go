package query

import (
	"context"
	"sync"

	"fedvlm/api/models/constants"
	"fedvlm/api/models/constants/phase"
	"fedvlm/api/models/results"
)

// State is a snapshot of the orchestrator. Response is set only in the
// Success phase and Err only in the Error phase.
type State struct {
	Phase    constants.Phase
	Key      results.QueryKey
	Response *results.AggregateResponse
	Err      error
}

// Orchestrator drives one view's query through Idle -> Pending ->
// {Success, Error}. All state is keyed by query identity: resubmitting the
// current key is a no-op, a different key discards the previous outcome,
// and answers for a superseded submission are dropped.
type Orchestrator struct {
	client *Client

	mu         sync.Mutex
	state      State
	generation uint64
	done       chan struct{}
}

func NewOrchestrator(client *Client) *Orchestrator {
	done := make(chan struct{})
	close(done)
	return &Orchestrator{
		client: client,
		state:  State{Phase: phase.Idle},
		done:   done,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit starts resolving key and returns a channel closed once that
// submission settles or is superseded by another Submit or a Reset. ctx
// bounds how long this submission waits for its answer.
func (o *Orchestrator) Submit(ctx context.Context, key results.QueryKey) <-chan struct{} {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.Key == key && (o.state.Phase == phase.Pending || o.state.Phase == phase.Success) {
		return o.done
	}

	o.supersede()
	done := make(chan struct{})
	o.done = done

	if aggregate, ok := o.client.Cached(key); ok {
		o.state = State{Phase: phase.Success, Key: key, Response: &aggregate}
		close(done)
		return done
	}

	o.state = State{Phase: phase.Pending, Key: key}
	go o.resolve(ctx, key, o.generation, done)

	return done
}

// Run submits key and waits for it to settle or for ctx to end.
func (o *Orchestrator) Run(ctx context.Context, key results.QueryKey) State {
	select {
	case <-o.Submit(ctx, key):
	case <-ctx.Done():
	}
	return o.State()
}

// Reset returns to Idle; any in-flight answer is dropped.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.supersede()
	o.state = State{Phase: phase.Idle}
}

// supersede starts a new generation. The done channel is open exactly while
// the current submission is Pending, so a pending one is released here.
// Callers hold o.mu.
func (o *Orchestrator) supersede() {
	o.generation++
	if o.state.Phase == phase.Pending {
		close(o.done)
	}
}

func (o *Orchestrator) resolve(ctx context.Context, key results.QueryKey, generation uint64, done chan struct{}) {
	aggregate, err := o.client.Query(ctx, key)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.generation != generation {
		// already released by supersede
		return
	}
	defer close(done)
	if err != nil {
		o.state = State{Phase: phase.Error, Key: key, Err: err}
		return
	}
	o.state = State{Phase: phase.Success, Key: key, Response: &aggregate}
}
