package battle

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/veyrin/skirmish/internal/domain/combat"
	"github.com/veyrin/skirmish/internal/errors"
	"github.com/veyrin/skirmish/internal/repositories/battles"
)

const persistTimeout = 5 * time.Second

type request struct {
	cmd   *Command
	reply chan response
}

type response struct {
	result *CommandResult
	err    error
}

// runner owns one battle. Every mutation flows through its single goroutine,
// so a validation read and the mutation it authorizes can never interleave
// with another command.
type runner struct {
	battleID string
	engine   *engine
	repo     battles.Repository

	requests chan request
	ticks    chan struct{}
	stop     chan struct{}
	done     chan struct{}

	subsMu sync.Mutex
	subs   map[int]chan *combat.Delta
	nextID int

	onEnded func(battleID string)
}

func newRunner(e *engine, repo battles.Repository, onEnded func(string)) *runner {
	return &runner{
		battleID: e.battle.ID,
		engine:   e,
		repo:     repo,
		requests: make(chan request),
		ticks:    make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		subs:     make(map[int]chan *combat.Delta),
		onEnded:  onEnded,
	}
}

// run is the battle's event loop. It returns when the battle ends or the
// manager shuts down.
func (r *runner) run() error {
	defer close(r.done)
	defer r.closeSubs()

	for {
		select {
		case req := <-r.requests:
			result, err := r.engine.Apply(req.cmd)
			if err == nil && result.Applied() {
				r.persistAndBroadcast(result.Delta)
			}
			req.reply <- response{result: result, err: err}

			if r.engine.battle.Ended() {
				r.finish()
				return nil
			}

		case <-r.ticks:
			if r.handleTick() {
				r.finish()
				return nil
			}

		case <-r.stop:
			return nil
		}
	}
}

// handleTick counts the turn timer down and forces the end of the turn at
// zero. Returns true when the battle ended.
func (r *runner) handleTick() bool {
	b := r.engine.battle
	if b.TurnTimerSeconds <= 0 || b.Ended() {
		return b.Ended()
	}

	b.TurnTimer--
	if b.TurnTimer > 0 {
		return false
	}

	if result := r.engine.ForceEndTurn(); result != nil {
		r.persistAndBroadcast(result.Delta)
	}
	return b.Ended()
}

// execute hands a command to the battle goroutine and waits for the answer
func (r *runner) execute(ctx context.Context, cmd *Command) (*CommandResult, error) {
	req := request{cmd: cmd, reply: make(chan response, 1)}

	select {
	case r.requests <- req:
	case <-r.done:
		return nil, errors.BattleEnded("battle " + r.battleID + " has ended")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case resp := <-req.reply:
		return resp.result, resp.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// tick nudges the timer without blocking; a pending nudge is enough
func (r *runner) tick() {
	select {
	case r.ticks <- struct{}{}:
	default:
	}
}

func (r *runner) subscribe() (<-chan *combat.Delta, func()) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()

	id := r.nextID
	r.nextID++
	ch := make(chan *combat.Delta, 8)
	r.subs[id] = ch

	cancel := func() {
		r.subsMu.Lock()
		defer r.subsMu.Unlock()
		if sub, ok := r.subs[id]; ok {
			delete(r.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (r *runner) persistAndBroadcast(delta *combat.Delta) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := r.repo.Update(ctx, r.engine.battle); err != nil {
		log.Printf("[BATTLE] failed to persist battle %s: %v", r.battleID, err)
	}

	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	for _, sub := range r.subs {
		// Slow subscribers miss deltas rather than stall the battle
		select {
		case sub <- delta:
		default:
		}
	}
}

func (r *runner) finish() {
	if r.onEnded != nil {
		r.onEnded(r.battleID)
	}
}

func (r *runner) closeSubs() {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	for id, sub := range r.subs {
		delete(r.subs, id)
		close(sub)
	}
}

func (r *runner) shutdown() {
	close(r.stop)
}
