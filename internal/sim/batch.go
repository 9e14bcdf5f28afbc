package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/rng"
)

// Options controls a batch. Battle i uses seed Seed+i, so a batch is
// reproducible regardless of Workers.
type Options struct {
	Battles int
	Workers int
	Seed    uint64
}

// Summary aggregates a batch.
type Summary struct {
	Battles   int            `json:"battles"`
	WinsA     int            `json:"wins_a"`
	WinsB     int            `json:"wins_b"`
	Draws     int            `json:"draws"`
	RoundCaps int            `json:"round_caps"`
	WinRateA  float64        `json:"win_rate_a"`
	AvgRounds float64        `json:"avg_rounds"`
	AvgEvents float64        `json:"avg_events"`
	Triggers  map[string]int `json:"triggers"`
}

type outcome struct {
	winner combat.Side
	reason combat.Reason
	rounds int
	events int
	counts map[combat.Trigger]int
}

// Run resolves the batch on a bounded worker group.
func Run(ctx context.Context, a, b combat.Combatant, opts Options) (Summary, error) {
	if opts.Battles <= 0 {
		return Summary{}, fmt.Errorf("battles must be positive, got %d", opts.Battles)
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	results := make([]outcome, opts.Battles)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i := range opts.Battles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := combat.Resolve(a, b, rng.New(opts.Seed+uint64(i)))
			if err != nil {
				return fmt.Errorf("battle %d: %w", i, err)
			}
			results[i] = summarize(res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	return aggregate(results), nil
}

func summarize(res combat.Result) outcome {
	o := outcome{
		winner: res.Winner,
		reason: res.Reason,
		rounds: res.Rounds,
		events: len(res.Events),
		counts: make(map[combat.Trigger]int),
	}
	for _, ev := range res.Events {
		for _, bit := range triggerBits {
			if ev.Triggers.Has(bit) {
				o.counts[bit]++
			}
		}
	}
	return o
}

var triggerBits = []combat.Trigger{
	combat.TriggerGuaranteedCrit,
	combat.TriggerDoubleAttack,
	combat.TriggerStun,
	combat.TriggerImmunity,
	combat.TriggerFirstStrike,
	combat.TriggerReflect,
	combat.TriggerLifesteal,
	combat.TriggerRecovery,
}

func aggregate(results []outcome) Summary {
	s := Summary{Battles: len(results), Triggers: make(map[string]int)}
	var rounds, events int
	for _, o := range results {
		switch o.winner {
		case combat.SideA:
			s.WinsA++
		case combat.SideB:
			s.WinsB++
		default:
			s.Draws++
		}
		if o.reason == combat.ReasonRoundCap {
			s.RoundCaps++
		}
		rounds += o.rounds
		events += o.events
		for bit, n := range o.counts {
			s.Triggers[bit.String()] += n
		}
	}
	n := float64(len(results))
	s.WinRateA = float64(s.WinsA) / n
	s.AvgRounds = float64(rounds) / n
	s.AvgEvents = float64(events) / n
	return s
}
