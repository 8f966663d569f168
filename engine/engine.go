// Package engine orchestrates the whole variant-processing pipeline: it
// owns the Network and the single deterministic PRNG, applies each variant
// in numeric order, drives the solver, and resets the model before moving
// to the next variant (§5).
package engine

import (
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/metrix-opf/metrix/config"
	"github.com/metrix-opf/metrix/diedata"
	"github.com/metrix-opf/metrix/network"
	"github.com/metrix-opf/metrix/parade"
	"github.com/metrix-opf/metrix/solver"
	"github.com/metrix-opf/metrix/variant"
)

// Engine is the single-threaded cooperative variant-processing loop of §5.
type Engine struct {
	Network *network.Network
	cfg     *config.Configuration
	rng     *rand.Rand
	cache   *solver.Cache
	log     zerolog.Logger
}

// New constructs the network from cfg/data, wires remedial-action parades
// from paradeEntries (may be nil), and seeds the engine's single
// deterministic PRNG (§5: fixed seed 1 unless overridden for testing).
func New(cfg *config.Configuration, data *diedata.NetworkData, paradeEntries []parade.Entry, log zerolog.Logger) (*Engine, error) {
	n, err := network.New(cfg, data, log)
	if err != nil {
		return nil, err
	}
	if len(paradeEntries) > 0 {
		if err := parade.Build(n, paradeEntries, log); err != nil {
			return nil, err
		}
	}
	return &Engine{
		Network: n,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.EffectiveRandomSeed())),
		cache:   solver.NewCache(),
		log:     log,
	}, nil
}

// VariantOutcome is the per-variant result carried back to the caller's
// loop (§7: "variant errors invalidate only that variant... the caller's
// loop continues").
type VariantOutcome struct {
	Number int
	Result *solver.Result
	Err    error
}

// ProcessVariants applies variants in order starting at firstVariant for at
// most count variants (§5 ordering), resetting the model to base between
// each. Construction errors are not representable here, since construction
// already happened in New; only variant/solver errors appear per outcome.
func (e *Engine) ProcessVariants(variants []*variant.Variant, firstVariant, count int) []VariantOutcome {
	var outcomes []VariantOutcome
	processed := 0
	for _, v := range variants {
		if v.Number < firstVariant {
			continue
		}
		if processed >= count {
			break
		}
		processed++
		outcomes = append(outcomes, e.ProcessVariant(v))
	}
	return outcomes
}

// ProcessVariant applies one variant, solves the base case, and resets the
// model back to its shadow state before returning (§4.4, §5).
func (e *Engine) ProcessVariant(v *variant.Variant) VariantOutcome {
	defer variant.Reset(e.Network)

	if err := variant.Apply(e.Network, v, e.rng); err != nil {
		e.log.Warn().Err(err).Int("variant", v.Number).Msg("variant invalidated")
		return VariantOutcome{Number: v.Number, Err: err}
	}

	result, err := solver.SolveBaseCase(e.Network, e.cache)
	if err != nil {
		e.log.Warn().Err(err).Int("variant", v.Number).Msg("solve failed")
		return VariantOutcome{Number: v.Number, Err: err}
	}

	return VariantOutcome{Number: v.Number, Result: result}
}
