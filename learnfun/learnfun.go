// This file is part of Playfun.
//
// Playfun is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Playfun is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Playfun.  If not, see <https://www.gnu.org/licenses/>.

package learnfun

import (
	"fmt"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/emulator"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/fm2"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/logger"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/motifs"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/objectives"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/random"
)

// enumeration budgets. the whole playthrough gets the deepest search;
// random slices find objectives that only hold locally (a level counter
// resets, a boss's health only exists during the fight).
const (
	wholeSpanLimit  = 100
	numSlices       = 10
	sliceLimit      = 20
	decreasingLimit = 50
)

// Options for a learning run.
type Options struct {
	// game name. output files are <game>.objectives, <game>.motifs and
	// <game>-learnfun.svg
	Game string

	// the example movie to learn from
	MovieFile string

	// seed for the enumeration's random stream
	Seed string
}

// sentinel error patterns.
const (
	ErrLearn = "learnfun: %v"
)

// Learn plays the example movie through the emulator, derives weighted
// objectives from the memory trace and a motif bank from the inputs, and
// writes all three artifacts. The emulator must be initialized and at
// power-on.
func Learn(opts Options) error {
	if !emulator.IsInitialized() {
		return curated.Errorf(ErrLearn, "emulator is not initialized")
	}

	inputs, err := fm2.ReadInputs(opts.MovieFile)
	if err != nil {
		return curated.Errorf(ErrLearn, err)
	}
	if len(inputs) < motifs.Length {
		return curated.Errorf(ErrLearn, "movie is too short to learn from")
	}

	logger.Logf("learnfun", "playing %d frame movie", len(inputs))

	memories := make([][]byte, 0, len(inputs))
	for _, input := range inputs {
		emulator.Step(input)
		memories = append(memories, emulator.GetMemory())
	}

	seed := opts.Seed
	if seed == "" {
		seed = "learnfun"
	}
	rnd := random.NewStream(seed)

	objs := deriveObjectives(memories, rnd)
	if objs.Size() == 0 {
		return curated.Errorf(ErrLearn, "no objectives found in movie")
	}
	logger.Logf("learnfun", "derived %d objectives", objs.Size())

	if err := objs.SaveToFile(opts.Game + ".objectives"); err != nil {
		return curated.Errorf(ErrLearn, err)
	}

	bank := motifs.FromInputs(inputs)
	logger.Logf("learnfun", "derived %d motifs", bank.Size())
	if err := bank.SaveToFile(opts.Game + ".motifs"); err != nil {
		return curated.Errorf(ErrLearn, err)
	}

	if err := objs.SaveSVG(memories, opts.Game+"-learnfun.svg"); err != nil {
		return curated.Errorf(ErrLearn, err)
	}

	return nil
}

// deriveObjectives enumerates candidate orderings over the whole
// playthrough, over random slices of it, and over the inverted memories
// for decreasing quantities. the deduplicated set is weighted by the
// example and pruned of objectives that never help.
func deriveObjectives(memories [][]byte, rnd *random.Stream) *objectives.Objectives {
	collected := make([][]int, 0, wholeSpanLimit)
	seen := make(map[string]bool)

	add := func(ordering []int) {
		key := fmt.Sprint(ordering)
		if seen[key] {
			return
		}
		seen[key] = true
		collected = append(collected, ordering)
	}

	en := objectives.NewEnumerator(memories)
	en.EnumerateFullAll(add, wholeSpanLimit, rnd)

	// random contiguous slices
	for s := 0; s < numSlices && len(memories) > 2; s++ {
		lo := rnd.Intn(len(memories) - 2)
		hi := lo + 2 + rnd.Intn(len(memories)-lo-2)

		look := make([]int, 0, hi-lo)
		for i := lo; i < hi; i++ {
			look = append(look, i)
		}
		en.EnumerateFull(look, add, sliceLimit, rnd)
	}

	// quantities that decrease with progress: enumerate over inverted
	// memories and negate the locations. location zero cannot express its
	// inverted form, so orderings using it are skipped
	inverted := make([][]byte, len(memories))
	for i, mem := range memories {
		inv := make([]byte, len(mem))
		for j, b := range mem {
			inv[j] = 255 - b
		}
		inverted[i] = inv
	}

	objectives.NewEnumerator(inverted).EnumerateFullAll(func(ordering []int) {
		negated := make([]int, 0, len(ordering))
		for _, l := range ordering {
			if l == 0 {
				return
			}
			negated = append(negated, -l)
		}
		add(negated)
	}, decreasingLimit, rnd)

	objs := make([]objectives.Objective, 0, len(collected))
	for _, ordering := range collected {
		objs = append(objs, objectives.Objective{Weight: 1.0, Locations: ordering})
	}

	o := objectives.New(objs)
	o.WeightByExamples(memories)

	// drop everything the example run never rewards
	kept := make([]objectives.Objective, 0, len(objs))
	for _, obj := range o.Objectives() {
		if obj.Weight > 0 {
			kept = append(kept, obj)
		}
	}

	return objectives.New(kept)
}
