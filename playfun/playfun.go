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

package playfun

import (
	"fmt"
	"os"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/emulator"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/fm2"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/logger"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/motifs"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/objectives"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/random"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/wavwriter"
)

// size of the state cache used by the search.
const (
	cacheLimit = 100000
	cacheSlop  = 10000
)

// number of output frames the search produces before stopping.
const defaultFrameBudget = 10000

// Options for a search run.
type Options struct {
	// game name. the objectives and motifs files are <game>.objectives
	// and <game>.motifs
	Game string

	// the example movie whose zero-input prefix seeds the output movie
	MovieFile string

	// the romChecksum header field for written movies
	ROMChecksum string

	// scoring mode: magnitude weighs votes by how far each objective
	// moved, rather than only its direction
	Magnitude bool

	// number of output frames. zero selects the default budget
	Frames int

	// seed for the search's random stream. the empty string selects a
	// fixed default
	Seed string

	// optional sink for the audio of every committed frame
	Wav *wavwriter.WavWriter
}

// PlayFun is the greedy search. At every output frame it evaluates a
// selection of motifs from the current state and commits the one whose
// immediate score plus sampled future score is best.
type PlayFun struct {
	game        string
	romChecksum string
	magnitude   bool
	frames      int

	rnd  *random.Stream
	objs *objectives.Objectives
	bank *motifs.Motifs
	wav  *wavwriter.WavWriter

	motifvec [][]uint8
	movie    []uint8

	// memory snapshot per output frame, for the progress SVG
	memories [][]byte

	// adaptive state. see adaptive.go
	recentFutures []float64
	avoidDepths   [2]int
	seekDepths    [3]int
	motifScores   []float64
	motifUses     int
}

// sentinel error patterns.
const (
	ErrSetup = "playfun: %v"
)

// NewPlayFun is the preferred method of initialisation for the PlayFun
// type. The emulator must be initialized. The objectives and motifs files
// for the game are loaded, the state cache is sized for search, and the
// example movie's leading zero inputs are stepped through and copied to
// the output movie.
func NewPlayFun(opts Options) (*PlayFun, error) {
	if !emulator.IsInitialized() {
		return nil, curated.Errorf(ErrSetup, "emulator is not initialized")
	}

	objs, err := objectives.LoadFromFile(opts.Game + ".objectives")
	if err != nil {
		return nil, curated.Errorf(ErrSetup, err)
	}
	logger.Logf("playfun", "loaded %d objective functions", objs.Size())

	bank, err := motifs.LoadFromFile(opts.Game + ".motifs")
	if err != nil {
		return nil, curated.Errorf(ErrSetup, err)
	}
	logger.Logf("playfun", "loaded %d motifs", bank.Size())

	seed := opts.Seed
	if seed == "" {
		seed = "playfun"
	}

	frames := opts.Frames
	if frames <= 0 {
		frames = defaultFrameBudget
	}

	pf := &PlayFun{
		game:        opts.Game,
		romChecksum: opts.ROMChecksum,
		magnitude:   opts.Magnitude,
		frames:      frames,
		rnd:         random.NewStream(seed),
		objs:        objs,
		bank:        bank,
		wav:         opts.Wav,
		motifvec:    bank.AllMotifs(),
		avoidDepths: [2]int{20, 75},
		seekDepths:  [3]int{30, 30, 50},
		motifScores: make([]float64, bank.Size()),
	}

	emulator.ResetCache(cacheLimit, cacheSlop)

	solution, err := fm2.ReadInputs(opts.MovieFile)
	if err != nil {
		return nil, curated.Errorf(ErrSetup, err)
	}

	// fast-forward past the initial idle, up to but not including the first
	// non-zero input
	var skipped int
	for _, input := range solution {
		if input != 0 {
			break
		}
		pf.commitStep(input)
		skipped++
	}
	logger.Logf("playfun", "skipped %d frames until first keypress", skipped)

	return pf, nil
}

// commitStep advances the emulation by one frame that becomes part of the
// output movie.
func (pf *PlayFun) commitStep(input uint8) {
	if pf.wav != nil {
		// a cache hit restores state without producing sound, so the audio
		// track is captured with plain steps
		emulator.StepFull(input)
		pf.wav.AddSamples(emulator.GetSound())
	} else {
		emulator.CachingStep(input)
	}
	pf.movie = append(pf.movie, input)
}

// scoreChange scores a memory change in the configured mode.
func (pf *PlayFun) scoreChange(mem1 []byte, mem2 []byte) float64 {
	if pf.magnitude {
		return pf.objs.EvaluateMagnitude(mem1, mem2)
	}
	return pf.objs.Evaluate(mem1, mem2)
}

// avoidBadFutures plays weighted-random motifs from the current state and
// scores every step along the way against the base memory. The worst score
// seen is returned: a cliff anywhere in a sampled future makes the current
// candidate unattractive.
//
// Two trials, each restoring the current state first. The emulator is left
// at the end of the second rollout; the caller restores.
func (pf *PlayFun) avoidBadFutures(baseMemory []byte) float64 {
	baseState := emulator.SaveUncompressed()

	total := 1.0
	for i := 0; i < 2; i++ {
		if i > 0 {
			emulator.LoadUncompressed(baseState)
		}
		for d := 0; d < pf.avoidDepths[i]; d++ {
			m := pf.bank.RandomWeightedMotif(pf.rnd)
			for x, input := range m {
				emulator.CachingStep(input)
				score := pf.scoreChange(baseMemory, emulator.GetMemory())
				if i == 0 && d == 0 && x == 0 {
					total = score
				} else if score < total {
					total = score
				}
			}
		}
	}
	return total
}

// seekGoodFutures plays weighted-random motifs from the current state and
// scores only where each rollout ends up against the base memory. The best
// final score of the trials is returned: the candidate is attractive if
// any sampled future reaches somewhere good.
//
// Three trials, each restoring the current state first. The emulator is
// left at the end of the last rollout; the caller restores.
func (pf *PlayFun) seekGoodFutures(baseMemory []byte) float64 {
	baseState := emulator.SaveUncompressed()

	total := 1.0
	for i := 0; i < 3; i++ {
		if i > 0 {
			emulator.LoadUncompressed(baseState)
		}
		for d := 0; d < pf.seekDepths[i]; d++ {
			m := pf.bank.RandomWeightedMotif(pf.rnd)
			for _, input := range m {
				emulator.CachingStep(input)
			}
		}

		score := pf.scoreChange(baseMemory, emulator.GetMemory())
		if i == 0 || score > total {
			total = score
		}
	}
	return total
}

// Greedy runs the search to its frame budget, writing progress artifacts
// as it goes and the final movie at the end.
func (pf *PlayFun) Greedy() error {
	for framenum := 0; framenum < pf.frames; framenum++ {
		currentState := emulator.SaveUncompressed()
		currentMemory := emulator.GetMemory()
		pf.memories = append(pf.memories, currentMemory)

		motifsToTry := pf.selectMotifsToTry()

		bestScore := -999999999.0
		var bestFuture, bestImmediate float64
		var bestMotif int

		for trial, motifIdx := range motifsToTry {
			if trial != 0 {
				emulator.LoadUncompressed(currentState)
			}

			for _, input := range pf.motifvec[motifIdx] {
				emulator.CachingStep(input)
			}

			newMemory := emulator.GetMemory()
			newState := emulator.SaveUncompressed()

			immediateScore := pf.scoreChange(currentMemory, newMemory)
			futureScore := pf.avoidBadFutures(newMemory)

			emulator.LoadUncompressed(newState)
			futureScore += pf.seekGoodFutures(newMemory)

			score := immediateScore + futureScore
			pf.updateMotifScore(motifIdx, score)

			if score > bestScore {
				bestScore = score
				bestImmediate = immediateScore
				bestFuture = futureScore
				bestMotif = motifIdx
			}
		}

		fmt.Printf("%8d best score %.2f (%.2f + %.2f future) [tried %d/%d]\n",
			len(pf.movie), bestScore, bestImmediate, bestFuture,
			len(motifsToTry), len(pf.motifvec))

		pf.recordFutureScore(bestFuture)
		pf.adaptFutureDepths()

		if framenum%100 == 0 {
			fmt.Fprintf(os.Stderr,
				"         [adaptive: avg_future=%.2f, avoid=[%d,%d], seek=[%d,%d,%d]]\n",
				pf.getAverageFutureScore(),
				pf.avoidDepths[0], pf.avoidDepths[1],
				pf.seekDepths[0], pf.seekDepths[1], pf.seekDepths[2])
		}

		emulator.LoadUncompressed(currentState)
		for _, input := range pf.motifvec[bestMotif] {
			pf.commitStep(input)
		}

		if framenum%10 == 0 {
			if err := pf.writeProgress(); err != nil {
				return err
			}
		}
	}

	if err := fm2.WriteInputs(pf.game+"-playfun-motif-final.fm2",
		pf.game+".nes", pf.romChecksum, pf.movie); err != nil {
		return err
	}

	if pf.wav != nil {
		return pf.wav.EndMixing()
	}
	return nil
}

// writeProgress persists the movie so far and the scoring SVG.
func (pf *PlayFun) writeProgress() error {
	if err := fm2.WriteInputs(pf.game+"-playfun-motif-progress.fm2",
		pf.game+".nes", pf.romChecksum, pf.movie); err != nil {
		return err
	}
	if err := pf.objs.SaveSVG(pf.memories, pf.game+"-playfun.svg"); err != nil {
		return err
	}

	emulator.PrintCacheStats()
	fmt.Println("                     (wrote)")
	return nil
}

// MovieLength returns the number of frames committed so far.
func (pf *PlayFun) MovieLength() int {
	return len(pf.movie)
}
