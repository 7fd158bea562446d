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

// Package basis computes the reference state used to delta-encode
// compressed save states. A state from the middle of the example movie is
// close to most states the search will visit, so deltas against it are
// mostly zeroes.
package basis

import (
	"os"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/emulator"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/logger"
)

// sentinel error patterns.
const (
	ErrBasis = "basis: %v"
)

// LoadOrCompute returns the basis state for a game. An existing basis file
// is simply read. Otherwise the emulator steps through the movie prefix up
// to frame, snapshots the state as the basis, writes the file and rewinds
// to where it started.
//
// The emulator must be initialized.
func LoadOrCompute(inputs []uint8, frame int, basisfile string) ([]byte, error) {
	if b, err := os.ReadFile(basisfile); err == nil {
		logger.Logf("basis", "loaded basis file %s", basisfile)
		return b, nil
	}

	if !emulator.IsInitialized() {
		return nil, curated.Errorf(ErrBasis, "emulator is not initialized")
	}

	logger.Logf("basis", "computing basis file %s", basisfile)

	start := emulator.Save()

	for i := 0; i < frame && i < len(inputs); i++ {
		emulator.Step(inputs[i])
	}

	b := emulator.GetBasis()

	if err := os.WriteFile(basisfile, b, 0644); err != nil {
		return nil, curated.Errorf(ErrBasis, err)
	}

	// rewind
	emulator.Load(start)
	return b, nil
}
