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

package objectives

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
)

// Objective is a weighted ordering of memory locations. The player is doing
// well when the memory values at the locations, read in order as
// lexicographic digits, are going up.
//
// A negative location l stands for the inverted byte at -l, so that
// "decreasing" quantities (timers, enemy counts) can be expressed with the
// same machinery. Location zero can therefore only appear in its increasing
// form.
type Objective struct {
	Weight    float64
	Locations []int
}

// Objectives is the weighted set of orderings for one game.
type Objectives struct {
	objs        []Objective
	totalWeight float64
}

// sentinel error patterns.
const (
	ErrObjectivesFile = "objectives: %v"
)

// New is the preferred method of initialisation for the Objectives type.
func New(objs []Objective) *Objectives {
	o := &Objectives{objs: objs}
	for _, obj := range objs {
		o.totalWeight += obj.Weight
	}
	return o
}

// LoadFromFile reads an objectives file. One objective per line: the weight
// followed by the memory locations of the ordering.
func LoadFromFile(filename string) (*Objectives, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(ErrObjectivesFile, err)
	}
	defer f.Close()

	var objs []Objective

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		weight, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, curated.Errorf(ErrObjectivesFile, err)
		}

		locations := make([]int, 0, len(fields)-1)
		for _, fl := range fields[1:] {
			l, err := strconv.Atoi(fl)
			if err != nil {
				return nil, curated.Errorf(ErrObjectivesFile, err)
			}
			locations = append(locations, l)
		}

		objs = append(objs, Objective{Weight: weight, Locations: locations})
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(ErrObjectivesFile, err)
	}

	if len(objs) == 0 {
		return nil, curated.Errorf(ErrObjectivesFile, "no objectives in file")
	}

	return New(objs), nil
}

// SaveToFile writes the objectives in the format read by LoadFromFile.
func (o *Objectives) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(ErrObjectivesFile, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, obj := range o.objs {
		fmt.Fprintf(w, "%f", obj.Weight)
		for _, l := range obj.Locations {
			fmt.Fprintf(w, " %d", l)
		}
		fmt.Fprintf(w, "\n")
	}

	if err := w.Flush(); err != nil {
		return curated.Errorf(ErrObjectivesFile, err)
	}
	return nil
}

// Size returns the number of objectives in the set.
func (o *Objectives) Size() int {
	return len(o.objs)
}

// at reads the value a location stands for: the byte itself, or its
// inversion for negative locations. locations beyond the memory read as
// zero.
func at(mem []byte, l int) int {
	inverted := false
	if l < 0 {
		inverted = true
		l = -l
	}
	if l >= len(mem) {
		return 0
	}
	if inverted {
		return 255 - int(mem[l])
	}
	return int(mem[l])
}

// less is the lexicographic comparison of two memories under an ordering.
func less(mem1 []byte, mem2 []byte, locations []int) bool {
	for _, l := range locations {
		v1 := at(mem1, l)
		v2 := at(mem2, l)
		if v1 < v2 {
			return true
		}
		if v1 > v2 {
			return false
		}
	}
	return false
}

// Evaluate scores the change from mem1 to mem2 with one weighted vote per
// objective: positive where mem2 is lexicographically greater, negative
// where it is less. The result is normalised to [-1, 1].
func (o *Objectives) Evaluate(mem1 []byte, mem2 []byte) float64 {
	if o.totalWeight == 0 {
		return 0
	}

	var score float64
	for _, obj := range o.objs {
		if less(mem1, mem2, obj.Locations) {
			score += obj.Weight
		} else if less(mem2, mem1, obj.Locations) {
			score -= obj.Weight
		}
	}
	return score / o.totalWeight
}

// ValueFrac reads the memory locations of an ordering as base-256 digits
// and normalises to [0, 1).
func ValueFrac(mem []byte, locations []int) float64 {
	var v float64
	for _, l := range locations {
		v = v*256.0 + float64(at(mem, l))
	}

	div := 1.0
	for range locations {
		div *= 256.0
	}
	return v / div
}

// EvaluateMagnitude scores the change from mem1 to mem2 by how far each
// objective's value moved, not merely its direction. The result is
// normalised to [-1, 1].
func (o *Objectives) EvaluateMagnitude(mem1 []byte, mem2 []byte) float64 {
	if o.totalWeight == 0 {
		return 0
	}

	var score float64
	for _, obj := range o.objs {
		score += obj.Weight * (ValueFrac(mem2, obj.Locations) - ValueFrac(mem1, obj.Locations))
	}
	return score / o.totalWeight
}

// WeightByExamples replaces every objective's weight with how reliably it
// rises over the example memories: the excess of rises over falls between
// adjacent memories, as a fraction. Objectives that fall more than they
// rise get weight zero.
func (o *Objectives) WeightByExamples(memories [][]byte) {
	o.totalWeight = 0

	for i := range o.objs {
		var rises, falls int
		for m := 0; m < len(memories)-1; m++ {
			if less(memories[m], memories[m+1], o.objs[i].Locations) {
				rises++
			} else if less(memories[m+1], memories[m], o.objs[i].Locations) {
				falls++
			}
		}

		var weight float64
		if len(memories) > 1 {
			weight = float64(rises-falls) / float64(len(memories)-1)
		}
		if weight < 0 {
			weight = 0
		}

		o.objs[i].Weight = weight
		o.totalWeight += weight
	}
}

// Objectives returns the underlying slice. Exposed for the SVG writer and
// for tests.
func (o *Objectives) Objectives() []Objective {
	return o.objs
}
