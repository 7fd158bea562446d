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

package curated_test

import (
	"errors"
	"testing"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/test"
)

const testPattern = "test: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testPattern, 10)
	test.Equate(t, e.Error(), "test: 10")

	test.ExpectedSuccess(t, curated.Is(e, testPattern))
	test.ExpectedFailure(t, curated.Is(e, "not the pattern: %v"))

	// plain errors are not curated errors
	p := errors.New("plain error")
	test.ExpectedFailure(t, curated.IsAny(p))
	test.ExpectedFailure(t, curated.Is(p, testPattern))
	test.ExpectedFailure(t, curated.Is(nil, testPattern))
}

func TestHas(t *testing.T) {
	inner := curated.Errorf(testPattern, 10)
	outer := curated.Errorf("outer: %v", inner)

	test.ExpectedSuccess(t, curated.Has(outer, testPattern))
	test.ExpectedSuccess(t, curated.Has(outer, "outer: %v"))
	test.ExpectedFailure(t, curated.Has(inner, "outer: %v"))
}

func TestDeduplication(t *testing.T) {
	inner := curated.Errorf("cache: %v", "bad entry")
	outer := curated.Errorf("cache: %v", inner)

	// the duplicated message part should appear only once
	test.Equate(t, outer.Error(), "cache: bad entry")
}
