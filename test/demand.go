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

package test

import (
	"bytes"
	"testing"
)

// DemandEquality is used to test equality between one value and another. In
// the case of failure the test will fail immediately, rather than continuing
// as it would with the Equate() function.
//
// Useful when a subsequent part of the test would panic or be meaningless if
// the equality does not hold.
func DemandEquality(t *testing.T, value, expectedValue interface{}) {
	t.Helper()

	switch v := value.(type) {
	case int:
		if ev, ok := expectedValue.(int); !ok || v != ev {
			t.Fatalf("equality demand of type %T failed (%d - wanted %v)", v, v, expectedValue)
		}

	case []byte:
		if ev, ok := expectedValue.([]byte); !ok || !bytes.Equal(v, ev) {
			t.Fatalf("equality demand of type %T failed (lengths %d and %d)", v, len(v), len(expectedValue.([]byte)))
		}

	default:
		t.Fatalf("unhandled type for DemandEquality() function (%T)", v)
	}
}
