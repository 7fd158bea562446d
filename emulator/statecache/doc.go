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

// Package statecache memoizes single emulator steps. The search replays
// identical (pre-state, input) pairs very often and restoring a cached
// post-state is far cheaper than running the core for a frame.
//
// The cache owns copies of every byte sequence it holds. The result of
// GetKnown() borrows from the cache and is invalidated by the next
// Remember(), which may trigger eviction.
package statecache
