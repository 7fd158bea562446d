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

// Package emulator is the frontend the search drives. It owns the loaded
// libretro core, the canonical video frame, the downmixed audio for the
// most recent frame and the state cache.
//
// The frontend is a process-wide resource with explicit Initialize() and
// Shutdown(). The package-level shape matches how the search uses it: a
// single emulation that is stepped, saved and restored thousands of times
// per output frame. Every operation is safe to call before Initialize();
// such calls do nothing and return empty values.
//
// State save and restore comes in two forms. SaveUncompressed() and
// LoadUncompressed() pass the core's opaque serialization straight through
// and are used on the search's hot path. Save(), Load() and the Ex variants
// compress the state for persistence, optionally delta-encoded against a
// basis state (see the compress.go file for the layout).
package emulator
