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

// Package libretro loads a libretro core from a shared object file and
// presents it as a typed Go value. Symbol resolution and the calls through
// the C ABI are handled by the purego package, meaning no cgo is required.
//
// The package supports exactly one loaded core per process. Libretro cores
// are not thread-safe and re-enter the frontend through plain C function
// pointers during retro_run(); the active Core is published to a
// process-wide slot immediately before every call that can re-enter. See
// the callbacks.go file for details.
//
// Every core is driven headlessly. Video frames and audio samples produced
// during a call to Run() are delivered to handlers registered with
// SetVideoHandler() and SetAudioHandler().
package libretro
