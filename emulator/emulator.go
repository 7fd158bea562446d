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

package emulator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/emulator/statecache"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/libretro"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/logger"
)

// canonical frame geometry. whatever size the core reports is cropped or
// zero-padded into this.
const (
	FrameWidth  = 256
	FrameHeight = 256
	FrameBytes  = FrameWidth * FrameHeight * 4
)

// default cache slop when none has been specified with ResetCache().
const defaultSlop = 10000

// the paths tried in order by InitializeDefault() when looking for a NES
// core. a leading tilde expands through the HOME environment variable.
var defaultCorePaths = []string{
	"/tmp/fceumm_libretro.so",
	"/usr/lib/libretro/fceumm_libretro.so",
	"/usr/local/lib/libretro/fceumm_libretro.so",
	"~/.config/retroarch/cores/fceumm_libretro.so",
	"./fceumm_libretro.so",
}

// sentinel error patterns for the Initialize functions.
const (
	ErrInitialize = "emulator: %v"
	ErrNoCore     = "emulator: no default core found"
)

// frontend bundles the core with the canonical AV buffers and the state
// cache. there is at most one per process; libretro cores are not re-entrant
// and a second frontend would corrupt the first.
type frontend struct {
	core  *libretro.Core
	cache *statecache.Cache

	// canonical 256x256 RGBA frame. pixels beyond the core's reported
	// geometry are never written and stay zero
	frame []byte

	// mono 16-bit samples for the most recent frame
	sound []int16

	coreName    string
	coreVersion string
}

// the process-wide frontend. nil until Initialize() succeeds. every exported
// operation is a no-op when the frontend is nil.
var emu *frontend

// Initialize loads the core at corePath and then the ROM at romPath. An
// error is returned if a frontend is already initialized.
func Initialize(corePath string, romPath string) error {
	data, err := os.ReadFile(romPath)
	if err != nil {
		logger.Logf("emulator", "%v", err)
		return curated.Errorf(ErrInitialize, err)
	}
	return InitializeWithData(corePath, romPath, data)
}

// InitializeWithData is like Initialize but takes ROM data that has already
// been read, for example from an archive.
func InitializeWithData(corePath string, romPath string, romData []byte) error {
	if emu != nil {
		return curated.Errorf(ErrInitialize, "already initialized")
	}

	fe := &frontend{
		core:  &libretro.Core{},
		cache: statecache.NewCache(0, defaultSlop),
		frame: make([]byte, FrameBytes),
	}

	if err := fe.core.Load(corePath); err != nil {
		logger.Logf("emulator", "%v", err)
		return curated.Errorf(ErrInitialize, err)
	}

	info := fe.core.Info()
	fe.coreName = info.LibraryName
	fe.coreVersion = info.LibraryVersion

	fe.core.SetVideoHandler(fe.convertFrame)
	fe.core.SetAudioHandler(fe.downmixSound)

	if err := fe.core.LoadROMData(romPath, romData); err != nil {
		logger.Logf("emulator", "%v", err)
		fe.core.Unload()
		return curated.Errorf(ErrInitialize, err)
	}

	emu = fe
	return nil
}

// InitializeDefault probes the well-known core locations and initializes
// with the first that exists.
func InitializeDefault(romPath string) error {
	core := FindDefaultCore()
	if core == "" {
		logger.Log("emulator", "no default NES core found. provide a core path explicitly")
		return curated.Errorf(ErrNoCore)
	}
	return Initialize(core, romPath)
}

// FindDefaultCore returns the first existing path from the default core
// locations, or the empty string.
func FindDefaultCore() string {
	for _, p := range defaultCorePaths {
		if strings.HasPrefix(p, "~") {
			if home := os.Getenv("HOME"); home != "" {
				p = filepath.Join(home, p[1:])
			}
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Shutdown unloads the ROM and the core and drops the cache. Idempotent.
func Shutdown() {
	if emu == nil {
		return
	}
	emu.core.Unload()
	emu = nil
}

// IsInitialized returns true between a successful Initialize() and the
// next Shutdown().
func IsInitialized() bool {
	return emu != nil
}

// Step advances emulation by one frame with the given controller-0 input.
// Controller-1 is held at zero.
func Step(input uint8) {
	if emu == nil {
		return
	}
	emu.core.SetInput(0, input)
	emu.core.Run()
}

// StepFull is equivalent to Step. The name is kept for symmetry with the
// cheaper step of emulators that can skip video and audio processing; the
// callbacks here capture both unconditionally.
func StepFull(input uint8) {
	Step(input)
}

// GetMemory returns a copy of the core's system RAM. For NES cores the
// result is 2048 bytes. The result is empty when uninitialized or when the
// core has no system RAM region.
func GetMemory() []byte {
	if emu == nil {
		return nil
	}
	return append([]byte(nil), emu.core.SystemRAM()...)
}

// GetImage returns a copy of the canonical 256x256 RGBA frame produced by
// the most recent Step(). Always exactly 262144 bytes.
func GetImage() []byte {
	if emu == nil {
		return nil
	}
	return append([]byte(nil), emu.frame...)
}

// GetSound returns a copy of the mono samples produced by the most recent
// Step().
func GetSound() []int16 {
	if emu == nil {
		return nil
	}
	return append([]int16(nil), emu.sound...)
}

// RamChecksum returns a 64-bit hash of the current system RAM contents.
// Zero when uninitialized or when RAM is unreadable.
func RamChecksum() uint64 {
	if emu == nil {
		return 0
	}
	ram := emu.core.SystemRAM()
	if len(ram) == 0 {
		return 0
	}
	return xxhash.Sum64(ram)
}

// GetStateSize returns the length of the serialized state at this instant.
func GetStateSize() int {
	if emu == nil {
		return 0
	}
	return emu.core.SerializeSize()
}

// SaveUncompressed returns the raw serialized state. An empty result
// indicates an uninitialized frontend or a serialization failure, which
// upper layers ignore and continue.
func SaveUncompressed() []byte {
	if emu == nil {
		return nil
	}
	out := make([]byte, emu.core.SerializeSize())
	if !emu.core.Serialize(out) {
		return nil
	}
	return out
}

// LoadUncompressed restores a state previously returned by
// SaveUncompressed.
func LoadUncompressed(in []byte) {
	if emu == nil || len(in) == 0 {
		return
	}
	emu.core.Unserialize(in)
}

// GetBasis is equivalent to SaveUncompressed. The result is intended for
// use as the basis argument of SaveEx and LoadEx.
func GetBasis() []byte {
	return SaveUncompressed()
}

// CachingStep is Step through the state cache. A step from a previously
// seen (state, input) pair restores the memoized result instead of running
// the core.
func CachingStep(input uint8) {
	if emu == nil {
		return
	}

	start := SaveUncompressed()
	if len(start) == 0 {
		Step(input)
		return
	}

	if cached := emu.cache.GetKnown(input, start); cached != nil {
		// the borrowed slice is consumed before any further cache mutation
		LoadUncompressed(cached)
		return
	}

	Step(input)
	emu.cache.Remember(input, start, SaveUncompressed())
}

// ResetCache drops all cache entries and applies new bounds.
func ResetCache(limit uint64, slop uint64) {
	if emu == nil {
		return
	}
	emu.cache.Resize(limit, slop)
}

// CacheStats returns the hit and miss counters of the state cache.
func CacheStats() (hits uint64, misses uint64) {
	if emu == nil {
		return 0, 0
	}
	return emu.cache.Hits(), emu.cache.Misses()
}

// PrintCacheStats logs a summary line for the state cache.
func PrintCacheStats() {
	if emu == nil {
		return
	}
	logger.Log("emulator", emu.cache.String())
}

// GetSampleRate returns the audio sample rate the core reports, in Hz.
// Zero when uninitialized.
func GetSampleRate() float64 {
	if emu == nil {
		return 0
	}
	return emu.core.AVInfo().SampleRate
}

// GetCoreName returns the library name the core reports about itself.
func GetCoreName() string {
	if emu == nil {
		return ""
	}
	return emu.coreName
}

// GetCoreVersion returns the library version the core reports about itself.
func GetCoreVersion() string {
	if emu == nil {
		return ""
	}
	return emu.coreVersion
}

// convertFrame writes the core's frame into the canonical buffer. the frame
// arrives as XRGB8888 and leaves as RGBA. pixels beyond the core's reported
// geometry are never written and stay zero.
func (fe *frontend) convertFrame(frame libretro.Frame) {
	height := frame.Height
	if height > FrameHeight {
		height = FrameHeight
	}
	width := frame.Width
	if width > FrameWidth {
		width = FrameWidth
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := y*frame.Pitch + x*4
			if src+3 >= len(frame.Data) {
				continue
			}
			dst := (y*FrameWidth + x) * 4
			fe.frame[dst+0] = frame.Data[src+2]
			fe.frame[dst+1] = frame.Data[src+1]
			fe.frame[dst+2] = frame.Data[src+0]
			fe.frame[dst+3] = 0xff
		}
	}
}

// downmixSound converts the frame's interleaved stereo samples to mono.
func (fe *frontend) downmixSound(samples []int16) {
	fe.sound = fe.sound[:0]
	for i := 0; i+1 < len(samples); i += 2 {
		mono := (int32(samples[i]) + int32(samples[i+1])) / 2
		fe.sound = append(fe.sound, int16(mono))
	}
}
