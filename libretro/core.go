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

package libretro

import (
	"os"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/logger"
)

// Frame describes the video output of one Run(). Data points into memory
// owned by the core and is valid only for the duration of the video handler
// call.
type Frame struct {
	Data   []byte
	Width  int
	Height int
	Pitch  int
}

// VideoHandler is called synchronously during Run() whenever the core
// produces a frame.
type VideoHandler func(Frame)

// AudioHandler receives all interleaved stereo samples produced during one
// Run(). It is called exactly once after the core's frame has completed.
type AudioHandler func(samples []int16)

// Info is the identity a core reports about itself.
type Info struct {
	LibraryName     string
	LibraryVersion  string
	ValidExtensions string
	NeedFullpath    bool
}

// AVInfo is the audio/video geometry and timing a core reports after a game
// has been loaded.
type AVInfo struct {
	BaseWidth   int
	BaseHeight  int
	MaxWidth    int
	MaxHeight   int
	AspectRatio float64
	FPS         float64
	SampleRate  float64
}

// Core is a dynamically loaded libretro core. The zero value is an unloaded
// core; use Load() to attach a shared object.
type Core struct {
	lib uintptr
	sym symbols

	info      Info
	av        AVInfo
	romLoaded bool

	// per-port input bitmasks, read by the inputState callback
	inputs [numPorts]Input

	// pixel format most recently selected by the core through the
	// environment callback
	pixelFormat int32

	// frame description stashed by the videoRefresh callback. valid until
	// the next Run()
	frameData   unsafe.Pointer
	frameWidth  int
	frameHeight int
	framePitch  int

	// stereo samples accumulated during the current Run()
	audioBuffer []int16

	videoHandler VideoHandler
	audioHandler AudioHandler
}

// sentinel error patterns for core and ROM loading.
const (
	ErrCoreLoad = "libretro: core: %v"
	ErrROMLoad  = "libretro: rom: %v"
)

// Load opens the shared object at path and resolves the entry points of the
// libretro ABI. The core's environment and AV callbacks are registered and
// retro_init is called.
//
// Loading fails if the shared object cannot be opened, a required symbol is
// missing, or the core reports an unexpected API version. The shared object
// is closed on every failure path.
func (core *Core) Load(path string) error {
	core.Unload()

	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return curated.Errorf(ErrCoreLoad, err)
	}

	if err := core.sym.resolve(lib); err != nil {
		purego.Dlclose(lib)
		return curated.Errorf(ErrCoreLoad, err)
	}

	if v := core.sym.apiVersion(); v != apiVersion {
		purego.Dlclose(lib)
		return curated.Errorf(ErrCoreLoad,
			curated.Errorf("api version mismatch: %d (want %d)", v, apiVersion))
	}

	core.lib = lib
	makeCallbacks()

	// callbacks must be registered before retro_init
	setActive(core)
	core.sym.setEnvironment(environmentThunk)
	core.sym.setVideoRefresh(videoThunk)
	core.sym.setAudioSample(audioSampleThunk)
	core.sym.setAudioSampleBatch(audioBatchThunk)
	core.sym.setInputPoll(inputPollThunk)
	core.sym.setInputState(inputStateThunk)
	core.sym.init()

	var si systemInfo
	core.sym.getSystemInfo(unsafe.Pointer(&si))
	core.info = Info{
		LibraryName:     goString(si.libraryName),
		LibraryVersion:  goString(si.libraryVersion),
		ValidExtensions: goString(si.validExtensions),
		NeedFullpath:    si.needFullpath != 0,
	}

	logger.Logf("libretro", "loaded core: %s v%s", core.info.LibraryName, core.info.LibraryVersion)

	return nil
}

// Unload the core, ejecting any loaded game first. Idempotent.
func (core *Core) Unload() {
	if core.lib == 0 {
		return
	}

	core.UnloadROM()

	setActive(core)
	core.sym.deinit()
	setActive(nil)

	purego.Dlclose(core.lib)
	*core = Core{}
}

// IsLoaded returns true if a shared object is currently attached.
func (core *Core) IsLoaded() bool {
	return core.lib != 0
}

// LoadROM reads the file at path and hands it to the core. On success the AV
// information is cached and both controller ports are declared as joypads.
func (core *Core) LoadROM(path string) error {
	if core.lib == 0 {
		return curated.Errorf(ErrROMLoad, "no core loaded")
	}

	core.UnloadROM()

	data, err := os.ReadFile(path)
	if err != nil {
		return curated.Errorf(ErrROMLoad, err)
	}

	return core.LoadROMData(path, data)
}

// LoadROMData hands ROM data that has already been read (or extracted from
// an archive) to the core. The path is advisory; cores that require full
// paths will read the file themselves.
func (core *Core) LoadROMData(path string, data []byte) error {
	if core.lib == 0 {
		return curated.Errorf(ErrROMLoad, "no core loaded")
	}
	if len(data) == 0 {
		return curated.Errorf(ErrROMLoad, "empty ROM")
	}

	cpath := cString(path)
	gi := gameInfo{
		path: uintptr(unsafe.Pointer(&cpath[0])),
		data: uintptr(unsafe.Pointer(&data[0])),
		size: uintptr(len(data)),
	}

	setActive(core)
	ok := core.sym.loadGame(unsafe.Pointer(&gi))

	// the game info struct and its referents need only survive the call
	runtime.KeepAlive(cpath)
	runtime.KeepAlive(data)

	if !ok {
		return curated.Errorf(ErrROMLoad, "core rejected ROM")
	}

	core.romLoaded = true

	var av avInfo
	core.sym.getSystemAVInfo(unsafe.Pointer(&av))
	core.av = AVInfo{
		BaseWidth:   int(av.baseWidth),
		BaseHeight:  int(av.baseHeight),
		MaxWidth:    int(av.maxWidth),
		MaxHeight:   int(av.maxHeight),
		AspectRatio: float64(av.aspectRatio),
		FPS:         av.fps,
		SampleRate:  av.sampleRate,
	}

	core.sym.setControllerPortDevice(0, deviceJoypad)
	core.sym.setControllerPortDevice(1, deviceJoypad)

	return nil
}

// UnloadROM ejects the currently loaded game. Idempotent.
func (core *Core) UnloadROM() {
	if core.lib == 0 || !core.romLoaded {
		return
	}

	setActive(core)
	core.sym.unloadGame()
	core.romLoaded = false
	core.av = AVInfo{}
}

// IsROMLoaded returns true if the core currently has a game loaded.
func (core *Core) IsROMLoaded() bool {
	return core.romLoaded
}

// Info returns the core's identity. Valid after Load().
func (core *Core) Info() Info {
	return core.info
}

// AVInfo returns the core's reported geometry and timing. Valid after
// LoadROM().
func (core *Core) AVInfo() AVInfo {
	return core.av
}

// SetInput sets the controller bitmask for a port. The value is held until
// the next call to SetInput for the same port.
func (core *Core) SetInput(port int, input Input) {
	if port >= 0 && port < numPorts {
		core.inputs[port] = input
	}
}

// SetVideoHandler registers the handler for frames produced during Run().
func (core *Core) SetVideoHandler(handler VideoHandler) {
	core.videoHandler = handler
}

// SetAudioHandler registers the handler for audio produced during Run().
func (core *Core) SetAudioHandler(handler AudioHandler) {
	core.audioHandler = handler
}

// Reset performs a soft reset of the loaded game.
func (core *Core) Reset() {
	if !core.romLoaded {
		return
	}
	setActive(core)
	core.sym.reset()
}

// Run advances emulation by exactly one frame. The video handler fires
// during the call; the audio handler fires once, immediately after the core
// returns, with all samples accumulated during the frame.
func (core *Core) Run() {
	if !core.romLoaded {
		return
	}

	setActive(core)
	core.audioBuffer = core.audioBuffer[:0]
	core.sym.run()

	if core.audioHandler != nil {
		core.audioHandler(core.audioBuffer)
	}
}

// SerializeSize returns the byte length of the core's serialized state at
// this instant. The length can change across ROM load/unload but not
// between calls to Run().
func (core *Core) SerializeSize() int {
	if !core.romLoaded {
		return 0
	}
	return int(core.sym.serializeSize())
}

// Serialize writes the core's opaque state into buf. The buffer must be at
// least SerializeSize() bytes long.
func (core *Core) Serialize(buf []byte) bool {
	if !core.romLoaded || len(buf) < core.SerializeSize() {
		return false
	}
	setActive(core)
	return core.sym.serialize(unsafe.Pointer(&buf[0]), uintptr(len(buf)))
}

// Unserialize restores a state previously written by Serialize.
func (core *Core) Unserialize(buf []byte) bool {
	if !core.romLoaded || len(buf) == 0 {
		return false
	}
	setActive(core)
	return core.sym.unserialize(unsafe.Pointer(&buf[0]), uintptr(len(buf)))
}

// SystemRAM returns a view of the core's system RAM region. The underlying
// memory is owned by the core; the view must be refetched after every ROM
// load since the pointer is not guaranteed stable.
//
// For NES cores the region is 2048 bytes. A core without a system RAM
// region yields a nil slice.
func (core *Core) SystemRAM() []byte {
	if !core.romLoaded {
		return nil
	}

	data := core.sym.getMemoryData(memorySystemRAM)
	size := core.sym.getMemorySize(memorySystemRAM)
	if data == 0 || size == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(data)), int(size))
}
