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
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/curated"
)

// symbols holds the resolved entry points of a loaded core. all fields must
// be non-nil before the symbols value is published.
type symbols struct {
	init                    func()
	deinit                  func()
	apiVersion              func() uint32
	getSystemInfo           func(unsafe.Pointer)
	getSystemAVInfo         func(unsafe.Pointer)
	setEnvironment          func(uintptr)
	setVideoRefresh         func(uintptr)
	setAudioSample          func(uintptr)
	setAudioSampleBatch     func(uintptr)
	setInputPoll            func(uintptr)
	setInputState           func(uintptr)
	setControllerPortDevice func(uint32, uint32)
	reset                   func()
	run                     func()
	serializeSize           func() uintptr
	serialize               func(unsafe.Pointer, uintptr) bool
	unserialize             func(unsafe.Pointer, uintptr) bool
	loadGame                func(unsafe.Pointer) bool
	unloadGame              func()
	getMemoryData           func(uint32) uintptr
	getMemorySize           func(uint32) uintptr
}

// resolve all required symbols from the shared object. an error is returned
// on the first missing symbol.
func (sym *symbols) resolve(lib uintptr) error {
	bind := []struct {
		name string
		fptr interface{}
	}{
		{"retro_init", &sym.init},
		{"retro_deinit", &sym.deinit},
		{"retro_api_version", &sym.apiVersion},
		{"retro_get_system_info", &sym.getSystemInfo},
		{"retro_get_system_av_info", &sym.getSystemAVInfo},
		{"retro_set_environment", &sym.setEnvironment},
		{"retro_set_video_refresh", &sym.setVideoRefresh},
		{"retro_set_audio_sample", &sym.setAudioSample},
		{"retro_set_audio_sample_batch", &sym.setAudioSampleBatch},
		{"retro_set_input_poll", &sym.setInputPoll},
		{"retro_set_input_state", &sym.setInputState},
		{"retro_set_controller_port_device", &sym.setControllerPortDevice},
		{"retro_reset", &sym.reset},
		{"retro_run", &sym.run},
		{"retro_serialize_size", &sym.serializeSize},
		{"retro_serialize", &sym.serialize},
		{"retro_unserialize", &sym.unserialize},
		{"retro_load_game", &sym.loadGame},
		{"retro_unload_game", &sym.unloadGame},
		{"retro_get_memory_data", &sym.getMemoryData},
		{"retro_get_memory_size", &sym.getMemorySize},
	}

	for _, b := range bind {
		addr, err := purego.Dlsym(lib, b.name)
		if err != nil || addr == 0 {
			return curated.Errorf("libretro: missing symbol: %s", b.name)
		}
		purego.RegisterFunc(b.fptr, addr)
	}

	return nil
}

// systemInfo mirrors struct retro_system_info.
type systemInfo struct {
	libraryName     uintptr
	libraryVersion  uintptr
	validExtensions uintptr
	needFullpath    byte
	blockExtract    byte
	_               [6]byte
}

// avInfo mirrors struct retro_system_av_info.
type avInfo struct {
	baseWidth   uint32
	baseHeight  uint32
	maxWidth    uint32
	maxHeight   uint32
	aspectRatio float32
	_           [4]byte
	fps         float64
	sampleRate  float64
}

// gameInfo mirrors struct retro_game_info.
type gameInfo struct {
	path uintptr
	data uintptr
	size uintptr
	meta uintptr
}

// goString copies a NUL terminated C string. a zero pointer gives the empty
// string.
func goString(p uintptr) string {
	if p == 0 {
		return ""
	}

	var n int
	for *(*byte)(unsafe.Pointer(p + uintptr(n))) != 0 {
		n++
	}

	return string(unsafe.Slice((*byte)(unsafe.Pointer(p)), n))
}

// cString allocates a NUL terminated byte sequence for use as a C string.
// the returned slice must be kept alive for as long as the C side may read
// the pointer.
func cString(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}
