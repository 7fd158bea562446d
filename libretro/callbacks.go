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
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/logger"
)

// a core calls back into the frontend through plain C function pointers, so
// the thunks below have no receiver. they forward to the Core most recently
// published with setActive(). cores are not thread-safe and a single slot is
// sufficient; two concurrent sessions in one process are not supported.
var activeCore *Core

// setActive must be called immediately before any core entry point that may
// re-enter the frontend.
func setActive(core *Core) {
	activeCore = core
}

// the C-callable thunk addresses. created once, on the first core load; the
// number of callbacks that can be created with purego is limited and they
// cannot be released.
var (
	callbackOnce sync.Once

	environmentThunk uintptr
	videoThunk       uintptr
	audioSampleThunk uintptr
	audioBatchThunk  uintptr
	inputPollThunk   uintptr
	inputStateThunk  uintptr
	logThunk         uintptr
)

func makeCallbacks() {
	callbackOnce.Do(func() {
		environmentThunk = purego.NewCallback(environment)
		videoThunk = purego.NewCallback(videoRefresh)
		audioSampleThunk = purego.NewCallback(audioSample)
		audioBatchThunk = purego.NewCallback(audioSampleBatch)
		inputPollThunk = purego.NewCallback(inputPoll)
		inputStateThunk = purego.NewCallback(inputState)

		// cores log through a printf-like function. headless operation wants
		// none of it but the pointer must be valid. the variadic arguments
		// are simply never read
		logThunk = purego.NewCallback(func(level int32, format uintptr) {})
	})
}

// environment answers the queries listed in the function body and refuses
// everything else.
func environment(cmd uint32, data unsafe.Pointer) bool {
	if activeCore == nil {
		return false
	}

	switch cmd {
	case envGetLogInterface:
		// struct retro_log_callback is a single function pointer
		*(*uintptr)(data) = logThunk
		return true

	case envGetCanDupe:
		*(*bool)(data) = true
		return true

	case envSetPixelFormat:
		format := *(*int32)(data)
		switch format {
		case pixelFormat0RGB1555, pixelFormatXRGB8888, pixelFormatRGB565:
			activeCore.pixelFormat = format
			return true
		}
		logger.Logf("libretro", "core requested unsupported pixel format (%d)", format)
		return false

	case envGetSystemDirectory, envGetSaveDirectory, envGetCoreAssetsDir:
		// no directories are provided in headless operation
		*(*uintptr)(data) = 0
		return false

	case envSetInputDescriptors, envSetVariables, envSetSupportNoGame, envSetMemoryMaps:
		// acknowledged but ignored
		return true
	}

	return false
}

// videoRefresh stashes the frame description for the current Run() and
// forwards to the user video handler synchronously.
func videoRefresh(data unsafe.Pointer, width uint32, height uint32, pitch uintptr) {
	if activeCore == nil {
		return
	}

	activeCore.frameData = data
	activeCore.frameWidth = int(width)
	activeCore.frameHeight = int(height)
	activeCore.framePitch = int(pitch)

	if data != nil && activeCore.videoHandler != nil {
		activeCore.videoHandler(Frame{
			Data:   unsafe.Slice((*byte)(data), int(height)*int(pitch)),
			Width:  int(width),
			Height: int(height),
			Pitch:  int(pitch),
		})
	}
}

// audioSample appends a single stereo sample pair to the per-frame buffer.
func audioSample(left int16, right int16) {
	if activeCore == nil {
		return
	}
	activeCore.audioBuffer = append(activeCore.audioBuffer, left, right)
}

// audioSampleBatch appends a batch of interleaved stereo samples to the
// per-frame buffer.
func audioSampleBatch(data unsafe.Pointer, frames uintptr) uintptr {
	if activeCore == nil || data == nil {
		return frames
	}
	samples := unsafe.Slice((*int16)(data), int(frames)*2)
	activeCore.audioBuffer = append(activeCore.audioBuffer, samples...)
	return frames
}

func inputPoll() {
}

// inputState translates the per-port Input bitmask to the discrete joypad
// queries and to the joypad bitmask query. anything that isn't joypad index
// zero returns zero.
func inputState(port uint32, device uint32, index uint32, id uint32) int16 {
	if activeCore == nil || port >= numPorts {
		return 0
	}
	if device != deviceJoypad || index != 0 {
		return 0
	}

	mask := activeCore.inputs[port]

	pressed := func(b Input) int16 {
		if mask&b != 0 {
			return 1
		}
		return 0
	}

	switch id {
	case joypadA:
		return pressed(InputA)
	case joypadB:
		return pressed(InputB)
	case joypadSelect:
		return pressed(InputSelect)
	case joypadStart:
		return pressed(InputStart)
	case joypadUp:
		return pressed(InputUp)
	case joypadDown:
		return pressed(InputDown)
	case joypadLeft:
		return pressed(InputLeft)
	case joypadRight:
		return pressed(InputRight)
	case joypadMask:
		var result int16
		if mask&InputB != 0 {
			result |= 1 << joypadB
		}
		if mask&InputA != 0 {
			result |= 1 << joypadA
		}
		if mask&InputSelect != 0 {
			result |= 1 << joypadSelect
		}
		if mask&InputStart != 0 {
			result |= 1 << joypadStart
		}
		if mask&InputUp != 0 {
			result |= 1 << joypadUp
		}
		if mask&InputDown != 0 {
			result |= 1 << joypadDown
		}
		if mask&InputLeft != 0 {
			result |= 1 << joypadLeft
		}
		if mask&InputRight != 0 {
			result |= 1 << joypadRight
		}
		return result
	}

	return 0
}
