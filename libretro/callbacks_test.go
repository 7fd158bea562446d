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
	"testing"
	"unsafe"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/test"
)

func TestInputStateDiscrete(t *testing.T) {
	core := &Core{}
	setActive(core)
	defer setActive(nil)

	core.SetInput(0, InputA|InputRight)

	test.Equate(t, inputState(0, deviceJoypad, 0, joypadA) == 1, true)
	test.Equate(t, inputState(0, deviceJoypad, 0, joypadRight) == 1, true)
	test.Equate(t, inputState(0, deviceJoypad, 0, joypadB) == 0, true)
	test.Equate(t, inputState(0, deviceJoypad, 0, joypadLeft) == 0, true)

	// port 1 is untouched
	test.Equate(t, inputState(1, deviceJoypad, 0, joypadA) == 0, true)

	// non-joypad devices and non-zero indexes always read zero
	test.Equate(t, inputState(0, deviceJoypad+1, 0, joypadA) == 0, true)
	test.Equate(t, inputState(0, deviceJoypad, 1, joypadA) == 0, true)
	test.Equate(t, inputState(numPorts, deviceJoypad, 0, joypadA) == 0, true)
}

func TestInputStateBitmask(t *testing.T) {
	core := &Core{}
	setActive(core)
	defer setActive(nil)

	// the bitmask query reports buttons at their joypad ID bit positions,
	// which are not the Input bit positions
	core.SetInput(0, InputA|InputStart|InputUp)

	expected := int16(1<<joypadA | 1<<joypadStart | 1<<joypadUp)
	test.Equate(t, inputState(0, deviceJoypad, 0, joypadMask) == expected, true)

	core.SetInput(0, 0xff)
	expected = 1<<joypadB | 1<<joypadA | 1<<joypadSelect | 1<<joypadStart |
		1<<joypadUp | 1<<joypadDown | 1<<joypadLeft | 1<<joypadRight
	test.Equate(t, inputState(0, deviceJoypad, 0, joypadMask) == expected, true)
}

func TestEnvironmentPixelFormat(t *testing.T) {
	core := &Core{}
	setActive(core)
	defer setActive(nil)

	var format int32

	for _, f := range []int32{pixelFormat0RGB1555, pixelFormatXRGB8888, pixelFormatRGB565} {
		format = f
		test.ExpectedSuccess(t, environment(envSetPixelFormat, unsafe.Pointer(&format)))
		test.Equate(t, core.pixelFormat == f, true)
	}

	format = 99
	test.ExpectedFailure(t, environment(envSetPixelFormat, unsafe.Pointer(&format)))
}

func TestEnvironmentPolicy(t *testing.T) {
	core := &Core{}
	setActive(core)
	defer setActive(nil)

	var dupe bool
	test.ExpectedSuccess(t, environment(envGetCanDupe, unsafe.Pointer(&dupe)))
	test.ExpectedSuccess(t, dupe)

	// directory queries are refused with a null result
	dir := uintptr(0xdeadbeef)
	test.ExpectedFailure(t, environment(envGetSystemDirectory, unsafe.Pointer(&dir)))
	test.Equate(t, dir == 0, true)

	// acknowledged commands
	test.ExpectedSuccess(t, environment(envSetInputDescriptors, nil))
	test.ExpectedSuccess(t, environment(envSetVariables, nil))
	test.ExpectedSuccess(t, environment(envSetSupportNoGame, nil))
	test.ExpectedSuccess(t, environment(envSetMemoryMaps, nil))

	// everything else is refused
	test.ExpectedFailure(t, environment(2, nil))
	test.ExpectedFailure(t, environment(7, nil))
	test.ExpectedFailure(t, environment(1000, nil))
}

func TestEnvironmentNoActiveCore(t *testing.T) {
	setActive(nil)
	test.ExpectedFailure(t, environment(envGetCanDupe, nil))
}

func TestAudioAccumulation(t *testing.T) {
	core := &Core{}
	setActive(core)
	defer setActive(nil)

	audioSample(100, 200)
	audioSample(-100, -200)
	test.Equate(t, len(core.audioBuffer), 4)

	batch := []int16{1, 2, 3, 4}
	n := audioSampleBatch(unsafe.Pointer(&batch[0]), 2)
	test.Equate(t, int(n), 2)
	test.Equate(t, len(core.audioBuffer), 8)
	test.Equate(t, core.audioBuffer[0] == 100, true)
	test.Equate(t, core.audioBuffer[7] == 4, true)
}
