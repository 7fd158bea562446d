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

package modalflag_test

import (
	"testing"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/modalflag"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"smb", "smb-walk.fm2"})

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, len(md.RemainingArgs()), 2)
	test.Equate(t, md.GetArg(0), "smb")
	test.Equate(t, md.GetArg(1), "smb-walk.fm2")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"smb"})
	md.AddSubModes("PLAY", "LEARN", "BASIS")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)

	// "smb" is not a sub-mode so the default is selected and the argument
	// remains available
	test.Equate(t, md.Mode(), "PLAY")
	test.Equate(t, md.GetArg(0), "smb")
}

func TestSubModeSelection(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"learn", "smb"})
	md.AddSubModes("PLAY", "LEARN", "BASIS")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, md.Mode(), "LEARN")
	test.Equate(t, md.Path(), "LEARN")

	// flags for the selected mode
	md.NewMode()
	frames := md.AddInt("frames", 10000, "frame budget")

	p, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, *frames, 10000)
	test.Equate(t, md.GetArg(0), "smb")
}

func TestModeFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-core", "/tmp/core.so", "-magnitude", "smb"})

	core := md.AddString("core", "", "path to libretro core")
	magnitude := md.AddBool("magnitude", false, "magnitude scoring")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, *core, "/tmp/core.so")
	test.Equate(t, *magnitude, true)
	test.Equate(t, md.GetArg(0), "smb")
}
