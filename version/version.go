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

// Package version records the version number of the project.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Playfun"

// number can be set at link time with the -X linker flag. it is empty
// otherwise
var number string

// Version contains the version number of the build or, when there is none,
// the vcs revision (with a "+dirty" suffix if the tree was modified).
//
// If the version string is "unreleased" then vcs information exists but
// records no revision. If it is "local" then there is no version number and
// no vcs information at all.
var Version string

func init() {
	var vcs bool
	var vcsRevision string
	var vcsModified bool

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				vcsRevision = v.Value
			case "vcs.modified":
				vcsModified = v.Value == "true"
			}
		}
	}

	if vcsModified {
		vcsRevision = fmt.Sprintf("%s+dirty", vcsRevision)
	}

	switch {
	case number != "":
		Version = number
	case vcs && vcsRevision != "":
		Version = vcsRevision
	case vcs:
		Version = "unreleased"
	default:
		Version = "local"
	}
}
