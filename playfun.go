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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/basis"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/emulator"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/fm2"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/learnfun"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/logger"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/modalflag"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/playfun"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/romloader"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/statsview"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/version"
	"github.com/OpenSourceAnarchist/learnfun-playfun-v2/wavwriter"
)

// default game and example movie when none are given on the command line.
const (
	defaultGame  = "smb"
	defaultMovie = "smb-walk.fm2"
)

func main() {
	// stats and diagnostics go to stderr; stdout carries the search's
	// progress lines
	logger.SetEcho(os.Stderr)

	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("PLAY", "LEARN", "BASIS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "PLAY":
		err = play(md)
	case "LEARN":
		err = learn(md)
	case "BASIS":
		err = computeBasis(md)
	case "VERSION":
		fmt.Printf("%s (%s)\n", version.ApplicationName, version.Version)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

// gameAndMovie reads the positional arguments common to all modes. a game
// given with a .nes suffix is normalised to the bare name.
func gameAndMovie(md *modalflag.Modes) (string, string) {
	game := defaultGame
	movie := defaultMovie

	if len(md.RemainingArgs()) > 0 {
		game = strings.TrimSuffix(md.GetArg(0), ".nes")
	}
	if len(md.RemainingArgs()) > 1 {
		movie = md.GetArg(1)
	}

	return game, movie
}

// resolveCore finds the libretro core to use: the flag if given, then the
// LIBRETRO_CORE environment variable, then the default probe list.
func resolveCore(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("LIBRETRO_CORE"); env != "" {
		return env
	}
	return emulator.FindDefaultCore()
}

// startEmulator loads the ROM for a game and initializes the emulator with
// it. the returned ROM carries the checksum used in movie headers.
func startEmulator(corePath string, game string) (*romloader.ROM, error) {
	core := resolveCore(corePath)
	if core == "" {
		return nil, fmt.Errorf("no libretro core found; use -core or LIBRETRO_CORE")
	}

	rom, err := romloader.Load(game + ".nes")
	if err != nil {
		return nil, err
	}

	if err := emulator.InitializeWithData(core, rom.Filename, rom.Data); err != nil {
		return nil, err
	}

	fmt.Fprintf(os.Stderr, "loaded core: %s v%s\n", emulator.GetCoreName(), emulator.GetCoreVersion())
	return rom, nil
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	core := md.AddString("core", "", "path to a specific libretro core")
	magnitude := md.AddBool("magnitude", false, "use magnitude-weighted scoring")
	frames := md.AddInt("frames", 0, "output frame budget (0 selects the default)")
	wavFile := md.AddString("wav", "", "record audio of committed frames to a wav file")
	memvizFile := md.AddString("memviz", "", "write a dot graph of the adaptive search state at exit")
	stats := md.AddBool("statsview", false, "launch the runtime statistics server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	game, movie := gameAndMovie(md)
	fmt.Fprintf(os.Stderr, "starting playfun for %s...\n", game)

	rom, err := startEmulator(*core, game)
	if err != nil {
		return err
	}
	defer emulator.Shutdown()

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stderr)
		} else {
			fmt.Fprintln(os.Stderr, "statsview is not available in this build")
		}
	}

	opts := playfun.Options{
		Game:        game,
		MovieFile:   movie,
		ROMChecksum: rom.Checksum,
		Magnitude:   *magnitude,
		Frames:      *frames,
	}
	if *wavFile != "" {
		opts.Wav = wavwriter.New(*wavFile, int(emulator.GetSampleRate()))
	}

	pf, err := playfun.NewPlayFun(opts)
	if err != nil {
		return err
	}

	if err := pf.Greedy(); err != nil {
		return err
	}

	if *memvizFile != "" {
		f, err := os.Create(*memvizFile)
		if err != nil {
			return err
		}
		pf.WriteStateGraph(f)
		if err := f.Close(); err != nil {
			return err
		}
	}

	return nil
}

func learn(md *modalflag.Modes) error {
	md.NewMode()

	core := md.AddString("core", "", "path to a specific libretro core")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	game, movie := gameAndMovie(md)
	fmt.Fprintf(os.Stderr, "starting learnfun for %s...\n", game)

	if _, err := startEmulator(*core, game); err != nil {
		return err
	}
	defer emulator.Shutdown()

	return learnfun.Learn(learnfun.Options{
		Game:      game,
		MovieFile: movie,
	})
}

func computeBasis(md *modalflag.Modes) error {
	md.NewMode()

	core := md.AddString("core", "", "path to a specific libretro core")
	frame := md.AddInt("frame", 600, "movie frame to take the basis from")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	game, movie := gameAndMovie(md)

	inputs, err := fm2.ReadInputs(movie)
	if err != nil {
		return err
	}

	if _, err := startEmulator(*core, game); err != nil {
		return err
	}
	defer emulator.Shutdown()

	b, err := basis.LoadOrCompute(inputs, *frame, game+".basis")
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "basis is %d bytes\n", len(b))
	return nil
}
