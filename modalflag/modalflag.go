// This file is part of relocdump.
//
// relocdump is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// relocdump is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with relocdump.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag is a wrapper around the flag package from the Go
// standard library. It provides a convenient way of handling sub-modes on
// the command line: the first non-flag argument is compared against the
// list of registered sub-modes and, if it matches, parsing continues in
// that mode with the remaining arguments.
//
// The basic pattern is:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("DUMP", "PERFORMANCE", "VERSION")
//
//	p, err := md.Parse()
//	// handle ParseHelp and ParseError
//
//	switch md.Mode() {
//	...
//	}
//
// The first registered sub-mode is the default and is selected when the
// argument matches no sub-mode. Sub-mode comparison is case insensitive.
package modalflag

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

// Modes provides an easy way of handling command line arguments with
// sub-modes. The Output field should be specified before calling Parse() or
// you will not see any help messages.
type Modes struct {
	// where to print output (help messages etc). defaults to discarding
	Output io.Writer

	// the underlying flag structure. a new flagset is created on every call
	// to NewArgs() and NewMode()
	flags *flag.FlagSet

	// the argument list as specified by the NewArgs() function
	args    []string
	argsIdx int

	// the list of sub-modes specified with AddSubModes() for the next parse
	subModes []string

	// the series of sub-modes found during subsequent calls to Parse().
	// never reset
	path []string

	// extensive help text to print after the flag summary
	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the last mode to be encountered.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns all the modes encountered during parsing, joined with "/".
func (md *Modes) Path() string {
	return strings.Join(md.path, "/")
}

// NewArgs with a string of arguments (from the command line for example).
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0

	// by definition, a newly initialised Modes struct begins with a new mode
	md.NewMode()
}

// NewMode indicates that further arguments should be considered part of a
// new mode.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
}

// AddSubModes to the list of sub-modes for the next parse. The first
// sub-mode in the list is the default sub-mode.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, m := range submodes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AdditionalHelp adds extensive help text to be displayed in addition to
// the regular help on available flags.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// A list of valid ParseResult values.
const (
	// continue with command line processing.
	ParseContinue ParseResult = iota

	// help was requested and has been printed.
	ParseHelp

	// an error has occurred and is returned as the second return value.
	ParseError
)

// Parse the current layer of arguments. Help messages are printed to the
// Output field automatically; the ParseHelp return value says that has
// happened and nothing more needs to be shown to the user.
func (md *Modes) Parse() (ParseResult, error) {
	// capture the flag package's output so the help message can be amended
	buf := &strings.Builder{}
	md.flags.SetOutput(buf)

	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if err == flag.ErrHelp {
			md.help(buf.String())
			return ParseHelp, nil
		}

		// a flag has been set that is not recognised at this layer. if
		// sub-modes have been defined, select the default sub-mode and
		// continue; the next layer will parse the arguments again. without
		// sub-modes there is no next layer and the error stands
		if len(md.subModes) > 0 {
			md.path = append(md.path, md.subModes[0])
			return ParseContinue, nil
		}
		return ParseError, err
	}

	if len(md.subModes) > 0 {
		arg := strings.ToUpper(md.flags.Arg(0))

		// assume the default sub-mode until the argument matches
		mode := md.subModes[0]
		for i := range md.subModes {
			if md.subModes[i] == arg {
				mode = arg
				md.argsIdx++
				break // for loop
			}
		}

		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// RemainingArgs after a call to Parse(). ie. arguments that aren't flags or
// a listed sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered argument that isn't a flag or listed sub-mode.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddDuration flag for next call to Parse().
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.flags.Duration(name, value, usage)
}

func (md *Modes) help(flagHelp string) {
	if md.Output == nil {
		return
	}

	if flagHelp == "Usage:\n" && len(md.subModes) == 0 {
		if md.Path() != "" {
			fmt.Fprintf(md.Output, "No help available for %s\n", md.Path())
		} else {
			fmt.Fprintln(md.Output, "No help available")
		}
		return
	}

	lines := strings.Split(flagHelp, "\n")
	if md.Path() != "" {
		fmt.Fprintf(md.Output, "%s for %s mode\n", lines[0], md.Path())
	} else {
		fmt.Fprintln(md.Output, lines[0])
	}
	if len(lines) > 1 {
		fmt.Fprint(md.Output, strings.Join(lines[1:], "\n"))
	}

	if len(md.subModes) > 0 {
		// an additional new line if flag information has been printed
		if len(lines) > 2 {
			fmt.Fprintln(md.Output)
		}
		fmt.Fprintf(md.Output, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(md.Output, "    default: %s\n", md.subModes[0])
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.additionalHelp)
	}
}
