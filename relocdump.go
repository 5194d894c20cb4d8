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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"

	"relocdump/elffile"
	"relocdump/logger"
	"relocdump/modalflag"
	"relocdump/performance"
	"relocdump/relocation"
	"relocdump/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("DUMP", "PERFORMANCE", "VERSION")
	md.AdditionalHelp(
		"relocdump decodes the relocation tables of an ELF binary, including the\npacked APS2 format used by Android binaries.")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "DUMP":
		err = dump(md)
	case "PERFORMANCE":
		err = perform(md)
	case "VERSION":
		vers, rev, release := version.Version()
		fmt.Printf("%s %s\n", version.ApplicationName, vers)
		if !release {
			fmt.Printf("  %s\n", rev)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "* %v\n", err)
		os.Exit(20)
	}
}

func dump(md *modalflag.Modes) error {
	md.NewMode()

	echoLog := md.AddBool("log", false, "echo the decode log during decoding")
	memvizFile := md.AddString("memviz", "", "write a graph of the decoded tables to file (graphviz dot format)")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		return err
	}

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("no ELF file specified for %s mode", md)
	case 1:
		return dumpFile(os.Stdout, md.GetArg(0), *memvizFile)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}

// dumpedTable gathers a table's entries for the optional memviz graph.
type dumpedTable struct {
	Name    string
	Entries []*relocation.Entry
}

func dumpFile(output io.Writer, filename string, memvizFile string) error {
	f, err := elffile.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	tables := f.RelocationTables()
	if len(tables) == 0 {
		fmt.Fprintf(output, "no relocation tables in %s\n", filename)
		return nil
	}

	var dumped []dumpedTable

	for _, t := range tables {
		fmt.Fprintf(output, "%v\n", t)

		rd, err := f.Reader(t)
		if err != nil {
			// a table that cannot be decoded does not prevent the dump of
			// the tables that can
			fmt.Fprintf(output, "  decode failed: %v\n", err)
			continue // for loop
		}

		d := dumpedTable{Name: t.Name}

		for {
			more, err := rd.HasMoreRelocations()
			if err != nil {
				return err
			}
			if !more {
				break // decode loop
			}

			e, err := rd.Next()
			if err != nil {
				// entries decoded before the failure are still good and
				// have already been printed
				fmt.Fprintf(output, "  decode failed: %v\n", err)
				break // decode loop
			}

			fmt.Fprintf(output, "  [%04d] %v\n", e.Index(), e)
			d.Entries = append(d.Entries, e)
		}

		dumped = append(dumped, d)
	}

	if memvizFile != "" {
		w, err := os.Create(memvizFile)
		if err != nil {
			return err
		}
		defer w.Close()
		memviz.Map(w, &dumped)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	profile := md.AddString("profile", "none", "run with profiling: cpu, mem, trace, all, none")
	duration := md.AddString("duration", "5s", "run duration (time.Duration format)")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("no ELF file specified for %s mode", md)
	case 1:
		return performance.Check(os.Stdout, prf, md.GetArg(0), *duration)
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
}
