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

package performance

import (
	"fmt"
	"io"
	"time"

	"relocdump/elffile"
	"relocdump/statsview"
)

// Check the decode performance against the supplied binary.
//
// The binary's relocation tables are decoded repeatedly for the specified
// duration, creating a cpu profile, a memory profile, a trace (or a
// combination of those) as defined by the profile argument. If a statsview
// is available in this build it is launched for the duration of the run.
func Check(output io.Writer, profile Profile, filename string, duration string) error {
	f, err := elffile.Open(filename)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}
	defer f.Close()

	tables := f.RelocationTables()
	if len(tables) == 0 {
		return fmt.Errorf("performance: no relocation tables in %s", filename)
	}

	// parse supplied duration
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	if statsview.Available() {
		statsview.Launch(output)
	}

	var passes int
	var entries int

	runner := func() error {
		// timesUp is closed when the measurement period has elapsed. the
		// check is made between decode passes, not between entries, so a
		// run always completes a whole number of passes
		timesUp := make(chan bool)
		time.AfterFunc(dur, func() {
			close(timesUp)
		})

		for {
			select {
			case <-timesUp:
				return nil
			default:
			}

			for _, t := range tables {
				rd, err := f.Reader(t)
				if err != nil {
					return err
				}
				for {
					more, err := rd.HasMoreRelocations()
					if err != nil {
						return err
					}
					if !more {
						break // inner decode loop
					}
					if _, err := rd.Next(); err != nil {
						return err
					}
					entries++
				}
			}
			passes++
		}
	}

	err = RunProfiler(profile, "relocdump", runner)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	fmt.Fprintf(output, "%d tables, decoded %d times in %v\n", len(tables), passes, dur)
	if passes > 0 {
		fmt.Fprintf(output, "%d entries per pass at %.2f entries/sec\n",
			entries/passes, float64(entries)/dur.Seconds())
	}

	return nil
}
