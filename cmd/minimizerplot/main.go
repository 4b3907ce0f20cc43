/* Copyright (C) 2019 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package main

/* -------------------------------------------------------------------------- */

import "bufio"
import "fmt"
import "log"
import "os"
import "strconv"
import "strings"

import "github.com/pborman/getopt"

import "gonum.org/v1/plot"
import "gonum.org/v1/plot/plotter"
import "gonum.org/v1/plot/plotutil"
import "gonum.org/v1/plot/vg"

import . "github.com/pbenner/kmerspan"

/* -------------------------------------------------------------------------- */

type Config struct {
	Verbose int
}

func PrintStderr(config Config, level int, format string, args ...interface{}) {
	if config.Verbose >= level {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

/* -------------------------------------------------------------------------- */

func readSequence(filename string) ([]byte, error) {
	var f *os.File
	if filename == "" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}
	var buf []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		buf = append(buf, line...)
	}
	return buf, scanner.Err()
}

// positionHistogram counts how often the sliding minimizer lands at each
// of the W = k-m+1 possible positions, a simple proxy for how evenly a
// comparator spreads minimizer choices across the window.
func positionHistogram(config Config, k, m int, sequence []byte) ([]int, error) {
	model, err := NewCanonicalMinimizerModel(k, m, nil)
	if err != nil {
		return nil, err
	}
	w := k - m + 1
	hist := make([]int, w+1) // index w is reserved for position == -1
	kmers, err := model.Build(sequence, ASCII)
	if err != nil {
		return nil, err
	}
	for _, km := range kmers {
		if km.Position < 0 {
			hist[w]++
		} else {
			hist[km.Position]++
		}
	}
	PrintStderr(config, 1, "Scanned %d kmers\n", len(kmers))
	return hist, nil
}

// savePositionPlot draws the minimizer-position histogram to a PDF, the
// same plot.New/plotutil.AddLines/p.Save sequence tools/bamToBigWig uses
// for its crosscorrelation plot.
func savePositionPlot(filename string, hist []int) error {
	xy := make(plotter.XYs, len(hist))
	for i, count := range hist {
		xy[i].X = float64(i)
		xy[i].Y = float64(count)
	}
	p := plot.New()
	p.Title.Text = "minimizer position histogram"
	p.X.Label.Text = "position (W = window size reserved for \"no minimizer\")"
	p.Y.Label.Text = "count"

	if err := plotutil.AddLines(p, xy); err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}

/* -------------------------------------------------------------------------- */

func main() {
	log.SetFlags(0)

	config := Config{}
	options := getopt.New()

	optM := options.IntLong("minimizer-size", 'm', 0, "inner m-mer size")
	optOut := options.StringLong("output", 'o', "minimizers.pdf", "output PDF file")
	optVerbose := options.CounterLong("verbose", 'v', "verbose level [-v or -vv]")
	optHelp := options.BoolLong("help", 'h', "print help")

	options.SetParameters("<K> [<INPUT>]")
	options.Parse(os.Args)

	if *optHelp {
		options.PrintUsage(os.Stdout)
		os.Exit(0)
	}
	if len(options.Args()) < 1 || len(options.Args()) > 2 {
		options.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	k, err := strconv.ParseInt(options.Args()[0], 10, 64)
	if err != nil || *optM <= 0 {
		options.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	config.Verbose = *optVerbose

	filenameIn := ""
	if len(options.Args()) == 2 {
		filenameIn = options.Args()[1]
	}

	sequence, err := readSequence(filenameIn)
	if err != nil {
		log.Fatal(err)
	}
	hist, err := positionHistogram(config, int(k), *optM, sequence)
	if err != nil {
		log.Fatal(err)
	}
	if err := savePositionPlot(*optOut, hist); err != nil {
		log.Fatal(err)
	}
	PrintStderr(config, 1, "Wrote minimizer position histogram to `%s'\n", *optOut)
}
