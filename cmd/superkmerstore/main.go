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

import . "github.com/pbenner/kmerspan"
import "github.com/pbenner/kmerspan/internal/superkmerdb"

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

/* -------------------------------------------------------------------------- */

// storeRuns groups kmers into runs sharing a minimizer (breaking a run
// whenever MinimizerModel reports Changed, which includes a rescan that
// picks the same minimizer again), encodes each run as a SuperKmer, and
// saves it to sink.
func storeRuns(config Config, sink Sink, kmers []WithMinimizer[Canonical], k int) error {
	var run []Canonical
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		sk, err := EncodeSuperKmer(run, k)
		if err != nil {
			return err
		}
		if err := sk.Save(sink); err != nil {
			return err
		}
		PrintStderr(config, 2, "  saved super-kmer of length %d\n", sk.Length)
		run = run[:0]
		return nil
	}
	for i, km := range kmers {
		if i > 0 && km.Changed {
			if err := flush(); err != nil {
				return err
			}
		}
		run = append(run, km.Base)
	}
	return flush()
}

/* -------------------------------------------------------------------------- */

func main() {
	log.SetFlags(0)

	config := Config{}
	options := getopt.New()

	optM := options.IntLong("minimizer-size", 'm', 0, "inner m-mer size")
	optDSN := options.StringLong("dsn", 0, "", "MySQL data source name, e.g. user:pass@tcp(host:3306)/db")
	optTable := options.StringLong("table", 0, "superkmers", "destination table name")
	optCreate := options.BoolLong("create-table", 0, "create the destination table if it does not exist")
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
	if err != nil || *optM <= 0 || *optDSN == "" {
		options.PrintUsage(os.Stderr)
		os.Exit(1)
	}
	config.Verbose = *optVerbose

	filenameIn := ""
	if len(options.Args()) == 2 {
		filenameIn = options.Args()[1]
	}

	if *optCreate {
		if err := superkmerdb.CreateTable(*optDSN, *optTable); err != nil {
			log.Fatal(err)
		}
	}
	sink, err := superkmerdb.OpenMySQLSink(*optDSN, *optTable)
	if err != nil {
		log.Fatal(err)
	}
	defer sink.Close()

	sequence, err := readSequence(filenameIn)
	if err != nil {
		log.Fatal(err)
	}
	model, err := NewCanonicalMinimizerModel(int(k), *optM, nil)
	if err != nil {
		log.Fatal(err)
	}
	kmers, err := model.Build(sequence, ASCII)
	if err != nil {
		log.Fatal(err)
	}
	PrintStderr(config, 1, "Scanned %d kmers, storing super-kmer runs...\n", len(kmers))

	if err := storeRuns(config, sink, kmers, int(k)); err != nil {
		log.Fatal(err)
	}
}
