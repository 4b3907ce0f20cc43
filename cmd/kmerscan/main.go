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
import "github.com/pbenner/threadpool"

import . "github.com/pbenner/kmerspan"

/* -------------------------------------------------------------------------- */

type Config struct {
	Kind    string
	M       int
	Threads int
	Verbose int
}

/* i/o
 * -------------------------------------------------------------------------- */

func PrintStderr(config Config, level int, format string, args ...interface{}) {
	if config.Verbose >= level {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// readSequences reads one nucleotide sequence per non-empty line, either
// from filename or, if filename is "", from stdin. Sequence decoding of
// real bioinformatics file formats (FASTA, FASTQ, ...) is out of scope for
// this core's Non-goals; this reader only exists to feed the CLI demo.
func readSequences(filename string) ([][]byte, error) {
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
	var sequences [][]byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		sequences = append(sequences, []byte(line))
	}
	return sequences, scanner.Err()
}

/* -------------------------------------------------------------------------- */

// scanSequence runs one model kind over one sequence and returns the
// emitted values as a printable line; it is what each worker in the pool
// below actually does.
func scanSequence(config Config, k int, sequence []byte) (string, error) {
	var values []uint64

	switch config.Kind {
	case "direct":
		model, err := NewDirectModel(k)
		if err != nil {
			return "", err
		}
		kmers, err := model.Build(sequence, ASCII)
		if err != nil {
			return "", err
		}
		for _, km := range kmers {
			values = append(values, km.KmerValue().Value())
		}
	case "canonical":
		model, err := NewCanonicalModel(k)
		if err != nil {
			return "", err
		}
		kmers, err := model.Build(sequence, ASCII)
		if err != nil {
			return "", err
		}
		for _, km := range kmers {
			values = append(values, km.KmerValue().Value())
		}
	case "minimizer":
		model, err := NewCanonicalMinimizerModel(k, config.M, nil)
		if err != nil {
			return "", err
		}
		kmers, err := model.Build(sequence, ASCII)
		if err != nil {
			return "", err
		}
		for _, km := range kmers {
			values = append(values, km.KmerValue().Value())
		}
	default:
		return "", fmt.Errorf("kmerscan: unknown --kind %q", config.Kind)
	}

	fields := make([]string, len(values))
	for i, v := range values {
		fields[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(fields, "\t"), nil
}

/* -------------------------------------------------------------------------- */

func kmerscan(config Config, k int, filenameIn, filenameOut string) error {
	sequences, err := readSequences(filenameIn)
	if err != nil {
		return err
	}
	PrintStderr(config, 1, "Scanning %d sequences with %d thread(s)...\n", len(sequences), config.Threads)

	pool := threadpool.New(config.Threads, 100*config.Threads)
	lines := make([]string, len(sequences))
	errs := make([]error, len(sequences))

	// Report progress every tenth of the work, but no more than once per
	// sequence for small inputs.
	progressEvery := IMax(1, IMin(len(sequences)/10, len(sequences)))

	pool.RangeJob(0, len(sequences), func(i int, pool threadpool.ThreadPool, erf func() error) error {
		line, err := scanSequence(config, k, sequences[i])
		lines[i] = line
		errs[i] = err
		if i%progressEvery == 0 {
			PrintStderr(config, 2, "  %d/%d sequences scanned\n", i+1, len(sequences))
		}
		return nil
	})

	var out *os.File
	if filenameOut == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(filenameOut)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	w := bufio.NewWriter(out)
	defer w.Flush()
	for i, line := range lines {
		if errs[i] != nil {
			return errs[i]
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

/* -------------------------------------------------------------------------- */

func main() {
	log.SetFlags(0)

	config := Config{}
	options := getopt.New()

	optKind := options.StringLong("kind", 0, "direct", "direct, canonical, or minimizer")
	optM := options.IntLong("minimizer-size", 0, 0, "inner m-mer size, required for --kind minimizer")
	optThreads := options.IntLong("threads", 0, 1, "number of threads [default: 1]")
	optVerbose := options.CounterLong("verbose", 'v', "verbose level [-v or -vv]")
	optHelp := options.BoolLong("help", 'h', "print help")

	options.SetParameters("<K> [<INPUT> [OUTPUT]]")
	options.Parse(os.Args)

	if *optHelp {
		options.PrintUsage(os.Stdout)
		os.Exit(0)
	}
	if len(options.Args()) < 1 || len(options.Args()) > 3 {
		options.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	k, err := strconv.ParseInt(options.Args()[0], 10, 64)
	if err != nil {
		options.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	config.Kind = strings.ToLower(*optKind)
	config.M = *optM
	config.Threads = *optThreads
	config.Verbose = *optVerbose

	if config.Kind == "minimizer" && config.M <= 0 {
		log.Fatal("--kind minimizer requires --minimizer-size")
	}

	filenameIn := ""
	filenameOut := ""
	if len(options.Args()) >= 2 {
		filenameIn = options.Args()[1]
	}
	if len(options.Args()) == 3 {
		filenameOut = options.Args()[2]
	}

	if err := kmerscan(config, int(k), filenameIn, filenameOut); err != nil {
		log.Fatal(err)
	}
}
