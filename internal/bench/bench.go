// Package bench runs a solver against a corpus of known positions, each
// paired with its expected signed score (§6.3), and reports timing and
// node-count statistics per corpus file.
package bench

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kevinhuang/connect4-solver/internal/position"
	"github.com/kevinhuang/connect4-solver/internal/solver"
)

// Case is one benchmark line: a move-sequence string and its known
// game-theoretic score.
type Case struct {
	Moves    string
	Expected int
}

// ParseFile reads a corpus file of "<moves> <expected-score>" lines,
// one case per line, fields separated by a single space.
func ParseFile(r io.Reader) ([]Case, error) {
	var cases []Case
	sc := bufio.NewScanner(r)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("bench: line %d: expected 2 fields, got %d", lineNo, len(fields))
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("bench: line %d: invalid expected score %q: %w", lineNo, fields[1], err)
		}
		cases = append(cases, Case{Moves: fields[0], Expected: score})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

// Result is the outcome of solving a single Case.
type Result struct {
	Case     Case
	Actual   int
	Visited  int64
	Duration time.Duration
	Mismatch bool
	Err      error
}

// Run solves every case concurrently, bounded to workers simultaneous
// solves, and returns one Result per case in input order. Each case gets
// its own Solver: transposition tables are never shared across positions
// (§5). strong selects SolveStrong over SolveWeak.
func Run(ctx context.Context, cases []Case, strong bool, workers int, log zerolog.Logger) ([]Result, error) {
	results := make([]Result, len(cases))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, c := range cases {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p, err := position.FromMoveSequence(c.Moves)
			if err != nil {
				results[i] = Result{Case: c, Err: err}
				return nil
			}

			s := solver.New(solver.WithLogger(log))
			start := time.Now()
			var score int
			if strong {
				_, _, out := s.SolveStrong(p)
				score = out.Score()
			} else {
				_, _, out := s.SolveWeak(p)
				score = sign(out.Score())
			}
			elapsed := time.Since(start)

			expected := c.Expected
			if !strong {
				expected = sign(expected)
			}

			results[i] = Result{
				Case:     c,
				Actual:   score,
				Visited:  s.Visited(),
				Duration: elapsed,
				Mismatch: score != expected,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Summary aggregates a Run's results the way the original benchmark
// harness reports them: mean duration and mean node count over the cases
// that completed without error, plus a count of score mismatches.
type Summary struct {
	Title         string
	Count         int
	Mismatches    int
	MeanDuration  time.Duration
	MeanPositions float64
}

// Summarize reduces a slice of Results into a Summary titled title.
func Summarize(title string, results []Result) Summary {
	var sumDur time.Duration
	var sumPos int64
	var mismatches int
	var n int

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		n++
		sumDur += r.Duration
		sumPos += r.Visited
		if r.Mismatch {
			mismatches++
		}
	}

	s := Summary{Title: title, Count: n, Mismatches: mismatches}
	if n > 0 {
		s.MeanDuration = sumDur / time.Duration(n)
		s.MeanPositions = float64(sumPos) / float64(n)
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("test=%s mean_time=%s mean_nb_pos=%.1f mismatches=%d/%d",
		s.Title, s.MeanDuration, s.MeanPositions, s.Mismatches, s.Count)
}
