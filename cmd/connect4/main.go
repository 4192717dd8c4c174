// Command connect4 plays, solves, and benchmarks Connect Four positions
// from the terminal.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kevinhuang/connect4-solver/internal/bench"
	"github.com/kevinhuang/connect4-solver/internal/position"
	"github.com/kevinhuang/connect4-solver/internal/solver"
)

func main() {
	mode := flag.String("mode", "play", "one of: play, solve, bench")
	moves := flag.String("moves", "", "move-sequence string (solve mode)")
	weak := flag.Bool("weak", false, "use the weak (sign-only) solve window")
	benchDir := flag.String("bench-dir", "testdata/bench", "directory of benchmark corpus files (bench mode)")
	workers := flag.Int("workers", 4, "concurrent solves per corpus file (bench mode)")
	verbose := flag.Bool("v", false, "enable info-level logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *verbose {
		log = log.Level(zerolog.InfoLevel)
	} else {
		log = log.Level(zerolog.WarnLevel)
	}

	var err error
	switch *mode {
	case "play":
		err = runPlay(log)
	case "solve":
		err = runSolve(*moves, *weak, log)
	case "bench":
		err = runBench(*benchDir, *weak, *workers, log)
	default:
		err = fmt.Errorf("unknown -mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runSolve parses a move-sequence string and prints the solved outcome for
// the player to move.
func runSolve(moves string, weak bool, log zerolog.Logger) error {
	p, err := position.FromMoveSequence(moves)
	if err != nil {
		return err
	}
	s := solver.New(solver.WithLogger(log))

	var move int
	var visited int64
	var out fmt.Stringer
	if weak {
		m, v, o := s.SolveWeak(p)
		move, visited, out = m, v, o
	} else {
		m, v, o := s.SolveStrong(p)
		move, visited, out = m, v, o
	}

	fmt.Println(p.String())
	fmt.Printf("best_move=%d outcome=%s visited=%d\n", move+1, out, visited)
	return nil
}

// runBench loads every file in dir as a benchmark corpus and prints a
// Summary line per file.
func runBench(dir string, weak bool, workers int, log zerolog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := dir + "/" + entry.Name()
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		cases, err := bench.ParseFile(f)
		f.Close()
		if err != nil {
			return err
		}

		results, err := bench.Run(ctx, cases, !weak, workers, log)
		if err != nil {
			return err
		}
		fmt.Println(bench.Summarize(entry.Name(), results))
	}
	return nil
}

// runPlay runs an interactive human-vs-solver game in the terminal.
func runPlay(log zerolog.Logger) error {
	reader := bufio.NewReader(os.Stdin)
	p := position.Empty()
	humanIsCurrent := true

	fmt.Println("Connect Four. Columns are numbered 1-7. Enter 'q' to quit.")

	for {
		fmt.Print(p.String())

		if p.IsTerminal() {
			fmt.Println("Draw.")
			return nil
		}
		var col int
		var err error
		if humanIsCurrent {
			col, err = promptMove(reader, p)
			if err == errQuit {
				fmt.Println("bye")
				return nil
			}
			if err != nil {
				fmt.Println(err)
				continue
			}
		} else {
			s := solver.New(solver.WithLogger(log))
			move, _, out := s.SolveStrong(p)
			fmt.Printf("solver plays %d (%s)\n", move+1, out)
			col = move
		}

		if p.Wins(col) {
			p = p.Play(col)
			fmt.Print(p.String())
			who := "You"
			if !humanIsCurrent {
				who = "Solver"
			}
			fmt.Printf("%s win!\n", who)
			return nil
		}

		p = p.Play(col)
		humanIsCurrent = !humanIsCurrent
	}
}

var errQuit = fmt.Errorf("quit")

// promptMove reads one column choice from r, validating it against p.
func promptMove(r *bufio.Reader, p position.Position) (int, error) {
	fmt.Print("your move> ")
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "q" {
		return 0, errQuit
	}

	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("not a column number: %q", line)
	}
	col := n - 1
	if col < 0 || col >= position.Width {
		return 0, fmt.Errorf("column out of range: %d", n)
	}
	if !p.CanPlay(col) {
		return 0, fmt.Errorf("column %d is full", n)
	}
	return col, nil
}
