// Command perft is a thin demo driver exercising board.Perft and
// engine.Search against the standard starting position. It is not a
// UCI loop — the command protocol, FEN parsing, and time-control policy
// are external collaborators this core only consumes from.
package main

import (
	"flag"
	"fmt"

	"github.com/lschess/laserchess/internal/board"
	"github.com/lschess/laserchess/internal/engine"
)

func main() {
	depth := flag.Int("depth", 4, "perft depth")
	goalMs := flag.Int("search-ms", 0, "if nonzero, also run a timed search to this many milliseconds")
	config := flag.String("config", "", "optional TOML tunables file")
	flag.Parse()

	pos := board.NewStartPosition()
	fmt.Println(pos.String())

	for d := 1; d <= *depth; d++ {
		fmt.Printf("perft %d = %d\n", d, board.Perft(pos, d))
	}

	if *goalMs <= 0 {
		return
	}

	eng := engine.NewEngine(engine.LoadTunables(*config))
	best := eng.Search(pos, *goalMs, func(pl engine.ProgressLine) {
		fmt.Println(pl.String())
	})
	fmt.Printf("bestmove %s\n", best)
}
