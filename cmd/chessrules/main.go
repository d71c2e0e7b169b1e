package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/benbeisheim/chessrules/internal/game"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
)

const (
	exitOK  = 0
	exitErr = 1
)

var (
	fen      = flag.String("fen", model.StartingFEN, "starting position")
	logLevel = flag.String("log-level", "warn", "log level: debug, info, warn, error")
	noColor  = flag.Bool("no-color", false, "disable colored output")
	hints    = flag.String("hints", "", "after replaying, list the legal destinations of the piece on this square")
	perftRun = flag.Int("perft", 0, "count move tree leaves down to this depth instead of replaying moves")
)

type options struct {
	fen   string
	hints string
	perft int
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [move ...]\n\nmoves use coordinate notation: e2e4, e7e8q\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.WithError(err).Error("bad -log-level")
		os.Exit(exitErr)
	}
	log.SetLevel(level)
	color.NoColor = color.NoColor || *noColor

	err = realMain(options{fen: *fen, hints: *hints, perft: *perftRun}, flag.Args(), os.Stdout)
	if err != nil {
		log.WithError(err).Error("chessrules failed")
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func realMain(opts options, moves []string, out io.Writer) error {
	if opts.perft > 0 {
		return runPerft(out, opts.fen, opts.perft)
	}

	gameService := service.NewGameService(service.NewGameManager(log.Log))
	gameID, err := gameService.CreateGame(game.WithFEN(opts.fen))
	if err != nil {
		return err
	}

	for _, mv := range moves {
		res, err := gameService.HandleMove(gameID, "", mv)
		if err != nil {
			fmt.Fprintf(out, "%s %s\n", color.RedString("rejected"), mv)
			return err
		}
		if res.PromotionPending {
			res, err = gameService.ResolvePromotion(gameID, "", res.Ply.To, model.Queen)
			if err != nil {
				return err
			}
		}
		printVerdict(out, mv, res)
	}

	state, err := gameService.GetGameState(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, state.Board.Dump())
	fmt.Fprintln(out)
	fmt.Fprintln(out, model.EncodeFEN(state.Board, state.ToMove, state.HalfMove, state.FullMove))
	printSummary(out, state)

	if opts.hints != "" {
		square, err := model.ParsePosition(opts.hints)
		if err != nil {
			return err
		}
		dests, err := gameService.Hints(gameID, square)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(dests))
		for _, d := range dests {
			name := d.To.String()
			if d.Check {
				name += "+"
			}
			names = append(names, name)
		}
		fmt.Fprintf(out, "hints %s: %s\n", square, strings.Join(names, " "))
	}
	return nil
}

func printVerdict(out io.Writer, mv string, res game.MoveResult) {
	verdict := color.GreenString("ok")
	switch {
	case res.Checkmate:
		verdict = color.New(color.FgRed, color.Bold).Sprint("checkmate")
	case res.Check:
		verdict = color.YellowString("check")
	}
	line := fmt.Sprintf("%-9s %-6s %s", verdict, mv, res.Ply.Notation)
	if res.Captured != nil {
		line += color.CyanString(" takes %s", res.Captured.Type)
	}
	fmt.Fprintln(out, line)
}

func printSummary(out io.Writer, state game.GameState) {
	printer := message.NewPrinter(language.English)
	plies := 0
	for _, m := range state.MoveHistory {
		plies++
		if m.BlackPly != nil {
			plies++
		}
	}
	printer.Fprintf(out, "%d plies, white %d points (%d captures), black %d points (%d captures)\n",
		plies, state.Scores.White, len(state.CapturedPieces.White), state.Scores.Black, len(state.CapturedPieces.Black))

	switch state.Resolve {
	case "":
		status := fmt.Sprintf("%s to move", state.ToMove)
		if state.IsCheck {
			status += ", in check"
		}
		fmt.Fprintln(out, status)
	default:
		fmt.Fprintln(out, color.New(color.Bold).Sprintf("%s wins by %s", state.Winner, state.Resolve))
	}
}
