// Command duel plays a Rogue/Mage duel in the terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"duel-service/pkg/battle"
	"duel-service/pkg/combat"
	"duel-service/pkg/config"
	"duel-service/pkg/logging"
	"duel-service/pkg/playstyle"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "duel:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	fs := flag.NewFlagSet("duel", flag.ContinueOnError)
	fs.SetOutput(out)
	var (
		flagScenario = fs.String("scenario", "", "YAML scenario file (overrides -p1/-p2)")
		flagP1       = fs.String("p1", "Sophia:rogue:manual", "first fighter as name:archetype[:playstyle]")
		flagP2       = fs.String("p2", "Dhruv:mage:random", "second fighter as name:archetype[:playstyle]")
		flagSeed     = fs.Int64("seed", 0, "random seed (0 = scenario seed or now)")
		flagTurns    = fs.Int("max-turns", 0, "turn limit (0 = scenario or MAX_TURNS)")
		flagVerbose  = fs.Bool("v", false, "debug logging and animation frames")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := "warn"
	if *flagVerbose {
		level = "debug"
	}
	logger, err := logging.New(level, true)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sc, err := loadScenario(*flagScenario, *flagP1, *flagP2)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	switch {
	case *flagSeed != 0:
		seed = *flagSeed
	case sc.Seed != nil:
		seed = *sc.Seed
	}
	maxTurns := cfg.MaxTurns
	switch {
	case *flagTurns > 0:
		maxTurns = *flagTurns
	case sc.MaxTurns > 0:
		maxTurns = sc.MaxTurns
	}

	lines := bufio.NewScanner(in)
	var entrants [2]playstyle.Entrant
	for i, f := range sc.Fighters {
		var input playstyle.Input
		if strings.TrimSpace(f.Inputs) == "" {
			input = &prompt{name: config.DisplayName(f.Name), lines: lines, out: out}
		}
		if entrants[i], err = f.Entrant(input); err != nil {
			return fmt.Errorf("fighter %d: %w", i+1, err)
		}
	}

	d, err := playstyle.NewDuel(entrants[0], entrants[1], rand.New(rand.NewSource(seed)),
		battle.WithLogger(logger.With(zap.Int64("seed", seed))))
	if err != nil {
		return err
	}
	m := d.Match()
	stage := combat.NewStage(m)

	printBoard(out, m)
	d.OnTurn = func(t battle.Turn) {
		stage.Observe(t)
		if t.Forfeit {
			fmt.Fprintf(out, "Turn %d: %s has no moves left and skips\n", t.Number, t.Actor)
		} else {
			fmt.Fprintf(out, "Turn %d: %s uses %s for %d damage\n", t.Number, t.Actor, t.Action, t.Damage)
		}
		if *flagVerbose {
			for _, p := range m.Participants() {
				fmt.Fprintf(out, "  %s: %s\n", p.Name(), stage.Animator(p.Seat()).Frame())
			}
			stage.Tick()
		}
		printBoard(out, m)
	}
	d.OnReject = func(p *battle.Participant, token string, err error) {
		switch {
		case errors.Is(err, battle.ErrInvalidAction):
			fmt.Fprintf(out, "%s cannot afford that (%d SP left)\n", p.Name(), p.ResourcePoints())
		default:
			fmt.Fprintf(out, "%q is not a move, use A or S\n", token)
		}
	}

	if err := d.Run(ctx, maxTurns); err != nil {
		return err
	}

	if w := m.Winner(); w != nil {
		fmt.Fprintf(out, "%s wins!\n", w.Name())
	} else {
		fmt.Fprintln(out, "It's a draw.")
	}
	return nil
}

func loadScenario(path, p1, p2 string) (*config.Scenario, error) {
	if path != "" {
		return config.LoadScenario(path)
	}
	sc := &config.Scenario{}
	for _, arg := range []string{p1, p2} {
		f, err := parseFighter(arg)
		if err != nil {
			return nil, err
		}
		sc.Fighters = append(sc.Fighters, f)
	}
	return sc, sc.Validate()
}

// parseFighter reads "name:archetype[:playstyle]".
func parseFighter(s string) (config.Fighter, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return config.Fighter{}, fmt.Errorf("fighter %q: want name:archetype[:playstyle]", s)
	}
	f := config.Fighter{Name: parts[0], Archetype: parts[1]}
	if len(parts) == 3 {
		f.Playstyle = parts[2]
	}
	return f, nil
}

func printBoard(out io.Writer, m *battle.Match) {
	for _, p := range m.Participants() {
		fmt.Fprintf(out, "  %s\n", p)
	}
	if next, err := m.Queue().Peek(); err == nil && !m.IsOver() {
		fmt.Fprintf(out, "Next: %s\n", next.Name())
	}
}

// prompt reads one token per line from the terminal.
type prompt struct {
	name  string
	lines *bufio.Scanner
	out   io.Writer
}

func (p *prompt) Next() (string, bool) {
	fmt.Fprintf(p.out, "%s, choose A (basic) or S (special): ", p.name)
	if !p.lines.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return p.lines.Text(), true
}
