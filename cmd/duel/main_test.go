package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"duel-service/pkg/playstyle"
)

func TestRunManualAgainstRandom(t *testing.T) {
	t.Setenv("MAX_TURNS", "")
	t.Setenv("GIN_MODE", "")
	stdin := "z\nS\n" + strings.Repeat("A\n", 60)
	var out bytes.Buffer
	err := run(context.Background(), []string{"-p1", "sophia:rogue:manual", "-p2", "dhruv:mage", "-seed", "3"}, strings.NewReader(stdin), &out)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out.String())
	}

	got := out.String()
	for _, want := range []string{
		"Sophia (Rogue): 100/100",
		"Dhruv (Mage): 100/100",
		"Sophia, choose A (basic) or S (special): ",
		`"z" is not a move`,
		"Turn 1: Sophia uses special for 12 damage",
		"Dhruv (Mage): 88/100",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
	if !strings.Contains(got, " wins!") && !strings.Contains(got, "It's a draw.") {
		t.Fatalf("no result line:\n%s", got)
	}
}

func TestRunScenarioFile(t *testing.T) {
	t.Setenv("MAX_TURNS", "")
	t.Setenv("GIN_MODE", "")
	path := filepath.Join(t.TempDir(), "duel.yaml")
	body := "seed: 5\nfighters:\n  - {name: ann, archetype: mage, playstyle: manual, inputs: \"AAAA\"}\n  - {name: bob, archetype: rogue, health: 5}\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), []string{"-scenario", path, "-v"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v\n%s", err, out.String())
	}
	got := out.String()
	// Mage basic deals 20-10 = 10, so Bob falls to the first hit.
	if !strings.Contains(got, "Turn 1: Ann uses basic for 10 damage") || !strings.Contains(got, "Ann wins!") {
		t.Fatalf("unexpected output:\n%s", got)
	}
	if !strings.Contains(got, "Ann: mage_attack_0") {
		t.Fatalf("verbose output should show frames:\n%s", got)
	}
}

func TestRunStopsWhenStdinCloses(t *testing.T) {
	t.Setenv("MAX_TURNS", "")
	t.Setenv("GIN_MODE", "")
	var out bytes.Buffer
	err := run(context.Background(), []string{"-seed", "1"}, strings.NewReader("A\n"), &out)
	if !errors.Is(err, playstyle.ErrInputExhausted) {
		t.Fatalf("expected ErrInputExhausted, got %v", err)
	}
}

func TestParseFighter(t *testing.T) {
	f, err := parseFighter("ann:mage:manual")
	if err != nil || f.Name != "ann" || f.Archetype != "mage" || f.Playstyle != "manual" {
		t.Fatalf("parseFighter = %+v, %v", f, err)
	}
	if f, err := parseFighter("bob:rogue"); err != nil || f.Playstyle != "" {
		t.Fatalf("parseFighter without playstyle = %+v, %v", f, err)
	}
	for _, bad := range []string{"bob", "a:b:c:d"} {
		if _, err := parseFighter(bad); err == nil {
			t.Fatalf("parseFighter(%q): expected error", bad)
		}
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	t.Setenv("MAX_TURNS", "")
	t.Setenv("GIN_MODE", "")
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-p1", "ann:knight"}, strings.NewReader(""), &out); err == nil {
		t.Fatalf("expected error for unknown archetype")
	}
	if err := run(context.Background(), []string{"-p1", "ann:rogue", "-p2", "ANN:mage"}, strings.NewReader(""), &out); err == nil {
		t.Fatalf("expected error for duplicate names")
	}
}
