package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	mreerror "github.com/msto63/mRechner/foundation/core/error"
	"github.com/msto63/mRechner/internal/engine"
	"github.com/msto63/mRechner/internal/history"
)

var evalNoHistory bool

var evalCmd = &cobra.Command{
	Use:   "eval <taste>...",
	Short: "Berechnet eine Tastenfolge",
	Long: `Gibt eine Tastenfolge in den Rechner ein und zeigt das Ergebnis.

Jedes Argument ist eine Taste (+, -, ×, *, ÷, /, =, %, √, x², 1/x, ±,
MC, MR, MS, M+, M-, C, CE, ⌫) oder eine Zahl. Gerechnet wird wie
auf dem Tastenfeld von links nach rechts. Abgeschlossene Rechnungen
landen im Verlauf. Negative Zahlen stehen hinter "--", damit sie
nicht als Flag gelesen werden.`,
	Example: `  mrechner eval 5 + 3 × 2 =
  mrechner eval 12,5 '*' 4 =
  mrechner eval 9 √
  mrechner eval -- 3 × -5 =`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().BoolVar(&evalNoHistory, "no-history", false, "Nicht im Verlauf speichern")
}

func runEval(cmd *cobra.Command, args []string) error {
	a, err := newApp("eval", false)
	if err != nil {
		return fmt.Errorf("Initialisierung fehlgeschlagen: %w", err)
	}
	defer a.Close()

	events, err := tokenize(args)
	if err != nil {
		return fmt.Errorf("%s: %w", a.tr.ErrorMessage(err), err)
	}

	record := func(d engine.Display) {
		if evalNoHistory {
			return
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		if _, err := a.store.Add(ctx, history.NewEntry(d.Expression, d.Result)); err != nil {
			printError("Verlauf nicht gespeichert", err)
		}
	}

	d, err := evaluate(events, record)
	if err != nil {
		return fmt.Errorf("%s: %w", a.tr.ErrorMessage(err), err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatDisplay(d))
	return nil
}

// tokenize turns command line arguments into keypad events. Numbers are
// typed digit by digit; a leading minus negates them. Numbers longer than
// the keypad accepts are rejected rather than truncated.
func tokenize(args []string) ([]engine.Event, error) {
	var events []engine.Event
	for _, arg := range args {
		for _, field := range strings.Fields(arg) {
			if ev, err := engine.ParseSymbol(field); err == nil {
				events = append(events, ev)
				continue
			}

			negative := strings.HasPrefix(field, "-")
			number := strings.TrimPrefix(field, "-")
			if !isNumber(number) {
				return nil, mreerror.Newf("unknown key %q", field).
					WithCode(mreerror.CodeInvalidInput).
					WithOperation("eval.tokenize")
			}
			if len(number) > engine.MaxOperandLength {
				return nil, mreerror.Newf("number %q exceeds %d characters", field, engine.MaxOperandLength).
					WithCode(mreerror.CodeInvalidInput).
					WithOperation("eval.tokenize")
			}
			for _, r := range number {
				ev, err := engine.ParseSymbol(string(r))
				if err != nil {
					return nil, err
				}
				events = append(events, ev)
			}
			if negative {
				events = append(events, engine.SpecialEvent(engine.Negate))
			}
		}
	}
	return events, nil
}

func isNumber(s string) bool {
	digits, points := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' || r == ',':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}

// evaluate feeds events to a fresh engine. onCommit is called for every
// completed calculation.
func evaluate(events []engine.Event, onCommit func(engine.Display)) (engine.Display, error) {
	e := engine.New()
	d := e.Display()
	for _, ev := range events {
		d = e.Apply(ev)
		if d.Err != nil {
			return d, d.Err
		}
		if d.Committed && onCommit != nil {
			onCommit(d)
		}
	}
	return d, nil
}

// formatDisplay prints a finished calculation with its expression and
// anything else as the bare result
func formatDisplay(d engine.Display) string {
	if d.Committed {
		return d.Expression + " = " + d.Result
	}
	return d.Result
}
