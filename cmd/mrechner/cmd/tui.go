package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/msto63/mRechner/internal/tui/calculator"
)

var tuiBackground string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Startet den Rechner im Terminal",
	Long: `Startet die Terminal User Interface (TUI) von meinRECHNER.

Tastenbelegung:
  0-9 . ,        Ziffern und Komma
  + - * /        Rechenarten
  Enter =        Ergebnis
  Backspace      letzte Ziffer loeschen
  Entf / Esc     CE / C
  % ^ r v n      Prozent, Quadrat, Wurzel, Kehrwert, Vorzeichen
  Ctrl+L/R/S     MC / MR / MS
  Ctrl+P/O       M+ / M-
  Tab            Verlauf ein/aus
  Hoch/Runter    Verlaufseintrag waehlen, Ctrl+E uebernehmen
  Ctrl+Y/V       Ergebnis kopieren / Zahl einfuegen
  Ctrl+B/X       Hintergrund waehlen / entfernen
  [ ]            Deckkraft des Hintergrunds
  Ctrl+Q         Beenden`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVar(&tuiBackground, "background", "", "Hintergrundbild")
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := newApp("tui", true)
	if err != nil {
		return fmt.Errorf("Initialisierung fehlgeschlagen: %w", err)
	}
	defer a.Close()

	model := calculator.New(calculator.Options{
		Keymap:         a.keymap,
		Store:          a.store,
		Background:     a.bg,
		Translator:     a.tr,
		Logger:         a.logger,
		Theme:          calculator.ThemeFromConfig(a.cfg.Display),
		BackgroundPath: a.backgroundPath(tuiBackground),
		Watch:          a.cfg.Background.Watch,
		Debounce:       a.cfg.Background.Debounce.Duration,
		ShowHistory:    a.settings.ShowHistory,
		SettingsPath:   a.settingsPath,
	})

	a.logger.Info("Starting TUI")
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if m, ok := final.(calculator.Model); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("TUI Fehler: %w", err)
	}
	return nil
}
