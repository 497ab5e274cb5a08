package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/mRechner/internal/gui"
)

var guiBackground string

var guiCmd = &cobra.Command{
	Use:     "gui",
	Aliases: []string{"desktop", "window"},
	Short:   "Startet den Rechner als Desktop-Fenster",
	Long: `Startet meinRECHNER in einem eigenen Fenster.

Die Tasten liegen halbtransparent ueber dem Hintergrundbild und
lassen sich mit der Maus oder der Tastatur bedienen. Die
Tastenbelegung entspricht der TUI; Hoch/Runter blaettern durch
den Verlauf.`,
	RunE: runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
	guiCmd.Flags().StringVar(&guiBackground, "background", "", "Hintergrundbild")
}

func runGUI(cmd *cobra.Command, args []string) error {
	a, err := newApp("gui", true)
	if err != nil {
		return fmt.Errorf("Initialisierung fehlgeschlagen: %w", err)
	}
	defer a.Close()

	a.logger.Info("Starting GUI")
	err = gui.Run(gui.Options{
		Keymap:         a.keymap,
		Store:          a.store,
		Background:     a.bg,
		Translator:     a.tr,
		Logger:         a.logger,
		BackgroundPath: a.backgroundPath(guiBackground),
		Watch:          a.cfg.Background.Watch,
		Debounce:       a.cfg.Background.Debounce.Duration,
		SettingsPath:   a.settingsPath,
	})
	if err != nil {
		return fmt.Errorf("GUI Fehler: %w", err)
	}
	return nil
}
