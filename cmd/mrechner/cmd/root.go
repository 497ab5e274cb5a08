package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mrechner",
	Short: "meinRECHNER - Tischrechner mit Verlauf",
	Long: `meinRECHNER ist ein Tischrechner fuer Terminal und Desktop.

Grundrechenarten, Speichertasten (MC, MR, MS, M+, M-), Prozent,
Quadrat, Wurzel und Kehrwert, ein gespeicherter Verlauf und ein
eigenes Hintergrundbild hinter dem Tastenfeld.

Ohne Unterbefehl startet die Terminal-Oberflaeche.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config-Datei (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose Output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Fehler: %s: %v\n", msg, err)
}
