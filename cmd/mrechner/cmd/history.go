package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	historyJSON  bool
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"verlauf"},
	Short:   "Zeigt oder loescht den Verlauf",
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Listet den Verlauf, neueste Rechnung zuerst",
	RunE:    runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Loescht den Verlauf",
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyClearCmd)

	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "Ausgabe als JSON")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Nur die letzten n Eintraege")
}

type historyItem struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Timestamp  string `json:"timestamp"`
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, err := newApp("history", false)
	if err != nil {
		return fmt.Errorf("Initialisierung fehlgeschlagen: %w", err)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	entries, err := a.store.List(ctx)
	if err != nil {
		return fmt.Errorf("Verlauf nicht lesbar: %w", err)
	}
	if historyLimit > 0 && len(entries) > historyLimit {
		entries = entries[len(entries)-historyLimit:]
	}

	items := make([]historyItem, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		items = append(items, historyItem{
			Expression: e.Expression,
			Result:     e.Result,
			Timestamp:  e.Timestamp.Local().Format("2006-01-02 15:04:05"),
		})
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(items) == 0 {
		fmt.Fprintln(out, a.tr.T("label.history_empty"))
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(out, "%s  %s = %s\n", it.Timestamp, it.Expression, it.Result)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	a, err := newApp("history", false)
	if err != nil {
		return fmt.Errorf("Initialisierung fehlgeschlagen: %w", err)
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("Verlauf nicht geloescht: %w", err)
	}
	a.logger.Info("History cleared", "backend", a.cfg.History.Backend)
	fmt.Fprintln(cmd.OutOrStdout(), a.tr.T("status.history_cleared"))
	return nil
}
