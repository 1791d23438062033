package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vietddude/whalewatch/internal/core/config"
	"github.com/vietddude/whalewatch/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show statistics of a running tracker",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://localhost:%d/api/stats", cfg.Server.Port))
	if err != nil {
		slog.Error("Failed to reach tracker", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var stats domain.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		slog.Error("Failed to decode stats", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "METRIC\tVALUE")
	_, _ = fmt.Fprintf(w, "Blocks processed\t%d\n", stats.BlocksProcessed)
	_, _ = fmt.Fprintf(w, "Whales detected\t%d\n", stats.WhaleCount)
	_, _ = fmt.Fprintf(w, "Total volume (ETH)\t%.2f\n", stats.TotalVolumeEth)
	_, _ = fmt.Fprintf(w, "Total volume (USD)\t%.2f\n", stats.TotalVolumeUSD)
	_, _ = fmt.Fprintf(w, "Average whale (ETH)\t%.2f\n", stats.AverageEth)
	_, _ = fmt.Fprintf(w, "Largest whale (ETH)\t%.2f\n", stats.LargestEth)
	_, _ = fmt.Fprintf(w, "Whales last 24h\t%d\n", stats.Last24hCount)
	_, _ = fmt.Fprintf(w, "ETH price (USD)\t%.2f\n", stats.EthPriceUSD)
	_, _ = fmt.Fprintf(w, "Threshold (ETH)\t%.2f\n", stats.ThresholdEth)
	_, _ = fmt.Fprintf(w, "Connected clients\t%d\n", stats.ConnectedClients)
	_ = w.Flush()
}
