// unidash-watch tails live telemetry from a running dashboard and prints a
// line whenever a collection actually changes. Handy for eyeballing the push
// cadence without opening the web UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"unidash/internal/config"
	"unidash/internal/dashclient"
	"unidash/internal/models"
	"unidash/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config failed to load: %v", err)
	}

	defaultURL := fmt.Sprintf("ws://localhost:%d/ws", cfg.Port)
	url := flag.String("url", defaultURL, "dashboard WebSocket endpoint")
	flag.Parse()

	logger := utils.NewLogger(cfg.LogFile)
	defer logger.Close()

	sink := dashclient.Sink{
		OnGpus: func(gpus []models.Gpu) {
			for _, g := range gpus {
				fmt.Printf("gpu %-16s util %5.1f%%  vram %.0f/%.0f GB  %d°C  %d queued\n",
					g.Name, g.Utilization*100, g.VramUsed, g.VramTotal, g.Temperature, g.JobsQueued)
			}
		},
		OnStorage: func(volumes []models.StorageVolume) {
			for _, v := range volumes {
				fmt.Printf("storage %-16s %.0f/%.0f GB (%.0f%%)\n",
					v.Name, v.UsedGB, v.TotalGB, v.UsagePercent)
			}
		},
	}

	client := dashclient.NewClient(*url, cfg.ReconnectBackoff, sink, logger)

	ctx, cancel := context.WithCancel(context.Background())
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	log.Printf("Watching %s (reconnect backoff %s)", *url, cfg.ReconnectBackoff)
	client.Run(ctx)
}
