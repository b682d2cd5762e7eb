package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simstreet/simstreet/pkg/config"
	"github.com/simstreet/simstreet/pkg/datasource"
	"github.com/simstreet/simstreet/pkg/report"
	"github.com/simstreet/simstreet/pkg/session"
	"github.com/simstreet/simstreet/pkg/types"
)

func init() {
	RunCmd.Flags().String("state", "", "snapshot file to restore on start and save on shutdown")
	RunCmd.Flags().Bool("offline", false, "skip the live quote source and seed synthetically")
	RootCmd.AddCommand(RunCmd)
}

var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "run the market simulation",

	RunE: func(cmd *cobra.Command, args []string) error {
		configFile := viper.GetString("config")
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}

		offline, err := cmd.Flags().GetBool("offline")
		if err != nil {
			return err
		}

		var opts []session.Option
		if !offline {
			opts = append(opts, session.WithQuoteService(datasource.NewBinanceQuoteService()))
		}

		s, err := session.New(cfg, opts...)
		if err != nil {
			return err
		}

		stateFile, err := cmd.Flags().GetString("state")
		if err != nil {
			return err
		}

		if stateFile != "" {
			if err := restoreState(s, stateFile); err != nil {
				return err
			}
		}

		if cfg.MetricsAddr != "" {
			go serveMetrics(cfg.MetricsAddr)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		runSession(ctx, s, cfg)

		if stateFile != "" {
			if err := saveState(s, stateFile); err != nil {
				return err
			}
		}

		return nil
	},
}

// runSession owns the cadence the core deliberately does not: one ticker per
// activity, a cron job for the daily close, and a periodic report.
func runSession(ctx context.Context, s *session.Session, cfg *config.Config) {
	priceTicker := time.NewTicker(cfg.TickInterval.Duration())
	defer priceTicker.Stop()

	newsTicker := time.NewTicker(cfg.NewsInterval.Duration())
	defer newsTicker.Stop()

	eventTicker := time.NewTicker(cfg.EventInterval.Duration())
	defer eventTicker.Stop()

	c := cron.New()

	schedule := cfg.DailyCloseSchedule
	if schedule == "" {
		schedule = "0 0 * * *"
	}
	if _, err := c.AddFunc(schedule, func() {
		s.RollDailyClose()
		s.RecomputeVolatility()
		log.Info("daily close rolled")
	}); err != nil {
		log.WithError(err).Errorf("invalid daily close schedule %q", schedule)
	}

	if _, err := c.AddFunc("@every 1m", func() {
		report.PrintMarket(os.Stdout, s.Instruments())
		report.PrintAccount(os.Stdout, s.Ledger().Record(), s.Prices(), s.Instruments())
	}); err != nil {
		log.WithError(err).Error("cannot schedule report job")
	}

	c.Start()
	defer c.Stop()

	log.Infof("simulation started with %d instruments", len(s.Instruments()))

	for {
		select {
		case <-ctx.Done():
			log.Info("simulation stopped")
			return

		case <-priceTicker.C:
			s.Tick()

		case <-newsTicker.C:
			if item := s.GenerateRoutineNews(); item != nil {
				report.LogNews([]types.NewsItem{*item})
			}

		case <-eventTicker.C:
			if item := s.CheckForEvent(); item != nil {
				report.LogNews([]types.NewsItem{*item})
			}
		}
	}
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	log.Infof("metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.WithError(err).Error("metrics server stopped")
	}
}
