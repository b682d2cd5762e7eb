package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simstreet/simstreet/pkg/config"
	"github.com/simstreet/simstreet/pkg/datasource"
	"github.com/simstreet/simstreet/pkg/report"
	"github.com/simstreet/simstreet/pkg/session"
)

func init() {
	QuoteCmd.Flags().Bool("offline", false, "skip the live quote source and seed synthetically")
	RootCmd.AddCommand(QuoteCmd)
}

// QuoteCmd seeds the configured universe and prints it, without starting
// the simulation. Useful for checking quote-source connectivity and the
// synthetic fallback.
var QuoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "seed the instrument universe and print it",

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetString("config"))
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

		report.PrintMarket(os.Stdout, s.Instruments())
		return nil
	},
}
