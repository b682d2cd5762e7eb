package cmd

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/simstreet/simstreet/pkg/config"
	"github.com/simstreet/simstreet/pkg/report"
	"github.com/simstreet/simstreet/pkg/session"
)

func init() {
	TradeCmd.Flags().String("state", "simstreet-state.json", "snapshot file to trade against")
	RootCmd.AddCommand(TradeCmd)
}

// TradeCmd executes one buy or sell against a saved snapshot, at the last
// committed price in that snapshot, and writes the updated snapshot back.
var TradeCmd = &cobra.Command{
	Use:   "trade [buy|sell] [symbol] [quantity]",
	Short: "execute a paper trade against the saved session state",
	Args:  cobra.ExactArgs(3),

	RunE: func(cmd *cobra.Command, args []string) error {
		side := args[0]
		symbol := args[1]

		quantity, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid quantity %q", args[2])
		}

		cfg, err := config.Load(viper.GetString("config"))
		if err != nil {
			return err
		}

		stateFile, err := cmd.Flags().GetString("state")
		if err != nil {
			return err
		}

		s, err := session.New(cfg)
		if err != nil {
			return err
		}
		if err := restoreState(s, stateFile); err != nil {
			return err
		}

		var result interface{ String() string }
		switch side {
		case "buy":
			r, err := s.Buy(symbol, quantity)
			if err != nil {
				return err
			}
			result = r.Transaction
		case "sell":
			r, err := s.Sell(symbol, quantity)
			if err != nil {
				return err
			}
			result = r.Transaction
		default:
			return errors.Errorf("unknown side %q, expect buy or sell", side)
		}

		log.Infof("executed %s", result.String())
		report.PrintAccount(os.Stdout, s.Ledger().Record(), s.Prices(), s.Instruments())

		return saveState(s, stateFile)
	},
}
