// Package report renders account and market summaries for the CLI driver.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"

	"github.com/simstreet/simstreet/pkg/types"
)

// PrintAccount writes the ledger summary as a table: one row per holding,
// marked to the given prices, with cash and profit/loss totals.
func PrintAccount(w io.Writer, record types.LedgerRecord, prices map[string]float64, instruments []types.Instrument) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"symbol", "qty", "avg cost", "price", "value", "p&l"})

	var portfolioValue float64
	for _, inst := range instruments {
		holding, ok := record.Holdings[inst.Symbol]
		if !ok {
			continue
		}

		price, priced := prices[inst.Symbol]
		value := float64(holding.Quantity) * price
		if priced {
			portfolioValue += value
		}

		t.AppendRow(table.Row{
			holding.Symbol,
			holding.Quantity,
			types.USD.FormatMoneyFloat64(holding.AverageCost),
			types.USD.FormatMoneyFloat64(price),
			types.USD.FormatMoneyFloat64(value),
			types.USD.FormatMoneyFloat64(value - float64(holding.Quantity)*holding.AverageCost),
		})
	}

	totalAssets := record.Cash + portfolioValue
	profit := totalAssets - record.StartingCash

	t.AppendFooter(table.Row{"", "", "", "cash", types.USD.FormatMoneyFloat64(record.Cash), ""})
	t.AppendFooter(table.Row{"", "", "", "total", types.USD.FormatMoneyFloat64(totalAssets),
		fmt.Sprintf("%+.2f%%", percentChange(profit, record.StartingCash))})
	t.Render()
}

// PrintMarket writes the tracked universe: price, day change and sentiment.
func PrintMarket(w io.Writer, instruments []types.Instrument) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"symbol", "sector", "price", "change", "sentiment"})

	for _, inst := range instruments {
		t.AppendRow(table.Row{
			inst.Symbol,
			inst.Sector,
			types.USD.FormatMoneyFloat64(inst.MarketPrice),
			fmt.Sprintf("%+.2f%%", inst.ChangePercent()),
			fmt.Sprintf("%+.3f", inst.Sentiment),
		})
	}

	t.Render()
}

// LogNews logs a news tape, newest first.
func LogNews(items []types.NewsItem) {
	for _, item := range items {
		entry := log.WithFields(log.Fields{
			"scope":     item.Scope,
			"magnitude": fmt.Sprintf("%+.3f", item.Magnitude),
		})

		if item.IsEvent {
			entry.Warnf("EVENT %s", item.Headline)
		} else {
			entry.Infof("news: %s", item.Headline)
		}
	}
}

func percentChange(profit, base float64) float64 {
	if base == 0 {
		return 0
	}
	return profit / base * 100.0
}
