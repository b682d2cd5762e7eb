package metrics

import "github.com/prometheus/client_golang/prometheus"

var TicksTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "simstreet_ticks_total",
		Help: "price ticks advanced",
	})

var NewsItemsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "simstreet_news_items_total",
		Help: "news items generated",
	}, []string{"scope", "kind"})

var EventChecksTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "simstreet_event_checks_total",
		Help: "event checks performed, fired or not",
	})

var TradesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "simstreet_trades_total",
		Help: "accepted trades",
	}, []string{"type"})

var TradeRejectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "simstreet_trade_rejections_total",
		Help: "rejected trades",
	}, []string{"type"})

func init() {
	prometheus.MustRegister(
		TicksTotal,
		NewsItemsTotal,
		EventChecksTotal,
		TradesTotal,
		TradeRejectionsTotal,
	)
}
