// Package metrics holds the Prometheus series the trader updates:
//
//	hotkey_trader_actions_total{action,status}  – finished actions by outcome
//	hotkey_trader_orders_total{type,side}       – orders accepted by the exchange
//	hotkey_trader_gateway_errors_total{op,kind} – failed exchange calls by taxonomy
//	hotkey_trader_fill_fallbacks_total          – entries priced from the mark price
//	hotkey_trader_busy_rejections_total         – triggers dropped while an action ran
//
// They are registered in init() and exposed at /metrics by the HTTP transport.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	Actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotkey_trader_actions_total",
			Help: "Trading actions finished, by action and outcome status",
		},
		[]string{"action", "status"},
	)

	Orders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotkey_trader_orders_total",
			Help: "Orders accepted by the exchange",
		},
		[]string{"type", "side"},
	)

	GatewayErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotkey_trader_gateway_errors_total",
			Help: "Exchange calls that failed, by operation and error kind",
		},
		[]string{"op", "kind"},
	)

	FillFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hotkey_trader_fill_fallbacks_total",
			Help: "Entries priced from the mark price because no fill price was reported",
		},
	)

	BusyRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hotkey_trader_busy_rejections_total",
			Help: "Commands rejected because another action was still running",
		},
	)
)

func init() {
	prometheus.MustRegister(Actions, Orders, GatewayErrors, FillFallbacks, BusyRejections)
}
