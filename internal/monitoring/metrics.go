package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes prometheus counters and gauges for the bot.
type Metrics struct {
	tradesTotal        *prometheus.CounterVec
	tradeAmount        *prometheus.HistogramVec
	currentPrice       *prometheus.GaugeVec
	portfolioValue     prometheus.Gauge
	availableBalance   prometheus.Gauge
	strategyConfidence *prometheus.GaugeVec
	riskRejections     *prometheus.CounterVec
	errorsTotal        *prometheus.CounterVec
}

// NewMetrics registers bot metrics on the given registry. Pass nil to
// use the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		tradesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_trades_total",
			Help: "Total number of executed trades",
		}, []string{"symbol", "side", "reason"}),
		tradeAmount: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "signal_bot_trade_amount_usd",
			Help:    "Notional value of executed trades in USD",
			Buckets: prometheus.ExponentialBuckets(10, 2, 12),
		}, []string{"symbol", "side"}),
		currentPrice: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "signal_bot_current_price",
			Help: "Last observed market price",
		}, []string{"symbol"}),
		portfolioValue: factory.NewGauge(prometheus.GaugeOpts{
			Name: "signal_bot_portfolio_value_usd",
			Help: "Total portfolio value in USD",
		}),
		availableBalance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "signal_bot_available_balance_usd",
			Help: "Available cash balance in USD",
		}),
		strategyConfidence: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "signal_bot_strategy_confidence",
			Help: "Confidence of the last strategy signal",
		}, []string{"strategy", "action"}),
		riskRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_risk_rejections_total",
			Help: "Trades rejected by the risk manager, by failing gate",
		}, []string{"symbol", "gate"}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "signal_bot_errors_total",
			Help: "Errors encountered by component",
		}, []string{"component"}),
	}
}

// RecordTrade records one executed trade.
func (m *Metrics) RecordTrade(symbol, side, reason string, notional float64) {
	m.tradesTotal.WithLabelValues(symbol, side, reason).Inc()
	m.tradeAmount.WithLabelValues(symbol, side).Observe(notional)
}

// UpdatePrice updates the last observed price gauge.
func (m *Metrics) UpdatePrice(symbol string, price float64) {
	m.currentPrice.WithLabelValues(symbol).Set(price)
}

// UpdatePortfolio updates portfolio value and balance gauges.
func (m *Metrics) UpdatePortfolio(totalValue, availableBalance float64) {
	m.portfolioValue.Set(totalValue)
	m.availableBalance.Set(availableBalance)
}

// RecordSignal records the confidence of the latest signal.
func (m *Metrics) RecordSignal(strategy, action string, confidence float64) {
	m.strategyConfidence.WithLabelValues(strategy, action).Set(confidence)
}

// RecordRejection counts a risk manager rejection. The gate must be
// one of the manager's fixed gate identifiers, never a free-form
// reason string, so the label set stays bounded.
func (m *Metrics) RecordRejection(symbol, gate string) {
	m.riskRejections.WithLabelValues(symbol, gate).Inc()
}

// RecordError counts an error for the given component.
func (m *Metrics) RecordError(component string) {
	m.errorsTotal.WithLabelValues(component).Inc()
}

// MetricsHandler returns the HTTP handler serving the metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
