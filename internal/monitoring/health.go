package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// HealthChecker tracks bot liveness and serves it over HTTP.
type HealthChecker struct {
	mu            sync.RWMutex
	startTime     time.Time
	connected     bool
	lastPrice     float64
	lastPriceTime time.Time
	lastTradeTime time.Time
	recentErrors  []string
}

// HealthStatus is the JSON body returned by the health endpoint.
type HealthStatus struct {
	Status        string    `json:"status"`
	Uptime        string    `json:"uptime"`
	Connected     bool      `json:"connected"`
	LastPrice     float64   `json:"last_price,omitempty"`
	LastPriceTime time.Time `json:"last_price_time,omitempty"`
	LastTradeTime time.Time `json:"last_trade_time,omitempty"`
	RecentErrors  []string  `json:"recent_errors,omitempty"`
}

const maxRecentErrors = 10

// NewHealthChecker creates a health checker with the clock started now.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{startTime: time.Now()}
}

// SetConnected records exchange connectivity state.
func (h *HealthChecker) SetConnected(connected bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connected = connected
}

// UpdatePrice records the last observed price and its arrival time.
func (h *HealthChecker) UpdatePrice(price float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastPrice = price
	h.lastPriceTime = time.Now()
}

// UpdateLastTrade records the time of the last executed trade.
func (h *HealthChecker) UpdateLastTrade() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastTradeTime = time.Now()
}

// AddError appends an error message to the recent error ring.
func (h *HealthChecker) AddError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recentErrors = append(h.recentErrors, time.Now().Format(time.RFC3339)+" "+msg)
	if len(h.recentErrors) > maxRecentErrors {
		h.recentErrors = h.recentErrors[len(h.recentErrors)-maxRecentErrors:]
	}
}

// Status returns the current health snapshot.
func (h *HealthChecker) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if !h.connected {
		status = "degraded"
	}
	errs := make([]string, len(h.recentErrors))
	copy(errs, h.recentErrors)

	return HealthStatus{
		Status:        status,
		Uptime:        time.Since(h.startTime).Round(time.Second).String(),
		Connected:     h.connected,
		LastPrice:     h.lastPrice,
		LastPriceTime: h.lastPriceTime,
		LastTradeTime: h.lastTradeTime,
		RecentErrors:  errs,
	}
}

// ServeHTTP implements http.Handler for the health endpoint.
func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.Status()

	w.Header().Set("Content-Type", "application/json")
	if status.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}
