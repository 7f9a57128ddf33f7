package state

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tradeforge/crypto-signal-bot/internal/portfolio"
)

// TradeJournal is an append-only JSONL record of trades and signals.
// Each line is one entry; the file survives restarts and the daily
// stats index is rebuilt from it on open.
type TradeJournal struct {
	mu    sync.Mutex
	file  *os.File
	path  string
	daily map[string]*DailyStats
}

// Entry is one journal line.
type Entry struct {
	Kind       string  `json:"kind"` // "trade" or "signal"
	Timestamp  int64   `json:"timestamp"`
	Symbol     string  `json:"symbol"`
	Side       string  `json:"side,omitempty"`
	Quantity   float64 `json:"quantity,omitempty"`
	Price      float64 `json:"price"`
	Fee        float64 `json:"fee,omitempty"`
	PnL        float64 `json:"pnl,omitempty"`
	Strategy   string  `json:"strategy,omitempty"`
	Action     string  `json:"action,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// DailyStats aggregates journal activity for one calendar day.
type DailyStats struct {
	Date   string  `json:"date"`
	Trades int     `json:"trades"`
	Volume float64 `json:"volume"`
	PnL    float64 `json:"pnl"`
}

// NewTradeJournal opens (or creates) the journal at path and rebuilds
// the daily stats index from existing entries.
func NewTradeJournal(path string) (*TradeJournal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	j := &TradeJournal{
		path:  path,
		daily: make(map[string]*DailyStats),
	}
	if err := j.rebuildIndex(); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	j.file = file

	return j, nil
}

func (j *TradeJournal) rebuildIndex() error {
	file, err := os.Open(j.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			// Tolerate a torn final line from a crashed run.
			continue
		}
		if entry.Kind == "trade" {
			j.indexTrade(entry)
		}
	}
	return scanner.Err()
}

func (j *TradeJournal) indexTrade(entry Entry) {
	day := time.UnixMilli(entry.Timestamp).Format("2006-01-02")
	stats, ok := j.daily[day]
	if !ok {
		stats = &DailyStats{Date: day}
		j.daily[day] = stats
	}
	stats.Trades++
	stats.Volume += entry.Quantity * entry.Price
	stats.PnL += entry.PnL
}

// LogTrade appends an executed trade with its realized PnL.
func (j *TradeJournal) LogTrade(trade portfolio.Trade, realizedPnL float64, reason string) error {
	entry := Entry{
		Kind:      "trade",
		Timestamp: trade.Timestamp,
		Symbol:    trade.Symbol,
		Side:      string(trade.Side),
		Quantity:  trade.Quantity,
		Price:     trade.Price,
		Fee:       trade.Fee,
		PnL:       realizedPnL,
		Reason:    reason,
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.append(entry); err != nil {
		return err
	}
	j.indexTrade(entry)
	return nil
}

// LogSignal appends an actionable strategy signal.
func (j *TradeJournal) LogSignal(symbol, strategy, action string, confidence, price float64, timestamp int64) error {
	entry := Entry{
		Kind:       "signal",
		Timestamp:  timestamp,
		Symbol:     symbol,
		Strategy:   strategy,
		Action:     action,
		Confidence: confidence,
		Price:      price,
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	return j.append(entry)
}

func (j *TradeJournal) append(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode journal entry: %w", err)
	}
	if _, err := j.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write journal entry: %w", err)
	}
	return nil
}

// GetDailyStats returns the aggregated stats for one day
// (format 2006-01-02), or a zero-value entry if none exist.
func (j *TradeJournal) GetDailyStats(date string) DailyStats {
	j.mu.Lock()
	defer j.mu.Unlock()

	if stats, ok := j.daily[date]; ok {
		return *stats
	}
	return DailyStats{Date: date}
}

// AllDailyStats returns stats for every day present in the journal.
func (j *TradeJournal) AllDailyStats() []DailyStats {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]DailyStats, 0, len(j.daily))
	for _, stats := range j.daily {
		out = append(out, *stats)
	}
	return out
}

// Close closes the underlying journal file.
func (j *TradeJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	return j.file.Close()
}
