package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes trading activity to a per-symbol dated log file.
type Logger struct {
	symbol  string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
	logDir  string
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARN"
	LogLevelError   LogLevel = "ERROR"
	LogLevelTrade   LogLevel = "TRADE"
	LogLevelSignal  LogLevel = "SIGNAL"
	LogLevelStatus  LogLevel = "STATUS"
)

// NewLogger creates a file logger for the given symbol under logDir.
func NewLogger(logDir, symbol string) (*Logger, error) {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.log", symbol, time.Now().Format("2006-01-02"))
	file, err := os.OpenFile(filepath.Join(logDir, filename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		symbol:  symbol,
		logFile: file,
		logger:  log.New(file, "", 0),
		logDir:  logDir,
	}
	l.writeSessionHeader()

	return l, nil
}

func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Printf("================ TRADING SESSION STARTED ================")
	l.logger.Printf("Symbol: %s | Started: %s", l.symbol, time.Now().Format("2006-01-02 15:04:05"))
	l.logger.Printf("=========================================================")
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	l.logger.Printf("[%s] [%s] %s", timestamp, level, fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// LogSignal logs a strategy signal with its confidence and price.
func (l *Logger) LogSignal(strategy, action string, confidence, price float64) {
	l.Log(LogLevelSignal, "%s emitted %s (confidence %.2f) at $%.2f", strategy, action, confidence, price)
}

// LogTradeExecution logs one executed trade.
func (l *Logger) LogTradeExecution(tradeID, side string, quantity, price, fee float64, reason string) {
	if reason == "" {
		reason = "SIGNAL"
	}
	l.Log(LogLevelTrade, "%s %s %.6f %s @ $%.2f (fee $%.4f) [%s]",
		tradeID, side, quantity, l.symbol, price, fee, reason)
}

// LogRejection logs a risk rejection. Rejections are expected
// outcomes, not errors.
func (l *Logger) LogRejection(side string, quantity, price float64, reason string) {
	l.Log(LogLevelInfo, "risk rejected %s %.6f @ $%.2f: %s", side, quantity, price, reason)
}

// LogMarketStatus logs a per-tick snapshot of the market and portfolio.
func (l *Logger) LogMarketStatus(price, balance, totalValue, totalPnL float64, openPositions int) {
	l.Log(LogLevelStatus, "price=$%.2f balance=$%.2f total=$%.2f pnl=$%.2f open=%d",
		price, balance, totalValue, totalPnL, openPositions)
}

// Close writes the session footer and closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}
	l.logger.Printf("================ TRADING SESSION ENDED ==================")
	l.logger.Printf("Ended: %s", time.Now().Format("2006-01-02 15:04:05"))
	return l.logFile.Close()
}

// GetLogPath returns the current log file path.
func (l *Logger) GetLogPath() string {
	filename := fmt.Sprintf("%s_%s.log", l.symbol, time.Now().Format("2006-01-02"))
	return filepath.Join(l.logDir, filename)
}
