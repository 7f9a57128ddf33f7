package reporting

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tradeforge/crypto-signal-bot/internal/portfolio"
	"github.com/tradeforge/crypto-signal-bot/internal/state"
)

// ConsoleReporter renders bot state as terminal tables.
type ConsoleReporter struct{}

// NewConsoleReporter creates a console reporter writing to stdout.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// PrintStartupInfo prints the bot configuration at startup.
func (r *ConsoleReporter) PrintStartupInfo(symbol, strategyName, exchangeName string, dryRun bool, interval time.Duration, initialBalance float64) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("BOT INITIALIZATION")
	t.SetStyle(table.StyleRounded)

	mode := "LIVE"
	if dryRun {
		mode = "DRY RUN"
	}

	t.AppendRows([]table.Row{
		{"📊 Symbol", symbol},
		{"🧠 Strategy", strategyName},
		{"🏪 Exchange", exchangeName},
		{"🔧 Mode", mode},
		{"⏰ Interval", interval.String()},
		{"💰 Balance", fmt.Sprintf("$%.2f", initialBalance)},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, WidthMax: 15, Align: text.AlignLeft},
		{Number: 2, WidthMin: 30, WidthMax: 35, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Println()
}

// PrintPortfolioSummary prints the ledger snapshot.
func (r *ConsoleReporter) PrintPortfolioSummary(summary portfolio.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("PORTFOLIO SUMMARY")
	t.SetStyle(table.StyleRounded)

	pnlIcon := "📈"
	if summary.TotalPnL < 0 {
		pnlIcon = "📉"
	}

	t.AppendRows([]table.Row{
		{"💰 Available Balance", fmt.Sprintf("$%.2f", summary.AvailableBalance)},
		{"📦 Positions Value", fmt.Sprintf("$%.2f", summary.PositionsValue)},
		{"💎 Total Value", fmt.Sprintf("$%.2f", summary.TotalValue)},
		{pnlIcon + " Total P&L", fmt.Sprintf("$%.2f", summary.TotalPnL)},
		{"🔓 Open Positions", summary.OpenPositions},
		{"🔄 Total Trades", summary.TotalTrades},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 22, WidthMax: 22, Align: text.AlignLeft},
		{Number: 2, WidthMin: 18, WidthMax: 25, Align: text.AlignRight},
	})

	t.Render()
	fmt.Println()
}

// PrintPositions prints the open positions table. No-op when empty.
func (r *ConsoleReporter) PrintPositions(positions []portfolio.Position) {
	if len(positions) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("OPEN POSITIONS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Symbol", "Side", "Quantity", "Avg Price", "Current", "Unrealized P&L"})
	for _, pos := range positions {
		t.AppendRow(table.Row{
			pos.Symbol,
			pos.Side,
			fmt.Sprintf("%.6f", pos.Quantity),
			fmt.Sprintf("$%.2f", pos.AvgPrice),
			fmt.Sprintf("$%.2f", pos.CurrentPrice),
			fmt.Sprintf("$%.2f", pos.UnrealizedPnL),
		})
	}

	t.Render()
	fmt.Println()
}

// PrintDailyStats prints per-day journal aggregates.
func (r *ConsoleReporter) PrintDailyStats(stats []state.DailyStats) {
	if len(stats) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("DAILY ACTIVITY")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Date", "Trades", "Volume", "Realized P&L"})
	for _, day := range stats {
		t.AppendRow(table.Row{
			day.Date,
			day.Trades,
			fmt.Sprintf("$%.2f", day.Volume),
			fmt.Sprintf("$%.2f", day.PnL),
		})
	}

	t.Render()
	fmt.Println()
}
