// One-shot report builder: fetch a public ticker, generate the valuation
// summary, and export it, without running the API server.
//
// Usage:
//
//	report -ticker AAPL -format pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"valuation_builder/pkg/core/agent"
	"valuation_builder/pkg/core/export"
	"valuation_builder/pkg/core/marketdata"
	"valuation_builder/pkg/core/prompt"
	"valuation_builder/pkg/core/store"
	"valuation_builder/pkg/core/summary"
)

func main() {
	ticker := flag.String("ticker", "", "stock ticker to value (required)")
	format := flag.String("format", export.FormatPDF, "output format: pdf, docx, or html")
	flag.Parse()

	if *ticker == "" {
		fmt.Fprintln(os.Stderr, "usage: report -ticker AAPL [-format pdf|docx|html]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, assuming environment variables are set.")
	}
	if err := prompt.LoadFromDirectory("resources"); err != nil {
		fmt.Printf("[WARNING] prompt library not loaded, using fallbacks: %v\n", err)
	}

	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/models.yaml"); err == nil {
		yaml.Unmarshal(configData, &agentCfg)
	}
	agentMgr := agent.NewManager(agentCfg)

	ctx := context.Background()
	quoteCache := store.NewQuoteCache(nil, "", 0)
	client := marketdata.NewClient(marketdata.LoadConfig(), quoteCache)
	adapter := marketdata.NewAdapter(client)

	fmt.Printf("[REPORT] fetching %s...\n", *ticker)
	record, err := adapter.Fetch(ctx, *ticker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("[REPORT] %s: revenue $%.2fB, growth %.1f%%, margin %.1f%%\n",
		record.Name, record.Revenue, record.RevenueGrowth, record.ProfitMargin)

	generator := summary.NewGenerator(agentMgr)
	fmt.Println("[REPORT] generating summary...")
	text := generator.Generate(ctx, record)

	takeaways, err := generator.KeyTakeaways(ctx, record)
	if err != nil {
		fmt.Printf("[REPORT] takeaways skipped: %v\n", err)
	}

	exporter := export.NewExporter("output")
	path, err := exporter.Export(record, text, takeaways, *format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "export failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("[REPORT] done: %s\n", path)
}
