package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apiconfig "valuation_builder/pkg/api/config"
	"valuation_builder/pkg/api/company"
	"valuation_builder/pkg/api/valuation"
	"valuation_builder/pkg/core/agent"
	"valuation_builder/pkg/core/export"
	"valuation_builder/pkg/core/marketdata"
	"valuation_builder/pkg/core/private"
	"valuation_builder/pkg/core/prompt"
	"valuation_builder/pkg/core/session"
	"valuation_builder/pkg/core/store"
	"valuation_builder/pkg/core/summary"
)

// credentialEnv maps each provider to the env var holding its API key.
var credentialEnv = map[string]string{
	"groq":   "GROQ_API_KEY",
	"gemini": "GEMINI_API_KEY",
}

func main() {
	godotenv.Load()

	// Prompt library; hardcoded fallbacks cover a missing resources dir.
	if err := prompt.LoadFromDirectory("resources"); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts\n", prompt.Get().Count())
	}

	// Provider configuration.
	var agentCfg agent.Config
	if configData, err := os.ReadFile("config/models.yaml"); err == nil {
		if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
			fmt.Printf("[WARNING] config/models.yaml unreadable, using defaults: %v\n", err)
		}
	}
	agentMgr := agent.NewManager(agentCfg)

	// The active provider's API key is the one required credential; refusing
	// to start beats failing on the first generate click.
	active := agentMgr.GetActiveProvider()
	if envVar, ok := credentialEnv[active]; ok && os.Getenv(envVar) == "" {
		fmt.Printf("[FATAL] %s is not set. Add the %s provider's API key to the environment or .env file.\n", envVar, active)
		os.Exit(1)
	}

	// Optional Postgres-backed quote cache; files otherwise.
	ctx := context.Background()
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[WARNING] Database unavailable, using file cache: %v\n", err)
		} else {
			defer store.Close()
			fmt.Println("[STORE] Postgres quote cache enabled")
		}
	}
	quoteCache := store.NewQuoteCache(store.GetPool(), "", 0)

	// Core wiring.
	marketClient := marketdata.NewClient(marketdata.LoadConfig(), quoteCache)
	publicAdapter := marketdata.NewAdapter(marketClient)
	privateAdapter := private.NewAdapter()
	sessions := session.NewManager()
	generator := summary.NewGenerator(agentMgr)
	exporter := export.NewExporter("output")

	companyHandler := company.NewHandler(publicAdapter, privateAdapter, sessions)
	http.HandleFunc("/api/company/public", companyHandler.HandlePublic)
	http.HandleFunc("/api/company/private", companyHandler.HandlePrivate)

	valuationHandler := valuation.NewHandler(generator, exporter, sessions)
	http.HandleFunc("/api/summary", valuationHandler.HandleSummary)
	http.HandleFunc("/api/export", valuationHandler.HandleExport)

	configHandler := apiconfig.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","provider":%q}`, agentMgr.GetActiveProvider())
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/company/public")
	fmt.Println("  - POST /api/company/private")
	fmt.Println("  - POST /api/summary")
	fmt.Println("  - POST /api/export")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - GET  /api/health")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
