package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/hupe1980/orderbot"
	"github.com/hupe1980/orderbot/engine"
	"github.com/hupe1980/orderbot/engine/anthropic"
	"github.com/hupe1980/orderbot/engine/openai"
	"github.com/hupe1980/orderbot/httpapi"
	"github.com/hupe1980/orderbot/logging"
	"github.com/hupe1980/orderbot/order"
)

type config struct {
	HTTPPort  string
	OrdersCSV string
}

func main() {
	cfg := getConfig()
	logger := logging.NewLogger(nil)

	store, err := order.LoadFile(cfg.OrdersCSV)
	if err != nil {
		log.Fatalf("load orders: %v", err)
	}
	logger.Info("orders.loaded", "path", cfg.OrdersCSV, "count", store.Len())

	eng := selectEngine()
	if eng != nil {
		logger.Info("engine.configured", "provider", eng.Info().Provider, "model", eng.Info().Name)
	} else {
		logger.Info("engine.not_configured", "mode", "rule-based")
	}

	bot := orderbot.New(func(o *orderbot.Options) {
		o.Engine = eng
		o.Orders = store
		o.Logger = logger
	})

	e := echo.New()
	e.HideBanner = true
	httpapi.NewServer(bot, func(o *httpapi.Options) { o.Logger = logger }).Register(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)))
}

func getConfig() config {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load(".env")

	return config{
		HTTPPort:  envOrDefault("HTTP_PORT", "8080"),
		OrdersCSV: envOrDefault("ORDERS_CSV", "orders.csv"),
	}
}

// selectEngine gates the reasoning engine on credential presence. OpenAI wins
// when both keys are set; neither key selects the rule-based fallback.
func selectEngine() engine.Engine {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return openai.NewEngine(func(o *openai.Options) { o.APIKey = key })
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return anthropic.NewEngine(func(o *anthropic.Options) { o.APIKey = key })
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
