package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/restock/pkg/config"
	"github.com/wonny/restock/pkg/logger"
)

// testLoggerCmd represents the test-logger command
var testLoggerCmd = &cobra.Command{
	Use:   "test-logger",
	Short: "Logger 기능 테스트",
	Long: `구조화된 로깅 기능을 테스트합니다.

이 명령어는:
- JSON/Console 포맷 테스트
- 로그 레벨 테스트
- 구조화된 필드 로깅
- 에러 컨텍스트 로깅

Example:
  go run ./cmd/restock test-logger
  go run ./cmd/restock test-logger --env production`,
	RunE: runTestLogger,
}

func init() {
	rootCmd.AddCommand(testLoggerCmd)
}

func runTestLogger(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Restock Logger Test ===")

	// Test 1: JSON Format (Production)
	fmt.Println("1. JSON Format (Production)")
	fmt.Println("--------------------------------")
	testJSONFormat()
	fmt.Println()

	// Test 2: Console Format (Development)
	fmt.Println("2. Console Format (Development)")
	fmt.Println("--------------------------------")
	testConsoleFormat()
	fmt.Println()

	// Test 3: Structured Logging
	fmt.Println("3. Structured Logging with Fields")
	fmt.Println("--------------------------------")
	testStructuredLogging()
	fmt.Println()

	// Test 4: Error Logging
	fmt.Println("4. Error Logging")
	fmt.Println("--------------------------------")
	testErrorLogging()
	fmt.Println()

	fmt.Println("✅ All logger tests completed!")
	return nil
}

func testJSONFormat() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
		Database: config.DatabaseConfig{
			URL: "dummy", // Required by config validation
		},
	}

	log := logger.New(cfg)
	log.Info("Service started")
	log.Warn("High memory usage detected")
	log.Error("Failed to reach webhook endpoint")
}

func testConsoleFormat() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
		Database: config.DatabaseConfig{
			URL: "dummy",
		},
	}

	log := logger.New(cfg)
	log.Debug("Debugging application flow")
	log.Info("Forecast request received")
	log.Warn("Cache miss, fetching from database")
}

func testStructuredLogging() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
		Database: config.DatabaseConfig{
			URL: "dummy",
		},
	}

	log := logger.New(cfg)

	// Single field
	productLog := log.WithField("product_id", 42)
	productLog.Info("Forecast generated")

	// Multiple fields
	alertLog := log.WithFields(map[string]interface{}{
		"product_id":          42,
		"alert_type":          "critical",
		"days_until_stockout": 3.2,
	})
	alertLog.Info("Stock alert generated")

	// Chained fields
	log.WithField("component", "forecast.pipeline").
		WithField("model", "random_forest").
		Info("Model selected")
}

func testErrorLogging() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
		Database: config.DatabaseConfig{
			URL: "dummy",
		},
	}

	log := logger.New(cfg)

	// Simple error
	err := errors.New("connection timeout")
	log.WithError(err).Error("Failed to load sales history")

	// Error with context
	log.WithError(err).
		WithFields(map[string]interface{}{
			"retry_count": 3,
			"timeout_ms":  5000,
			"product_id":  42,
		}).
		Error("Forecast storage failed after retries")
}
