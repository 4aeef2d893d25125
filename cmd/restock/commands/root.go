package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "restock",
	Short: "Restock - 수요 예측 및 재고 경고 시스템",
	Long: `Restock Unified CLI

상품별 판매 이력을 학습하여 수요를 예측하고 재고 소진 경고를 생성합니다.
이력 집계 → 피처 생성 → 모델 학습/선택 → 재귀 예측 → 경고 생성.

Usage:
  go run ./cmd/restock [command]

Examples:
  go run ./cmd/restock forecast generate --product 1
  go run ./cmd/restock forecast batch
  go run ./cmd/restock alerts list
  go run ./cmd/restock scheduler start
  go run ./cmd/restock test-db`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
