package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/restock/internal/contracts"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "재고 경고 관리",
	Long: `저장된 예측과 현재 재고로 소진 경고를 관리합니다.

등급 (예상 소진일 기준):
- critical: 7일 미만
- warning:  14일 미만
- info:     30일 미만

명령어:
  list      active 경고 목록 (심각도순)
  dismiss   경고 해제
  generate  상품 1건 경고 재평가`,
}

var (
	dismissAlertID int64
	alertProductID int64
)

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "active 경고 목록",
	Long: `모든 active 경고를 심각도순으로 출력합니다.

Example:
  go run ./cmd/restock alerts list`,
	RunE: runAlertsList,
}

var alertsDismissCmd = &cobra.Command{
	Use:   "dismiss",
	Short: "경고 해제",
	Long: `active 경고를 dismissed로 전환합니다.

Example:
  go run ./cmd/restock alerts dismiss --id 42`,
	RunE: runAlertsDismiss,
}

var alertsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "상품 1건 경고 재평가",
	Long: `저장된 예측과 현재 재고로 해당 상품의 경고를 다시 평가합니다.

Example:
  go run ./cmd/restock alerts generate --product 1`,
	RunE: runAlertsGenerate,
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsDismissCmd)
	alertsCmd.AddCommand(alertsGenerateCmd)

	alertsDismissCmd.Flags().Int64Var(&dismissAlertID, "id", 0, "경고 ID")
	_ = alertsDismissCmd.MarkFlagRequired("id")

	alertsGenerateCmd.Flags().Int64Var(&alertProductID, "product", 0, "상품 ID")
	_ = alertsGenerateCmd.MarkFlagRequired("product")
}

func runAlertsList(cmd *cobra.Command, args []string) error {
	deps, err := initDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	alerts, err := deps.alertRepo.ListActive(cmd.Context())
	if err != nil {
		return fmt.Errorf("list alerts: %w", err)
	}

	if len(alerts) == 0 {
		fmt.Println("✅ No active alerts")
		return nil
	}

	fmt.Printf("=== Active alerts (%d) ===\n", len(alerts))
	for _, a := range alerts {
		fmt.Printf("\n[%d] %s\n", a.ID, a.Message)
		fmt.Printf("    Product: %s (id %d)\n", a.ProductName, a.ProductID)
		fmt.Printf("    Days until stockout: %.1f\n", a.DaysUntilStockout)
		fmt.Printf("    Recommended order: %d units\n", a.RecommendedOrderQty)
	}

	return nil
}

func runAlertsDismiss(cmd *cobra.Command, args []string) error {
	deps, err := initDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	if err := deps.alertRepo.Dismiss(cmd.Context(), dismissAlertID); err != nil {
		if errors.Is(err, contracts.ErrAlertNotFound) {
			return fmt.Errorf("no active alert with id %d", dismissAlertID)
		}
		return fmt.Errorf("dismiss alert: %w", err)
	}

	fmt.Printf("✅ Alert %d dismissed\n", dismissAlertID)
	return nil
}

func runAlertsGenerate(cmd *cobra.Command, args []string) error {
	deps, err := initDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	alert, err := deps.alerts.Generate(cmd.Context(), alertProductID)
	if err != nil {
		return fmt.Errorf("generate alert: %w", err)
	}

	if alert == nil {
		fmt.Println("✅ Stock sufficient, no alert")
		return nil
	}

	fmt.Println(alert.Message)
	fmt.Printf("Recommended order: %d units\n", alert.RecommendedOrderQty)
	return nil
}
