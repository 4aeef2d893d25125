package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/restock/internal/contracts"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "수요 예측 생성 및 조회",
	Long: `판매 이력을 학습하여 상품별 수요 예측을 생성합니다.

파이프라인:
- 최근 판매 이력 집계 (빈 날짜 0 채움)
- 캘린더/lag/rolling 피처 생성
- Linear Regression vs Random Forest 학습 후 hold-out RMSE로 선택
- 재귀 예측 및 보정, 기존 예측 원자적 교체

명령어:
  generate  상품 1건 예측 생성
  batch     전체 상품 일괄 재학습 (경고 갱신 포함)
  show      저장된 예측 조회
  trend     원시 일별 판매 시계열 조회`,
}

var (
	// generate / show / trend 플래그
	forecastProductID int64
	trendDays         int
)

var forecastGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "상품 1건 예측 생성",
	Long: `해당 상품의 판매 이력으로 모델을 학습하고 예측을 생성합니다.

Example:
  go run ./cmd/restock forecast generate --product 1`,
	RunE: runForecastGenerate,
}

var forecastBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "전체 상품 일괄 재학습",
	Long: `모든 상품을 순회하며 예측을 재생성하고 재고 경고를 갱신합니다.
개별 상품의 실패는 배치를 중단시키지 않습니다.

Example:
  go run ./cmd/restock forecast batch`,
	RunE: runForecastBatch,
}

var forecastShowCmd = &cobra.Command{
	Use:   "show",
	Short: "저장된 예측 조회",
	Long: `해당 상품의 저장된 예측을 날짜순으로 출력합니다.

Example:
  go run ./cmd/restock forecast show --product 1`,
	RunE: runForecastShow,
}

var forecastTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "원시 일별 판매 시계열 조회",
	Long: `모델 학습과 무관하게 최근 N일의 일별 판매량을 출력합니다.

Example:
  go run ./cmd/restock forecast trend --product 1 --days 30`,
	RunE: runForecastTrend,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
	forecastCmd.AddCommand(forecastGenerateCmd)
	forecastCmd.AddCommand(forecastBatchCmd)
	forecastCmd.AddCommand(forecastShowCmd)
	forecastCmd.AddCommand(forecastTrendCmd)

	forecastGenerateCmd.Flags().Int64Var(&forecastProductID, "product", 0, "상품 ID")
	_ = forecastGenerateCmd.MarkFlagRequired("product")

	forecastShowCmd.Flags().Int64Var(&forecastProductID, "product", 0, "상품 ID")
	_ = forecastShowCmd.MarkFlagRequired("product")

	forecastTrendCmd.Flags().Int64Var(&forecastProductID, "product", 0, "상품 ID")
	forecastTrendCmd.Flags().IntVar(&trendDays, "days", 30, "조회 일수")
	_ = forecastTrendCmd.MarkFlagRequired("product")
}

func runForecastGenerate(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Forecast: Generate for product %d ===\n\n", forecastProductID)

	deps, err := initDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	ctx := cmd.Context()

	// 상품 존재 확인
	product, err := deps.historyRepo.Get(ctx, forecastProductID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	fmt.Printf("📦 Product: %s (stock: %d)\n\n", product.Name, product.StockQuantity)

	result := deps.pipeline.GenerateForecasts(ctx, forecastProductID)

	switch result.Outcome {
	case contracts.OutcomeNoHistory:
		fmt.Println("⚠️ No sales history in window, nothing to forecast")
		return nil

	case contracts.OutcomeFailed:
		return fmt.Errorf("forecast generation failed: %s", result.Error)
	}

	fmt.Printf("✅ Forecasts generated: %d days (model: %s)\n", len(result.Points), result.ModelUsed)
	if result.Report.Validated {
		fmt.Printf("   Linear RMSE: %.3f  MAE: %.3f  R²: %.3f\n",
			result.Report.Linear.RMSE, result.Report.Linear.MAE, result.Report.Linear.R2)
		fmt.Printf("   Forest RMSE: %.3f  MAE: %.3f  R²: %.3f\n",
			result.Report.Ensemble.RMSE, result.Report.Ensemble.MAE, result.Report.Ensemble.R2)
	} else {
		fmt.Println("   (history too short for validation, metrics skipped)")
	}

	// 경고 갱신
	alert, err := deps.alerts.Generate(ctx, forecastProductID)
	if err != nil {
		return fmt.Errorf("generate alert: %w", err)
	}
	if alert != nil {
		fmt.Printf("\n%s\n", alert.Message)
	} else {
		fmt.Println("\n✅ Stock sufficient, no alert")
	}

	return nil
}

func runForecastBatch(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Forecast: Batch Training ===")

	deps, err := initDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	results, err := deps.batch.TrainAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("batch training: %w", err)
	}

	fmt.Printf("\n✅ Batch completed: forecasts generated for %d products\n", len(results))
	for _, r := range results {
		fmt.Printf("   - product %d: %d days (%s)\n", r.ProductID, len(r.Points), r.ModelUsed)
	}

	return nil
}

func runForecastShow(cmd *cobra.Command, args []string) error {
	deps, err := initDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	points, err := deps.pipeline.ProductForecasts(cmd.Context(), forecastProductID)
	if err != nil {
		return fmt.Errorf("get forecasts: %w", err)
	}

	if len(points) == 0 {
		fmt.Printf("⚠️ No forecasts stored for product %d\n", forecastProductID)
		return nil
	}

	fmt.Printf("=== Forecasts for product %d (%s) ===\n", forecastProductID, points[0].ModelUsed)
	for _, p := range points {
		fmt.Printf("  %s  demand: %6.2f  [%6.2f ~ %6.2f]\n",
			p.ForecastDate.Format(contracts.DateFormat),
			p.PredictedDemand, p.ConfidenceLower, p.ConfidenceUpper)
	}

	return nil
}

func runForecastTrend(cmd *cobra.Command, args []string) error {
	deps, err := initDeps()
	if err != nil {
		return err
	}
	defer deps.Close()

	series, err := deps.pipeline.TrendSeries(cmd.Context(), forecastProductID, trendDays)
	if err != nil {
		return fmt.Errorf("get trend: %w", err)
	}

	fmt.Printf("=== Sales trend for product %d (last %d days, total %d) ===\n",
		forecastProductID, trendDays, series.Total())
	for _, p := range series {
		fmt.Printf("  %s  %d\n", p.Date.Format(contracts.DateFormat), p.Quantity)
	}

	return nil
}
