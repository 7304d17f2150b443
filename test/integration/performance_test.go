package integration

import (
	"fmt"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/iwvelando/realestate-calc/internal/batch"
	"github.com/iwvelando/realestate-calc/internal/config"
	"github.com/iwvelando/realestate-calc/internal/investment"
	"github.com/iwvelando/realestate-calc/internal/prequal"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()

	start := time.Now()
	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	results, err := batch.NewRunner(logger).Run(conf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	runTime := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Run calculations: %v", runTime)

	if loadTime+runTime > 5*time.Second {
		t.Errorf("Total processing time %v exceeds 5 second threshold", loadTime+runTime)
	}
	if len(results.Targets) != 1 {
		t.Errorf("Expected 1 target result, got %d", len(results.Targets))
	}
}

// TestLargeBatch runs many entries through one runner.
func TestLargeBatch(t *testing.T) {
	base, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	conf := &config.Configuration{}
	for i := 0; i < 200; i++ {
		mortgage := base.Mortgages[0]
		mortgage.Name = fmt.Sprintf("mortgage %d", i)
		mortgage.HomePrice += float64(i * 1000)
		conf.Mortgages = append(conf.Mortgages, mortgage)

		inv := base.Investments[0]
		inv.Name = fmt.Sprintf("investment %d", i)
		conf.Investments = append(conf.Investments, inv)
	}

	start := time.Now()
	results, err := batch.NewRunner(zap.NewNop()).Run(conf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	elapsed := time.Since(start)

	if len(results.Mortgages) != 200 || len(results.Investments) != 200 {
		t.Fatalf("Expected 200 mortgages and investments, got %d and %d", len(results.Mortgages), len(results.Investments))
	}
	for i := 1; i < len(results.Mortgages); i++ {
		if results.Mortgages[i].MonthlyPayment <= results.Mortgages[i-1].MonthlyPayment {
			t.Errorf("Payment should rise with price: %s %.2f <= %s %.2f",
				results.Mortgages[i].Name, results.Mortgages[i].MonthlyPayment,
				results.Mortgages[i-1].Name, results.Mortgages[i-1].MonthlyPayment)
			break
		}
	}
	t.Logf("Ran 400 calculations in %v", elapsed)
}

// TestMemoryUsage performs basic memory usage validation
func TestMemoryUsage(t *testing.T) {
	calculator := prequal.NewCalculator(zap.NewNop())
	inputs := prequal.Inputs{
		MonthlyIncome:          25000,
		FundsAvailable:         400000,
		AnnualRatePercent:      6.5,
		PropertyTaxRatePercent: 1.2,
		InsuranceRatePercent:   0.5,
		ClosingCostPercent:     3,
	}

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	for i := 0; i < 100; i++ {
		_ = calculator.Evaluate(inputs)
	}

	runtime.GC()
	runtime.ReadMemStats(&after)

	allocated := after.TotalAlloc - before.TotalAlloc
	t.Logf("Allocated %d bytes for 100 prequalifications", allocated)
	if allocated > 50*1024*1024 {
		t.Errorf("Allocated %d bytes, expected under 50MB", allocated)
	}
}

func BenchmarkRunExample(b *testing.B) {
	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		b.Fatalf("LoadConfiguration failed: %v", err)
	}
	runner := batch.NewRunner(zap.NewNop())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := runner.Run(conf); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}

func BenchmarkAnalyze(b *testing.B) {
	conf, err := config.LoadConfiguration(exampleConfig)
	if err != nil {
		b.Fatalf("LoadConfiguration failed: %v", err)
	}
	analyzer := investment.NewAnalyzer(zap.NewNop())
	inputs := conf.Investments[0].Inputs

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = analyzer.Analyze(inputs)
	}
}
