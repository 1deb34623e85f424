package main

import (
	"context"
	"fmt"

	"energy-dashboard/internal/config"
	"energy-dashboard/internal/dashboard"
	"energy-dashboard/internal/data"
	"energy-dashboard/internal/model"
	"energy-dashboard/internal/service"
)

// A self-contained walkthrough: a typical home with solar, a bidirectional
// grid connection with net metering, and a gas meter, over one canned day
// of statistics.
func main() {
	fixture := &data.Fixture{
		Statistics: map[string][]model.StatSample{
			"sensor.solar_energy":   sumSeries(0, 4.2, 9.8, 14.3),
			"sensor.grid_import":    sumSeries(120.0, 123.1, 125.0, 126.4),
			"sensor.grid_export":    sumSeries(40.0, 41.5, 44.9, 47.2),
			"sensor.gas_consumed":   changeSeries(0.4, 0.1, 0.0, 0.3),
			"sensor.water_consumed": changeSeries(0, 0, 0, 0),
		},
		States: map[string]string{
			"sensor.electricity_price": "0.31",
		},
	}

	showCost := true
	exportRate := 0.08
	gasRate := 1.15

	cfg := []config.SourceConfig{
		{Kind: "solar", EntityID: "sensor.solar_energy", ShowCost: new(bool)},
		{Kind: "grid_import", EntityID: "sensor.grid_import", RateEntityID: "sensor.electricity_price", ShowCost: &showCost},
		{Kind: "grid_export", EntityID: "sensor.grid_export", RateStatic: &exportRate, InvertCost: true, ShowCost: &showCost},
		{Kind: "gas", EntityID: "sensor.gas_consumed", RateStatic: &gasRate, CostFormula: "value * rate + 0.5", ShowCost: &showCost},
		{Kind: "water", EntityID: "sensor.water_consumed", HideIfZero: true},
	}

	sources, err := config.Normalize(cfg)
	if err != nil {
		panic(err)
	}
	nm := config.NormalizeNetMetering(&config.NetMeteringConfig{
		ImportEntityID: "sensor.grid_import",
		ExportEntityID: "sensor.grid_export",
		RateEntityID:   "sensor.electricity_price",
	})

	engine := dashboard.New(dashboard.DefaultFormatter())
	svc := service.New(fixture, engine, sources, nm, model.PeriodToday)
	summary := svc.Refresh(context.Background())

	fmt.Println("Energy dashboard demo")
	fmt.Println("=====================")
	for _, r := range summary.Rows {
		cost := "-"
		if r.CostApplicable {
			cost = r.FormattedCost
		}
		fmt.Printf("%-3s %-16s %10s %-4s %10s\n", r.Emoji, r.Label, r.FormattedValue, r.Unit, cost)
	}
	fmt.Printf("\nTotal: %s\n", summary.FormattedTotal)
}

func sumSeries(values ...float64) []model.StatSample {
	out := make([]model.StatSample, len(values))
	for i := range values {
		v := values[i]
		out[i] = model.StatSample{Sum: &v}
	}
	return out
}

func changeSeries(values ...float64) []model.StatSample {
	out := make([]model.StatSample, len(values))
	for i := range values {
		v := values[i]
		out[i] = model.StatSample{Change: &v}
	}
	return out
}
