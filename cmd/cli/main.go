package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"energy-dashboard/internal/config"
	"energy-dashboard/internal/dashboard"
	"energy-dashboard/internal/data"
	"energy-dashboard/internal/model"
	"energy-dashboard/internal/service"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "render":
		cmdRender(os.Args[2:])
	case "sources":
		cmdSources(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli render --config dashboard.yaml --data fixture.json")
	fmt.Println("  cli sources --config dashboard.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - render prints one row per configured source plus the total")
	fmt.Println("  - sources prints the normalized source descriptors")
}

func cmdRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	dataPath := fs.String("data", "", "Path to statistics fixture JSON")
	_ = fs.Parse(args)

	if *cfgPath == "" || *dataPath == "" {
		fmt.Println("--config and --data are required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	sources, err := config.Normalize(cfg.Sources)
	if err != nil {
		panic(err)
	}
	nm := config.NormalizeNetMetering(cfg.NetMetering)
	period, _ := model.ParsePeriod(cfg.Period)

	fixture, err := data.LoadFixture(*dataPath)
	if err != nil {
		panic(err)
	}

	engine := dashboard.New(dashboard.Formatter{
		Currency:      cfg.Format.Currency,
		ValueDecimals: *cfg.Format.ValueDecimals,
		CostDecimals:  *cfg.Format.CostDecimals,
	})
	svc := service.New(fixture, engine, sources, nm, period)
	summary := svc.Refresh(context.Background())

	printSummary(summary)
}

func cmdSources(args []string) {
	fs := flag.NewFlagSet("sources", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	sources, err := config.Normalize(cfg.Sources)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-14s %-24s %-16s %-6s %-10s\n", "kind", "entity", "label", "unit", "rate")
	for _, s := range sources {
		entity := s.EntityID
		if s.Derivation != nil {
			entity = s.Derivation.ImportEntityID + "-" + s.Derivation.ExportEntityID
		}
		rate := s.RateEntityID
		if rate == "" && s.RateStatic != nil {
			rate = fmt.Sprintf("%.4f", *s.RateStatic)
		}
		fmt.Printf("%-14s %-24s %-16s %-6s %-10s\n", s.Kind, entity, s.Label, s.Unit, rate)
	}
}

func printSummary(summary model.Summary) {
	fmt.Printf("%-3s %-16s %12s %-6s %12s %s\n", "", "source", "value", "unit", "cost", "warning")
	for _, r := range summary.Rows {
		cost := "-"
		if r.CostApplicable {
			cost = r.FormattedCost
		}
		fmt.Printf("%-3s %-16s %12s %-6s %12s %s\n",
			r.Emoji, r.Label, r.FormattedValue, r.Unit, cost, r.Warning)
	}
	if summary.TotalApplicable {
		fmt.Printf("\nTotal: %s\n", summary.FormattedTotal)
	} else {
		fmt.Println("\nTotal: n/a")
	}
}
