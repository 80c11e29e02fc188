package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/danielpatrickdp/step-lab/go-analysis/internal/calibrate"
	"github.com/danielpatrickdp/step-lab/go-analysis/internal/config"
	"github.com/danielpatrickdp/step-lab/go-analysis/internal/dataset"
	"github.com/danielpatrickdp/step-lab/go-analysis/internal/detect"
	"github.com/danielpatrickdp/step-lab/go-analysis/internal/results"
)

// #region main

func main() {
	configPath := flag.String("config", "harness.yaml", "path to harness config")
	dataDir := flag.String("data-dir", "", "override dataset directory")
	seed := flag.Int64("seed", -1, "override split seed")
	ratio := flag.Float64("ratio", -1, "override calibration split ratio")
	topK := flag.Int("top-k", 0, "override how many best points to keep")
	workers := flag.Int("workers", 0, "override worker count")
	dbPath := flag.String("db", "", "override run-history database path")
	outPath := flag.String("out", "", "override contract output path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: calibrate [flags] <algorithm>|all")
		fmt.Fprintf(os.Stderr, "algorithms: %v\n", detect.Names())
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(cfg, *dataDir, *seed, *ratio, *topK, *workers, *dbPath, *outPath)

	if err := run(flag.Arg(0), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, detect.ErrUnknownAlgorithm) {
			fmt.Fprintf(os.Stderr, "algorithms: %v\n", detect.Names())
		}
		os.Exit(1)
	}
}

func applyOverrides(cfg *config.Config, dataDir string, seed int64, ratio float64, topK, workers int, dbPath, outPath string) {
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if seed >= 0 {
		cfg.Split.Seed = seed
	}
	if ratio >= 0 {
		cfg.Split.Ratio = ratio
	}
	if topK > 0 {
		cfg.Calibrate.TopK = topK
	}
	if workers > 0 {
		cfg.Calibrate.Workers = workers
	}
	if dbPath != "" {
		cfg.Output.Database = dbPath
	}
	if outPath != "" {
		cfg.Output.Contract = outPath
	}
}

// #endregion main

// #region run

func run(algo string, cfg *config.Config) error {
	sessions, skipped, err := dataset.Load(cfg.DataDir)
	if err != nil {
		return err
	}
	if skipped > 0 {
		log.Printf("[CALIBRATE] %d unusable files skipped", skipped)
	}

	calib, eval := dataset.SplitSessions(sessions, cfg.Split.Ratio, cfg.Split.Seed)
	log.Printf("[CALIBRATE] %d sessions: %d calibration, %d evaluation (seed %d)",
		len(sessions), len(calib), len(eval), cfg.Split.Seed)

	engineCfg := calibrate.Config{TopK: cfg.Calibrate.TopK, Workers: cfg.Calibrate.Workers}

	var runs []*calibrate.AlgorithmResult
	if algo == "all" {
		runs, err = calibrate.RunAll(calib, eval, engineCfg)
	} else {
		var res *calibrate.AlgorithmResult
		res, err = calibrate.Run(algo, calib, eval, engineCfg)
		runs = []*calibrate.AlgorithmResult{res}
	}
	if err != nil {
		return err
	}

	if err := persist(runs, cfg, len(calib), len(eval)); err != nil {
		return err
	}

	for _, res := range runs {
		best := res.Best[0]
		fmt.Printf("%s: calib %.3f, eval %.3f, params %s\n",
			res.Algorithm, best.CalibError, best.EvalError, best.Params.Key())
	}
	return nil
}

func persist(runs []*calibrate.AlgorithmResult, cfg *config.Config, calibSize, evalSize int) error {
	if err := results.WriteContract(results.BuildContract(runs), cfg.Output.Contract); err != nil {
		return err
	}

	store, err := results.NewStore(cfg.Output.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	meta := results.RunMeta{
		DataDir:   cfg.DataDir,
		Seed:      cfg.Split.Seed,
		CalibSize: calibSize,
		EvalSize:  evalSize,
	}
	for _, res := range runs {
		if _, err := store.RecordRun(res, meta); err != nil {
			return err
		}
	}
	return nil
}

// #endregion run
