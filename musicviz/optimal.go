package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"resviz/results"
)

// runOptimal picks and writes the recommended configurations from a
// parameter evaluation: the best overall, the best per method, and the
// fastest one that still clears the accuracy floor.
func runOptimal(cfg *Config) error {
	res, err := results.LoadParamResults(cfg.Input)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		return fmt.Errorf("no parameter results in %s", cfg.Input)
	}
	if err := ensureDir(cfg.OutDir); err != nil {
		return err
	}

	best := pickBest(res)
	if err := writeConfigJSON(cfg.OutDir, "optimal_config.json", best); err != nil {
		return err
	}
	log.Infof("best overall: %s (top-1 %.1f%%)", configLabel(best), best.Top1Accuracy)

	perMethod := pickBestPerMethod(res)
	methods := make([]string, 0, len(perMethod))
	for m := range perMethod {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	for _, m := range methods {
		name := fmt.Sprintf("optimal_config_%s.json", m)
		if err := writeConfigJSON(cfg.OutDir, name, perMethod[m]); err != nil {
			return err
		}
	}

	fastest, ok := pickFastest(res, cfg.MinAccuracy)
	if ok {
		if err := writeConfigJSON(cfg.OutDir, "fastest_config.json", fastest); err != nil {
			return err
		}
	} else {
		log.Warnf("no configuration reaches %.1f%% top-1 accuracy", cfg.MinAccuracy)
	}

	return writeOptimalIndex(cfg, best, perMethod, methods, fastest, ok)
}

// pickBest returns the configuration with the highest top-1 accuracy,
// ties broken by top-5, then by label for determinism.
func pickBest(res []results.ParamResult) results.ParamResult {
	best := res[0]
	for _, r := range res[1:] {
		if betterConfig(r, best) {
			best = r
		}
	}
	return best
}

func betterConfig(a, b results.ParamResult) bool {
	if a.Top1Accuracy != b.Top1Accuracy {
		return a.Top1Accuracy > b.Top1Accuracy
	}
	if a.Top5Accuracy != b.Top5Accuracy {
		return a.Top5Accuracy > b.Top5Accuracy
	}
	return configLabel(a) < configLabel(b)
}

func pickBestPerMethod(res []results.ParamResult) map[string]results.ParamResult {
	out := map[string]results.ParamResult{}
	for _, r := range res {
		cur, ok := out[r.Method]
		if !ok || betterConfig(r, cur) {
			out[r.Method] = r
		}
	}
	return out
}

// pickFastest returns the lowest-latency configuration whose top-1
// accuracy is at least minAccuracy. Results without timing data are
// skipped.
func pickFastest(res []results.ParamResult, minAccuracy float64) (results.ParamResult, bool) {
	var fastest results.ParamResult
	found := false
	for _, r := range res {
		if r.Top1Accuracy < minAccuracy || r.AvgTimeMS <= 0 {
			continue
		}
		if !found || r.AvgTimeMS < fastest.AvgTimeMS ||
			(r.AvgTimeMS == fastest.AvgTimeMS && betterConfig(r, fastest)) {
			fastest = r
			found = true
		}
	}
	return fastest, found
}

func writeConfigJSON(dir, name string, r results.ParamResult) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), b, 0644)
}

func writeOptimalIndex(cfg *Config, best results.ParamResult, perMethod map[string]results.ParamResult,
	methods []string, fastest results.ParamResult, haveFastest bool) error {

	var b strings.Builder
	b.WriteString("# Recommended Configurations\n\n")
	b.WriteString("## Best Overall\n\n")
	fmt.Fprintf(&b, "- `%s` — top-1 %.1f%%, top-5 %.1f%% ([optimal_config.json](optimal_config.json))\n\n",
		configLabel(best), best.Top1Accuracy, best.Top5Accuracy)

	b.WriteString("## Best per Method\n\n")
	for _, m := range methods {
		r := perMethod[m]
		fmt.Fprintf(&b, "- `%s` — top-1 %.1f%% ([optimal_config_%s.json](optimal_config_%s.json))\n",
			configLabel(r), r.Top1Accuracy, m, m)
	}

	b.WriteString("\n## Fastest Above Floor\n\n")
	if haveFastest {
		fmt.Fprintf(&b, "- `%s` — top-1 %.1f%%, %.1f ms/query ([fastest_config.json](fastest_config.json))\n",
			configLabel(fastest), fastest.Top1Accuracy, fastest.AvgTimeMS)
	} else {
		fmt.Fprintf(&b, "No configuration reaches the %.1f%% top-1 floor with timing data.\n", cfg.MinAccuracy)
	}
	return os.WriteFile(filepath.Join(cfg.OutDir, "README.md"), []byte(b.String()), 0644)
}
