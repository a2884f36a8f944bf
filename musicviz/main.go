// musicviz — accuracy benchmarking and visualization for compression-based
// music identification: compressor/noise/format sweeps, per-query accuracy
// metrics, genre breakdowns and parameter evaluation.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := defaultConfig()
	input := flag.String("i", cfg.Input, "input: results directory (sweep, accuracy, genres) or JSON file (params, optimal)")
	outDir := flag.String("o", cfg.OutDir, "output directory (or metrics file for accuracy)")
	report := flag.String("report", cfg.Report, "summary report format: txt|md")
	dataset := flag.String("dataset", cfg.Dataset, "sweep dataset: youtube|small|both")
	genreFile := flag.String("g", cfg.GenreFile, "song-to-genre CSV mapping (genres)")
	minAcc := flag.Float64("min-accuracy", cfg.MinAccuracy, "accuracy floor for the fastest-config pick (optimal)")
	configFile := flag.String("config", "", "YAML file overriding the sweep grid (methods, formats, noises, compressors)")
	noAnnotate := flag.Bool("no-annotate", false, "disable heatmap cell annotations")
	debug := flag.Bool("d", false, "debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "musicviz — music identification benchmark plots\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  musicviz -i resultsdir -o outdir [-dataset youtube|small|both] sweep\n")
		fmt.Fprintf(os.Stderr, "  musicviz -i resultsdir -o metrics.json accuracy\n")
		fmt.Fprintf(os.Stderr, "  musicviz -i resultsdir -g songs_genre.csv -o outdir genres\n")
		fmt.Fprintf(os.Stderr, "  musicviz -i results.json -o outdir params\n")
		fmt.Fprintf(os.Stderr, "  musicviz -i results.json -o outdir [-min-accuracy A] optimal\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if *configFile != "" {
		if err := cfg.loadConfigFile(*configFile); err != nil {
			fail("config %s: %v", *configFile, err)
		}
	}
	cfg.Input = *input
	cfg.OutDir = *outDir
	cfg.Report = *report
	cfg.Dataset = *dataset
	cfg.GenreFile = *genreFile
	cfg.MinAccuracy = *minAcc
	cfg.Annotate = !*noAnnotate

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "sweep":
		err = runSweep(cfg)
	case "accuracy":
		err = runAccuracy(cfg)
	case "genres":
		err = runGenres(cfg)
	case "params":
		err = runParams(cfg)
	case "optimal":
		err = runOptimal(cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fail("%s: %v", args[0], err)
	}
}

func fail(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "[-] "+format+"\n", a...)
	os.Exit(1)
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
