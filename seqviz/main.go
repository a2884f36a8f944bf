// seqviz — visualization and reporting for compression-based sequence
// classification results: recursive model benchmarks (CSV), NRC/KLD
// reference rankings (JSON), complexity profiles and chunked matches.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := defaultConfig()
	input := flag.String("i", cfg.Input, "input file (CSV, JSON or raw sequence depending on the command)")
	outDir := flag.String("o", cfg.OutDir, "output directory")
	report := flag.String("report", cfg.Report, "summary report format: txt|md")
	tableK := flag.Int("table-k", cfg.TableK, "k for the top-organisms table (nrc)")
	tableAlpha := flag.Float64("table-alpha", cfg.TableAlpha, "alpha for the top-organisms table (nrc)")
	profileK := flag.Int("k", cfg.ProfileK, "context length for the complexity profile matrix (profile)")
	noAnnotate := flag.Bool("no-annotate", false, "disable heatmap cell annotations")
	debug := flag.Bool("d", false, "debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "seqviz — sequence classification result plots\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  seqviz -i results.csv -o outdir models\n")
		fmt.Fprintf(os.Stderr, "  seqviz -i results.json -o outdir [-table-k K -table-alpha A] nrc\n")
		fmt.Fprintf(os.Stderr, "  seqviz -i sequence.txt -k K -o outdir profile\n")
		fmt.Fprintf(os.Stderr, "  seqviz -i chunks.json -o outdir chunks\n")
		fmt.Fprintf(os.Stderr, "  seqviz -i symbol_info_dir -o outdir info\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg.Input = *input
	cfg.OutDir = *outDir
	cfg.Report = *report
	cfg.TableK = *tableK
	cfg.TableAlpha = *tableAlpha
	cfg.ProfileK = *profileK
	cfg.Annotate = !*noAnnotate

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "models":
		err = runModels(cfg)
	case "nrc":
		err = runNRC(cfg)
	case "profile":
		err = runProfile(cfg)
	case "chunks":
		err = runChunks(cfg)
	case "info":
		err = runInfo(cfg)
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
