package main

type Config struct {
	// IO
	Input  string
	OutDir string
	Report string // txt|md

	// nrc table selection
	TableK     int
	TableAlpha float64

	// complexity profile
	ProfileK int

	// rendering
	Annotate bool
}

func defaultConfig() *Config {
	return &Config{
		Input:      "../results/test_results.csv",
		OutDir:     "visualization_results",
		Report:     "txt",
		TableK:     17,
		TableAlpha: 0.01,
		ProfileK:   3,
		Annotate:   true,
	}
}
