// Package results holds the flat record types parsed from experiment
// result files (CSV and JSON) and the loaders that produce them.
package results

// ModelRun is one row of a recursive-model benchmark CSV
// (alpha,k,RecursiveStep,AvgInfoContent,ExecTime(ms),ModelSize,File,ModelType).
type ModelRun struct {
	Alpha          float64
	K              int
	RecursiveStep  int
	AvgInfoContent float64 // NaN when the source cell failed to parse
	ExecTimeMS     float64
	ModelSize      float64
	File           string // basename without extension
	Format         string // model serialization format (e.g. JSON, BSON)
}

// Reference is one ranked reference inside an experiment.
type Reference struct {
	Name string  `json:"name"`
	KLD  float64 `json:"kld"`
	NRC  float64 `json:"nrc"`
	Rank int     `json:"rank"`
}

// Experiment is one (alpha, k) run with its ranked reference list.
type Experiment struct {
	Alpha      float64     `json:"alpha"`
	K          int         `json:"k"`
	ExecTimeMS float64     `json:"execTime_ms"`
	References []Reference `json:"references"`
}

// RefRecord is a flattened reference row, one per (experiment, reference),
// the unit of all NRC/KLD aggregation.
type RefRecord struct {
	Alpha      float64
	K          int
	ExecTimeMS float64
	Name       string
	ShortName  string
	KLD        float64
	NRC        float64
	Rank       int
}

// DetailedResult is the per-query record inside an accuracy metrics file.
// FoundAtRank is nil when the ground truth never appeared in the top 10.
type DetailedResult struct {
	Query       string  `json:"query"`
	GroundTruth string  `json:"ground_truth"`
	TopMatch    string  `json:"top_match"`
	TopScore    float64 `json:"top_match_score"`
	FoundAtRank *int    `json:"found_at_rank"`
	Correct     bool    `json:"correct"`
}

// AccuracyMetrics is the summary written/read for one benchmark
// configuration. Accuracies are percentages in [0, 100].
type AccuracyMetrics struct {
	TotalQueries  int              `json:"total_queries"`
	Top1Correct   int              `json:"top1_correct"`
	Top5Correct   int              `json:"top5_correct"`
	Top10Correct  int              `json:"top10_correct"`
	Top1Accuracy  float64          `json:"top1_accuracy"`
	Top5Accuracy  float64          `json:"top5_accuracy"`
	Top10Accuracy float64          `json:"top10_accuracy"`
	Detailed      []DetailedResult `json:"detailed_results,omitempty"`
}

// Accuracy returns the metric for a given K (1, 5 or 10).
func (m AccuracyMetrics) Accuracy(topK int) float64 {
	switch topK {
	case 1:
		return m.Top1Accuracy
	case 5:
		return m.Top5Accuracy
	default:
		return m.Top10Accuracy
	}
}

// Monotonic reports whether top1 <= top5 <= top10 holds.
func (m AccuracyMetrics) Monotonic() bool {
	return m.Top1Accuracy <= m.Top5Accuracy && m.Top5Accuracy <= m.Top10Accuracy
}

// RankingRow is one candidate in a per-query ranking CSV (rank, file, score).
// Score is a compression distance, lower is better.
type RankingRow struct {
	Rank     int
	Filename string
	Score    float64
}

// Chunk is one segment of a chunked sequence comparison.
type Chunk struct {
	Position  int     `json:"position"`
	Length    int     `json:"length"`
	BestMatch string  `json:"best_match"`
	BestNRC   float64 `json:"best_nrc"`
}

// ChunkReport is the output of a chunked best-match analysis.
type ChunkReport struct {
	Sequence string  `json:"sequence,omitempty"`
	Chunks   []Chunk `json:"chunks"`
}

// ParamResult is one configuration from a parameter evaluation run.
type ParamResult struct {
	Method         string  `json:"method"`
	NumFrequencies int     `json:"numFrequencies"`
	NumBins        int     `json:"numBins"`
	FrameSize      int     `json:"frameSize"`
	HopSize        int     `json:"hopSize"`
	Compressor     string  `json:"compressor,omitempty"`
	Top1Accuracy   float64 `json:"top1_accuracy"`
	Top5Accuracy   float64 `json:"top5_accuracy"`
	Top10Accuracy  float64 `json:"top10_accuracy"`
	AvgTimeMS      float64 `json:"avg_time_ms,omitempty"`
}
