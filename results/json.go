package results

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// LoadExperiments reads a JSON array of experiments.
func LoadExperiments(path string) ([]Experiment, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ParseBytes(b).IsArray() {
		return nil, fmt.Errorf("%s: expected a JSON array of experiments", path)
	}
	var exps []Experiment
	if err := json.Unmarshal(b, &exps); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return exps, nil
}

// Flatten turns experiments into one RefRecord per ranked reference.
func Flatten(exps []Experiment) []RefRecord {
	var recs []RefRecord
	for _, e := range exps {
		for _, ref := range e.References {
			recs = append(recs, RefRecord{
				Alpha:      e.Alpha,
				K:          e.K,
				ExecTimeMS: e.ExecTimeMS,
				Name:       ref.Name,
				ShortName:  ShortName(ref.Name),
				KLD:        ref.KLD,
				NRC:        ref.NRC,
				Rank:       ref.Rank,
			})
		}
	}
	return recs
}

// LoadAccuracyMetrics reads an accuracy metrics file. Field access is
// tolerant: absent metrics read as zero so a partially written file still
// loads, and detailed results are optional.
func LoadAccuracyMetrics(path string) (AccuracyMetrics, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return AccuracyMetrics{}, err
	}
	root := gjson.ParseBytes(b)
	if !root.IsObject() {
		return AccuracyMetrics{}, fmt.Errorf("%s: expected a JSON object", path)
	}
	m := AccuracyMetrics{
		TotalQueries:  int(root.Get("total_queries").Int()),
		Top1Correct:   int(root.Get("top1_correct").Int()),
		Top5Correct:   int(root.Get("top5_correct").Int()),
		Top10Correct:  int(root.Get("top10_correct").Int()),
		Top1Accuracy:  root.Get("top1_accuracy").Float(),
		Top5Accuracy:  root.Get("top5_accuracy").Float(),
		Top10Accuracy: root.Get("top10_accuracy").Float(),
	}
	root.Get("detailed_results").ForEach(func(_, res gjson.Result) bool {
		d := DetailedResult{
			Query:       res.Get("query").String(),
			GroundTruth: res.Get("ground_truth").String(),
			TopMatch:    res.Get("top_match").String(),
			TopScore:    res.Get("top_match_score").Float(),
			Correct:     res.Get("correct").Bool(),
		}
		if r := res.Get("found_at_rank"); r.Exists() && r.Type != gjson.Null {
			rank := int(r.Int())
			d.FoundAtRank = &rank
		}
		m.Detailed = append(m.Detailed, d)
		return true
	})
	return m, nil
}

// LoadChunkReport reads a chunked best-match analysis file.
func LoadChunkReport(path string) (ChunkReport, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return ChunkReport{}, err
	}
	var rep ChunkReport
	if err := json.Unmarshal(b, &rep); err != nil {
		return ChunkReport{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return rep, nil
}

// LoadParamResults reads a parameter evaluation file. Both a bare array
// and the {"results": [...]} wrapper are accepted.
func LoadParamResults(path string) ([]ParamResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root := gjson.ParseBytes(b)
	raw := b
	if root.IsObject() {
		wrapped := root.Get("results")
		if !wrapped.Exists() {
			return nil, fmt.Errorf("%s: no \"results\" array", path)
		}
		raw = []byte(wrapped.Raw)
	}
	var out []ParamResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}
