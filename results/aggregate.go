package results

import "sort"

// RankAt is one observed (k, alpha, rank) placement of an organism.
type RankAt struct {
	K     int
	Alpha float64
	Rank  int
}

// OrganismScore is an organism's rank-stability aggregate: the sum of all
// its ranks across parameter combinations (lower is better) and the
// placements that produced it.
type OrganismScore struct {
	Name      string
	ShortName string
	Score     int
	Placed    []RankAt
}

// RankStability aggregates every organism's ranks over all (k, alpha)
// combinations. The result is sorted by score ascending, ties broken by
// name so the order is deterministic and independent of input row order.
func RankStability(recs []RefRecord) []OrganismScore {
	byName := map[string]*OrganismScore{}
	for _, r := range recs {
		os, ok := byName[r.Name]
		if !ok {
			os = &OrganismScore{Name: r.Name, ShortName: r.ShortName}
			byName[r.Name] = os
		}
		os.Score += r.Rank
		os.Placed = append(os.Placed, RankAt{K: r.K, Alpha: r.Alpha, Rank: r.Rank})
	}
	out := make([]OrganismScore, 0, len(byName))
	for _, os := range byName {
		sort.Slice(os.Placed, func(i, j int) bool {
			a, b := os.Placed[i], os.Placed[j]
			if a.K != b.K {
				return a.K < b.K
			}
			return a.Alpha < b.Alpha
		})
		out = append(out, *os)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopByFrequency returns the most frequent organism names among records
// with Rank <= maxRank, best first. Frequency ties break by name.
func TopByFrequency(recs []RefRecord, maxRank, n int) []string {
	counts := map[string]int{}
	for _, r := range recs {
		if r.Rank <= maxRank {
			counts[r.Name]++
		}
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// Uniques of K and Alpha over a record set, sorted ascending.
func ParamGrid(recs []RefRecord) (ks []int, alphas []float64) {
	seenK := map[int]bool{}
	seenA := map[float64]bool{}
	for _, r := range recs {
		seenK[r.K] = true
		seenA[r.Alpha] = true
	}
	for k := range seenK {
		ks = append(ks, k)
	}
	for a := range seenA {
		alphas = append(alphas, a)
	}
	sort.Ints(ks)
	sort.Float64s(alphas)
	return ks, alphas
}
