package results

import (
	"path/filepath"
	"regexp"
	"strings"
)

// ShortName derives a display name from a full reference header.
// Pipe-delimited headers (e.g. "gb|AE005174|Escherichia coli O157") use the
// third segment; otherwise the first two whitespace-separated words.
func ShortName(full string) string {
	if strings.Contains(full, "|") {
		parts := strings.Split(full, "|")
		if len(parts) >= 3 {
			return strings.TrimSpace(parts[2])
		}
		return strings.TrimSpace(parts[0])
	}
	words := strings.Fields(full)
	if len(words) > 2 {
		return strings.Join(words[:2], " ")
	}
	return full
}

var (
	reMethodSuffix = regexp.MustCompile(`(?i)_(spectral|maxfreq)$`)
	reNoiseSuffix  = regexp.MustCompile(`(?i)_(white|pink|brown)_noise$`)
	reTimeSuffix   = regexp.MustCompile(`(?i)_t\d+s$`)
	reMainVersion  = regexp.MustCompile(`(?i)-Main-version$`)
	reSeparators   = regexp.MustCompile(`[-_]+`)
	reNonAlnum     = regexp.MustCompile(`[^a-z0-9\s]`)
	reSpaces       = regexp.MustCompile(`\s+`)
)

// ExtractSongName strips the extension and the decorations a query or
// candidate filename picks up on its way through the pipeline: the sample_
// prefix, feature-method and noise suffixes, segment timestamps and the
// -Main-version tail.
func ExtractSongName(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.TrimPrefix(name, "sample_")
	name = reMethodSuffix.ReplaceAllString(name, "")
	name = reNoiseSuffix.ReplaceAllString(name, "")
	name = reTimeSuffix.ReplaceAllString(name, "")
	name = reMainVersion.ReplaceAllString(name, "")
	return strings.Trim(name, "_-")
}

// NormalizeSongName lowercases and collapses a song name to plain words
// for matching.
func NormalizeSongName(name string) string {
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)
	name = reSeparators.ReplaceAllString(name, " ")
	name = reNonAlnum.ReplaceAllString(name, " ")
	name = reSpaces.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// FuzzyMatch reports whether two normalized song names refer to the same
// song: exact match, containment (for names long enough to be meaningful),
// or the shorter name's words all appearing in the longer one.
func FuzzyMatch(a, b string) bool {
	if a == b {
		return a != ""
	}
	if len(a) > 3 && len(b) > 3 {
		if strings.Contains(a, b) || strings.Contains(b, a) {
			return true
		}
	}
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}
	shorter, longer := wordsA, wordsB
	if len(wordsB) < len(wordsA) {
		shorter, longer = wordsB, wordsA
	}
	in := make(map[string]bool, len(longer))
	for _, w := range longer {
		in[w] = true
	}
	for _, w := range shorter {
		if !in[w] {
			return false
		}
	}
	return true
}

// WordOverlap is the fraction of the smaller word set shared with the
// larger one, used for genre assignment where FuzzyMatch is too strict.
func WordOverlap(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}
	in := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		in[w] = true
	}
	distinctB := map[string]bool{}
	for _, w := range wordsB {
		distinctB[w] = true
	}
	shared := 0
	for w := range distinctB {
		if in[w] {
			shared++
		}
	}
	min := len(in)
	if len(distinctB) < min {
		min = len(distinctB)
	}
	return float64(shared) / float64(min)
}
