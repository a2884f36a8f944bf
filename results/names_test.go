package results

import "testing"

func TestShortName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"gi|123|ref|NC_000913.3| Escherichia coli", "ref"},
		{"Homo sapiens chromosome 21", "Homo sapiens"},
		{"Lambda phage", "Lambda phage"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := ShortName(tt.in); got != tt.want {
			t.Fatalf("ShortName(%q): got=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractSongName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sample_Queen_Bohemian_Rhapsody_maxfreq.txt", "Queen_Bohemian_Rhapsody"},
		{"sample_ABBA_Waterloo_white_noise.txt", "ABBA_Waterloo"},
		{"Toto_Africa_t30s.wav", "Toto_Africa"},
		{"Song-Name-Main-version.flac", "Song-Name"},
		{"plain_song.txt", "plain_song"},
	}
	for _, tt := range tests {
		if got := ExtractSongName(tt.in); got != tt.want {
			t.Fatalf("ExtractSongName(%q): got=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeSongName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Queen_Bohemian-Rhapsody", "queen bohemian rhapsody"},
		{"  It's  A   Test!!  ", "it s a test"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeSongName(tt.in); got != tt.want {
			t.Fatalf("NormalizeSongName(%q): got=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"queen bohemian rhapsody", "queen bohemian rhapsody", true},
		{"bohemian rhapsody", "queen bohemian rhapsody", true}, // containment
		{"rhapsody queen", "queen bohemian rhapsody", true},    // word subset
		{"abba waterloo", "queen bohemian rhapsody", false},
		{"", "", false},
		{"ab", "abba waterloo", false}, // too short for containment, not a word
	}
	for _, tt := range tests {
		if got := FuzzyMatch(tt.a, tt.b); got != tt.want {
			t.Fatalf("FuzzyMatch(%q, %q): got=%v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWordOverlap(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"queen bohemian rhapsody", "queen bohemian rhapsody", 1},
		{"queen live", "queen bohemian rhapsody", 0.5},
		{"abba", "queen", 0},
		{"", "anything", 0},
	}
	for _, tt := range tests {
		if got := WordOverlap(tt.a, tt.b); got != tt.want {
			t.Fatalf("WordOverlap(%q, %q): got=%v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
