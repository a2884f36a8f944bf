package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// InfoPoint is one position of a per-symbol information profile.
type InfoPoint struct {
	Position    float64
	Information float64
}

// LoadInfoProfile reads a per-organism symbol information CSV. Columns
// are matched by header name; rows whose cells fail to parse become NaN
// so a few bad cells never abort the load.
func LoadInfoProfile(path string) ([]InfoPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	col := map[string]int{}
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	pos, ok := col["Position"]
	if !ok {
		return nil, fmt.Errorf("%s: missing column %q", path, "Position")
	}
	info, ok := col["Information"]
	if !ok {
		return nil, fmt.Errorf("%s: missing column %q", path, "Information")
	}

	var points []InfoPoint
	for _, row := range records[1:] {
		if pos >= len(row) || info >= len(row) {
			continue
		}
		points = append(points, InfoPoint{
			Position:    coerceFloat(strings.TrimSpace(row[pos])),
			Information: coerceFloat(strings.TrimSpace(row[info])),
		})
	}
	return points, nil
}

// SymbolFileOrganism extracts the organism name from a symbol_info CSV
// filename: the prefix before the first underscore is dropped, the rest
// joins back with underscores and anything after a comma goes.
// "symbols_Escherichia_coli,complete.csv" -> "Escherichia_coli".
func SymbolFileOrganism(filename string) string {
	name := strings.TrimSuffix(filename, ".csv")
	parts := strings.Split(name, "_")
	if len(parts) > 1 {
		name = strings.Join(parts[1:], "_")
	}
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	}
	return name
}
