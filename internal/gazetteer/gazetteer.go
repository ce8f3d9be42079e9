// Package gazetteer loads the ordered city list the entity extractor
// matches against.
package gazetteer

import (
	"bufio"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

//go:embed cities.txt
var defaultCities string

// Options controls which GeoNames rows make it into the list.
type Options struct {
	// Limit is the number of most populous unique names kept.
	Limit int
	// Countries are ISO codes whose cities are all kept after the top
	// names, whatever their population.
	Countries []string
	// MinLength drops names shorter than this many characters.
	MinLength int
}

// DefaultOptions keeps the 1000 biggest cities plus every French one.
func DefaultOptions() Options {
	return Options{Limit: 1000, Countries: []string{"FR"}, MinLength: 4}
}

// Default returns the embedded city list, most populous first.
func Default() []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(defaultCities))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// GeoNames column positions in cities1000.txt.
const (
	colName        = 1
	colCountryCode = 8
	colPopulation  = 14
	minColumns     = colPopulation + 1
)

type row struct {
	name       string
	country    string
	population int64
	line       int
}

// LoadGeoNames reads a GeoNames dump (tab separated, no header) and returns
// the Limit most populous unique names, then the remaining names of the
// chosen countries, with short names removed. Rows keep file order among equal
// populations.
func LoadGeoNames(r io.Reader, opts Options) ([]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var rows []row
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gazetteer: line %d: %w", line, err)
		}
		if len(rec) < minColumns {
			return nil, fmt.Errorf("gazetteer: line %d: expected at least %d columns, got %d", line, minColumns, len(rec))
		}
		name := strings.TrimSpace(rec[colName])
		if name == "" {
			continue
		}
		pop, err := strconv.ParseInt(strings.TrimSpace(rec[colPopulation]), 10, 64)
		if err != nil {
			pop = 0
		}
		rows = append(rows, row{name: name, country: rec[colCountryCode], population: pop, line: line})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].population > rows[j].population })

	var top []string
	seen := map[string]bool{}
	for _, r := range rows {
		if opts.Limit > 0 && len(top) == opts.Limit {
			break
		}
		if !seen[r.name] {
			seen[r.name] = true
			top = append(top, r.name)
		}
	}

	countries := map[string]bool{}
	for _, c := range opts.Countries {
		countries[strings.ToUpper(strings.TrimSpace(c))] = true
	}
	var extra []string
	for _, r := range rows {
		if countries[r.country] && !seen[r.name] {
			seen[r.name] = true
			extra = append(extra, r.name)
		}
	}

	out := make([]string, 0, len(top)+len(extra))
	for _, name := range append(top, extra...) {
		if utf8.RuneCountInString(name) >= opts.MinLength {
			out = append(out, name)
		}
	}
	return out, nil
}

// Load reads the GeoNames file at path, or returns Default when path is
// empty.
func Load(path string, opts Options) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gazetteer: %w", err)
	}
	defer f.Close()
	return LoadGeoNames(f, opts)
}
