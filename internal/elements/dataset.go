package elements

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
)

// Record is one element from the dataset file. Symbol and Name are the
// lookup keys; Fields keeps every original JSON field so descriptive
// attributes (atomic number, mass, category, images, ...) pass through
// to the presentation layer unmodified.
type Record struct {
	Symbol string
	Name   string
	Fields map[string]json.RawMessage
}

// UnmarshalJSON keeps the full field bag and pulls out the two keys.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	r.Fields = fields
	if raw, ok := fields["symbol"]; ok {
		_ = json.Unmarshal(raw, &r.Symbol)
	}
	if raw, ok := fields["name"]; ok {
		_ = json.Unmarshal(raw, &r.Name)
	}
	return nil
}

// MarshalJSON emits the original field bag verbatim.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields)
}

// Dataset is the immutable in-memory element collection. Loaded once,
// never mutated afterwards, so it is safe for concurrent readers.
type Dataset struct {
	records  []*Record
	bySymbol map[string]*Record
	byName   map[string]*Record
}

type datasetFile struct {
	Elements []*Record `json:"elements"`
}

// Load reads a dataset file of the form {"elements":[...]}. A missing or
// malformed file yields an empty dataset and a warning; it never fails
// the caller.
func Load(path string, logger *slog.Logger) *Dataset {
	ds := &Dataset{
		bySymbol: make(map[string]*Record),
		byName:   make(map[string]*Record),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("elements dataset not found, starting empty", "path", path, "error", err)
		return ds
	}
	var file datasetFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Warn("elements dataset malformed, starting empty", "path", path, "error", err)
		return ds
	}
	ds.records = file.Elements
	for _, rec := range ds.records {
		sym := strings.ToLower(rec.Symbol)
		if _, dup := ds.bySymbol[sym]; !dup && rec.Symbol != "" {
			ds.bySymbol[sym] = rec
		}
		name := strings.ToLower(rec.Name)
		if _, dup := ds.byName[name]; !dup && rec.Name != "" {
			ds.byName[name] = rec
		}
	}
	return ds
}

// FindBySymbol returns the element whose symbol matches case-insensitively.
func (d *Dataset) FindBySymbol(symbol string) (*Record, bool) {
	rec, ok := d.bySymbol[strings.ToLower(symbol)]
	return rec, ok
}

// FindByName returns the element whose name matches case-insensitively.
func (d *Dataset) FindByName(name string) (*Record, bool) {
	rec, ok := d.byName[strings.ToLower(name)]
	return rec, ok
}

// All returns the records in file order.
func (d *Dataset) All() []*Record {
	return d.records
}

// Len reports how many records were loaded.
func (d *Dataset) Len() int {
	return len(d.records)
}
