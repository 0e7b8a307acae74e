// Package factors provides the per-country emission factor table.
//
// The table is built once from embedded YAML data and is read-only after
// construction. Each country maps to four factors expressed in kilograms of
// CO2 per unit of activity: per km travelled, per kWh of electricity, per
// meal eaten and per kg of waste generated.
package factors

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SupportedSchema is the dataset schema version range this package can read.
const SupportedSchema = "^1"

// ErrUnknownCountry indicates the requested country has no entry in the table.
var ErrUnknownCountry = errors.New("unknown country")

// ErrInvalidDataset indicates the factor dataset failed to parse or validate.
var ErrInvalidDataset = errors.New("invalid emission factor dataset")

//go:embed factors.yaml
var embeddedFactors []byte

// Entry holds the emission factors for one country, in kg CO2 per unit.
type Entry struct {
	// Transportation is kg CO2 per km travelled.
	Transportation float64 `json:"transportation" yaml:"transportation"`

	// Electricity is kg CO2 per kWh consumed.
	Electricity float64 `json:"electricity" yaml:"electricity"`

	// Diet is kg CO2 per meal eaten.
	Diet float64 `json:"diet" yaml:"diet"`

	// Waste is kg CO2 per kg of waste generated.
	Waste float64 `json:"waste" yaml:"waste"`
}

// Table is an immutable country to Entry mapping.
type Table struct {
	version string
	order   []string
	entries map[string]Entry
}

// rawDataset mirrors factors.yaml. Factor fields are pointers so an absent
// key can be told apart from an explicit zero.
type rawDataset struct {
	SchemaVersion string       `yaml:"schema_version"`
	Countries     []rawCountry `yaml:"countries"`
}

type rawCountry struct {
	Name           string   `yaml:"name"`
	Transportation *float64 `yaml:"transportation"`
	Electricity    *float64 `yaml:"electricity"`
	Diet           *float64 `yaml:"diet"`
	Waste          *float64 `yaml:"waste"`
}

//nolint:gochecknoglobals // Process-wide table, initialized once.
var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the table built from the embedded dataset.
// It panics if the embedded dataset is invalid, which can only happen if the
// binary was built from a broken factors.yaml.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Load(embeddedFactors)
		if err != nil {
			panic(fmt.Sprintf("factors: embedded dataset: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Load parses a YAML factor dataset and validates it.
//
// The schema_version must satisfy SupportedSchema. Every country needs a
// unique non-empty name and all four factors present and non-negative.
func Load(data []byte) (*Table, error) {
	var raw rawDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing YAML: %w", ErrInvalidDataset, err)
	}

	if err := checkSchema(raw.SchemaVersion); err != nil {
		return nil, err
	}

	if len(raw.Countries) == 0 {
		return nil, fmt.Errorf("%w: no countries defined", ErrInvalidDataset)
	}

	t := &Table{
		version: raw.SchemaVersion,
		order:   make([]string, 0, len(raw.Countries)),
		entries: make(map[string]Entry, len(raw.Countries)),
	}

	for i, c := range raw.Countries {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: country at index %d has no name", ErrInvalidDataset, i)
		}
		if _, dup := t.entries[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate country %q", ErrInvalidDataset, c.Name)
		}

		entry, err := c.toEntry()
		if err != nil {
			return nil, err
		}

		t.order = append(t.order, c.Name)
		t.entries[c.Name] = entry
	}

	return t, nil
}

func checkSchema(version string) error {
	if version == "" {
		return fmt.Errorf("%w: missing schema_version", ErrInvalidDataset)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: schema_version %q: %w", ErrInvalidDataset, version, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: schema_version %s does not satisfy %s",
			ErrInvalidDataset, version, SupportedSchema)
	}
	return nil
}

func (c rawCountry) toEntry() (Entry, error) {
	fields := []struct {
		name  string
		value *float64
	}{
		{"transportation", c.Transportation},
		{"electricity", c.Electricity},
		{"diet", c.Diet},
		{"waste", c.Waste},
	}
	for _, f := range fields {
		if f.value == nil {
			return Entry{}, fmt.Errorf("%w: %s: missing %s factor", ErrInvalidDataset, c.Name, f.name)
		}
		if *f.value < 0 {
			return Entry{}, fmt.Errorf("%w: %s: negative %s factor %v",
				ErrInvalidDataset, c.Name, f.name, *f.value)
		}
	}
	return Entry{
		Transportation: *c.Transportation,
		Electricity:    *c.Electricity,
		Diet:           *c.Diet,
		Waste:          *c.Waste,
	}, nil
}

// Lookup returns the factors for country. Names match exactly.
// It returns an error wrapping ErrUnknownCountry when the country is absent.
func (t *Table) Lookup(country string) (Entry, error) {
	entry, ok := t.entries[country]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	return entry, nil
}

// Has reports whether country is present in the table.
func (t *Table) Has(country string) bool {
	_, ok := t.entries[country]
	return ok
}

// Countries returns the country names in dataset order.
func (t *Table) Countries() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of countries.
func (t *Table) Len() int {
	return len(t.order)
}

// Version returns the dataset schema version.
func (t *Table) Version() string {
	return t.version
}
