package cardbrowser

import (
	"time"

	json "github.com/goccy/go-json"
)

// TagKind selects one of the categorical tag dimensions of a slide.
type TagKind int

const (
	// TagRegion is the broad geographic region of a destination.
	TagRegion TagKind = iota
	// TagAdminArea is the administrative area (state, prefecture, province).
	TagAdminArea
	// TagPopulationBand is the population size band.
	TagPopulationBand

	tagKindCount
)

// TagKinds lists every tag dimension in a stable order.
var TagKinds = []TagKind{TagRegion, TagAdminArea, TagPopulationBand}

func (k TagKind) String() string {
	switch k {
	case TagRegion:
		return "region"
	case TagAdminArea:
		return "state"
	case TagPopulationBand:
		return "population"
	default:
		return "unknown"
	}
}

// ParseTagKind maps a tag dimension name back to its kind.
func ParseTagKind(name string) (TagKind, bool) {
	switch name {
	case "region":
		return TagRegion, true
	case "state", "admin", "admin-area":
		return TagAdminArea, true
	case "population", "population-band":
		return TagPopulationBand, true
	default:
		return 0, false
	}
}

func (k TagKind) valid() bool {
	return k >= 0 && k < tagKindCount
}

// CriterionKey is the key used inside a slide's criteria payload, e.g. "Family Friendly".
type CriterionKey string

// KeySet is an unordered set of criterion keys.
type KeySet map[CriterionKey]struct{}

// NewKeySet builds a set from the given keys, dropping empty keys.
func NewKeySet(keys ...CriterionKey) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		set[k] = struct{}{}
	}
	return set
}

// Payload is a decoded criteria payload: criterion key to weight.
// Values keep their decoded JSON type; only numbers contribute to a score.
type Payload map[string]any

// Slide is one card of the browsable collection.
type Slide struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Criteria       Payload `json:"-" yaml:"-"`
	RawCriteria    string  `json:"criteria,omitempty" yaml:"-"`
	Region         string  `json:"region,omitempty" yaml:"region"`
	AdminArea      string  `json:"state,omitempty" yaml:"state"`
	PopulationBand string  `json:"population,omitempty" yaml:"population"`
	Description    string  `json:"description,omitempty" yaml:"description"`
	Image          string  `json:"image,omitempty" yaml:"image"`
}

// Tag returns the slide's raw tag text for the given dimension.
func (s Slide) Tag(kind TagKind) string {
	switch kind {
	case TagRegion:
		return s.Region
	case TagAdminArea:
		return s.AdminArea
	case TagPopulationBand:
		return s.PopulationBand
	default:
		return ""
	}
}

// Criterion describes one toggleable scoring dimension shown as a pill.
type Criterion struct {
	Slug     string `json:"slug" yaml:"slug"`
	Label    string `json:"label" yaml:"label"`
	Category string `json:"category" yaml:"category"`
}

// Key returns the payload key the criterion scores against.
func (c Criterion) Key() CriterionKey {
	return SlugToKey(c.Slug)
}

// Preset is a named bundle of criteria activated together.
type Preset struct {
	Name  string   `json:"name" yaml:"name"`
	Label string   `json:"label" yaml:"label"`
	Slugs []string `json:"criteria" yaml:"criteria"`
}

// Keys converts the preset slugs into payload keys.
func (p Preset) Keys() []CriterionKey {
	return KeysFromSlugs(p.Slugs)
}

// Catalog is everything loaded from a catalog file.
type Catalog struct {
	Slides   []Slide     `json:"slides" yaml:"slides"`
	Criteria []Criterion `json:"criteria" yaml:"criteria"`
	Presets  []Preset    `json:"presets" yaml:"presets"`
}

// Preset finds a preset by name.
func (c Catalog) Preset(name string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// CategoryOf reports the category a criterion key belongs to.
func (c Catalog) CategoryOf(key CriterionKey) (string, bool) {
	for _, cr := range c.Criteria {
		if cr.Key() == key {
			return cr.Category, cr.Category != ""
		}
	}
	return "", false
}

// KnownKeys splits keys into those with a matching criterion pill and those
// without. A catalog that declares no criteria knows every key.
func (c Catalog) KnownKeys(keys []CriterionKey) (known, unknown []CriterionKey) {
	if len(c.Criteria) == 0 {
		return keys, nil
	}
	pills := make(KeySet, len(c.Criteria))
	for _, cr := range c.Criteria {
		pills[cr.Key()] = struct{}{}
	}
	known = make([]CriterionKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := pills[k]; ok {
			known = append(known, k)
		} else {
			unknown = append(unknown, k)
		}
	}
	return known, unknown
}

// Categories lists the distinct criterion categories in catalog order.
func (c Catalog) Categories() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, cr := range c.Criteria {
		if cr.Category == "" {
			continue
		}
		if _, ok := seen[cr.Category]; ok {
			continue
		}
		seen[cr.Category] = struct{}{}
		out = append(out, cr.Category)
	}
	return out
}

// Config aggregates runtime settings persisted to config.json.
type Config struct {
	CatalogPath      string            `json:"catalogPath"`
	SampleDebounceMs int               `json:"sampleDebounceMs"`
	ArrowDebounceMs  int               `json:"arrowDebounceMs"`
	TeardownDelayMs  int               `json:"teardownDelayMs"`
	ScrollDurationMs int               `json:"scrollDurationMs"`
	CardWidth        float32           `json:"cardWidth"`
	WatchCatalog     bool              `json:"watchCatalog"`
	LogLevel         string            `json:"logLevel"`
	Columns          *ColumnCandidates `json:"columns,omitempty"`
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	buf, _ := json.Marshal(c)
	var out Config
	_ = json.Unmarshal(buf, &out)
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.CatalogPath == "" {
		c.CatalogPath = defaultCatalogFile
	}
	if c.SampleDebounceMs <= 0 {
		c.SampleDebounceMs = 50
	}
	if c.ArrowDebounceMs <= 0 {
		c.ArrowDebounceMs = 100
	}
	if c.TeardownDelayMs <= 0 {
		c.TeardownDelayMs = 300
	}
	if c.ScrollDurationMs <= 0 {
		c.ScrollDurationMs = 300
	}
	if c.CardWidth <= 0 {
		c.CardWidth = 280
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Timings converts the millisecond settings into coordinator delays.
func (c Config) Timings() Timings {
	cfg := c
	cfg.ApplyDefaults()
	return Timings{
		Sample:   time.Duration(cfg.SampleDebounceMs) * time.Millisecond,
		Arrows:   time.Duration(cfg.ArrowDebounceMs) * time.Millisecond,
		Teardown: time.Duration(cfg.TeardownDelayMs) * time.Millisecond,
	}
}
