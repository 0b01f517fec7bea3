package cardbrowser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyCatalog is returned when a catalog file holds no slides.
	ErrEmptyCatalog = errors.New("catalog has no slides")
	// ErrUnknownFormat is returned for unsupported catalog extensions.
	ErrUnknownFormat = errors.New("unknown catalog format")
)

// CatalogParseOptions selects CSV/TSV columns explicitly, by header name or "#n".
type CatalogParseOptions struct {
	IDColumn          string
	NameColumn        string
	CriteriaColumn    string
	RegionColumn      string
	StateColumn       string
	PopulationColumn  string
	DescriptionColumn string
	ImageColumn       string
	// Criteria and Presets complement delimited files, which only carry slides.
	Criteria []Criterion
	Presets  []Preset
	Logger   *zap.Logger
}

// catalogFile is the on-disk shape of YAML and JSON catalogs. Slide criteria
// may be written either as a mapping or as embedded JSON text.
type catalogFile struct {
	Slides   []slideRecord `json:"slides" yaml:"slides"`
	Criteria []Criterion   `json:"criteria" yaml:"criteria"`
	Presets  []Preset      `json:"presets" yaml:"presets"`
}

type slideRecord struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Criteria       any    `json:"criteria" yaml:"criteria"`
	Region         string `json:"region" yaml:"region"`
	AdminArea      string `json:"state" yaml:"state"`
	PopulationBand string `json:"population" yaml:"population"`
	Description    string `json:"description" yaml:"description"`
	Image          string `json:"image" yaml:"image"`
}

// LoadCatalog reads a catalog from YAML, JSON, CSV or TSV.
func LoadCatalog(path string) (Catalog, error) {
	return LoadCatalogWithOptions(path, CatalogParseOptions{})
}

// LoadCatalogWithOptions reads a catalog honoring explicit column choices.
func LoadCatalogWithOptions(path string, opts CatalogParseOptions) (Catalog, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	var cat Catalog
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cat, err = decodeCatalog(f, opts, func(r io.Reader, v any) error {
			return yaml.NewDecoder(r).Decode(v)
		})
	case ".json":
		cat, err = decodeCatalog(f, opts, func(r io.Reader, v any) error {
			return json.NewDecoder(r).Decode(v)
		})
	case ".csv":
		cat, err = parseDelimitedCatalog(f, ',', opts)
	case ".tsv":
		cat, err = parseDelimitedCatalog(f, '\t', opts)
	default:
		return Catalog{}, fmt.Errorf("%w: %s", ErrUnknownFormat, ext)
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(cat.Slides) == 0 {
		return Catalog{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyCatalog)
	}
	return cat, nil
}

// ParseCatalogYAML decodes a YAML catalog held in memory.
func ParseCatalogYAML(data []byte) (Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	return file.toCatalog(zap.NewNop()), nil
}

// MarshalCatalogYAML encodes a catalog in the YAML layout read by LoadCatalog.
func MarshalCatalogYAML(cat Catalog) ([]byte, error) {
	file := catalogFile{Criteria: cat.Criteria, Presets: cat.Presets}
	for _, s := range cat.Slides {
		var criteria any = map[string]any(s.Criteria)
		if s.Criteria == nil && s.RawCriteria != "" {
			criteria = s.RawCriteria
		}
		file.Slides = append(file.Slides, slideRecord{
			ID:             s.ID,
			Name:           s.Name,
			Criteria:       criteria,
			Region:         s.Region,
			AdminArea:      s.AdminArea,
			PopulationBand: s.PopulationBand,
			Description:    s.Description,
			Image:          s.Image,
		})
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}

func decodeCatalog(r io.Reader, opts CatalogParseOptions, decode func(io.Reader, any) error) (Catalog, error) {
	var file catalogFile
	if err := decode(r, &file); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, nil
		}
		return Catalog{}, err
	}
	cat := file.toCatalog(opts.Logger)
	if len(cat.Criteria) == 0 {
		cat.Criteria = opts.Criteria
	}
	if len(cat.Presets) == 0 {
		cat.Presets = opts.Presets
	}
	return cat, nil
}

func (f catalogFile) toCatalog(logger *zap.Logger) Catalog {
	cat := Catalog{
		Slides:   make([]Slide, 0, len(f.Slides)),
		Criteria: f.Criteria,
		Presets:  f.Presets,
	}
	for _, rec := range f.Slides {
		s := Slide{
			ID:             strings.TrimSpace(rec.ID),
			Name:           NormalizeText(rec.Name),
			Region:         NormalizeTag(rec.Region),
			AdminArea:      NormalizeTag(rec.AdminArea),
			PopulationBand: NormalizeTag(rec.PopulationBand),
			Description:    strings.TrimSpace(rec.Description),
			Image:          strings.TrimSpace(rec.Image),
		}
		s.RawCriteria, s.Criteria = criteriaFromAny(rec.Criteria, logger)
		cat.Slides = append(cat.Slides, s)
	}
	return cat
}

func criteriaFromAny(v any, logger *zap.Logger) (string, Payload) {
	switch c := v.(type) {
	case nil:
		return "", Payload{}
	case string:
		return c, ParseCriteriaPayloadLogged(c, logger)
	case map[string]any:
		out := make(Payload, len(c))
		for k, val := range c {
			out[k] = val
		}
		return "", out
	default:
		logger.Debug("criteria is neither a mapping nor JSON text", zap.String("type", fmt.Sprintf("%T", v)))
		return "", Payload{}
	}
}

func parseDelimitedCatalog(r io.Reader, comma rune, opts CatalogParseOptions) (Catalog, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return Catalog{}, err
	}
	if len(rows) == 0 {
		return Catalog{}, nil
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	cols, err := resolveCatalogColumns(header, opts)
	if err != nil {
		return Catalog{}, err
	}
	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return cleanCell(row[idx])
	}
	cat := Catalog{Criteria: opts.Criteria, Presets: opts.Presets}
	for _, row := range rows[1:] {
		raw := cell(row, cols.criteria)
		s := Slide{
			ID:             cell(row, cols.id),
			Name:           NormalizeText(cell(row, cols.name)),
			RawCriteria:    raw,
			Criteria:       ParseCriteriaPayloadLogged(raw, opts.Logger),
			Region:         NormalizeTag(cell(row, cols.region)),
			AdminArea:      NormalizeTag(cell(row, cols.state)),
			PopulationBand: NormalizeTag(cell(row, cols.population)),
			Description:    cell(row, cols.description),
			Image:          cell(row, cols.image),
		}
		if s.Name == "" && s.ID == "" && raw == "" {
			continue
		}
		cat.Slides = append(cat.Slides, s)
	}
	return cat, nil
}

type catalogColumns struct {
	id, name, criteria, region, state, population, description, image int
}

func resolveCatalogColumns(header []string, opts CatalogParseOptions) (catalogColumns, error) {
	candidates := getColumnCandidates()
	var cols catalogColumns
	columns := []struct {
		dst        *int
		explicit   string
		candidates []string
	}{
		{&cols.id, opts.IDColumn, candidates.ID},
		{&cols.name, opts.NameColumn, candidates.Name},
		{&cols.criteria, opts.CriteriaColumn, candidates.Criteria},
		{&cols.region, opts.RegionColumn, candidates.Region},
		{&cols.state, opts.StateColumn, candidates.State},
		{&cols.population, opts.PopulationColumn, candidates.Population},
		{&cols.description, opts.DescriptionColumn, candidates.Description},
		{&cols.image, opts.ImageColumn, candidates.Image},
	}
	for _, col := range columns {
		idx, err := pickColumn(header, col.explicit, col.candidates)
		if err != nil {
			return cols, err
		}
		*col.dst = idx
	}
	if cols.criteria < 0 {
		return cols, errors.New("no criteria column found")
	}
	return cols, nil
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}

func findColumn(header []string, candidates []string) int {
	for i, col := range header {
		for _, cand := range candidates {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

func pickColumn(header []string, explicit string, candidates []string) (int, error) {
	if strings.TrimSpace(explicit) != "" {
		return matchExplicitColumn(header, explicit)
	}
	return findColumn(header, candidates), nil
}

func matchExplicitColumn(header []string, explicit string) (int, error) {
	trimmed := strings.TrimSpace(explicit)
	for i, col := range header {
		if strings.EqualFold(col, trimmed) {
			return i, nil
		}
	}
	if strings.HasPrefix(trimmed, "#") {
		idx, err := parseColumnIndex(trimmed)
		if err != nil {
			return -1, err
		}
		if idx >= len(header) {
			return -1, fmt.Errorf("column index %s is out of range", trimmed)
		}
		return idx, nil
	}
	return -1, fmt.Errorf("column %q not found", explicit)
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	if trimmed == "" {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}
