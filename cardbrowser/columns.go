package cardbrowser

import "sync"

// ColumnCandidates defines possible header names for auto-detecting CSV/TSV catalog columns.
type ColumnCandidates struct {
	ID          []string `json:"id"`
	Name        []string `json:"name"`
	Criteria    []string `json:"criteria"`
	Region      []string `json:"region"`
	State       []string `json:"state"`
	Population  []string `json:"population"`
	Description []string `json:"description"`
	Image       []string `json:"image"`
}

var (
	columnCandidatesMu  sync.RWMutex
	activeColumnOptions = defaultColumnCandidates()
)

func defaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		ID:          []string{"id", "slug", "番号"},
		Name:        []string{"name", "title", "destination", "名称", "タイトル"},
		Criteria:    []string{"criteria", "data-criteria", "scores", "評価"},
		Region:      []string{"region", "地域"},
		State:       []string{"state", "prefecture", "province", "都道府県"},
		Population:  []string{"population", "population band", "人口"},
		Description: []string{"description", "summary", "概要", "説明"},
		Image:       []string{"image", "photo", "画像"},
	}
}

// SetColumnCandidates updates the column detection candidates used during auto-detection.
// Fields left nil fall back to the built-in defaults.
func SetColumnCandidates(candidates ColumnCandidates) {
	columnCandidatesMu.Lock()
	defer columnCandidatesMu.Unlock()
	activeColumnOptions = candidates.withDefaults()
}

func getColumnCandidates() ColumnCandidates {
	columnCandidatesMu.RLock()
	defer columnCandidatesMu.RUnlock()
	return activeColumnOptions.clone()
}

func (c ColumnCandidates) withDefaults() ColumnCandidates {
	defaults := defaultColumnCandidates()
	return ColumnCandidates{
		ID:          pickStrings(c.ID, defaults.ID),
		Name:        pickStrings(c.Name, defaults.Name),
		Criteria:    pickStrings(c.Criteria, defaults.Criteria),
		Region:      pickStrings(c.Region, defaults.Region),
		State:       pickStrings(c.State, defaults.State),
		Population:  pickStrings(c.Population, defaults.Population),
		Description: pickStrings(c.Description, defaults.Description),
		Image:       pickStrings(c.Image, defaults.Image),
	}
}

func (c ColumnCandidates) clone() ColumnCandidates {
	return ColumnCandidates{
		ID:          cloneStrings(c.ID),
		Name:        cloneStrings(c.Name),
		Criteria:    cloneStrings(c.Criteria),
		Region:      cloneStrings(c.Region),
		State:       cloneStrings(c.State),
		Population:  cloneStrings(c.Population),
		Description: cloneStrings(c.Description),
		Image:       cloneStrings(c.Image),
	}
}

func pickStrings(custom, fallback []string) []string {
	if custom == nil {
		return cloneStrings(fallback)
	}
	return cloneStrings(custom)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
