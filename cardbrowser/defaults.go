package cardbrowser

// DefaultCriteria returns the built-in criterion pills grouped by category.
func DefaultCriteria() []Criterion {
	return []Criterion{
		{Slug: "safety", Label: "Safety", Category: "Essentials"},
		{Slug: "cost", Label: "Cost", Category: "Essentials"},
		{Slug: "walkability", Label: "Walkability", Category: "Essentials"},
		{Slug: "public-transit", Label: "Public transit", Category: "Essentials"},
		{Slug: "beaches", Label: "Beaches", Category: "Nature"},
		{Slug: "hiking", Label: "Hiking", Category: "Nature"},
		{Slug: "national-parks", Label: "National parks", Category: "Nature"},
		{Slug: "nightlife", Label: "Nightlife", Category: "Culture"},
		{Slug: "food-scene", Label: "Food scene", Category: "Culture"},
		{Slug: "museums", Label: "Museums", Category: "Culture"},
		{Slug: "family-friendly", Label: "Family friendly", Category: "Travellers"},
		{Slug: "romantic", Label: "Romantic", Category: "Travellers"},
	}
}

// DefaultPresets returns the built-in preset shortcuts.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "family", Label: "Family trip", Slugs: []string{"safety", "family-friendly", "beaches"}},
		{Name: "budget", Label: "On a budget", Slugs: []string{"cost", "public-transit", "walkability"}},
		{Name: "outdoors", Label: "Outdoors", Slugs: []string{"hiking", "national-parks", "beaches"}},
		{Name: "city-break", Label: "City break", Slugs: []string{"nightlife", "food-scene", "museums", "walkability"}},
	}
}

// DefaultCatalog returns a small sample catalog used when no file exists yet.
func DefaultCatalog() Catalog {
	return Catalog{
		Criteria: DefaultCriteria(),
		Presets:  DefaultPresets(),
		Slides: []Slide{
			{
				ID: "san-diego", Name: "San Diego", Region: "West", AdminArea: "California", PopulationBand: "1M+",
				Criteria:    Payload{"Safety": 78.0, "Cost": 45.0, "Beaches": 95.0, "Family Friendly": 90.0, "Hiking": 70.0, "Walkability": 60.0},
				Description: "Year-round sunshine, wide beaches and a relaxed harbor downtown.",
			},
			{
				ID: "asheville", Name: "Asheville", Region: "South", AdminArea: "North Carolina", PopulationBand: "<100K",
				Criteria:    Payload{"Safety": 74.0, "Cost": 62.0, "Hiking": 93.0, "National Parks": 88.0, "Food Scene": 80.0},
				Description: "Blue Ridge mountain town known for craft breweries and trailheads.",
			},
			{
				ID: "chicago", Name: "Chicago", Region: "Midwest", AdminArea: "Illinois", PopulationBand: "1M+",
				Criteria:    Payload{"Safety": 55.0, "Cost": 58.0, "Nightlife": 90.0, "Food Scene": 92.0, "Museums": 94.0, "Public Transit": 85.0, "Walkability": 82.0},
				Description: "Lakefront architecture, deep-dish pizza and world-class museums.",
			},
			{
				ID: "moab", Name: "Moab", Region: "West", AdminArea: "Utah", PopulationBand: "<100K",
				Criteria:    Payload{"Safety": 85.0, "Cost": 66.0, "Hiking": 97.0, "National Parks": 99.0, "Romantic": 70.0},
				Description: "Gateway to Arches and Canyonlands with red-rock desert trails.",
			},
			{
				ID: "savannah", Name: "Savannah", Region: "South", AdminArea: "Georgia", PopulationBand: "100K-1M",
				Criteria:    Payload{"Safety": 62.0, "Cost": 70.0, "Walkability": 88.0, "Romantic": 92.0, "Food Scene": 84.0, "Museums": 65.0},
				Description: "Oak-lined squares, historic homes and a lively riverfront.",
			},
			{
				ID: "minneapolis", Name: "Minneapolis", Region: "Midwest", AdminArea: "Minnesota", PopulationBand: "100K-1M",
				Criteria:    Payload{"Safety": 64.0, "Cost": 63.0, "Public Transit": 72.0, "Family Friendly": 82.0, "Museums": 80.0},
				Description: "Lakes, bike paths and a strong arts scene.",
			},
		},
	}
}
