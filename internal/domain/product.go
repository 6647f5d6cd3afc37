package domain

// Product represents one row of the skincare catalog
type Product struct {
	Name                  string `json:"name"`
	Brand                 string `json:"brand"`
	SkinTypeCompatibility string `json:"skinTypeCompatibility"`
	Scent                 string `json:"scent"`
	Effectiveness         string `json:"effectiveness"`
	EaseOfUse             string `json:"easeOfUse"`
	Reviews               string `json:"reviews"`
	ImageLink             string `json:"imageLink"`
	ProductLink           string `json:"productLink"`

	// CombinedText is the concatenated free-text signal used for
	// similarity ranking. Computed once at catalog load, immutable after.
	CombinedText string `json:"-"`
}

// RankedProduct is one entry of a recommendation result, ordered most
// similar first. A single record per product avoids the index-alignment
// bugs of parallel slices.
type RankedProduct struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	ImageLink   string  `json:"imageLink"`
	ProductLink string  `json:"productLink"`
	EaseOfUse   string  `json:"easeOfUse"`
	Summary     string  `json:"summary"`
	Score       float64 `json:"score"`
}

// FilterRequest carries the inputs of a filter-based recommendation
type FilterRequest struct {
	SkinType    string `json:"skinType" binding:"required"`
	Scent       string `json:"scent"`
	ProductName string `json:"productName"`
	TopN        int    `json:"topN"`
}

// ProductRequest carries the inputs of a product-based recommendation
type ProductRequest struct {
	ProductName string `json:"productName" binding:"required"`
	TopN        int    `json:"topN"`
}
