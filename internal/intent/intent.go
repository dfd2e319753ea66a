package intent

// SearchIntent is the structured interpretation of one user utterance, used
// to drive catalog retrieval. Produced once per turn and never mutated.
type SearchIntent struct {
	PrimaryKeyword   string   `json:"primary_keyword,omitempty"`
	SecondaryKeyword string   `json:"secondary_keyword,omitempty"`
	MinPrice         *float64 `json:"min_price,omitempty"`
	MaxPrice         *float64 `json:"max_price,omitempty"`
	CategoryHint     string   `json:"category_hint,omitempty"`
	IsProductQuery   bool     `json:"is_product_query"`
}
