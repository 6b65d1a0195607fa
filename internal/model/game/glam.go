package game

// GlamItem is one product of the glam-builder catalog.
type GlamItem struct {
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	Eco         bool   `json:"eco"`
	Description string `json:"description"`
}

// GlamState holds the generated catalog and the budget ceiling.
type GlamState struct {
	Gender string     `json:"gender"`
	Budget int        `json:"budget"`
	Items  []GlamItem `json:"items"`
}
