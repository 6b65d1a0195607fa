package game

// PriceState tracks a price-prediction round. Forecast stays nil until the
// answers are submitted and is never sent to the player before the guess.
type PriceState struct {
	Category     string   `json:"category,omitempty"`
	Product      string   `json:"product"`
	Currency     string   `json:"currency"`
	CurrentPrice float64  `json:"currentPrice"`
	Questions    []string `json:"questions"`
	Answers      []bool   `json:"answers,omitempty"`
	Forecast     *float64 `json:"forecast,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
}

func (p *PriceState) clone() *PriceState {
	cp := *p
	cp.Questions = append([]string(nil), p.Questions...)
	cp.Answers = append([]bool(nil), p.Answers...)
	if p.Forecast != nil {
		f := *p.Forecast
		cp.Forecast = &f
	}
	return &cp
}
