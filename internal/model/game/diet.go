package game

// DietState holds the assessment questions handed to the player.
type DietState struct {
	Questions []string `json:"questions"`
}
