package model

// GameStep is one quiz step of the static catalog shown before generation.
type GameStep struct {
	StepID   int      `json:"stepId"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
	Points   int      `json:"points"`
}
