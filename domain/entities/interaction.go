package entities

// InteractionType represents a low-level driver interaction
type InteractionType string

const (
	InteractionOpen  InteractionType = "open"
	InteractionWait  InteractionType = "wait"
	InteractionTap   InteractionType = "tap"
	InteractionEnter InteractionType = "type"
	InteractionRead  InteractionType = "read"
	InteractionBack  InteractionType = "back"
)

// Interaction is a single call a page made against the driver session
type Interaction struct {
	Type    InteractionType `json:"type"`
	Locator Locator         `json:"locator,omitempty"`
	Text    string          `json:"text,omitempty"`
}
