package token

// Position represents a location in the condition text.
type Position struct {
	Offset int // 0-based byte offset
}
