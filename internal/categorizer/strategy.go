package categorizer

// Source identifies which rule set produced a suggestion.
type Source string

const (
	SourceUser    Source = "user"
	SourceDefault Source = "default"
)

// Suggestion is a resolved category for a description.
type Suggestion struct {
	CategoryID   string
	CategoryName string
	Keyword      string
	Source       Source
}

// Strategy is one rule set consulted by the Categorizer. Strategies are tried
// in order and the first one returning ok=true wins.
type Strategy interface {
	// Match looks for a suggestion for an already lower-cased description.
	Match(snapshot *Snapshot, description string) (Suggestion, bool)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
