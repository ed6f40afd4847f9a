package strategy

// Delete produces nil for every row it's asked to generate. Row selection
// is the mask's job (every StrategyConfig carries its own mask, which the
// processor applies when it writes a strategy's values into the chunk);
// Delete itself
// has no parameters and no state beyond satisfying the Strategy interface.
type Delete struct{}

// NewDelete constructs a Delete strategy. It takes no parameters.
func NewDelete() *Delete {
	return &Delete{}
}

func (s *Delete) Validate() error {
	return nil
}

func (s *Delete) Reset() {}

func (s *Delete) GenerateChunk(n int) ([]any, error) {
	return make([]any, n), nil
}

func (s *Delete) DescribeState() map[string]any {
	return map[string]any{"strategy": "Delete"}
}
