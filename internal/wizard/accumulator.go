package wizard

// Accumulator is the in-memory record built up across wizard steps. Each
// step contributes a named subset of fields via a shallow merge by key;
// earlier steps' fields are never cleared by later steps, only overwritten
// when a later step writes the same key.
type Accumulator map[string]any

// NewAccumulator returns an empty accumulator for a fresh onboarding run.
func NewAccumulator() Accumulator {
	return make(Accumulator)
}

// Merge shallow-merges delta into the accumulator, overwriting by key.
func (a Accumulator) Merge(delta map[string]any) {
	for k, v := range delta {
		a[k] = v
	}
}

// Clone returns a shallow copy. Used to build the combined submission
// payload without mutating the live accumulator mid-flight.
func (a Accumulator) Clone() Accumulator {
	out := make(Accumulator, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Get returns the value stored under key, if any.
func (a Accumulator) Get(key string) (any, bool) {
	v, ok := a[key]
	return v, ok
}
