package generation

import "context"

// ExampleGenerator defines the interface for producing one example
// sentence for a vocabulary term. It is the seam between the application
// core and external AI/LLM services: handlers depend on this interface,
// never on a concrete client.
type ExampleGenerator interface {
	// GenerateExample produces a single example sentence using the given
	// term in its target language, informed by the translation.
	//
	// Returns the sentence, or an error from this package's taxonomy
	// (see errors.go) when generation fails. Failures never affect
	// stored vocabulary state.
	GenerateExample(ctx context.Context, term, translation string) (string, error)
}
