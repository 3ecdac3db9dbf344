package generation

import "context"

// MockExampleGenerator is a mock implementation of the ExampleGenerator
// interface for testing consumers without calling a real language model.
type MockExampleGenerator struct {
	GenerateExampleFunc func(ctx context.Context, term, translation string) (string, error)

	// Sentence is returned when GenerateExampleFunc is nil.
	Sentence string
	// Err is returned when GenerateExampleFunc is nil and Err is non-nil.
	Err error
}

// Ensure MockExampleGenerator implements ExampleGenerator interface
var _ ExampleGenerator = (*MockExampleGenerator)(nil)

// GenerateExample implements ExampleGenerator.GenerateExample.
func (m *MockExampleGenerator) GenerateExample(ctx context.Context, term, translation string) (string, error) {
	if m.GenerateExampleFunc != nil {
		return m.GenerateExampleFunc(ctx, term, translation)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Sentence, nil
}
