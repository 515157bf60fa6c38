package dice

import "go.uber.org/zap"

// Picker selects random entries from string lists and logs each pick at
// debug level.
type Picker struct {
	src    Source
	logger *zap.Logger
}

// NewPicker creates a Picker drawing from src.
//
// Precondition: src and logger must be non-nil.
func NewPicker(src Source, logger *zap.Logger) *Picker {
	return &Picker{src: src, logger: logger}
}

// Pick returns one element of choices.
//
// Precondition: choices must be non-empty.
// Postcondition: Returns an element of choices and its index.
func (p *Picker) Pick(label string, choices []string) (string, int) {
	i := p.src.Intn(len(choices))
	p.logger.Debug("random pick",
		zap.String("label", label),
		zap.Int("index", i),
		zap.Int("choices", len(choices)),
	)
	return choices[i], i
}
