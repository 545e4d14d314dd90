package sentiment

import (
	"sync"

	"github.com/jonreiter/govader"
)

// Vader wraps the VADER lexicon analyzer. The analyzer is built once; building
// it loads the lexicon.
type Vader struct {
	once sync.Once
	sia  *govader.SentimentIntensityAnalyzer
}

func NewVader() *Vader { return &Vader{} }

// Compound returns VADER's normalized compound score in [-1, 1].
func (v *Vader) Compound(text string) float64 {
	v.once.Do(func() { v.sia = govader.NewSentimentIntensityAnalyzer() })
	return v.sia.PolarityScores(text).Compound
}
