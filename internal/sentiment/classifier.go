package sentiment

import "context"

// Labels the external classifier may return. Anything else is treated as a
// classifier failure.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Classification is the raw output of the external classifier: a label and
// its confidence in [0,1].
type Classification struct {
	Label string
	Score float64
}

// Classifier submits a piece of text to an external text-classification
// capability. Implementations own their transport, retries and timeouts.
type Classifier interface {
	Classify(ctx context.Context, text string) (Classification, error)
}

// Result is the sentiment served to callers. NormalizedScore folds label and
// confidence onto a single [-1,1] axis: positive keeps the score, negative
// negates it, neutral is 0.
type Result struct {
	Label           string  `json:"label"`
	Score           float64 `json:"score"`
	NormalizedScore float64 `json:"normalizedScore"`
}

// Neutral is the fallback result returned whenever the external classifier
// fails or is unreachable.
func Neutral() Result {
	return Result{
		Label:           LabelNeutral,
		Score:           0.5,
		NormalizedScore: 0,
	}
}

func normalize(c Classification) (Result, bool) {
	switch c.Label {
	case LabelPositive:
		return Result{Label: c.Label, Score: c.Score, NormalizedScore: c.Score}, true
	case LabelNegative:
		return Result{Label: c.Label, Score: c.Score, NormalizedScore: -c.Score}, true
	case LabelNeutral:
		return Result{Label: c.Label, Score: c.Score, NormalizedScore: 0}, true
	default:
		return Result{}, false
	}
}
