package viewmodel

import (
	"sort"
	"strings"

	"github.com/Veraticus/sortbin/internal/model"
)

// ScoreView is one ranked entry of a result.
type ScoreView struct {
	CategoryView
	PercentText string
	Probability float64
	Predicted   bool
}

// ResultView is a classification result ready for display.
type ResultView struct {
	Predicted        CategoryView
	ConfidenceText   string
	ConfidenceLevel  string
	Scores           []ScoreView
	Confidence       float64
	PredictedMissing bool
}

// NewResultView ranks the scores of result by descending probability. Ties
// keep the order the service sent them in. The result is trusted as is: no
// renormalisation happens, and a predicted class absent from the scores is
// only flagged.
func NewResultView(result model.ClassificationResult) ResultView {
	view := ResultView{
		Predicted:       NewCategoryView(result.PredictedClass),
		Confidence:      result.Confidence,
		ConfidenceText:  FormatPercent(result.Confidence),
		ConfidenceLevel: GetConfidenceLevel(result.Confidence),
	}

	scores := make([]model.Score, len(result.AllScores))
	copy(scores, result.AllScores)
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Probability > scores[j].Probability
	})

	found := false
	view.Scores = make([]ScoreView, 0, len(scores))
	for _, s := range scores {
		predicted := strings.EqualFold(s.Class, result.PredictedClass)
		found = found || predicted
		view.Scores = append(view.Scores, ScoreView{
			CategoryView: NewCategoryView(s.Class),
			Probability:  s.Probability,
			PercentText:  FormatPercent(s.Probability),
			Predicted:    predicted,
		})
	}
	view.PredictedMissing = !found

	return view
}

// Top returns the highest ranked score.
func (v ResultView) Top() (ScoreView, bool) {
	if len(v.Scores) == 0 {
		return ScoreView{}, false
	}
	return v.Scores[0], true
}
