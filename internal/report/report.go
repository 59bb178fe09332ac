// Package report turns raw model scores into the prediction summary and
// writes it for humans and for scraping callers.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/Brownie44l1/signscan/internal/failure"
)

// TopK is the number of ranked classes reported.
const TopK = 3

// Marker lines delimiting the machine-readable result.
const (
	Rule        = "=================================================="
	ResultStart = "RESULT_START"
	ResultEnd   = "RESULT_END"
)

// Score is one class with its model output.
type Score struct {
	Class int
	Label string
	Value float32
}

// Summary is the outcome of a single prediction.
type Summary struct {
	PredictedClass int
	Label          string
	Confidence     float32
	Top            []Score
	// Mass is the sum of all scores; 1 for a softmax output.
	Mass float64
}

// Summarize picks the first index holding the maximum score and ranks the
// k best classes, breaking ties by lower index. labels may be shorter than
// probs or nil. NaN or infinite scores are rejected.
func Summarize(probs []float32, labels []string, k int) (*Summary, error) {
	if len(probs) == 0 {
		return nil, failure.New(failure.Inference, "summarize", "model returned an empty output vector")
	}

	values := make([]float64, len(probs))
	for i, p := range probs {
		v := float64(p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, failure.New(failure.Inference, "summarize", "model output contains non-finite score at %d", i)
		}
		values[i] = v
	}
	best := floats.MaxIdx(values)

	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return probs[order[a]] > probs[order[b]]
	})
	if k > len(order) {
		k = len(order)
	}
	if k < 0 {
		k = 0
	}

	top := make([]Score, k)
	for i, class := range order[:k] {
		top[i] = Score{Class: class, Label: label(labels, class), Value: probs[class]}
	}

	return &Summary{
		PredictedClass: best,
		Label:          label(labels, best),
		Confidence:     probs[best],
		Top:            top,
		Mass:           floats.Sum(values),
	}, nil
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

// Log writes the human-readable diagnostics for s.
func Log(log *logrus.Entry, s *Summary) {
	fields := logrus.Fields{"class": s.PredictedClass, "confidence": s.Confidence}
	if s.Label != "" {
		fields["label"] = s.Label
	}
	log.WithFields(fields).Info("Prediction")

	for rank, score := range s.Top {
		entry := log.WithFields(logrus.Fields{"rank": rank + 1, "class": score.Class, "score": score.Value})
		if score.Label != "" {
			entry = entry.WithField("label", score.Label)
		}
		entry.Info("Top prediction")
	}

	if math.Abs(s.Mass-1) > 1e-3 {
		log.WithField("mass", s.Mass).Debug("Output does not sum to 1, scores may not be probabilities")
	}
}

// WriteResult writes the delimited JSON block callers scrape from stdout.
func WriteResult(w io.Writer, s *Summary) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n%s\n",
		Rule, ResultStart, ResultJSON(s), ResultEnd, Rule)
	return err
}

// ResultJSON renders the result object on a single line.
func ResultJSON(s *Summary) string {
	return fmt.Sprintf(`{"predicted_class": %d, "confidence": %s}`,
		s.PredictedClass, strconv.FormatFloat(float64(s.Confidence), 'g', -1, 32))
}

// WritePlain writes the bare class index as the last output line.
func WritePlain(w io.Writer, s *Summary) error {
	_, err := fmt.Fprintln(w, s.PredictedClass)
	return err
}
