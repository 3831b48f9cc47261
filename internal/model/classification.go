package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Image is an image payload ready to be submitted for classification.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the payload size in bytes.
func (i Image) Size() int64 {
	return int64(len(i.Data))
}

// Score is the probability assigned to a single class.
type Score struct {
	Class       string  `json:"class" yaml:"class"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// Scores is the full score distribution in the order the service sent it.
// The service encodes it as a JSON object; decoding keeps the key order so
// that ties can be broken by insertion order.
type Scores []Score

// Lookup returns the probability for a class.
func (s Scores) Lookup(class string) (float64, bool) {
	for _, score := range s {
		if score.Class == class {
			return score.Probability, true
		}
	}
	return 0, false
}

// Sum returns the total probability mass. The service does not guarantee 1.
func (s Scores) Sum() float64 {
	var total float64
	for _, score := range s {
		total += score.Probability
	}
	return total
}

// UnmarshalJSON decodes a JSON object while preserving key order.
func (s *Scores) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("scores: expected object, got %v", tok)
	}

	var out Scores
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("scores: expected string key, got %v", keyTok)
		}

		var value float64
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("scores: value for %q: %w", key, err)
		}
		out = append(out, Score{Class: key, Probability: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = out
	return nil
}

// MarshalJSON encodes the scores back into an ordered JSON object.
func (s Scores) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, score := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(score.Class)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(score.Probability)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// ClassificationResult is the service's answer to a classification request.
type ClassificationResult struct {
	PredictedClass string  `json:"predictedClass" yaml:"predictedClass"`
	AllScores      Scores  `json:"allScores" yaml:"allScores"`
	Confidence     float64 `json:"confidence" yaml:"confidence"`
}

// Category returns the predicted class as a Category.
func (r ClassificationResult) Category() Category {
	return ParseCategory(r.PredictedClass)
}
