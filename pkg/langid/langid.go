// Package langid wraps the lingua language detector behind the small
// contract the pipeline needs: text in, ISO 639-1 code and confidence out,
// with a reserved "und" code when the detector is not confident. Callers
// filter on the code only, never on the raw confidence.
package langid

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Undetermined is the reserved language code returned when detection is not
// confident enough to trust.
const Undetermined = "und"

// DefaultMinConfidence is the confidence floor below which a detection is
// reported as Undetermined.
const DefaultMinConfidence = 0.7

// Detector identifies the language of short noisy text.
type Detector struct {
	detector      lingua.LanguageDetector
	minConfidence float64
}

// New builds a Detector over all languages lingua ships models for. Building
// the detector loads the models once; reuse the instance across records.
func New(minConfidence float64) *Detector {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	d := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		WithLowAccuracyMode().
		Build()
	return &Detector{detector: d, minConfidence: minConfidence}
}

// Detect returns the ISO 639-1 code of the most likely language of text and
// the detector's confidence in it. Unconfident or failed detections return
// (Undetermined, 0).
func (d *Detector) Detect(text string) (string, float64) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Undetermined, 0
	}
	confidence := d.detector.ComputeLanguageConfidence(text, lang)
	if confidence < d.minConfidence {
		return Undetermined, 0
	}
	code := strings.ToLower(lang.IsoCode639_1().String())
	if code == "" || code == "unknown" {
		return Undetermined, 0
	}
	return code, confidence
}
