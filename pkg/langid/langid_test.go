package langid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectEnglish(t *testing.T) {
	if testing.Short() {
		t.Skip("model load is slow")
	}
	d := New(0.01)
	code, conf := d.Detect("The quick brown fox jumps over the lazy dog and keeps running through the field.")
	assert.Equal(t, "en", code)
	assert.Greater(t, conf, 0.0)
}

func TestDetectEmptyIsUndetermined(t *testing.T) {
	if testing.Short() {
		t.Skip("model load is slow")
	}
	d := New(0.01)
	code, conf := d.Detect("")
	assert.Equal(t, Undetermined, code)
	assert.Zero(t, conf)
}

func TestNewDefaultsConfidenceFloor(t *testing.T) {
	if testing.Short() {
		t.Skip("model load is slow")
	}
	d := New(0)
	assert.InDelta(t, DefaultMinConfidence, d.minConfidence, 1e-9)
}
