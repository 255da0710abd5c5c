package dialogue

import (
	"math/rand"
	"path/filepath"
	"strings"
)

// Verifier decides whether an uploaded document passes verification.
// It is injected so hosts and tests can replace the default randomized
// stand-in with a deterministic policy.
type Verifier func(documentLabel, fileName string) bool

// RandomVerifier accepts a document with probability 0.8, independently
// per upload. This mirrors the product's synthetic verification.
func RandomVerifier(r *rand.Rand) Verifier {
	return func(string, string) bool {
		return r.Float64() > 0.2
	}
}

// RateVerifier accepts a document with the given probability. Rates at or
// below 0 reject everything, rates at or above 1 accept everything.
func RateVerifier(r *rand.Rand, acceptRate float64) Verifier {
	return func(string, string) bool {
		return r.Float64() < acceptRate
	}
}

// AcceptAll approves every upload. Useful in tests and demos.
func AcceptAll(string, string) bool { return true }

// RejectAll fails every upload. Useful in tests.
func RejectAll(string, string) bool { return false }

// acceptedExtensions is the upload file filter. Extension only, no content
// sniffing; real verification is out of scope.
var acceptedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// AcceptedFile reports whether the file name carries an allowed extension.
func AcceptedFile(fileName string) bool {
	return acceptedExtensions[strings.ToLower(filepath.Ext(fileName))]
}
