// Package msgmodel is the in-memory message model: the property map,
// recipient list, attachment list, default properties, and the
// derivations (display-to/cc/bcc, has-attach, conversation topic) applied
// on save. Grounded on pymsgkit/writer.go's MSGWriter (original_source),
// generalized from Python's dynamic dict-of-properties into a typed Go
// model built on the mapi package's codec.
package msgmodel

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts wall-clock time so tests can freeze it (spec §5,
// "Ambient clock and randomness").
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the default Clock, backed by time.Now.
var SystemClock Clock = systemClock{}

// RNG abstracts the randomness used for conversation-index GUIDs and
// reply time-delta bytes, so tests can seed it deterministically.
type RNG interface {
	GUID() [16]byte
	RandomBytes(n int) []byte
}

type cryptoRNG struct{}

func (cryptoRNG) GUID() [16]byte {
	return uuid.New() // backed by crypto/rand
}

func (cryptoRNG) RandomBytes(n int) []byte {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return buf
}

// CryptoRNG is the default RNG, backed by google/uuid and crypto/rand.
var CryptoRNG RNG = cryptoRNG{}
