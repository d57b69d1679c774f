package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintStableAcrossParameterOrder(t *testing.T) {
	a := map[string]string{"users": "u1,u2", "page": "2", "orderType": "like"}
	b := map[string]string{"orderType": "like", "page": "2", "users": "u1,u2"}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintIgnoresEmptyValues(t *testing.T) {
	withEmpty := map[string]string{"users": "u1", "groups": ""}
	without := map[string]string{"users": "u1"}

	assert.Equal(t, Fingerprint(without), Fingerprint(withEmpty))
}

func TestFingerprintDiffersOnValueChange(t *testing.T) {
	a := map[string]string{"users": "u1"}
	b := map[string]string{"users": "u2"}

	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintLength(t *testing.T) {
	assert.Len(t, Fingerprint(map[string]string{"page": "1"}), 16)
	assert.Len(t, Fingerprint(nil), 16)
}
