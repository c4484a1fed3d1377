package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type policy string

const (
	policySkip    policy = "skip"
	policyPrepend policy = "prepend"
)

func newPolicyNormalizer() *Normalizer[policy] {
	return NewNormalizer("policy", map[string]policy{
		"skip":    policySkip,
		"Prepend": policyPrepend,
	}, policySkip)
}

func TestNormalize_MatchesCaseInsensitively(t *testing.T) {
	n := newPolicyNormalizer()

	assert.Equal(t, policyPrepend, n.Normalize("  PREPEND "))
	assert.Equal(t, policySkip, n.Normalize("skip"))
	assert.Equal(t, policySkip, n.Normalize("unknown"), "unknown input falls back to default")
}

func TestNormalizeWithError(t *testing.T) {
	n := newPolicyNormalizer()

	got, err := n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, policySkip, got)

	got, err = n.NormalizeWithError("prepend")
	require.NoError(t, err)
	assert.Equal(t, policyPrepend, got)

	_, err = n.NormalizeWithError("sometimes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid policy "sometimes"`)
	assert.Contains(t, err.Error(), "prepend, skip")
}

func TestValidKeys_ReturnsSortedCopy(t *testing.T) {
	n := newPolicyNormalizer()

	keys := n.ValidKeys()
	assert.Equal(t, []string{"prepend", "skip"}, keys)

	keys[0] = "mutated"
	assert.Equal(t, []string{"prepend", "skip"}, n.ValidKeys())
}
