package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNetwork(t *testing.T) {
	testCases := []struct {
		input    string
		expected Network
	}{
		{"", Mainnet},
		{"mainnet", Mainnet},
		{"bitcoin", Mainnet},
		{"Testnet", Testnet},
		{"signet", Signet},
		{" regtest ", Regtest},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			network, err := ParseNetwork(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, network)
		})
	}

	t.Run("unknown network", func(t *testing.T) {
		_, err := ParseNetwork("liquid")
		assert.ErrorIs(t, err, ErrUnknownNetwork)
	})
}

func TestNetwork_Text(t *testing.T) {
	var n Network
	require.NoError(t, n.UnmarshalText([]byte("signet")))
	assert.Equal(t, Signet, n)

	text, err := n.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "signet", string(text))

	assert.Equal(t, "network(42)", Network(42).String())
}

func TestIDs(t *testing.T) {
	txs := []Transaction{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, []string{"a", "b"}, IDs(txs))
	assert.Empty(t, IDs(nil))
}
