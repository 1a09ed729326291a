package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripAccents(t *testing.T) {
	require.Equal(t, "viniferas", StripAccents("viníferas"))
	require.Equal(t, "sem classificacao", StripAccents("sem classificação"))
	require.Equal(t, "Argelia", StripAccents("Argélia"))
	require.Equal(t, "plain", StripAccents("plain"))
}

func TestNormalizeLabel(t *testing.T) {
	require.Equal(t, "vinho de mesa", NormalizeLabel("  Vinho   DE  Mesa "))
	require.Equal(t, "americanas e hibridas", NormalizeLabel("Americanas e Híbridas"))
	require.Equal(t, "suco de uva", NormalizeLabel("SUCO DE UVA"))
}

func TestContainsFold(t *testing.T) {
	require.True(t, ContainsFold("Vinho de Mesa", "mesa"))
	require.True(t, ContainsFold("TINTO", "tinto"))
	require.False(t, ContainsFold("branco", "tinto"))
}
