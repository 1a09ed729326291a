package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetTextWalksNestedNodes(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<td>  Vinho <b>de</b>\n\tmesa </td>"))
	require.NoError(t, err)

	require.Equal(t, "Vinho de mesa", CleanCell(GetText(doc)))
}

func TestCleanCell(t *testing.T) {
	require.Equal(t, "175.267.437", CleanCell("\n      175.267.437\n    "))
	require.Equal(t, "Suco de uva", CleanCell("Suco   de\n\nuva"))
	require.Equal(t, "", CleanCell("  \n\t "))
}
