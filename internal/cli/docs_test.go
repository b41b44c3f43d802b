package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMarkdown(t *testing.T) {
	text := "Intro line.\n\n## Budżety\nLimity miesięczne.\n\n## Listy zakupów\nDodawanie produktów.\n"

	chunks := splitMarkdown("funkcje", text)
	require.Len(t, chunks, 3)

	assert.Equal(t, "funkcje", chunks[0].title)
	assert.Equal(t, "Intro line.", chunks[0].content)
	assert.Equal(t, "funkcje: Budżety", chunks[1].title)
	assert.Equal(t, "Limity miesięczne.", chunks[1].content)
	assert.Equal(t, "funkcje: Listy zakupów", chunks[2].title)
}

func TestSplitMarkdownNoHeadings(t *testing.T) {
	chunks := splitMarkdown("readme", "just one paragraph")
	require.Len(t, chunks, 1)
	assert.Equal(t, "readme", chunks[0].title)
}

func TestSplitMarkdownEmpty(t *testing.T) {
	assert.Empty(t, splitMarkdown("empty", "\n\n"))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, false, parseValue("FALSE"))
	assert.Equal(t, 8087, parseValue("8087"))
	assert.Equal(t, 0.75, parseValue("0.75"))
	assert.Equal(t, "loopback", parseValue("loopback"))
}
