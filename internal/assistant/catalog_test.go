package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIntegrity(t *testing.T) {
	tools := Catalog()
	require.Len(t, tools, 26)

	seen := map[string]bool{}
	for _, tool := range tools {
		assert.NotEmpty(t, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %s", tool.Name)
		assert.False(t, seen[tool.Name], "duplicate tool %s", tool.Name)
		seen[tool.Name] = true

		params := map[string]bool{}
		for _, p := range tool.Params {
			assert.NotEmpty(t, p.Name, "tool %s", tool.Name)
			assert.NotEmpty(t, p.Type, "tool %s param %s", tool.Name, p.Name)
			assert.False(t, params[p.Name], "tool %s duplicate param %s", tool.Name, p.Name)
			params[p.Name] = true
		}
	}
}

func TestFindTool(t *testing.T) {
	tool, ok := FindTool("get_expenses_by_date")
	require.True(t, ok)
	assert.Equal(t, "get_expenses_by_date", tool.Name)

	var required []string
	for _, p := range tool.Params {
		if p.Required {
			required = append(required, p.Name)
		}
	}
	assert.Equal(t, []string{"start_date", "end_date"}, required)

	_, ok = FindTool("delete_all_receipts")
	assert.False(t, ok)
}

func TestToolNames(t *testing.T) {
	names := ToolNames()
	assert.Len(t, names, len(Catalog()))
	assert.Contains(t, names, "manage_budget_limits")
	assert.Contains(t, names, "compare_shopping_list_costs")
}

func TestPromptCatalogListsEveryTool(t *testing.T) {
	prompt := promptCatalog()
	for _, tool := range Catalog() {
		assert.Contains(t, prompt, tool.Name)
	}
	// Enum parameters spell out their values for the model.
	assert.Contains(t, prompt, "add|update|delete")
}
