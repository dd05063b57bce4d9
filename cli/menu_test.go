package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMenuOptions(t *testing.T) {
	labels := make([]string, 0, len(menuOptions))
	for _, option := range menuOptions {
		labels = append(labels, option.Key)
	}
	assert.Equal(t, []string{
		"List existing accounts",
		"Add a new account",
		"Select (launch) an account",
		"Delete an account",
		"Exit",
	}, labels)
}

func TestMenuHandlersCoverAllActions(t *testing.T) {
	for _, option := range menuOptions {
		if option.Value == actionExit {
			// Exit is handled by the loop itself.
			assert.NotContains(t, menuHandlers, option.Value)
			continue
		}
		assert.Contains(t, menuHandlers, option.Value)
	}
}
