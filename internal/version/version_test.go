package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	origCommit := Commit
	t.Cleanup(func() { Commit = origCommit })
	Commit = "deadbeefcafe"

	info := Info()
	assert.Contains(t, info, "paragony")
	assert.Contains(t, info, Version)
	assert.Contains(t, info, "deadbee")
	assert.NotContains(t, info, "deadbeefcafe")
	assert.Contains(t, info, runtime.GOOS)
}

func TestShort(t *testing.T) {
	assert.Equal(t, "abcdefg", short("abcdefghij"))
	assert.Equal(t, "abc", short("abc"))
	assert.Equal(t, "", short(""))
}
