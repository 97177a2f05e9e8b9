package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindIssue(t *testing.T) {
	issue, ok := FindIssue("Merge pull request #123 from org/feature")
	assert.True(t, ok)
	assert.Equal(t, "123", issue)

	issue, ok = FindIssue("fix: handle empty input (#7)\n\ncloses #8")
	assert.True(t, ok)
	assert.Equal(t, "7", issue)

	_, ok = FindIssue("chore: no reference here")
	assert.False(t, ok)

	_, ok = FindIssue("")
	assert.False(t, ok)
}

func TestCommentMissingBinary(t *testing.T) {
	c := &Client{dir: t.TempDir(), binary: "definitely-not-gh-xyz"}
	err := c.Comment("1", "body")
	assert.Error(t, err)
}
