package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBranchOutsideRepository(t *testing.T) {
	assert.Equal(t, "", Branch(t.TempDir()))
}

func TestBranchNonexistentDir(t *testing.T) {
	assert.Equal(t, "", Branch("/nonexistent-quill-vcs-test"))
}
