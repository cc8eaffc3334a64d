package editline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBridge_RecallLastDeleted(t *testing.T) {
	b := NewBridge()
	assert.Equal(t, "", b.Recall())

	b.Remember("first")
	b.Remember("second")
	assert.Equal(t, "second", b.Recall())

	// Empty deletions must not clobber the buffer.
	b.Remember("")
	assert.Equal(t, "second", b.Recall())
}
