package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "ordered", Ordered.String())
	assert.Equal(t, "unordered", Unordered.String())
	assert.Equal(t, "parallel", Parallel.String())
	assert.Equal(t, "unknown", Policy(99).String())
}

func TestBase_ExposesNameAndPolicy(t *testing.T) {
	b := Base{StageName: "my-stage", StagePolicy: Unordered}
	assert.Equal(t, "my-stage", b.Name())
	assert.Equal(t, Unordered, b.Policy())
}
