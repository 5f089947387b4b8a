package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalContext(t *testing.T) {
	_, ok := GetPrincipalFromContext(context.Background())
	assert.False(t, ok)

	_, ok = GetPrincipalFromContext(WithPrincipal(context.Background(), ""))
	assert.False(t, ok)

	p, ok := GetPrincipalFromContext(WithPrincipal(context.Background(), "alice"))
	assert.True(t, ok)
	assert.Equal(t, "alice", p)
}
