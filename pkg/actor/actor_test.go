package actor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, System, FromContext(context.Background()))
	assert.Equal(t, "admin", FromContext(WithName(context.Background(), "admin")))
	// 空用户名不覆盖
	assert.Equal(t, System, FromContext(WithName(context.Background(), "")))
}
