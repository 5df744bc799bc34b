package testutil_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/turtacn/EatTrue/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/EatTrue/internal/testutil"
)

var _ logging.Logger = (*testutil.MockLogger)(nil)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	assert.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLogger_WithSharesRecord(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.With(logging.String("user_id", "alice")).WithError(errors.New("boom")).Warn("publish failed")

	assert.True(t, logger.HasMessage("warn", "publish failed"))
	v, ok := logger.FieldValue("publish failed", "user_id")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)
	v, ok = logger.FieldValue("publish failed", "error")
	assert.True(t, ok)
	assert.Equal(t, "boom", v)
}

//Personal.AI order the ending
