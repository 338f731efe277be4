package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	assert.Equal(t, "NORMAL", ModeNormal.String())
	assert.Equal(t, "MOVE", ModeMove.String())
	assert.Equal(t, "TABLE", ModeTable.String())
	assert.Equal(t, "UNKNOWN", Mode(42).String())
}

func TestToast_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	toast := Toast{Level: ToastError, Message: "boom", Expires: now.Add(time.Second)}

	assert.False(t, toast.Expired(now))
	assert.True(t, toast.Expired(now.Add(time.Second)))
	assert.Equal(t, "error", toast.Level.String())
	assert.Equal(t, "info", ToastLevel(99).String())
}
