package logger

import (
	"testing"

	config "github.com/go-ozzo/ozzo-config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithoutTargets(t *testing.T) {
	c := config.New()
	require.NoError(t, c.LoadJSON([]byte(`{"Logger": {"Targets": [{"type": "ConsoleTarget"}]}}`)))

	require.NoError(t, Init(c))
	t.Cleanup(Close)

	api := Category("api")
	assert.Equal(t, "api", api.Category)
	Info("hello %s", "world")
	api.Error("nothing listens")
}
