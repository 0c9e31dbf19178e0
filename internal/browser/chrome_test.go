package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChromeFlagsKeepFramesInProcess(t *testing.T) {
	flags := chromeFlags(DefaultOptions())

	features, ok := flags["disable-features"].(string)
	if assert.True(t, ok) {
		assert.Contains(t, strings.Split(features, ","), "site-per-process")
	}
	assert.Equal(t, true, flags["disable-site-isolation-trials"])
}

func TestChromeFlagsHeadless(t *testing.T) {
	tests := []struct {
		name     string
		headless bool
	}{
		{name: "headless", headless: true},
		{name: "headed", headless: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Headless = tt.headless
			flags := chromeFlags(opts)

			assert.Equal(t, tt.headless, flags["headless"])
			assert.Equal(t, true, flags["no-sandbox"])
			assert.Equal(t, true, flags["disable-dev-shm-usage"])
		})
	}
}
