package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	assert.Equal(t, defaults.KerfWidth, cfg.DefaultKerfWidth)
	assert.Equal(t, defaults.ToolDiameter, cfg.DefaultToolDiameter)
	assert.Equal(t, defaults.FeedRate, cfg.DefaultFeedRate)
	assert.Equal(t, defaults.GCodeProfile, cfg.DefaultGCodeProfile)
	assert.NotNil(t, cfg.RecentProjects)
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultKerfWidth = 5
	cfg.DefaultFeedRate = 3000.0
	cfg.DefaultGCodeProfile = "Grbl"

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	assert.Equal(t, 5, s.KerfWidth)
	assert.Equal(t, 3000.0, s.FeedRate)
	assert.Equal(t, "Grbl", s.GCodeProfile)
}
