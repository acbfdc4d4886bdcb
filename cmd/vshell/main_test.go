package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vshell/internal/util"
)

func TestLogLevelFor_MapsVerbosity(t *testing.T) {
	assert.Equal(t, util.ErrorLevel, logLevelFor(1))
	assert.Equal(t, util.WarnLevel, logLevelFor(2))
	assert.Equal(t, util.InfoLevel, logLevelFor(3))
	assert.Equal(t, util.DebugLevel, logLevelFor(4))
	assert.Equal(t, util.TraceLevel, logLevelFor(5))
}

func TestLogLevelFor_ClampsRange(t *testing.T) {
	assert.Equal(t, util.ErrorLevel, logLevelFor(0))
	assert.Equal(t, util.ErrorLevel, logLevelFor(-3))
	assert.Equal(t, util.TraceLevel, logLevelFor(9))
}
