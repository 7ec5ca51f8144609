package helpers

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestEnviron(t *testing.T) {
	pairs := []string{
		"PATH=/usr/bin",
		"GITHUB_TOKEN=ghp_123",
		"db_password=hunter2",
		"EMPTY_SECRET=",
		"APPVEYOR_REPO_TAG=false",
		"=C:=C:\\",
		"NOVALUE",
	}
	got := Environ(pairs, []string{"token", "PASSWORD", "SECRET", ""})
	assert.Equal(t, []string{
		"APPVEYOR_REPO_TAG=false",
		"EMPTY_SECRET=",
		"GITHUB_TOKEN=***",
		"PATH=/usr/bin",
		"db_password=***",
	}, got)
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	Skip(&buf, "skipping %s", "build")
	Fail(&buf, "Debug build failed")
	assert.Contains(t, buf.String(), "skipping build")
	assert.Contains(t, buf.String(), "Debug build failed")
}
