/*
 * Copyright (c) 2024 Yunshan Networks
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "iptr-demo.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultLogFile, c.LogFile)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.Stats.Enabled)
	assert.Equal(t, DefaultStatsdRemote, c.Stats.Remote)
	assert.Equal(t, DefaultStatsInterval*time.Second, c.Stats.Interval)
	assert.Equal(t, PayloadConfig{1, 2}, c.Payload)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log-file: /tmp/iptr/demo.log
log-level: DEBUG
stats:
  enabled: true
  remote: 10.1.2.3:20040
  prefix: demo
  interval: 100000
payload:
  x: 3
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/iptr/demo.log", c.LogFile)
	assert.Equal(t, "debug", c.LogLevel)
	assert.True(t, c.Stats.Enabled)
	assert.Equal(t, "10.1.2.3:20040", c.Stats.Remote)
	assert.Equal(t, "demo", c.Stats.Prefix)
	assert.Equal(t, MaxStatsInterval*time.Second, c.Stats.Interval)
	assert.Equal(t, PayloadConfig{3, 2}, c.Payload)
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load(writeConfig(t, "stats: [1, 2"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "stats:\n  remote: no-port\n"))
	assert.Error(t, err)

	c, err := Load(writeConfig(t, "log-level: verbose\n"))
	require.NoError(t, err)
	assert.Equal(t, "info", c.LogLevel)
}
