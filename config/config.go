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
	"net"
	"os"
	"strings"
	"time"

	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

var log = logging.MustGetLogger("config")

const (
	DefaultLogFile       = "/var/log/iptr/iptr-demo.log"
	DefaultStatsdRemote  = "127.0.0.1:8125"
	DefaultStatsdPrefix  = "iptr"
	DefaultStatsInterval = 10
	MaxStatsInterval     = 3600
)

type StatsConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Remote   string        `yaml:"remote"`
	Prefix   string        `yaml:"prefix"`
	Interval time.Duration `yaml:"interval"` // 秒
}

type PayloadConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type Config struct {
	LogFile  string        `yaml:"log-file"`
	LogLevel string        `yaml:"log-level"`
	Stats    StatsConfig   `yaml:"stats"`
	Payload  PayloadConfig `yaml:"payload"`
}

func (c *Config) Validate() error {
	if c.LogFile == "" {
		c.LogFile = DefaultLogFile
	}
	level := strings.ToLower(c.LogLevel)
	c.LogLevel = "info"
	for _, l := range []string{"error", "warning", "info", "debug"} {
		if level == l {
			c.LogLevel = l
		}
	}

	if c.Stats.Remote == "" {
		c.Stats.Remote = DefaultStatsdRemote
	}
	if _, _, err := net.SplitHostPort(c.Stats.Remote); err != nil {
		return errors.Wrapf(err, "malformed stats remote %s", c.Stats.Remote)
	}
	if c.Stats.Prefix == "" {
		c.Stats.Prefix = DefaultStatsdPrefix
	}
	if c.Stats.Interval <= 0 {
		c.Stats.Interval = DefaultStatsInterval
	} else if c.Stats.Interval > MaxStatsInterval {
		c.Stats.Interval = MaxStatsInterval
	}
	c.Stats.Interval *= time.Second
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Payload: PayloadConfig{X: 1, Y: 2},
	}
}

// Load 读取yaml配置，文件不存在时使用默认配置
func Load(path string) (*Config, error) {
	config := defaultConfig()
	configBytes, err := ioutil.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
		log.Warningf("config file %s not found, use default config", path)
	} else if err = yaml.Unmarshal(configBytes, config); err != nil {
		return nil, errors.Wrapf(err, "unmarshal config file %s", path)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
