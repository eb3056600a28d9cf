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

package main

import (
	"fmt"
	"os"
	"sync/atomic"

	units "github.com/docker/go-units"
	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/deepflowio/intrusive/config"
	"github.com/deepflowio/intrusive/logger"
	"github.com/deepflowio/intrusive/refcount"
	"github.com/deepflowio/intrusive/stats"
)

var log = logging.MustGetLogger("iptr-demo")

var RevCount, Revision, CommitDate string

func main() {
	logger.InitConsoleLog("info")
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		console    bool
		version    bool
	)
	root := &cobra.Command{
		Use:          "iptr-demo",
		Short:        "Exercise intrusive reference counted handles",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if version {
				fmt.Fprintf(cmd.OutOrStdout(), "%s-%s %s\n", RevCount, Revision, CommitDate)
				return nil
			}
			return run(configPath, console)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "f", "/etc/iptr-demo.yaml", "Specify config file location")
	root.Flags().BoolVar(&console, "console", false, "Log to console only")
	root.Flags().BoolVarP(&version, "version", "v", false, "Display the version")
	return root
}

func startStats(c *config.StatsConfig) error {
	sink, err := stats.NewStatsdSink(c.Remote, c.Prefix)
	if err != nil {
		return err
	}
	stats.SetSink(sink)
	stats.SetMinInterval(c.Interval)
	refcount.SetCounterRegisterCallback(func(counter *refcount.Counter) {
		err := stats.RegisterCountable("refcount", counter,
			stats.OptionStatTags{"type": counter.Name},
			stats.OptionInterval(c.Interval))
		if err != nil {
			log.Warning(err)
		}
	})
	if err := stats.RegisterGcMonitor(); err != nil {
		log.Warning(err)
	}
	stats.Start()
	return nil
}

func run(configPath string, console bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if console {
		logger.InitConsoleLog(cfg.LogLevel)
	} else if err := logger.InitLog(cfg.LogFile, cfg.LogLevel); err != nil {
		return err
	}

	if cfg.Stats.Enabled {
		if err := startStats(&cfg.Stats); err != nil {
			return err
		}
		defer stats.Close()
	}

	failed := 0
	for _, result := range runScenarios(cfg.Payload) {
		if result.Err != nil {
			failed++
			log.Errorf("scenario %s failed: %s", result.Name, result.Err)
		} else {
			log.Infof("scenario %s passed, refcounts %v", result.Name, result.Refs)
		}
	}
	for _, c := range refcount.Counters() {
		log.Infof("%s: in use %d objects, %s",
			c.Name, atomic.LoadUint64(&c.InUseObjects),
			units.HumanSize(float64(atomic.LoadUint64(&c.InUseBytes))))
	}
	if failed > 0 {
		return errors.Errorf("%d scenario(s) failed", failed)
	}
	return nil
}
