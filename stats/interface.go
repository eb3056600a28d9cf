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

package stats

import (
	"bytes"
	"sort"
	"sync/atomic"
	"time"
)

type StatType uint8

const (
	COUNT_TYPE StatType = iota
	GAUGE_TYPE
)

var minInterval atomic.Int64

func init() {
	minInterval.Store(int64(time.Second))
}

type StatsOption = interface{}

type OptionStatTags map[string]string
type OptionInterval time.Duration

func (t OptionStatTags) String() string {
	if len(t) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var strBuf bytes.Buffer
	strBuf.WriteString("{")
	for _, key := range keys {
		strBuf.WriteString(key + ": " + t[key] + ", ")
	}
	strBuf.Truncate(strBuf.Len() - 2)
	return strBuf.String() + "}"
}

type StatItem struct {
	Name     string
	StatType StatType
	Value    interface{}
}

type Countable interface {
	// needs to be thread-safe, clear is required after read
	// accept struct, pointer to struct or []StatItem
	// struct fields are reported by tag `statsd:"name[,count|gauge]"`
	GetCounter() interface{}
}

var defaultCollector = NewCollector(nil)

// 限定stats的最少interval，也就是不论注册Countable时
// 指定的Interval是多少，只要比此值低就优先使用此值
// 已启动的Collector的ticker周期不变，需在Start之前调用
func SetMinInterval(interval time.Duration) {
	minInterval.Store(int64(interval))
}

func MinInterval() time.Duration {
	return time.Duration(minInterval.Load())
}

// 指定上报的目的地，nil表示只注册不上报
func SetSink(sink Sink) {
	defaultCollector.SetSink(sink)
}

func RegisterCountable(module string, countable Countable, opts ...StatsOption) error {
	return defaultCollector.RegisterCountable(module, countable, opts...)
}

func Start() {
	defaultCollector.Start()
}

// Close 停止上报，上报最后一次并关闭Sink
func Close() {
	defaultCollector.Close()
}
