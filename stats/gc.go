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
	"runtime"
	"time"
)

// GcMonitor 与refcount的Counter对照，用于观察释放后的对象何时被GC回收
type GcMonitor struct {
	lastPauseDuration uint64
	lastNumGC         uint32
}

func (t *GcMonitor) GetCounter() interface{} {
	memStats := runtime.MemStats{}
	runtime.ReadMemStats(&memStats)
	gcDuration := memStats.PauseTotalNs - t.lastPauseDuration
	t.lastPauseDuration = memStats.PauseTotalNs
	gcCount := memStats.NumGC - t.lastNumGC
	t.lastNumGC = memStats.NumGC
	return []StatItem{
		{"duration", COUNT_TYPE, gcDuration},
		{"count", COUNT_TYPE, gcCount},
		{"heap_objects", GAUGE_TYPE, memStats.HeapObjects},
	}
}

func RegisterGcMonitor() error {
	return RegisterCountable("gc", &GcMonitor{}, OptionInterval(time.Second))
}
