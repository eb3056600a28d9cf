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
	"reflect"
	"strings"
	"sync"
	"time"

	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("stats")

type countableEntry struct {
	module    string
	countable Countable
	tags      OptionStatTags
	interval  time.Duration

	sink     Sink
	lastTime time.Time
}

type Collector struct {
	sync.Mutex

	sink    Sink
	entries []*countableEntry

	running bool
	stop    chan struct{}
	wg      sync.WaitGroup
}

func NewCollector(sink Sink) *Collector {
	return &Collector{sink: sink}
}

func (c *Collector) SetSink(sink Sink) {
	c.Lock()
	c.sink = sink
	for _, e := range c.entries {
		e.sink = nil
	}
	c.Unlock()
}

func (c *Collector) RegisterCountable(module string, countable Countable, opts ...StatsOption) error {
	if module == "" {
		return errors.New("module name is empty")
	}
	if countable == nil {
		return errors.Errorf("countable of module %s is nil", module)
	}
	entry := &countableEntry{
		module:    module,
		countable: countable,
		interval:  MinInterval(),
	}
	for _, opt := range opts {
		switch o := opt.(type) {
		case OptionStatTags:
			entry.tags = o
		case OptionInterval:
			entry.interval = time.Duration(o)
		default:
			return errors.Errorf("unknown stats option %T", opt)
		}
	}
	if floor := MinInterval(); entry.interval < floor {
		entry.interval = floor
	}

	c.Lock()
	defer c.Unlock()
	for _, e := range c.entries {
		if e.countable == countable {
			return errors.Errorf("countable of module %s already registered", module)
		}
	}
	c.entries = append(c.entries, entry)
	log.Debugf("stats module %s registered, tags %s, interval %v", module, entry.tags, entry.interval)
	return nil
}

func (c *Collector) DeregisterCountable(countable Countable) {
	c.Lock()
	defer c.Unlock()
	for i, e := range c.entries {
		if e.countable == countable {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// Flush 忽略interval，立即上报所有Countable
func (c *Collector) Flush() {
	c.collect(time.Now(), true)
}

func (c *Collector) collect(now time.Time, force bool) {
	c.Lock()
	defer c.Unlock()
	if c.sink == nil {
		return
	}
	for _, e := range c.entries {
		if !force && now.Sub(e.lastTime) < e.interval {
			continue
		}
		e.lastTime = now
		if e.sink == nil {
			if len(e.tags) > 0 {
				e.sink = c.sink.WithTags(e.tags)
			} else {
				e.sink = c.sink
			}
		}
		for _, item := range statItems(e.countable.GetCounter()) {
			bucket := e.module + "." + item.Name
			if item.StatType == GAUGE_TYPE {
				e.sink.Gauge(bucket, item.Value)
			} else {
				e.sink.Count(bucket, item.Value)
			}
		}
	}
	c.sink.Flush()
}

func (c *Collector) Start() {
	c.Lock()
	defer c.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.stop = make(chan struct{})
	c.wg.Add(1)
	go c.run(c.stop)
}

func (c *Collector) run(stop chan struct{}) {
	defer c.wg.Done()
	ticker := time.NewTicker(MinInterval())
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			c.collect(now, false)
		case <-stop:
			return
		}
	}
}

func (c *Collector) Close() {
	c.Lock()
	if c.running {
		close(c.stop)
		c.running = false
	}
	c.Unlock()
	c.wg.Wait()

	c.Flush()
	c.Lock()
	if c.sink != nil {
		c.sink.Close()
		c.sink = nil
	}
	c.Unlock()
}

func parseStatsdTag(tag string) (string, StatType) {
	parts := strings.Split(tag, ",")
	if len(parts) > 1 && parts[1] == "gauge" {
		return parts[0], GAUGE_TYPE
	}
	return parts[0], COUNT_TYPE
}

func statItems(counter interface{}) []StatItem {
	if items, ok := counter.([]StatItem); ok {
		return items
	}
	v := reflect.Indirect(reflect.ValueOf(counter))
	if v.Kind() != reflect.Struct {
		log.Warningf("unsupported counter type %T", counter)
		return nil
	}
	t := v.Type()
	items := make([]StatItem, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("statsd")
		if tag == "" || tag == "-" || field.PkgPath != "" {
			continue
		}
		name, statType := parseStatsdTag(tag)
		items = append(items, StatItem{name, statType, v.Field(i).Interface()})
	}
	return items
}
