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

//go:generate mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks

package stats

import (
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/alexcesaro/statsd.v2"
)

type Sink interface {
	Gauge(bucket string, value interface{})
	Count(bucket string, n interface{})
	// WithTags 返回附带tags的Sink，与原Sink共用连接
	WithTags(tags OptionStatTags) Sink
	Flush()
	Close()
}

type statsdSink struct {
	client *statsd.Client
}

// NewStatsdSink 以InfluxDB格式的tag向remote(host:port)发送UDP statsd数据
func NewStatsdSink(remote, prefix string) (Sink, error) {
	opts := []statsd.Option{
		statsd.Address(remote),
		statsd.TagsFormat(statsd.InfluxDB),
		statsd.ErrorHandler(func(err error) {
			log.Warningf("send statsd to %s failed: %s", remote, err)
		}),
	}
	if prefix != "" {
		opts = append(opts, statsd.Prefix(prefix))
	}
	client, err := statsd.New(opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "create statsd client of %s", remote)
	}
	return &statsdSink{client: client}, nil
}

func (s *statsdSink) Gauge(bucket string, value interface{}) {
	s.client.Gauge(bucket, value)
}

func (s *statsdSink) Count(bucket string, n interface{}) {
	s.client.Count(bucket, n)
}

func (s *statsdSink) WithTags(tags OptionStatTags) Sink {
	if len(tags) == 0 {
		return s
	}
	keys := make([]string, 0, len(tags))
	for key := range tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	kv := make([]string, 0, len(tags)*2)
	for _, key := range keys {
		kv = append(kv, key, tags[key])
	}
	return &statsdSink{client: s.client.Clone(statsd.Tags(kv...))}
}

func (s *statsdSink) Flush() {
	s.client.Flush()
}

func (s *statsdSink) Close() {
	s.client.Close()
}
