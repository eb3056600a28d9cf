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

package refcount

import (
	"math"
	"reflect"
	"sync"
	"sync/atomic"
)

// Counter 统计一种Shared[T]的分配释放情况
// 引用计数本身不是原子的，但Counter可能被上报协程读取，所以使用原子操作
type Counter struct {
	Name       string
	ObjectSize uint64

	Allocated    uint64 `statsd:"allocated,count"`
	Released     uint64 `statsd:"released,count"`
	InUseObjects uint64 `statsd:"in_use_objects,gauge"`
	InUseBytes   uint64 `statsd:"in_use_bytes,gauge"`
}

// GetCounter 返回快照，Allocated和Released在读取后清零
func (c *Counter) GetCounter() interface{} {
	return &Counter{
		Name:         c.Name,
		ObjectSize:   c.ObjectSize,
		Allocated:    atomic.SwapUint64(&c.Allocated, 0),
		Released:     atomic.SwapUint64(&c.Released, 0),
		InUseObjects: atomic.LoadUint64(&c.InUseObjects),
		InUseBytes:   atomic.LoadUint64(&c.InUseBytes),
	}
}

func (c *Counter) acquire() {
	atomic.AddUint64(&c.Allocated, 1)
	atomic.AddUint64(&c.InUseObjects, 1)
	atomic.AddUint64(&c.InUseBytes, c.ObjectSize)
}

func (c *Counter) release() {
	atomic.AddUint64(&c.Released, 1)
	atomic.AddUint64(&c.InUseObjects, math.MaxUint64)
	atomic.AddUint64(&c.InUseBytes, math.MaxUint64-c.ObjectSize+1)
}

// 此Callback可用于为Counter添加statsd监控
type CounterRegisterCallback func(*Counter)

var (
	counterListLock         sync.Mutex
	counterRegisterCallback CounterRegisterCallback
	allCounters             []*Counter
	countersByType          sync.Map // reflect.Type -> *Counter
)

func SetCounterRegisterCallback(callback CounterRegisterCallback) {
	counterListLock.Lock()
	counterRegisterCallback = callback
	if callback != nil {
		for _, counter := range allCounters {
			callback(counter)
		}
	}
	counterListLock.Unlock()
}

func Counters() []*Counter {
	counterListLock.Lock()
	defer counterListLock.Unlock()
	counters := make([]*Counter, len(allCounters))
	copy(counters, allCounters)
	return counters
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func counterOf[T any]() *Counter {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if c, ok := countersByType.Load(t); ok {
		return c.(*Counter)
	}

	counterListLock.Lock()
	defer counterListLock.Unlock()
	if c, ok := countersByType.Load(t); ok {
		return c.(*Counter)
	}
	counter := &Counter{
		Name:       t.String(),
		ObjectSize: uint64(reflect.TypeOf((*Shared[T])(nil)).Elem().Size()),
	}
	if counterRegisterCallback != nil {
		counterRegisterCallback(counter)
	}
	allCounters = append(allCounters, counter)
	countersByType.Store(t, counter)
	return counter
}
