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
	"github.com/pkg/errors"
)

// Shared 为任意类型附加引用计数，T本身无需感知计数
type Shared[T any] struct {
	ReferenceCount
	Value T

	counter *Counter
}

// Destroy 由Ptr在计数归零时调用，会转调Value的Destroy
func (s *Shared[T]) Destroy() {
	if d, ok := any(s.Value).(Destructor); ok {
		d.Destroy()
	} else if d, ok := any(&s.Value).(Destructor); ok {
		d.Destroy()
	}
	var zero T
	s.Value = zero
	if s.counter != nil {
		s.counter.release()
		s.counter = nil
	}
}

func newShared[T any](value T) *Shared[T] {
	counter := counterOf[T]()
	counter.acquire()
	return &Shared[T]{Value: value, counter: counter}
}

// Make 分配对象并返回计数为1的Ptr
func Make[T any](value T) Ptr[*Shared[T]] {
	return New(newShared(value))
}

// MakeFunc 同Make，ctor失败时不分配对象，返回空Ptr
func MakeFunc[T any](ctor func() (T, error)) (Ptr[*Shared[T]], error) {
	value, err := ctor()
	if err != nil {
		return Ptr[*Shared[T]]{}, errors.Wrapf(err, "construct %s", typeName[T]())
	}
	return Make(value), nil
}

// CloneShared 拷贝h指向的Value到新对象，新对象的计数从0开始，与h互不影响
func CloneShared[T any](h *Ptr[*Shared[T]]) Ptr[*Shared[T]] {
	return Make(h.Get().Value)
}
