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
	"fmt"

	"github.com/pkg/errors"
)

// Pointee is normally a pointer to a struct embedding ReferenceCount.
type Pointee interface {
	comparable
	Counted
}

// Ptr 持有对象的一份引用，零值为空引用
//
// Go没有拷贝构造和析构，所有生命周期事件都需要显式调用：
//   - 拷贝: Clone / Assign / ResetCopy，计数加一
//   - 移动: Move / AssignMove / ResetMove，计数不变，源Ptr被置空
//   - 析构: Release，计数减一，归零时调用Destructor
//
// Ptr本身不能按值拷贝（go vet会检查），否则计数与实际持有数不一致
type Ptr[T Pointee] struct {
	_ noCopy
	accessor

	ptr T
}

// New 接管p并将其计数加一，p为nil时返回空引用
func New[T Pointee](p T) Ptr[T] {
	var zero T
	if p != zero {
		accessor{}.inc(p)
	}
	return Ptr[T]{ptr: p}
}

func (p *Ptr[T]) isNil() bool {
	var zero T
	return p.ptr == zero
}

// 计数减一，归零时销毁对象
func (p *Ptr[T]) release(old T) {
	if p.dec(old) > 0 {
		return
	}
	if d, ok := any(old).(Destructor); ok {
		d.Destroy()
	}
}

func (p *Ptr[T]) Clone() Ptr[T] {
	return New(p.ptr)
}

// Move 转移引用，p被置空
func (p *Ptr[T]) Move() Ptr[T] {
	ptr := p.ptr
	var zero T
	p.ptr = zero
	return Ptr[T]{ptr: ptr}
}

// Assign 拷贝other的引用，并释放p原先持有的对象
func (p *Ptr[T]) Assign(other *Ptr[T]) *Ptr[T] {
	old := p.ptr
	p.ptr = other.ptr
	// 先加后减，old与other指向同一对象时计数不会中途归零
	if !p.isNil() {
		p.inc(p.ptr)
	}
	p.releaseIfSet(old)
	return p
}

// AssignMove 接管other的引用并将other置空，p原先持有的对象被释放
func (p *Ptr[T]) AssignMove(other *Ptr[T]) *Ptr[T] {
	if p == other {
		return p
	}
	old := p.ptr
	p.ptr = other.ptr
	var zero T
	other.ptr = zero
	p.releaseIfSet(old)
	return p
}

func (p *Ptr[T]) releaseIfSet(old T) {
	var zero T
	if old != zero {
		p.release(old)
	}
}

// Release 释放持有的引用，p被置空
func (p *Ptr[T]) Release() {
	if p.isNil() {
		return
	}
	old := p.ptr
	var zero T
	p.ptr = zero
	p.release(old)
}

// Reset 释放原对象并直接持有ptr，ptr的计数不增加
// 调用者需保证ptr已经带有一份引用，例如来自Detach
func (p *Ptr[T]) Reset(ptr T) *Ptr[T] {
	old := p.ptr
	p.ptr = ptr
	p.releaseIfSet(old)
	return p
}

func (p *Ptr[T]) ResetCopy(other *Ptr[T]) *Ptr[T] {
	if p.ptr == other.ptr {
		return p
	}
	old := p.ptr
	p.ptr = other.ptr
	if !p.isNil() {
		p.inc(p.ptr)
	}
	p.releaseIfSet(old)
	return p
}

// ResetMove 释放原对象，接管other的引用，other被置空
func (p *Ptr[T]) ResetMove(other *Ptr[T]) *Ptr[T] {
	if p == other {
		return p
	}
	old := p.ptr
	p.ptr = other.ptr
	var zero T
	other.ptr = zero
	p.releaseIfSet(old)
	return p
}

// Detach 返回持有的对象并将p置空，计数不变，由调用者负责之后的释放
func (p *Ptr[T]) Detach() T {
	ptr := p.ptr
	var zero T
	p.ptr = zero
	return ptr
}

func (p *Ptr[T]) Get() T {
	if p.isNil() {
		log.Errorf("dereference of nil %T", p)
		panic(errors.WithStack(ErrNilDereference))
	}
	return p.ptr
}

func (p *Ptr[T]) RefCount() int32 {
	if p.isNil() {
		return 0
	}
	return p.get(p.ptr)
}

func (p *Ptr[T]) Valid() bool {
	return !p.isNil()
}

func (p *Ptr[T]) Equal(other *Ptr[T]) bool {
	return p.ptr == other.ptr
}

func (p *Ptr[T]) String() string {
	if p.isNil() {
		return "Ptr(nil)"
	}
	return fmt.Sprintf("Ptr(%p, refs=%d)", any(p.ptr), p.get(p.ptr))
}
