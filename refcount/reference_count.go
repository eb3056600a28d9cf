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
	logging "github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("refcount")

var (
	ErrNilDereference = errors.New("dereference of nil reference")
	ErrDoubleRelease  = errors.New("reference maybe double released")
)

// noCopy may be embedded into structs which must not be copied
// after the first use. See https://golang.org/issues/8005#issuecomment-190753527
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// ReferenceCount 嵌入到结构体中即可被Ptr管理，计数只能由Ptr通过accessor修改
// 计数不是原子的，同一个对象上的Ptr不能跨goroutine并发操作
type ReferenceCount struct {
	_ noCopy

	count int32
}

func (r *ReferenceCount) addReferenceCount() int32 {
	r.count++
	return r.count
}

func (r *ReferenceCount) subReferenceCount() int32 {
	if r.count <= 0 {
		log.Errorf("reference(%d) maybe double released", r.count)
		panic(errors.WithStack(ErrDoubleRelease))
	}
	r.count--
	return r.count
}

func (r *ReferenceCount) getReferenceCount() int32 {
	return r.count
}

// Counted 只能由嵌入ReferenceCount的类型实现
type Counted interface {
	addReferenceCount() int32
	subReferenceCount() int32
	getReferenceCount() int32
}

// Destructor 在引用计数归零时被调用且仅调用一次
type Destructor interface {
	Destroy()
}
