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
	"reflect"

	"github.com/pkg/errors"

	"github.com/deepflowio/intrusive/config"
	"github.com/deepflowio/intrusive/logger"
	"github.com/deepflowio/intrusive/refcount"
)

type Point struct {
	X, Y int

	destroyed *int
}

func (p *Point) Destroy() {
	log.Debugf("~Point(%d, %d)", p.X, p.Y)
	*p.destroyed++
}

type PointPtr = refcount.Ptr[*refcount.Shared[Point]]

type Result struct {
	Name string
	Refs []int32
	Err  error
}

type scenario struct {
	name string
	want []int32
	run  func(p config.PayloadConfig, log *logger.PrefixLogger) ([]int32, error)
}

var scenarios = []scenario{
	{"copy", []int32{1, 2, 2, 1}, scenarioCopy},
	{"reset", []int32{1, 2, 3, 3, 2, 2}, scenarioReset},
	{"null", []int32{0}, scenarioNull},
}

// 拷贝后离开作用域，计数回到1
func scenarioCopy(p config.PayloadConfig, log *logger.PrefixLogger) ([]int32, error) {
	destroyed := 0
	h1 := refcount.Make(Point{X: p.X, Y: p.Y, destroyed: &destroyed})
	refs := []int32{h1.RefCount()}
	func() {
		h2 := h1.Clone()
		defer h2.Release()
		refs = append(refs, h1.RefCount(), h2.RefCount())
		log.Debugf("%s copied to %s", &h1, &h2)
	}()
	refs = append(refs, h1.RefCount())
	log.Infof("point (%d, %d)", h1.Get().Value.X, h1.Get().Value.Y)

	h1.Release()
	if destroyed != 1 {
		return refs, errors.Errorf("point destroyed %d times", destroyed)
	}
	return refs, nil
}

func scenarioReset(p config.PayloadConfig, log *logger.PrefixLogger) ([]int32, error) {
	destroyed := 0
	ptr := refcount.Make(Point{X: p.X, Y: p.Y, destroyed: &destroyed})
	defer ptr.Release()
	refs := []int32{ptr.RefCount()}
	ptr2 := ptr.Clone()
	refs = append(refs, ptr.RefCount())
	ptr3 := ptr.Clone()
	refs = append(refs, ptr.RefCount())

	ptr3.ResetCopy(&ptr2)
	refs = append(refs, ptr.RefCount())
	ptr3.Reset(nil)
	refs = append(refs, ptr.RefCount())
	ptr3.ResetMove(&ptr2)
	refs = append(refs, ptr.RefCount())
	log.Debugf("after move %s, source valid %v", &ptr3, ptr2.Valid())

	if ptr2.Valid() {
		return refs, errors.New("moved handle still valid")
	}
	ptr3.Release()
	if destroyed != 0 {
		return refs, errors.New("point destroyed while referenced")
	}
	return refs, nil
}

func scenarioNull(p config.PayloadConfig, log *logger.PrefixLogger) (refs []int32, err error) {
	var h PointPtr
	refs = append(refs, h.RefCount())
	if h.Valid() {
		return refs, errors.New("nil handle is valid")
	}
	defer func() {
		r := recover()
		e, ok := r.(error)
		if !ok || errors.Cause(e) != refcount.ErrNilDereference {
			err = errors.Errorf("unexpected dereference result %v", r)
			return
		}
		log.Infof("dereference of nil handle panicked as expected")
	}()
	h.Get()
	return refs, nil
}

func runScenarios(payload config.PayloadConfig) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		l, err := logger.GetPrefixLogger("iptr-demo", "["+s.name+"]")
		if err != nil {
			results = append(results, Result{Name: s.name, Err: err})
			continue
		}
		refs, err := s.run(payload, l)
		if err == nil && !reflect.DeepEqual(refs, s.want) {
			err = errors.Errorf("refcounts %v, expected %v", refs, s.want)
		}
		if err != nil {
			l.Error(err)
		}
		results = append(results, Result{Name: s.name, Refs: refs, Err: err})
	}
	return results
}
