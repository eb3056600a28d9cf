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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closer struct {
	name   string
	closed *int
}

func (c *closer) Destroy() {
	*c.closed++
}

type valueCloser struct {
	closed *int
}

func (c valueCloser) Destroy() {
	*c.closed++
}

type counterPayload struct {
	buf [32]byte
}

type callbackPayload struct{}

func TestMakeDestroysPayload(t *testing.T) {
	closed := 0
	h := Make(closer{name: "a", closed: &closed})
	h2 := h.Clone()
	assert.Equal(t, "a", h.Get().Value.name)

	h.Release()
	assert.Equal(t, 0, closed)
	shared := h2.Get()
	h2.Release()
	assert.Equal(t, 1, closed)
	assert.Equal(t, closer{}, shared.Value)

	closed = 0
	v := Make(valueCloser{closed: &closed})
	v.Release()
	assert.Equal(t, 1, closed)

	closed = 0
	p := Make(&closer{closed: &closed})
	p.Release()
	assert.Equal(t, 1, closed)
}

func TestMakeFunc(t *testing.T) {
	errCtor := errors.New("no resource")
	h, err := MakeFunc(func() (point, error) {
		return point{}, errCtor
	})
	require.Error(t, err)
	assert.Equal(t, errCtor, errors.Cause(err))
	assert.Contains(t, err.Error(), "refcount.point")
	assert.False(t, h.Valid())

	h, err = MakeFunc(func() (point, error) {
		return point{3, 4}, nil
	})
	require.NoError(t, err)
	defer h.Release()
	assert.Equal(t, int32(1), h.RefCount())
	assert.Equal(t, point{3, 4}, h.Get().Value)
}

func TestCloneShared(t *testing.T) {
	h := Make(point{1, 2})
	defer h.Release()
	h2 := h.Clone()
	defer h2.Release()

	c := CloneShared(&h)
	assert.Equal(t, int32(1), c.RefCount())
	assert.Equal(t, int32(2), h.RefCount())
	assert.False(t, c.Equal(&h))
	assert.Equal(t, point{1, 2}, c.Get().Value)

	c.Get().Value.x = 10
	assert.Equal(t, 1, h.Get().Value.x)
	c.Release()
	assert.Equal(t, int32(2), h.RefCount())
}

func TestCounter(t *testing.T) {
	counter := counterOf[counterPayload]()
	assert.Equal(t, "refcount.counterPayload", counter.Name)
	assert.True(t, counter.ObjectSize >= 32)
	counter.GetCounter() // 清空之前的计数

	h1 := Make(counterPayload{})
	h2 := Make(counterPayload{})
	h3 := h2.Clone()
	assert.Equal(t, uint64(2), counter.InUseObjects)
	assert.Equal(t, 2*counter.ObjectSize, counter.InUseBytes)

	h1.Release()
	h2.Release()
	snapshot := counter.GetCounter().(*Counter)
	assert.Equal(t, uint64(2), snapshot.Allocated)
	assert.Equal(t, uint64(1), snapshot.Released)
	assert.Equal(t, uint64(1), snapshot.InUseObjects)
	assert.Equal(t, counter.ObjectSize, snapshot.InUseBytes)

	h3.Release()
	snapshot = counter.GetCounter().(*Counter)
	assert.Equal(t, uint64(0), snapshot.Allocated)
	assert.Equal(t, uint64(1), snapshot.Released)
	assert.Equal(t, uint64(0), snapshot.InUseObjects)
	assert.Equal(t, uint64(0), snapshot.InUseBytes)

	assert.Contains(t, Counters(), counter)
}

func TestCounterRegisterCallback(t *testing.T) {
	existing := counterOf[point]()
	registered := map[string]*Counter{}
	SetCounterRegisterCallback(func(c *Counter) {
		registered[c.Name] = c
	})
	defer SetCounterRegisterCallback(nil)

	assert.Same(t, existing, registered[existing.Name])

	h := Make(callbackPayload{})
	defer h.Release()
	assert.Same(t, counterOf[callbackPayload](), registered["refcount.callbackPayload"])
}
