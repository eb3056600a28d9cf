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

// accessor is the only caller of the Counted operations outside the
// counted object itself. It holds no state.
type accessor struct{}

func (accessor) inc(c Counted) int32 {
	return c.addReferenceCount()
}

func (accessor) dec(c Counted) int32 {
	return c.subReferenceCount()
}

func (accessor) get(c Counted) int32 {
	return c.getReferenceCount()
}
