// Copyright 2025 go-stencil Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package realv

import (
	"fmt"
	"strconv"
	"strings"
)

// String formats v as "[0]=1, [1]=2, ...". Undefined lanes print as "?"
// and control lanes in hex. It never panics, so it is safe in log fields.
func (v Vec[T]) String() string {
	if v.e == nil {
		return "<nil engine>"
	}
	var sb strings.Builder
	for l := range v.e.vlen {
		if l > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("[")
		sb.WriteString(strconv.Itoa(l))
		sb.WriteString("]=")
		switch {
		case v.live&(1<<l) == 0:
			sb.WriteString("?")
		case v.view == overlayCtrl:
			fmt.Fprintf(&sb, "%#x", toBits(v.r[l]))
		default:
			sb.WriteString(strconv.FormatFloat(float64(v.r[l]), 'g', -1, ElemBytes[T]()*8))
		}
	}
	return sb.String()
}

// FoldString formats v by fold point, e.g. "(0,0,0,1)=2, ...", in lane
// order.
func (v Vec[T]) FoldString() string {
	if v.e == nil {
		return "<nil engine>"
	}
	var sb strings.Builder
	for l := range v.e.vlen {
		if l > 0 {
			sb.WriteString(", ")
		}
		n, i, j, k := v.e.FoldCoords(l)
		fmt.Fprintf(&sb, "(%d,%d,%d,%d)=", n, i, j, k)
		if v.live&(1<<l) == 0 {
			sb.WriteString("?")
		} else {
			sb.WriteString(strconv.FormatFloat(float64(v.r[l]), 'g', -1, ElemBytes[T]()*8))
		}
	}
	return sb.String()
}
