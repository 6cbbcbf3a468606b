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

package tuple

import (
	"fmt"
	"strings"
)

// Diagnostic renderings. These are not a wire format, but code generators
// parse the offset forms, so the shapes below must stay stable.

// ValStr renders the values, e.g. "4x3x2" with sep "x" or "4, 3, 2".
func (t *Tuple[T]) ValStr(sep, prefix, suffix string) string {
	var sb strings.Builder
	for i, s := range t.dims {
		if i > 0 {
			sb.WriteString(sep)
		}
		fmt.Fprintf(&sb, "%s%v%s", prefix, s.val, suffix)
	}
	return sb.String()
}

// DimStr renders the names, e.g. "x, y, z" or "int x, int y, int z".
func (t *Tuple[T]) DimStr(sep, prefix, suffix string) string {
	var sb strings.Builder
	for i, s := range t.dims {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(prefix)
		sb.WriteString(s.name.String())
		sb.WriteString(suffix)
	}
	return sb.String()
}

// DimValStr renders name/value pairs, e.g. "x=4, y=3, z=2".
func (t *Tuple[T]) DimValStr(sep, infix, prefix, suffix string) string {
	var sb strings.Builder
	for i, s := range t.dims {
		if i > 0 {
			sb.WriteString(sep)
		}
		fmt.Fprintf(&sb, "%s%s%s%v%s", prefix, s.name, infix, s.val, suffix)
	}
	return sb.String()
}

// DimValOffsetStr renders values as offsets from the names, e.g.
// "x+4, y, z-2". A zero offset is the bare name and a negative value
// supplies its own sign.
func (t *Tuple[T]) DimValOffsetStr(sep, prefix, suffix string) string {
	var sb strings.Builder
	for i, s := range t.dims {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(prefix)
		sb.WriteString(s.name.String())
		switch {
		case s.val > 0:
			fmt.Fprintf(&sb, "+%v", s.val)
		case s.val < 0:
			fmt.Fprintf(&sb, "%v", s.val)
		}
		sb.WriteString(suffix)
	}
	return sb.String()
}

// DimValNormOffsetStr renders vector-normalized offsets, e.g.
// "xv + (4 / VLEN_X), yv, zv - (2 / VLEN_Z), tv+1". The values of t are
// numerators; a dimension present in norm is divided by its fold length
// macro, others are rendered as plain offsets. The minus sign is kept
// outside the division so truncation rounds toward the same element.
func (t *Tuple[T]) DimValNormOffsetStr(norm *Tuple[T], sep, prefix, suffix string) string {
	var sb strings.Builder
	for i, s := range t.dims {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(prefix)
		sb.WriteString(s.name.String())
		sb.WriteString("v")
		if s.val != 0 {
			if norm.LookupName(s.name) != nil {
				if s.val > 0 {
					fmt.Fprintf(&sb, " + (%v", s.val)
				} else {
					fmt.Fprintf(&sb, " - (%v", -s.val)
				}
				fmt.Fprintf(&sb, " / VLEN_%s)", strings.ToUpper(s.name.String()))
			} else {
				if s.val > 0 {
					sb.WriteString("+")
				}
				fmt.Fprintf(&sb, "%v", s.val)
			}
		}
		sb.WriteString(suffix)
	}
	return sb.String()
}

// String renders t as "x=4, y=3".
func (t *Tuple[T]) String() string {
	return t.DimValStr(", ", "=", "", "")
}
