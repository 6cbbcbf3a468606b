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
	"strconv"
	"strings"
)

// ParseDims parses "x=4, y=3" into a first-inner Tuple bound to the
// default Interner. Whitespace around names and values is ignored.
func ParseDims[T Number](text string) (*Tuple[T], error) {
	t := New[T]()
	text = strings.TrimSpace(text)
	if text == "" {
		return t, nil
	}
	for _, field := range strings.Split(text, ",") {
		name, val, ok := strings.Cut(field, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("tuple: malformed dimension %q, want name=value", strings.TrimSpace(field))
		}
		if t.Has(name) {
			return nil, fmt.Errorf("tuple: duplicate dimension %q", name)
		}
		v, err := parseNumber[T](strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("tuple: value of dimension %q: %w", name, err)
		}
		t.AddBack(name, v)
	}
	return t, nil
}

// parseNumber parses all of text as a T. Integer types take base-10
// integers only; values that T cannot hold are range errors.
func parseNumber[T Number](text string) (T, error) {
	var one T = 1
	if one/2 != 0 {
		f, err := strconv.ParseFloat(text, 64)
		return T(f), err
	}
	var minusOne T
	minusOne--
	if minusOne < 0 {
		n, err := strconv.ParseInt(text, 10, 64)
		if err == nil && int64(T(n)) != n {
			err = &strconv.NumError{Func: "ParseInt", Num: text, Err: strconv.ErrRange}
		}
		return T(n), err
	}
	n, err := strconv.ParseUint(text, 10, 64)
	if err == nil && uint64(T(n)) != n {
		err = &strconv.NumError{Func: "ParseUint", Num: text, Err: strconv.ErrRange}
	}
	return T(n), err
}
