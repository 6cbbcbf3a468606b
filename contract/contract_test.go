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

package contract

import (
	"fmt"
	"testing"
)

func TestCatchViolation(t *testing.T) {
	err := Catch(func() {
		Failf("Op", "offset %d out of range", 5)
	})
	if err == nil {
		t.Fatal("Catch() = nil, want violation")
	}
	v, ok := AsViolation(err)
	if !ok {
		t.Fatalf("AsViolation(%v) = false", err)
	}
	if v.Op != "Op" || v.Msg != "offset 5 out of range" {
		t.Errorf("violation = %+v", v)
	}
	want := "contract violation in Op: offset 5 out of range"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCatchNoPanic(t *testing.T) {
	if err := Catch(func() {}); err != nil {
		t.Errorf("Catch() = %v, want nil", err)
	}
}

func TestCatchRepanics(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	_ = Catch(func() { panic("boom") })
	t.Error("Catch swallowed a foreign panic")
}

func TestCheck(t *testing.T) {
	if err := Catch(func() { Check(true, "Op", "never") }); err != nil {
		t.Errorf("Check(true) = %v", err)
	}
	if err := Catch(func() { Check(false, "Op", "bad") }); err == nil {
		t.Error("Check(false) did not fail")
	}
}

func TestAsViolationWrapped(t *testing.T) {
	err := fmt.Errorf("validate: %w", &Violation{Op: "x", Msg: "y"})
	if _, ok := AsViolation(err); !ok {
		t.Error("AsViolation did not unwrap")
	}
	if _, ok := AsViolation(fmt.Errorf("plain")); ok {
		t.Error("AsViolation matched a plain error")
	}
}
