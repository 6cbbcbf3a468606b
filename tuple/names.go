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

import "sync"

// nameEntry is one pooled dimension name. Entries are never freed while
// their Interner is reachable.
type nameEntry struct {
	text  string
	seq   uint32
	owner *Interner
}

// Name is an interned dimension name. Two Names from the same Interner are
// equal iff they were interned from equal text, so Names can be compared
// with == and used as map keys without touching the string contents.
//
// The zero Name is the "no name" value; it is never returned by Intern.
type Name struct {
	e *nameEntry
}

// String returns the interned text.
func (n Name) String() string {
	if n.e == nil {
		return ""
	}
	return n.e.text
}

// IsZero reports whether n is the zero Name.
func (n Name) IsZero() bool {
	return n.e == nil
}

// Seq returns the interning sequence number of n. Names interned earlier
// have smaller numbers; it gives Names a stable total order.
func (n Name) Seq() uint32 {
	if n.e == nil {
		return 0
	}
	return n.e.seq
}

// Interner is an append-only pool of dimension names.
//
// It is the only shared mutable state in the coordinate model and is safe
// for concurrent use: kernel threads build tuples in parallel and all of
// them intern through the same pool. Names must not be mixed across
// Interners; tuples bound to one Interner compare names by identity.
type Interner struct {
	mu     sync.RWMutex
	byText map[string]*nameEntry
	order  []*nameEntry
}

// NewInterner returns an empty Interner. Tests use private Interners to keep
// their names isolated from the process-wide pool.
func NewInterner() *Interner {
	return &Interner{byText: make(map[string]*nameEntry)}
}

var defaultInterner = NewInterner()

// DefaultInterner returns the process-wide Interner. It lives for the
// lifetime of the process.
func DefaultInterner() *Interner {
	return defaultInterner
}

// Intern returns the Name for text in the default Interner.
func Intern(text string) Name {
	return defaultInterner.Intern(text)
}

// Intern returns the stable Name for text, adding it on first use.
func (in *Interner) Intern(text string) Name {
	in.mu.RLock()
	e, ok := in.byText[text]
	in.mu.RUnlock()
	if ok {
		return Name{e}
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	// Another goroutine may have won the race between the two locks.
	if e, ok := in.byText[text]; ok {
		return Name{e}
	}
	e = &nameEntry{text: text, seq: uint32(len(in.order)) + 1, owner: in}
	in.byText[text] = e
	in.order = append(in.order, e)
	return Name{e}
}

// Lookup returns the Name for text without adding it.
func (in *Interner) Lookup(text string) (Name, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	e, ok := in.byText[text]
	if !ok {
		return Name{}, false
	}
	return Name{e}, true
}

// Len returns the number of interned names.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.order)
}

// Names returns all interned names in interning order.
func (in *Interner) Names() []string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	out := make([]string, len(in.order))
	for i, e := range in.order {
		out[i] = e.text
	}
	return out
}

// Owns reports whether n was interned by in.
func (in *Interner) Owns(n Name) bool {
	return n.e != nil && n.e.owner == in
}
