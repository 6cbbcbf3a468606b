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
	"go.uber.org/zap"

	"github.com/ajroetker/go-stencil/contract"
)

// Cross-lane operations move lane bits without interpreting them, so
// their data arguments may be real or control vectors as long as they
// agree.

// Align concatenates a (high half) and b (low half), shifts right by
// count lanes and returns the low VLEN lanes:
//
//	res[i] = b[i+count]        for i < VLEN-count
//	res[i] = a[i+count-VLEN]   otherwise
//
// Align(a, b, 0) is b and Align(a, b, VLEN) is a. count must be in
// [0, VLEN].
func Align[T Real](a, b Vec[T], count int) Vec[T] {
	e := a.owner("Align")
	var buf [2 * MaxLanes]T
	e.concat("Align", &buf, &a, &b, count)
	res := Vec[T]{e: e, live: e.full, view: a.view}
	e.window(&res.r, &buf, count)
	if e.trace {
		e.log.Debug("align", zap.Int("count", count),
			zap.Stringer("a", a), zap.Stringer("b", b), zap.Stringer("res", res))
	}
	return res
}

// MaskedAlign is Align that only writes the lanes of dst whose bit is set
// in mask. Other lanes of dst, defined or not, are unchanged.
func MaskedAlign[T Real](dst *Vec[T], a, b Vec[T], count int, mask uint32) {
	e := a.owner("MaskedAlign")
	var buf [2 * MaxLanes]T
	e.concat("MaskedAlign", &buf, &a, &b, count)
	e.checkMaskedDst("MaskedAlign", dst, a.view, mask)
	before := *dst
	var tmp [MaxLanes]T
	e.window(&tmp, &buf, count)
	e.blend(&dst.r, &tmp, mask)
	dst.live |= mask
	if e.trace {
		e.log.Debug("masked align", zap.Int("count", count), zap.Uint32("mask", mask),
			zap.Stringer("a", a), zap.Stringer("b", b),
			zap.Stringer("before", before), zap.Stringer("after", *dst))
	}
}

// Permute returns the vector whose lane i is a[ctrl[i]]. Every control
// lane must be below VLEN.
func Permute[T Real](ctrl, a Vec[T]) Vec[T] {
	e := a.owner("Permute")
	var buf [2 * MaxLanes]T
	var idx [MaxLanes]int
	e.gatherArgs("Permute", &buf, &idx, &ctrl, &a, nil)
	res := Vec[T]{e: e, live: e.full, view: a.view}
	e.gather(&res.r, &buf, &idx)
	if e.trace {
		e.log.Debug("permute", zap.Stringer("ctrl", ctrl), zap.Stringer("a", a), zap.Stringer("res", res))
	}
	return res
}

// MaskedPermute is Permute that only writes the lanes of dst whose bit is
// set in mask.
func MaskedPermute[T Real](dst *Vec[T], ctrl, a Vec[T], mask uint32) {
	e := a.owner("MaskedPermute")
	var buf [2 * MaxLanes]T
	var idx [MaxLanes]int
	e.gatherArgs("MaskedPermute", &buf, &idx, &ctrl, &a, nil)
	e.checkMaskedDst("MaskedPermute", dst, a.view, mask)
	before := *dst
	var tmp [MaxLanes]T
	e.gather(&tmp, &buf, &idx)
	e.blend(&dst.r, &tmp, mask)
	dst.live |= mask
	if e.trace {
		e.log.Debug("masked permute", zap.Uint32("mask", mask),
			zap.Stringer("ctrl", ctrl), zap.Stringer("a", a),
			zap.Stringer("before", before), zap.Stringer("after", *dst))
	}
}

// Permute2 selects lanes from two vectors. For control lane c, the low
// bits (Engine.CtrlIndexMask) give the lane index and Engine.CtrlSelectBit
// chooses b over a. There is no masked variant.
func Permute2[T Real](ctrl, a, b Vec[T]) Vec[T] {
	e := a.owner("Permute2")
	var buf [2 * MaxLanes]T
	var idx [MaxLanes]int
	e.gatherArgs("Permute2", &buf, &idx, &ctrl, &a, &b)
	res := Vec[T]{e: e, live: e.full, view: a.view}
	e.gather(&res.r, &buf, &idx)
	if e.trace {
		e.log.Debug("permute2", zap.Stringer("ctrl", ctrl),
			zap.Stringer("a", a), zap.Stringer("b", b), zap.Stringer("res", res))
	}
	return res
}

// concat validates the align arguments and lays out b then a in buf.
func (e *Engine[T]) concat(op string, buf *[2 * MaxLanes]T, a, b *Vec[T], count int) {
	e.check(op, a, a.view)
	e.check(op, b, a.view)
	if count < 0 || count > e.vlen {
		contract.Failf(op, "count %d out of range [0, %d]", count, e.vlen)
	}
	copy(buf[:e.vlen], b.r[:e.vlen])
	copy(buf[e.vlen:], a.r[:e.vlen])
}

// gatherArgs validates the permute arguments and fills the source buffer
// (a then b) and the lane indices into it. b is nil for a single source
// permute.
func (e *Engine[T]) gatherArgs(op string, buf *[2 * MaxLanes]T, idx *[MaxLanes]int, ctrl, a, b *Vec[T]) {
	e.check(op, ctrl, overlayCtrl)
	e.check(op, a, a.view)
	copy(buf[:e.vlen], a.r[:e.vlen])
	if b != nil {
		e.check(op, b, a.view)
		copy(buf[e.vlen:], b.r[:e.vlen])
	}
	for l := range e.vlen {
		c := toBits(ctrl.r[l])
		if b == nil {
			if c >= uint64(e.vlen) {
				contract.Failf(op, "control lane %d selects lane %d, VLEN is %d", l, c, e.vlen)
			}
			idx[l] = int(c)
			continue
		}
		if c&^(e.idxMask|e.selBit) != 0 {
			contract.Failf(op, "control lane %d has stray bits %#x", l, c)
		}
		i := c & e.idxMask
		if i >= uint64(e.vlen) {
			contract.Failf(op, "control lane %d selects lane %d, VLEN is %d", l, i, e.vlen)
		}
		idx[l] = int(i)
		if c&e.selBit != 0 {
			idx[l] += e.vlen
		}
	}
}

func (e *Engine[T]) checkMaskedDst(op string, dst *Vec[T], view overlay, mask uint32) {
	switch {
	case dst == nil:
		contract.Failf(op, "nil destination")
	case dst.e == nil:
		contract.Failf(op, "use of a vector that was not created by an Engine")
	case dst.e != e:
		contract.Failf(op, "destination belongs to a different engine")
	case dst.view != view:
		contract.Failf(op, "destination holds %s lanes, sources hold %s lanes", dst.view, view)
	}
	if mask&^e.full != 0 {
		contract.Failf(op, "mask %#x has bits beyond VLEN %d", mask, e.vlen)
	}
}
