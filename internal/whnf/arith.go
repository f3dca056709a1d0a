// Copyright 2024 The dhall-go Authors
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

package whnf

import (
	"math/big"

	"github.com/cockroachdb/apd/v2"
)

// Natural and Integer literals store their value in an apd.Decimal, for
// parity with the teacher's own arbitrary-precision number field, but
// Dhall's Naturals and Integers are exact unbounded integers rather than
// decimals with rounding behavior. apd's arithmetic contexts are built
// around rounding to a fixed precision, which is the wrong model here, so
// arithmetic is done on the decimal's underlying big.Int coefficient
// instead. This assumes every NaturalLit/IntegerLit in the tree carries
// Exponent 0, an invariant the checker and normalizer both preserve.

func toBigInt(d apd.Decimal) *big.Int {
	n := new(big.Int).Set(&d.Coeff)
	if d.Negative {
		n.Neg(n)
	}
	return n
}

func fromBigInt(n *big.Int) apd.Decimal {
	var d apd.Decimal
	d.Coeff.Abs(n)
	d.Negative = n.Sign() < 0
	d.Exponent = 0
	return d
}

func addNat(a, b apd.Decimal) apd.Decimal {
	return fromBigInt(new(big.Int).Add(toBigInt(a), toBigInt(b)))
}

func mulNat(a, b apd.Decimal) apd.Decimal {
	return fromBigInt(new(big.Int).Mul(toBigInt(a), toBigInt(b)))
}

// subNat computes a - b, clamped at zero (used by Natural/subtract, whose
// result is 0 whenever b >= a).
func subNat(a, b apd.Decimal) apd.Decimal {
	r := new(big.Int).Sub(toBigInt(a), toBigInt(b))
	if r.Sign() < 0 {
		return fromBigInt(big.NewInt(0))
	}
	return fromBigInt(r)
}

func isZero(d apd.Decimal) bool {
	return toBigInt(d).Sign() == 0
}

func cmpNat(a, b apd.Decimal) int {
	return toBigInt(a).Cmp(toBigInt(b))
}

func negate(d apd.Decimal) apd.Decimal {
	return fromBigInt(new(big.Int).Neg(toBigInt(d)))
}
