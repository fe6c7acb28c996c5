package game

import (
	"errors"
	"fmt"
)

// Code identifies one party's side of a full split of the chip pool. It is a
// mixed-radix number whose digit i counts the chips of color i held by that
// party; digit 0 is the least significant.
type Code int

// NoOffer marks the absence of a standing offer.
const NoOffer Code = -1

var ErrOutOfRange = errors.New("allocation out of range")

// Size returns the number of representable codes for the given capacities.
func Size(capacities []int) int {
	n := 1
	for _, c := range capacities {
		n *= c + 1
	}
	return n
}

// Encode composes a per-color count vector into its code.
func Encode(counts, capacities []int) (Code, error) {
	if len(counts) != len(capacities) {
		return 0, fmt.Errorf("%w: %d counts for %d colors", ErrOutOfRange, len(counts), len(capacities))
	}
	code := 0
	for i := len(counts) - 1; i >= 0; i-- {
		if counts[i] < 0 || counts[i] > capacities[i] {
			return 0, fmt.Errorf("%w: color %d holds %d of %d", ErrOutOfRange, i, counts[i], capacities[i])
		}
		code = code*(capacities[i]+1) + counts[i]
	}
	return Code(code), nil
}

// MustEncode is Encode for vectors known to be valid.
func MustEncode(counts, capacities []int) Code {
	code, err := Encode(counts, capacities)
	if err != nil {
		panic(err)
	}
	return code
}

// Decode splits a code into its per-color counts.
func Decode(code Code, capacities []int) []int {
	if code < 0 || int(code) >= Size(capacities) {
		panic(fmt.Sprintf("code %d outside allocation domain of size %d", code, Size(capacities)))
	}
	counts := make([]int, len(capacities))
	rest := int(code)
	for i, c := range capacities {
		counts[i] = rest % (c + 1)
		rest /= c + 1
	}
	return counts
}

// Complement returns the code of what the other party holds when one party
// holds code.
func Complement(code Code, capacities []int) Code {
	counts := Decode(code, capacities)
	for i, c := range capacities {
		counts[i] = c - counts[i]
	}
	return MustEncode(counts, capacities)
}

// TotalUnits counts the chips held under code.
func TotalUnits(code Code, capacities []int) int {
	total := 0
	for _, n := range Decode(code, capacities) {
		total += n
	}
	return total
}

// SignedDelta returns, per color, how many chips reference holds beyond offer.
func SignedDelta(reference, offer Code, capacities []int) []int {
	delta := Decode(reference, capacities)
	for i, n := range Decode(offer, capacities) {
		delta[i] -= n
	}
	return delta
}

// Signature buckets an offer against a reference holding: pos sums the
// positive entries of SignedDelta, neg the magnitudes of the negative ones.
func Signature(reference, offer Code, capacities []int) (pos, neg int) {
	for _, d := range SignedDelta(reference, offer, capacities) {
		if d > 0 {
			pos += d
		} else {
			neg -= d
		}
	}
	return pos, neg
}

// Codec binds the code functions to one capacity vector and caches the
// complement of every code.
type Codec struct {
	capacities []int
	flip       []Code
}

func NewCodec(capacities []int) Codec {
	caps := append([]int(nil), capacities...)
	flip := make([]Code, Size(caps))
	for i := range flip {
		flip[i] = Complement(Code(i), caps)
	}
	return Codec{capacities: caps, flip: flip}
}

func (c Codec) Size() int {
	return len(c.flip)
}

// Capacities returns a copy of the per-color totals.
func (c Codec) Capacities() []int {
	return append([]int(nil), c.capacities...)
}

func (c Codec) Encode(counts []int) (Code, error) {
	return Encode(counts, c.capacities)
}

func (c Codec) Decode(code Code) []int {
	return Decode(code, c.capacities)
}

func (c Codec) Complement(code Code) Code {
	if code < 0 || int(code) >= len(c.flip) {
		panic(fmt.Sprintf("code %d outside allocation domain of size %d", code, len(c.flip)))
	}
	return c.flip[code]
}

func (c Codec) TotalUnits(code Code) int {
	return TotalUnits(code, c.capacities)
}

func (c Codec) Signature(reference, offer Code) (pos, neg int) {
	return Signature(reference, offer, c.capacities)
}
