package agent

import (
	"fmt"

	"trails/game"
)

// priorSize bounds the (pos, neg) signature buckets. Larger signatures share
// the last bucket.
const priorSize = 9

// Historical accept and total counts per (pos, neg) signature, where pos is
// how many chips the holder would give up and neg how many it would gain.
var (
	priorAccepted = [priorSize][priorSize]int{
		{5, 5, 5, 5, 5, 5, 5, 5, 5},
		{14, 248, 407, 5, 5, 5, 5, 5, 5},
		{26, 316, 196, 129, 5, 5, 5, 5, 5},
		{28, 19, 194, 62, 24, 5, 5, 5, 5},
		{26, 27, 18, 19, 10, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5},
	}
	priorTotal = [priorSize][priorSize]int{
		{226, 25, 27, 34, 45, 5, 5, 5, 5},
		{14, 495, 912, 26, 34, 5, 5, 5, 5},
		{26, 566, 392, 289, 23, 5, 5, 5, 5},
		{28, 19, 345, 122, 55, 5, 5, 5, 5},
		{26, 27, 18, 32, 17, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5},
		{5, 5, 5, 5, 5, 5, 5, 5, 5},
	}
)

// baseline is the order-0 model: it learns which offers tend to be accepted
// from observed outcomes, without modelling the partner's reasoning.
type baseline struct {
	party         int
	loc           int
	learningSpeed float64
	accepted      [priorSize][priorSize]int
	total         [priorSize][priorSize]int
	beliefs       []float64 // per offer code
	saved         []baselineSnapshot
}

type baselineSnapshot struct {
	accepted [priorSize][priorSize]int
	total    [priorSize][priorSize]int
	beliefs  []float64
}

func newBaseline(party int, learningSpeed float64) *baseline {
	return &baseline{
		party:         party,
		learningSpeed: learningSpeed,
		accepted:      priorAccepted,
		total:         priorTotal,
	}
}

// init reseeds the model from the priors for a new game.
func (b *baseline) init(s *game.Scenario, party int) {
	b.party = party
	b.loc = s.Location(party)
	b.accepted = priorAccepted
	b.total = priorTotal
	b.saved = nil
	b.beliefs = make([]float64, s.NumOffers())
	for i := range b.beliefs {
		b.beliefs[i] = b.acceptanceRate(s, game.Code(i))
	}
}

func (b *baseline) signature(s *game.Scenario, offer game.Code) (pos, neg int) {
	pos, neg = s.Codec().Signature(s.Holdings(b.party), offer)
	return min(pos, priorSize-1), min(neg, priorSize-1)
}

// acceptanceRate is the observed share of accepted offers with the same
// signature as offer.
func (b *baseline) acceptanceRate(s *game.Scenario, offer game.Code) float64 {
	pos, neg := b.signature(s, offer)
	return float64(b.accepted[pos][neg]) / float64(b.total[pos][neg])
}

// expectedValue weighs the score of offer at the model's location by the
// believed chance it is accepted.
func (b *baseline) expectedValue(s *game.Scenario, offer game.Code) float64 {
	return b.beliefs[offer] * float64(s.Utility(b.loc, offer))
}

// observe records offer being made by actor and accepted or rejected.
func (b *baseline) observe(s *game.Scenario, offer game.Code, accepted bool, actor int) {
	pos, neg := b.signature(s, offer)
	b.total[pos][neg]++
	switch {
	case actor != b.party:
		b.accepted[pos][neg]++
		b.decay(s, offer, false)
	case accepted:
		b.accepted[pos][neg]++
	default:
		b.decay(s, offer, true)
	}
}

// decay lowers the belief in every offer that keeps more of some color than
// offer does, once per such color. With inclusive set, keeping as much also
// counts.
func (b *baseline) decay(s *game.Scenario, offer game.Code, inclusive bool) {
	codec := s.Codec()
	reference := codec.Decode(offer)
	for i := range b.beliefs {
		for color, n := range codec.Decode(game.Code(i)) {
			if n > reference[color] || (inclusive && n == reference[color]) {
				b.beliefs[i] *= 1 - b.learningSpeed
			}
		}
	}
}

func (b *baseline) saveBeliefs() {
	b.saved = append(b.saved, baselineSnapshot{
		accepted: b.accepted,
		total:    b.total,
		beliefs:  append([]float64(nil), b.beliefs...),
	})
}

func (b *baseline) restoreBeliefs() {
	if len(b.saved) == 0 {
		panic(fmt.Sprintf("restoring beliefs of order-0 model for party %d without a matching save", b.party))
	}
	last := b.saved[len(b.saved)-1]
	b.saved = b.saved[:len(b.saved)-1]
	b.accepted = last.accepted
	b.total = last.total
	b.beliefs = last.beliefs
}
