package agent

import (
	"math"

	"trails/game"
	"trails/utils"
)

// Value returns the worth of proposing that the agent keeps offerToSelf.
// Offers no better than the starting chips are worth -1.
func (a *Agent) Value(s *game.Scenario, offerToSelf game.Code) float64 {
	if a.gain(s, offerToSelf) <= 0 {
		return -1
	}
	if a.order == 0 {
		return a.base.expectedValue(s, offerToSelf)
	}

	value := 0.0
	if a.confidence > 0 || a.confidenceLocked {
		a.opponent.speculate(func() {
			a.opponent.ReceiveOffer(s, s.Complement(offerToSelf))
			if a.mode == ModeOneLocation {
				if l := a.likeliestLocation(); a.locationBeliefs[l] > a.locationBeliefs[a.opponent.loc]+Precision {
					a.opponent.SetLocation(l)
				}
				value = a.locationValue(s, offerToSelf)
				return
			}
			for l, belief := range a.locationBeliefs {
				if belief > 0 {
					a.opponent.SetLocation(l)
					value += belief * a.locationValue(s, offerToSelf)
				}
			}
		})
	}
	if a.confidence >= 1 || a.confidenceLocked {
		return value
	}
	return a.confidence*value + (1-a.confidence)*a.self.Value(s, offerToSelf)
}

// likeliestLocation picks uniformly among the locations tied for the highest
// belief.
func (a *Agent) likeliestLocation() int {
	best := []int{0}
	for l := 1; l < len(a.locationBeliefs); l++ {
		top := a.locationBeliefs[best[0]]
		if a.locationBeliefs[l] > top+Precision {
			best = best[:0]
		}
		if a.locationBeliefs[l] > top-Precision {
			best = append(best, l)
		}
	}
	return best[a.rng.Intn(len(best))]
}

// locationValue simulates the partner, at its currently assumed location,
// responding to offerToSelf and returns the resulting gain.
func (a *Agent) locationValue(s *game.Scenario, offerToSelf game.Code) float64 {
	offerToOther := s.Complement(offerToSelf)
	response := a.opponent.SelectOffer(s, offerToOther)
	switch {
	case response == offerToOther: // Partner accepts
		return a.gain(s, offerToSelf) - 1
	case response != s.Holdings(1-a.party): // Partner counters
		return math.Max(-1, a.gain(s, s.Complement(response))-2)
	default: // Partner withdraws
		return 0
	}
}

// BestValue returns the highest value of any offer, and at least zero.
func (a *Agent) BestValue(s *game.Scenario) float64 {
	best := 0.0
	for i := 0; i < s.NumOffers(); i++ {
		if v := a.Value(s, game.Code(i)); v > best+Precision {
			best = v
		}
	}
	return best
}

// ValidOffers returns every offer that maximizes value. If offerToMe beats
// them all, it is the only valid offer (accept); if nothing is worth more
// than zero, the starting chips are (withdraw).
func (a *Agent) ValidOffers(s *game.Scenario, offerToMe game.Code) []game.Code {
	offers := []game.Code{}
	best := 0.0
	for i := 0; i < s.NumOffers(); i++ {
		v := a.Value(s, game.Code(i))
		if v > best-Precision {
			if v > best+Precision {
				offers = offers[:0]
				best = v
			}
			offers = append(offers, game.Code(i))
		}
	}
	if offerToMe != game.NoOffer && a.gain(s, offerToMe) > best-Precision {
		offers = []game.Code{offerToMe}
		best = a.gain(s, offerToMe)
	}
	if best < Precision {
		offers = []game.Code{s.Holdings(a.party)}
	}
	return offers
}

// SelectOffer picks one of the valid offers at random. It returns offerToMe
// to accept and the starting chips to withdraw.
func (a *Agent) SelectOffer(s *game.Scenario, offerToMe game.Code) game.Code {
	offers := a.ValidOffers(s, offerToMe)
	return offers[a.rng.Intn(len(offers))]
}

// MakeOffer observes offerToMe, selects a reply and observes making it. It
// returns the reply from the partner's side.
func (a *Agent) MakeOffer(s *game.Scenario, offerToMe game.Code) game.Code {
	a.ReceiveOffer(s, offerToMe)
	choice := a.SelectOffer(s, offerToMe)
	a.SendOffer(s, choice)
	return s.Complement(choice)
}

// updateLocationBeliefs reweighs every candidate partner goal by how well
// the received offer fits a partner heading there.
func (a *Agent) updateLocationBeliefs(s *game.Scenario, offerReceived game.Code) {
	offerToOther := s.Complement(offerReceived)
	holdings := s.Holdings(1 - a.party)
	accuracy := 0.0
	for l := range a.locationBeliefs {
		a.opponent.SetLocation(l)
		if s.Utility(l, offerToOther) <= s.Utility(l, holdings) {
			a.locationBeliefs[l] = 0
			continue
		}
		fit := (a.opponent.Value(s, offerToOther) + 1) / (a.opponent.BestValue(s) + 1)
		a.locationBeliefs[l] *= math.Max(fit, 0)
		accuracy += a.locationBeliefs[l]
	}
	if utils.Normalize(a.locationBeliefs) <= 0 {
		a.locationBeliefs = utils.Uniform(len(a.locationBeliefs))
	}
	a.lastAccuracy = accuracy
	if !a.confidenceLocked {
		a.confidence = a.blend(a.confidence, accuracy)
	}
	a.logger.Debug().
		Int("order", a.order).
		Int("party", a.party).
		Float64("accuracy", accuracy).
		Float64("confidence", a.confidence).
		Msg("updated location beliefs")
}

// blend moves current toward observed by the learning speed, within [0,1].
func (a *Agent) blend(current, observed float64) float64 {
	next := (1-a.learningSpeed)*current + a.learningSpeed*observed
	return math.Min(1, math.Max(0, next))
}

// Observe records offer, made by actor, being accepted or rejected. Drivers
// use it for offers that bypass SendOffer and ReceiveOffer.
func (a *Agent) Observe(s *game.Scenario, offer game.Code, accepted bool, actor int) {
	if a.order == 0 {
		a.base.observe(s, offer, accepted, actor)
		return
	}
	a.opponent.Observe(s, offer, accepted, actor)
	a.self.Observe(s, offer, accepted, actor)
	if actor != a.party && !a.confidenceLocked {
		fit := (math.Max(0, a.opponent.Value(s, offer)) + 1) / (math.Max(0, a.opponent.BestValue(s)) + 1)
		a.confidence = a.blend(a.confidence, fit)
	}
}

// ReceiveOffer observes the partner proposing that the agent keeps
// offerToMe.
func (a *Agent) ReceiveOffer(s *game.Scenario, offerToMe game.Code) {
	if offerToMe == game.NoOffer {
		return
	}
	if a.order == 0 {
		a.base.observe(s, offerToMe, true, 1-a.party)
		return
	}
	a.updateLocationBeliefs(s, offerToMe)
	a.self.ReceiveOffer(s, offerToMe)
	a.opponent.SendOffer(s, s.Complement(offerToMe))
}

// SendOffer observes the agent itself proposing to keep offerToSelf.
func (a *Agent) SendOffer(s *game.Scenario, offerToSelf game.Code) {
	if a.order == 0 {
		a.base.observe(s, offerToSelf, true, 1-a.party)
		return
	}
	a.self.SendOffer(s, offerToSelf)
	a.opponent.ReceiveOffer(s, s.Complement(offerToSelf))
}
