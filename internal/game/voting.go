package game

import (
	"math/rand"
	"sort"

	"wordspy/internal/domain"
)

// Fixed game-balance constants, not configurable.
const (
	pointsCorrectGuess     = 1
	pointsImposterSurvived = 2
)

// SubmitVote records a player's vote. Completion, tie detection, revote, and
// scoring all happen here once every player has voted.
func (s *Session) SubmitVote(voter, voted string) error {
	return s.call(func() { s.handleVote(voter, voted, false) })
}

// handleVote runs on the actor goroutine. A timer-expiry call passes empty
// slots and timerExpired=true, which bypasses the everyone-voted gate and
// tallies whatever votes were recorded.
func (s *Session) handleVote(voter, voted string, timerExpired bool) {
	st := s.state
	if st.Phase != domain.PhaseVoting {
		return
	}

	if voter != "" {
		if player, ok := st.Player(voter); ok {
			player.HasVoted = true
		}
		// The imposter's own vote never counts toward the tally, but the
		// hasVoted mark above still unblocks completion.
		if voter != st.ImposterSlot {
			st.Votes[voter] = voted
		}
	}

	if !st.AllVoted() && !timerExpired {
		return
	}

	s.stopTimer()

	counts := make(map[string]int)
	for _, target := range st.Votes {
		counts[target]++
	}
	maxVotes := 0
	for _, n := range counts {
		if n > maxVotes {
			maxVotes = n
		}
	}
	topVoted := make([]string, 0, len(counts))
	for slot, n := range counts {
		if n == maxVotes {
			topVoted = append(topVoted, slot)
		}
	}
	sort.Strings(topVoted)

	var votedOut string
	switch {
	case len(topVoted) == 0:
		// No valid votes recorded; nobody is voted out.
	case len(topVoted) == 1:
		votedOut = topVoted[0]
	case !st.Revoted:
		// First tie this voting phase: clear the ballots and go again.
		st.Revoted = true
		st.Votes = make(map[string]string)
		for _, p := range st.Players {
			p.HasVoted = false
		}
		s.logger.Info("vote tied, revoting", "tied", topVoted)
		s.broadcast(domain.NewEvent(domain.EventRevote, &domain.RevotePayload{TiedPlayers: topVoted}))
		return
	default:
		// Tie after a revote: break it randomly among the tied slots.
		votedOut = topVoted[rand.Intn(len(topVoted))]
	}

	imposter := st.ImposterSlot
	st.EnsureScores()

	if votedOut == imposter {
		for _, p := range st.Players {
			if p.Slot != imposter && st.Votes[p.Slot] == imposter {
				st.Scores[p.Slot] += pointsCorrectGuess
			}
		}
	} else if imposter != "" {
		st.Scores[imposter] += pointsImposterSurvived
	}

	st.Phase = domain.PhaseResults
	st.Revoted = false

	correctGuessers := make([]string, 0)
	for voterSlot, target := range st.Votes {
		if voterSlot != imposter && target == imposter {
			correctGuessers = append(correctGuessers, voterSlot)
		}
	}
	sort.Strings(correctGuessers)

	results := &domain.VotingResultsPayload{
		Votes:           st.Votes,
		Imposter:        imposter,
		VotedOut:        votedOut,
		CorrectGuessers: correctGuessers,
		Scores:          st.Scores,
		PlayerMap:       st.NameMap(),
		Players:         st.Players,
		Round:           st.Round,
	}
	s.lastResults = results

	s.logger.Info("vote tally complete",
		"round", st.Round,
		"votedOut", votedOut,
		"imposter", imposter,
		"correctGuessers", correctGuessers,
	)

	s.broadcast(domain.NewEvent(domain.EventVotingResults, results))
}

// ReadyNextRound opts a slot into the next round. Once every currently
// connected player has opted in, the round counter increments and a new
// round begins.
func (s *Session) ReadyNextRound(slot string) error {
	return s.call(func() {
		st := s.state
		st.ReadyNext[slot] = struct{}{}

		ready := make([]string, 0, len(st.ReadyNext))
		for readySlot := range st.ReadyNext {
			ready = append(ready, readySlot)
		}
		sort.Strings(ready)
		s.broadcast(domain.NewEvent(domain.EventNextRoundStatus, &domain.NextRoundStatusPayload{Ready: ready}))

		active := st.ConnectedPlayers()
		if len(active) == 0 {
			// Everyone disconnected; nothing to start.
			return
		}
		for _, p := range active {
			if _, ok := st.ReadyNext[p.Slot]; !ok {
				return
			}
		}

		st.Round++
		s.startRound()
	})
}

// EndGame moves the session to the final phase. Host only.
func (s *Session) EndGame(slot string) error {
	var err error
	callErr := s.call(func() {
		st := s.state
		host := st.Host()
		if host == nil || host.Slot != slot {
			err = domain.ErrNotHost
			return
		}
		s.stopTimer()
		st.Phase = domain.PhaseFinal
		s.logger.Info("host ended the game", "slot", slot)
		s.broadcast(domain.NewEvent(domain.EventFinalScores, &domain.FinalScoresPayload{
			Scores:  st.Scores,
			Players: st.Players,
		}))
	})
	if callErr != nil {
		return callErr
	}
	return err
}
