package game

import (
	"math/rand"

	"wordspy/internal/domain"
	"wordspy/internal/words"
)

// startRound resets per-round state, deals words, and enters the clue phase.
// Must be called from the actor goroutine.
func (s *Session) startRound() {
	s.stopTimer()

	st := s.state
	st.Phase = domain.PhaseClue
	st.Votes = make(map[string]string)
	st.Revoted = false
	st.ReadyNext = make(map[string]struct{})
	st.ClueIndex = 0
	s.lastResults = nil
	for _, p := range st.Players {
		p.HasVoted = false
	}

	order := st.Slots()
	rand.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	st.TurnOrder = order

	// Redraw the imposter rather than the turn order so the loop stays
	// cheap: with >=2 players some non-first slot always exists, so this
	// terminates with probability one.
	imposter := order[rand.Intn(len(order))]
	for len(order) > 1 && imposter == order[0] {
		imposter = order[rand.Intn(len(order))]
	}
	st.ImposterSlot = imposter

	pair, err := words.Choose(s.words, s.settings.Difficulty)
	if err != nil {
		s.logger.Warn("word source degraded, fell back", "difficulty", s.settings.Difficulty, "error", err)
	}

	st.PlayerWords = make(map[string]string, len(st.Players))
	for _, p := range st.Players {
		if p.Slot == imposter {
			st.PlayerWords[p.Slot] = pair.ImposterWord
		} else {
			st.PlayerWords[p.Slot] = pair.Word
		}
	}

	for _, p := range st.Players {
		s.sendTo(p.Slot, domain.NewPlayerEvent(domain.EventStartRound, p.Slot, &domain.StartRoundPayload{
			Word:            st.PlayerWords[p.Slot],
			TurnOrder:       st.TurnOrder,
			CurrentClueTurn: st.CurrentClueTurn(),
			Round:           st.Round,
		}))
	}

	s.logger.Info("round started", "round", st.Round, "imposter", imposter)

	s.startTimer(domain.PhaseClue, s.settings.ClueDuration, func() {
		s.logger.Debug("clue timer expired, auto-advancing", "turn", s.state.CurrentClueTurn())
		s.nextClueOrVoting()
	})
}

// AdvanceClue is the current turn-holder signalling their clue is done
func (s *Session) AdvanceClue(slot string) error {
	var err error
	callErr := s.call(func() {
		if s.state.Phase != domain.PhaseClue {
			err = domain.ErrInvalidPhase
			return
		}
		if s.state.CurrentClueTurn() != slot {
			err = domain.ErrNotYourTurn
			return
		}
		s.nextClueOrVoting()
	})
	if callErr != nil {
		return callErr
	}
	return err
}

// nextClueOrVoting advances the clue index or crosses into the voting phase.
// Guarded against stale timers firing after a late phase change. Must be
// called from the actor goroutine.
func (s *Session) nextClueOrVoting() {
	st := s.state
	if st.Phase != domain.PhaseClue {
		return
	}
	s.stopTimer()

	st.ClueIndex++
	if st.ClueIndex < len(st.TurnOrder) {
		next := st.TurnOrder[st.ClueIndex]
		s.broadcast(domain.NewEvent(domain.EventNextClueTurn, &domain.NextClueTurnPayload{Slot: next}))
		s.startTimer(domain.PhaseClue, s.settings.ClueDuration, func() {
			s.logger.Debug("clue timer expired, auto-advancing", "turn", s.state.CurrentClueTurn())
			s.nextClueOrVoting()
		})
		return
	}

	st.Phase = domain.PhaseVoting
	s.logger.Info("all clues given, voting begins", "round", st.Round)
	s.broadcast(domain.NewEvent(domain.EventBeginVoting, &domain.BeginVotingPayload{
		Players:      st.Players,
		AlreadyVoted: false,
		PlayerMap:    st.NameMap(),
	}))
	s.startTimer(domain.PhaseVoting, s.settings.VotingDuration, func() {
		s.logger.Debug("voting timer expired, forcing tally")
		s.handleVote("", "", true)
	})
}
