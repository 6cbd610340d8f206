package game

import "wordspy/internal/domain"

// sendResync replies to a reconnected player with exactly one payload chosen
// by the current phase. Timers live at the session level and are never
// restarted by a resync. Must be called from the actor goroutine.
func (s *Session) sendResync(player *domain.Player) {
	st := s.state
	slot := player.Slot

	switch st.Phase {
	case domain.PhaseClue:
		s.sendTo(slot, domain.NewPlayerEvent(domain.EventStartRound, slot, &domain.StartRoundPayload{
			Word:            st.PlayerWords[slot],
			TurnOrder:       st.TurnOrder,
			CurrentClueTurn: st.CurrentClueTurn(),
			Round:           st.Round,
		}))
	case domain.PhaseVoting:
		s.sendTo(slot, domain.NewPlayerEvent(domain.EventBeginVoting, slot, &domain.BeginVotingPayload{
			Players:      st.Players,
			AlreadyVoted: player.HasVoted,
			PlayerMap:    st.NameMap(),
		}))
	case domain.PhaseResults:
		if s.lastResults != nil {
			s.sendTo(slot, domain.NewPlayerEvent(domain.EventVotingResults, slot, s.lastResults))
		}
	case domain.PhaseFinal:
		s.sendTo(slot, domain.NewPlayerEvent(domain.EventFinalScores, slot, &domain.FinalScoresPayload{
			Scores:  st.Scores,
			Players: st.Players,
		}))
	default:
		// Waiting: the roster broadcast sent by Join already covers it.
		s.sendTo(slot, domain.NewPlayerEvent(domain.EventPlayerJoined, slot, &domain.RosterPayload{Players: st.Players}))
	}
}
