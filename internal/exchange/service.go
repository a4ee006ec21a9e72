// Package exchange owns the lifecycle of a skill-for-skill trade: proposal,
// status updates, review submission and the rating aggregation that feeds
// back into the submitting user's profile.
package exchange

import (
	"time"

	"go.uber.org/zap"

	"github.com/allworkdone/skills-exchange/internal/apperr"
	"github.com/allworkdone/skills-exchange/internal/matching"
	"github.com/allworkdone/skills-exchange/internal/models"
	"github.com/allworkdone/skills-exchange/internal/storage"
)

type Service struct {
	store storage.Storage
	log   *zap.SugaredLogger
}

func NewService(store storage.Storage, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

// RequestInput is the proposal payload.
type RequestInput struct {
	RecipientID      string `json:"recipientId"`
	InitiatorSkillID string `json:"initiatorSkillId"`
	RecipientSkillID string `json:"recipientSkillId"`
	Message          string `json:"message"`
}

// Request creates a pending exchange and provisions its chat. Chat creation
// is best effort: if it fails after the exchange is persisted there is no
// rollback, the exchange stands and the chat id comes back empty. When a
// proposal message is supplied it becomes the chat's first message,
// authored by the initiator.
func (s *Service) Request(initiatorID string, in RequestInput) (*models.Exchange, string, error) {
	switch {
	case in.RecipientID == "":
		return nil, "", apperr.Missing("recipientId")
	case in.InitiatorSkillID == "":
		return nil, "", apperr.Missing("initiatorSkillId")
	case in.RecipientSkillID == "":
		return nil, "", apperr.Missing("recipientSkillId")
	}
	if in.RecipientID == initiatorID {
		return nil, "", &apperr.ValidationError{Field: "recipientId", Reason: "cannot exchange with yourself"}
	}

	exchange := &models.Exchange{
		InitiatorID:    initiatorID,
		RecipientID:    in.RecipientID,
		InitiatorSkill: in.InitiatorSkillID,
		RecipientSkill: in.RecipientSkillID,
		Status:         models.StatusPending,
		Message:        in.Message,
	}
	if err := s.store.CreateExchange(exchange); err != nil {
		return nil, "", err
	}

	chat := &models.Chat{
		Users:      []string{initiatorID, in.RecipientID},
		ExchangeID: &exchange.ID,
	}
	if err := s.store.CreateChat(chat); err != nil {
		s.log.Errorw("exchange created but chat provisioning failed",
			"exchange_id", exchange.ID, "err", err)
		return exchange, "", nil
	}

	if in.Message != "" {
		msg := &models.Message{
			ChatID:   chat.ID,
			SenderID: initiatorID,
			Content:  in.Message,
		}
		if err := s.store.AppendMessage(msg); err != nil {
			s.log.Errorw("failed to append proposal message",
				"chat_id", chat.ID, "err", err)
		}
	}

	return exchange, chat.ID, nil
}

// List returns the user's exchanges as initiator or recipient, newest
// first, optionally filtered by status.
func (s *Service) List(userID, status string) ([]models.Exchange, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, &apperr.ValidationError{Field: "status", Reason: "unknown status"}
	}
	return s.store.ListExchangesForUser(userID, status)
}

// UpdateStatus sets the exchange status on behalf of either party. The
// machine is deliberately permissive: any party may set any enumerated
// status at any time, including jumping straight to completed. Completion
// stamps completedDate with the current time.
func (s *Service) UpdateStatus(exchangeID, actorID, status string, scheduledDate *time.Time) (*models.Exchange, error) {
	if !models.ValidStatus(status) {
		return nil, &apperr.ValidationError{Field: "status", Reason: "unknown status"}
	}

	exchange, err := s.store.GetExchangeByID(exchangeID)
	if err != nil {
		return nil, err
	}
	if exchange == nil {
		return nil, apperr.ErrNotFound
	}
	if !exchange.IsParty(actorID) {
		return nil, apperr.ErrUnauthorized
	}

	fields := map[string]interface{}{"status": status}
	if scheduledDate != nil {
		fields["scheduled_date"] = *scheduledDate
	}
	if status == models.StatusCompleted {
		fields["completed_date"] = time.Now()
	}
	if err := s.store.UpdateExchangeFields(exchangeID, fields); err != nil {
		return nil, err
	}

	updated, err := s.store.GetExchangeByID(exchangeID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}
	return updated, nil
}

// SubmitReview records the acting party's rating and review. Each party
// writes only its own pair of columns, so both sides can submit
// concurrently without clobbering each other. Once both ratings are
// present, the submitter's user rating is blended:
// newRating = (oldRating + avg(initiatorRating, recipientRating)) / 2.
// Only the submitter's rating moves; the counterpart's is left alone.
func (s *Service) SubmitReview(exchangeID, actorID string, rating int, review string) (*models.Exchange, error) {
	if rating < 1 || rating > 5 {
		return nil, &apperr.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}

	exchange, err := s.store.GetExchangeByID(exchangeID)
	if err != nil {
		return nil, err
	}
	if exchange == nil {
		return nil, apperr.ErrNotFound
	}

	var fields map[string]interface{}
	switch actorID {
	case exchange.InitiatorID:
		fields = map[string]interface{}{
			"initiator_rating": rating,
			"initiator_review": review,
		}
	case exchange.RecipientID:
		fields = map[string]interface{}{
			"recipient_rating": rating,
			"recipient_review": review,
		}
	default:
		return nil, apperr.ErrUnauthorized
	}
	if err := s.store.UpdateExchangeFields(exchangeID, fields); err != nil {
		return nil, err
	}

	updated, err := s.store.GetExchangeByID(exchangeID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperr.ErrNotFound
	}

	if updated.InitiatorRating != nil && updated.RecipientRating != nil {
		if err := s.blendUserRating(actorID, *updated.InitiatorRating, *updated.RecipientRating); err != nil {
			s.log.Errorw("failed to update user rating",
				"user_id", actorID, "exchange_id", exchangeID, "err", err)
		}
	}

	return updated, nil
}

func (s *Service) blendUserRating(userID string, initiatorRating, recipientRating int) error {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	avg := float64(initiatorRating+recipientRating) / 2
	return s.store.UpdateUserRating(userID, (user.Rating+avg)/2)
}

// Matches ranks the population against the user's skills by
// complementarity. Scoring itself is pure; this method only assembles the
// in-memory population.
func (s *Service) Matches(userID string) ([]matching.MatchResult, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}

	population, err := s.store.ListUsersWithSkills()
	if err != nil {
		return nil, err
	}

	candidates := make([]matching.Candidate, 0, len(population))
	for _, u := range population {
		candidates = append(candidates, matching.Candidate{
			UserID: u.ID,
			Skills: skillRefs(u.Skills),
		})
	}
	return matching.FindMatches(userID, skillRefs(user.Skills), candidates), nil
}

func skillRefs(skills []models.Skill) []matching.SkillRef {
	refs := make([]matching.SkillRef, 0, len(skills))
	for _, s := range skills {
		refs = append(refs, matching.SkillRef{Name: s.Name, Category: s.Category})
	}
	return refs
}
