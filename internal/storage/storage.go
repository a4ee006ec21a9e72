package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/allworkdone/skills-exchange/internal/models"
)

// presenceTTL bounds how long a crashed session still looks online.
const presenceTTL = 90 * time.Second

// Storage is the persistence and fan-out surface the services depend on.
// Lookups return (nil, nil) when the record does not exist; services decide
// whether that is an error.
type Storage interface {
	GetUser(id string) (*models.User, error)
	ListUsersWithSkills() ([]models.User, error)
	UpdateUserRating(userID string, rating float64) error

	CreateExchange(exchange *models.Exchange) error
	GetExchangeByID(id string) (*models.Exchange, error)
	ListExchangesForUser(userID, status string) ([]models.Exchange, error)
	UpdateExchangeFields(id string, fields map[string]interface{}) error

	CreateChat(chat *models.Chat) error
	GetChatByID(id string) (*models.Chat, error)
	ListChatsForUser(userID string) ([]models.Chat, error)
	AppendMessage(msg *models.Message) error
	MarkMessagesRead(chatID, readerID string) error

	PublishEvent(chatID string, ev models.Event) error

	SetPresence(userID string) error
	ClearPresence(userID string) error
}

// Service implements Storage over PostgreSQL (GORM) and Redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context

	log *zap.SugaredLogger
}

// NewService wires the GORM and Redis handles into a Storage implementation.
func NewService(db *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
		log:   log,
	}
}

func (s *Service) GetUser(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Preload("Skills").Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.Errorw("failed to load user", "user_id", id, "err", err)
		return nil, err
	}
	return &user, nil
}

func (s *Service) ListUsersWithSkills() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Preload("Skills").Find(&users).Error; err != nil {
		s.log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}

// UpdateUserRating writes only the rating column of the given user.
func (s *Service) UpdateUserRating(userID string, rating float64) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("rating", rating).Error
}

func (s *Service) CreateExchange(exchange *models.Exchange) error {
	if err := s.DB.Create(exchange).Error; err != nil {
		s.log.Errorw("failed to create exchange", "err", err)
		return err
	}
	return nil
}

func (s *Service) GetExchangeByID(id string) (*models.Exchange, error) {
	var exchange models.Exchange
	err := s.DB.Where("id = ?", id).First(&exchange).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.Errorw("failed to load exchange", "exchange_id", id, "err", err)
		return nil, err
	}
	return &exchange, nil
}

// ListExchangesForUser returns exchanges where the user is either party,
// newest first, optionally filtered by status.
func (s *Service) ListExchangesForUser(userID, status string) ([]models.Exchange, error) {
	q := s.DB.Where("initiator_id = ? OR recipient_id = ?", userID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var exchanges []models.Exchange
	if err := q.Order("created_at desc").Find(&exchanges).Error; err != nil {
		s.log.Errorw("failed to list exchanges", "user_id", userID, "err", err)
		return nil, err
	}
	return exchanges, nil
}

// UpdateExchangeFields writes only the given columns. Callers pass a map
// scoped to the acting party's fields so concurrent writers never clobber
// each other's review columns.
func (s *Service) UpdateExchangeFields(id string, fields map[string]interface{}) error {
	return s.DB.Model(&models.Exchange{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (s *Service) CreateChat(chat *models.Chat) error {
	if err := s.DB.Create(chat).Error; err != nil {
		s.log.Errorw("failed to create chat", "err", err)
		return err
	}
	return nil
}

func (s *Service) GetChatByID(id string) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.id asc")
		}).
		Where("id = ?", id).First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.log.Errorw("failed to load chat", "chat_id", id, "err", err)
		return nil, err
	}
	return &chat, nil
}

// ListChatsForUser returns the user's chats, most recently active first.
func (s *Service) ListChatsForUser(userID string) ([]models.Chat, error) {
	var chats []models.Chat
	err := s.DB.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.id asc")
		}).
		Where("? = ANY(users)", userID).
		Order("updated_at desc").
		Find(&chats).Error
	if err != nil {
		s.log.Errorw("failed to list chats", "user_id", userID, "err", err)
		return nil, err
	}
	return chats, nil
}

// AppendMessage persists the message and bumps the chat's updated_at so the
// chat list ordering tracks activity. The message id is filled in by the
// database and is the append order.
func (s *Service) AppendMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		s.log.Errorw("failed to append message", "chat_id", msg.ChatID, "err", err)
		return err
	}
	return s.DB.Model(&models.Chat{}).
		Where("id = ?", msg.ChatID).
		Update("updated_at", gorm.Expr("NOW()")).Error
}

// MarkMessagesRead flips read on every message in the chat not authored by
// the reader. Already-read rows are untouched; the flag never goes back.
func (s *Service) MarkMessagesRead(chatID, readerID string) error {
	return s.DB.Model(&models.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND read = ?", chatID, readerID, false).
		Update("read", true).Error
}

// PublishEvent fans the event out on the chat's Redis channel. Delivery is
// best effort; the REST path stays authoritative.
func (s *Service) PublishEvent(chatID string, ev models.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, roomChannel(chatID), payload).Err()
}

// SubscribeChatRooms subscribes to every chat room channel.
func (s *Service) SubscribeChatRooms() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, "chat:*")
}

func roomChannel(chatID string) string {
	return "chat:" + chatID
}

func (s *Service) SetPresence(userID string) error {
	return s.Redis.Set(s.Ctx, "presence:"+userID, "online", presenceTTL).Err()
}

func (s *Service) ClearPresence(userID string) error {
	return s.Redis.Del(s.Ctx, "presence:"+userID).Err()
}
