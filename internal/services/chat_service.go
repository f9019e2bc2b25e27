package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/logger"
	"kariyer_backend/internal/models"
	"kariyer_backend/internal/repositories"
	"kariyer_backend/pkg/apperrors"
)

// ChatNotifier pushes realtime events to connected users.
type ChatNotifier interface {
	SendToUsers(userIDs []string, event any)
}

type noopChatNotifier struct{}

func (noopChatNotifier) SendToUsers([]string, any) {}

type ChatService interface {
	CreateRoom(db *gorm.DB, userID string, req *dto.CreateChatRoomRequest) (*models.ChatRoom, error)
	ListMyRooms(db *gorm.DB, userID string) ([]models.ChatRoom, error)
	GetRoom(db *gorm.DB, actor dto.Actor, roomID string) (*models.ChatRoom, error)
	ListMessages(db *gorm.DB, actor dto.Actor, roomID string, query dto.MessageListQuery) ([]models.ChatMessage, error)
	SendMessage(db *gorm.DB, actor dto.Actor, roomID string, req *dto.SendMessageRequest) (*models.ChatMessage, error)
	MarkRead(db *gorm.DB, actor dto.Actor, roomID string) (int64, error)
	CloseRoom(db *gorm.DB, actor dto.Actor, roomID string) (*models.ChatRoom, error)
	ListRooms(db *gorm.DB, query dto.ChatRoomListQuery) (*dto.PaginatedResponse, error)
}

type chatService struct {
	chatRepo         repositories.ChatRepository
	consultantRepo   repositories.ConsultantRepository
	userRepo         repositories.UserRepository
	subscriptionRepo repositories.SubscriptionRepository
	notifier         ChatNotifier
	roomCreditCost   int
}

func NewChatService(
	chatRepo repositories.ChatRepository,
	consultantRepo repositories.ConsultantRepository,
	userRepo repositories.UserRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	notifier ChatNotifier,
	roomCreditCost int,
) ChatService {
	if notifier == nil {
		notifier = noopChatNotifier{}
	}
	return &chatService{
		chatRepo:         chatRepo,
		consultantRepo:   consultantRepo,
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		notifier:         notifier,
		roomCreditCost:   roomCreditCost,
	}
}

// CreateRoom opens a room with a consultant. It needs a current premium
// subscription and debits the room cost in the same transaction. An ACTIVE
// room with the same consultant is returned as is.
func (s *chatService) CreateRoom(db *gorm.DB, userID string, req *dto.CreateChatRoomRequest) (*models.ChatRoom, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := requireActiveUser(tx, s.userRepo, userID); err != nil {
		return nil, err
	}

	consultant, err := s.consultantRepo.FindByID(tx, req.ConsultantID)
	if err != nil {
		return nil, handleConsultantError(err)
	}
	if !consultant.IsActive {
		return nil, apperrors.ErrConsultantInactive
	}
	if consultant.UserID != nil && *consultant.UserID == userID {
		return nil, apperrors.ErrInvalidOperation("chat", "You cannot open a room with yourself")
	}

	premium, err := s.hasPremium(tx, userID)
	if err != nil {
		return nil, err
	}
	if !premium {
		return nil, apperrors.ErrPremiumRequired
	}

	if existing, err := s.chatRepo.FindActiveRoom(tx, userID, consultant.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, repositories.ErrChatRoomNotFound) {
		return nil, apperrors.DatabaseError(err)
	}

	if s.roomCreditCost > 0 {
		if err := s.userRepo.AdjustBalance(tx, userID, -s.roomCreditCost, 0); err != nil {
			if errors.Is(err, repositories.ErrInsufficientBalance) {
				return nil, apperrors.ErrInsufficientCredits
			}
			return nil, handleUserError(err)
		}
	}

	room := &models.ChatRoom{
		UserID:       userID,
		ConsultantID: consultant.ID,
		Subject:      strings.TrimSpace(req.Subject),
		Status:       models.ChatRoomStatusActive,
	}
	if err := s.chatRepo.CreateRoom(tx, room); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	var first *models.ChatMessage
	if text := strings.TrimSpace(req.Message); text != "" {
		first = &models.ChatMessage{
			RoomID:     room.ID,
			SenderID:   userID,
			SenderType: models.SenderTypeUser,
			Content:    text,
		}
		if err := s.chatRepo.CreateMessage(tx, first); err != nil {
			return nil, apperrors.DatabaseError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	logger.Info("Chat room opened", "room_id", room.ID, "user_id", userID, "consultant_id", consultant.ID)

	created, err := s.findRoom(db, room.ID)
	if err != nil {
		return nil, err
	}
	if first != nil {
		s.push(created, dto.ChatEvent{Type: dto.ChatEventMessage, RoomID: room.ID, Message: first})
	}
	return created, nil
}

func (s *chatService) hasPremium(db *gorm.DB, userID string) (bool, error) {
	subs, err := s.subscriptionRepo.ListByUser(db, userID)
	if err != nil {
		return false, apperrors.DatabaseError(err)
	}
	now := time.Now()
	for i := range subs {
		if subs[i].IsPremium && subs[i].IsCurrent(now) {
			return true, nil
		}
	}
	return false, nil
}

func (s *chatService) ListMyRooms(db *gorm.DB, userID string) ([]models.ChatRoom, error) {
	consultantIDs, err := s.consultantRepo.FindIDsByUser(db, userID)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	rooms, err := s.chatRepo.ListRoomsForParticipant(db, userID, consultantIDs)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if rooms == nil {
		rooms = []models.ChatRoom{}
	}
	return rooms, nil
}

func (s *chatService) GetRoom(db *gorm.DB, actor dto.Actor, roomID string) (*models.ChatRoom, error) {
	room, err := s.findRoom(db, roomID)
	if err != nil {
		return nil, err
	}
	if senderType(room, actor) == "" {
		return nil, apperrors.ErrChatAccessDenied
	}
	return room, nil
}

func (s *chatService) ListMessages(db *gorm.DB, actor dto.Actor, roomID string, query dto.MessageListQuery) ([]models.ChatMessage, error) {
	if _, err := s.GetRoom(db, actor, roomID); err != nil {
		return nil, err
	}
	msgs, err := s.chatRepo.ListMessages(db, roomID, query.Before, query.Limit)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	return msgs, nil
}

func (s *chatService) SendMessage(db *gorm.DB, actor dto.Actor, roomID string, req *dto.SendMessageRequest) (*models.ChatMessage, error) {
	room, err := s.findRoom(db, roomID)
	if err != nil {
		return nil, err
	}
	st := senderType(room, actor)
	if st == "" {
		return nil, apperrors.ErrChatAccessDenied
	}
	if room.Status != models.ChatRoomStatusActive {
		return nil, apperrors.ErrChatRoomClosed
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.ValidationError(map[string]string{"content": "content is required"})
	}

	msg := &models.ChatMessage{
		RoomID:     room.ID,
		SenderID:   actor.UserID,
		SenderType: st,
		Content:    content,
	}
	if err := s.chatRepo.CreateMessage(db, msg); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	s.push(room, dto.ChatEvent{Type: dto.ChatEventMessage, RoomID: room.ID, Message: msg})
	return msg, nil
}

// MarkRead marks the other side's messages as read for the caller.
func (s *chatService) MarkRead(db *gorm.DB, actor dto.Actor, roomID string) (int64, error) {
	room, err := s.findRoom(db, roomID)
	if err != nil {
		return 0, err
	}
	if !isParticipant(room, actor.UserID) {
		return 0, apperrors.ErrChatAccessDenied
	}

	n, err := s.chatRepo.MarkRead(db, room.ID, actor.UserID, time.Now())
	if err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	if n > 0 {
		s.push(room, dto.ChatEvent{Type: dto.ChatEventRead, RoomID: room.ID})
	}
	return n, nil
}

// CloseRoom is idempotent: closing a CLOSED room returns it unchanged.
func (s *chatService) CloseRoom(db *gorm.DB, actor dto.Actor, roomID string) (*models.ChatRoom, error) {
	room, err := s.findRoom(db, roomID)
	if err != nil {
		return nil, err
	}
	if senderType(room, actor) == "" {
		return nil, apperrors.ErrChatAccessDenied
	}
	if room.Status == models.ChatRoomStatusClosed {
		return room, nil
	}

	if err := s.chatRepo.CloseRoom(db, room.ID, actor.UserID, time.Now()); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	closed, err := s.findRoom(db, room.ID)
	if err != nil {
		return nil, err
	}
	s.push(closed, dto.ChatEvent{Type: dto.ChatEventRoomClosed, RoomID: room.ID})
	return closed, nil
}

func (s *chatService) ListRooms(db *gorm.DB, query dto.ChatRoomListQuery) (*dto.PaginatedResponse, error) {
	rooms, total, err := s.chatRepo.ListRooms(db, repositories.ChatRoomFilter{
		Status:   query.Status,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	page, size := pageOrDefault(query.Page, query.PageSize)
	return dto.NewPaginatedResponse(rooms, total, page, size), nil
}

func (s *chatService) findRoom(db *gorm.DB, id string) (*models.ChatRoom, error) {
	room, err := s.chatRepo.FindRoomByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrChatRoomNotFound) {
			return nil, apperrors.ErrChatRoomNotFound
		}
		return nil, apperrors.DatabaseError(err)
	}
	return room, nil
}

func (s *chatService) push(room *models.ChatRoom, event dto.ChatEvent) {
	s.notifier.SendToUsers(participants(room), event)
}

func participants(room *models.ChatRoom) []string {
	ids := []string{room.UserID}
	if room.Consultant != nil && room.Consultant.UserID != nil {
		ids = append(ids, *room.Consultant.UserID)
	}
	return ids
}

func isParticipant(room *models.ChatRoom, userID string) bool {
	if room.UserID == userID {
		return true
	}
	return room.Consultant != nil && room.Consultant.UserID != nil && *room.Consultant.UserID == userID
}

// senderType resolves the caller's side of the room, or "" when they have no access.
func senderType(room *models.ChatRoom, actor dto.Actor) models.SenderType {
	switch {
	case room.UserID == actor.UserID:
		return models.SenderTypeUser
	case isParticipant(room, actor.UserID):
		return models.SenderTypeConsultant
	case actor.Role.IsStaff():
		return models.SenderTypeAdmin
	default:
		return ""
	}
}
