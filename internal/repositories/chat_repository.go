package repositories

import (
	"time"

	"gorm.io/gorm"

	"kariyer_backend/internal/models"
)

type ChatRoomFilter struct {
	Status   models.ChatRoomStatus
	Page     int
	PageSize int
}

type ChatRepository interface {
	CreateRoom(db *gorm.DB, room *models.ChatRoom) error
	FindRoomByID(db *gorm.DB, id string) (*models.ChatRoom, error)
	FindActiveRoom(db *gorm.DB, userID, consultantID string) (*models.ChatRoom, error)
	ListRoomsForParticipant(db *gorm.DB, userID string, consultantIDs []string) ([]models.ChatRoom, error)
	ListRooms(db *gorm.DB, filter ChatRoomFilter) ([]models.ChatRoom, int64, error)
	CloseRoom(db *gorm.DB, id, closedBy string, at time.Time) error
	CreateMessage(db *gorm.DB, msg *models.ChatMessage) error
	ListMessages(db *gorm.DB, roomID string, before *time.Time, limit int) ([]models.ChatMessage, error)
	MarkRead(db *gorm.DB, roomID, readerID string, at time.Time) (int64, error)
	CountUnread(db *gorm.DB, roomID, readerID string) (int64, error)
	CountActiveRooms(db *gorm.DB) (int64, error)
}

type ChatRepositoryImpl struct{}

func NewChatRepository() ChatRepository {
	return &ChatRepositoryImpl{}
}

func (r *ChatRepositoryImpl) CreateRoom(db *gorm.DB, room *models.ChatRoom) error {
	return db.Create(room).Error
}

func (r *ChatRepositoryImpl) FindRoomByID(db *gorm.DB, id string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	if err := db.Preload("Consultant").Preload("User").First(&room, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrChatRoomNotFound)
	}
	return &room, nil
}

func (r *ChatRepositoryImpl) FindActiveRoom(db *gorm.DB, userID, consultantID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := db.Preload("Consultant").
		Where("user_id = ? AND consultant_id = ? AND status = ?", userID, consultantID, models.ChatRoomStatusActive).
		First(&room).Error
	if err != nil {
		return nil, notFound(err, ErrChatRoomNotFound)
	}
	return &room, nil
}

// ListRoomsForParticipant returns rooms opened by the user or served by one of their consultant profiles.
func (r *ChatRepositoryImpl) ListRoomsForParticipant(db *gorm.DB, userID string, consultantIDs []string) ([]models.ChatRoom, error) {
	query := db.Preload("Consultant").Preload("User")
	if len(consultantIDs) > 0 {
		query = query.Where("user_id = ? OR consultant_id IN ?", userID, consultantIDs)
	} else {
		query = query.Where("user_id = ?", userID)
	}

	var rooms []models.ChatRoom
	err := query.Order("status ASC").Order("updated_at DESC").Find(&rooms).Error
	return rooms, err
}

func (r *ChatRepositoryImpl) ListRooms(db *gorm.DB, filter ChatRoomFilter) ([]models.ChatRoom, int64, error) {
	query := db.Model(&models.ChatRoom{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rooms []models.ChatRoom
	err := query.Preload("Consultant").Preload("User").
		Scopes(paginate(filter.Page, filter.PageSize)).
		Order("updated_at DESC").
		Find(&rooms).Error
	return rooms, total, err
}

func (r *ChatRepositoryImpl) CloseRoom(db *gorm.DB, id, closedBy string, at time.Time) error {
	return db.Model(&models.ChatRoom{}).
		Where("id = ? AND status = ?", id, models.ChatRoomStatusActive).
		Updates(map[string]interface{}{
			"status":    models.ChatRoomStatusClosed,
			"closed_at": at,
			"closed_by": closedBy,
		}).Error
}

// CreateMessage stores the message and bumps the room's last_message_at.
func (r *ChatRepositoryImpl) CreateMessage(db *gorm.DB, msg *models.ChatMessage) error {
	if err := db.Create(msg).Error; err != nil {
		return err
	}
	return db.Model(&models.ChatRoom{}).Where("id = ?", msg.RoomID).
		Updates(map[string]interface{}{"last_message_at": msg.CreatedAt}).Error
}

// ListMessages returns up to limit messages older than before, oldest first.
func (r *ChatRepositoryImpl) ListMessages(db *gorm.DB, roomID string, before *time.Time, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = 50
	}
	query := db.Where("room_id = ?", roomID)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var msgs []models.ChatMessage
	if err := query.Order("created_at DESC").Limit(limit).Find(&msgs).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (r *ChatRepositoryImpl) MarkRead(db *gorm.DB, roomID, readerID string, at time.Time) (int64, error) {
	result := db.Model(&models.ChatMessage{}).
		Where("room_id = ? AND sender_id <> ? AND read_at IS NULL", roomID, readerID).
		Update("read_at", at)
	return result.RowsAffected, result.Error
}

func (r *ChatRepositoryImpl) CountUnread(db *gorm.DB, roomID, readerID string) (int64, error) {
	var count int64
	err := db.Model(&models.ChatMessage{}).
		Where("room_id = ? AND sender_id <> ? AND read_at IS NULL", roomID, readerID).
		Count(&count).Error
	return count, err
}

func (r *ChatRepositoryImpl) CountActiveRooms(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.ChatRoom{}).Where("status = ?", models.ChatRoomStatusActive).Count(&count).Error
	return count, err
}
