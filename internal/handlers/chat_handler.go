package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kariyer_backend/internal/auth"
	"kariyer_backend/internal/dto"
	"kariyer_backend/internal/middleware"
	"kariyer_backend/internal/services"
	"kariyer_backend/pkg/apperrors"
)

type ChatHandler struct {
	*BaseHandler
	chatService services.ChatService
}

func NewChatHandler(base *BaseHandler, chatService services.ChatService) *ChatHandler {
	return &ChatHandler{
		BaseHandler: base,
		chatService: chatService,
	}
}

func (h *ChatHandler) RegisterRoutes(r *gin.RouterGroup) {
	rooms := r.Group("/chat/rooms")
	rooms.Use(h.RequireAuth())
	{
		rooms.POST("", h.CreateRoom)
		rooms.GET("", h.GetMyRooms)
		rooms.GET("/:id", h.GetRoom)
		rooms.GET("/:id/messages", h.GetMessages)
		rooms.POST("/:id/messages", h.SendMessage)
		rooms.POST("/:id/read", h.MarkRead)
		rooms.POST("/:id/close", h.CloseRoom)
	}

	admin := r.Group("/admin/chat/rooms")
	admin.Use(h.RequireAuth(), middleware.RequirePermission(auth.PermChatModerate))
	{
		admin.GET("", h.ListRooms)
	}
}

// CreateRoom godoc
// @Summary Open a chat room with a consultant
// @Description Needs an active premium subscription and debits the room credit cost.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.CreateChatRoomRequest true "Room"
// @Success 201 {object} models.ChatRoom
// @Failure 403 {object} apperrors.ErrorResponse "No premium subscription or not enough credits"
// @Router /chat/rooms [post]
func (h *ChatHandler) CreateRoom(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateChatRoomRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	room, err := h.chatService.CreateRoom(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (h *ChatHandler) GetMyRooms(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	rooms, err := h.chatService.ListMyRooms(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rooms": rooms,
		"total": len(rooms),
	})
}

func (h *ChatHandler) GetRoom(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	room, err := h.chatService.GetRoom(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *ChatHandler) GetMessages(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	query := dto.MessageListQuery{Limit: ParseQueryInt(c, "limit", 50)}
	if before := c.Query("before"); before != "" {
		t, err := time.Parse(time.RFC3339Nano, before)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid before parameter. Use RFC3339"))
			return
		}
		query.Before = &t
	}

	messages, err := h.chatService.ListMessages(h.GetDB(c), actor, c.Param("id"), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    len(messages),
	})
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.chatService.SendMessage(h.GetDB(c), actor, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	n, err := h.chatService.MarkRead(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": n})
}

func (h *ChatHandler) CloseRoom(c *gin.Context) {
	actor, ok := h.GetActor(c)
	if !ok {
		return
	}

	room, err := h.chatService.CloseRoom(h.GetDB(c), actor, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *ChatHandler) ListRooms(c *gin.Context) {
	var query dto.ChatRoomListQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	query.Page, query.PageSize = ParsePagination(c)

	result, err := h.chatService.ListRooms(h.GetDB(c), query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
