package controller

import (
	"errors"
	"net/http"

	"log-triage-backend/internal/dto"
	"log-triage-backend/internal/model"
	"log-triage-backend/internal/service"
	"log-triage-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ChatController struct {
	chatService service.ChatService
}

func NewChatController(chatService service.ChatService) *ChatController {
	return &ChatController{
		chatService: chatService,
	}
}

func RegisterChatRoutes(router *gin.Engine, controller *ChatController) {
	sessions := router.Group("/chat/sessions")
	{
		sessions.POST("", controller.CreateSession)
		sessions.GET("/:sessionId", controller.GetSession)
		sessions.POST("/:sessionId/message", controller.PostMessage)
	}
}

// CreateSession godoc
// @Summary      Create a chat session
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request body dto.SessionCreateRequest false "Optional session title"
// @Success      200 {object} dto.SessionResponse
// @Failure      400 {object} model.Response "Invalid request body"
// @Router       /chat/sessions [post]
func (c *ChatController) CreateSession(ctx *gin.Context) {
	var req dto.SessionCreateRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			log.Warn().Err(err).Msg("Invalid create session body")
			ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid request body: "+err.Error()))
			return
		}
	}

	resp, err := c.chatService.CreateSession(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create chat session")
		ctx.JSON(http.StatusInternalServerError, model.NewResponse(err.Error()))
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetSession godoc
// @Summary      Get a chat session with its messages
// @Tags         chat
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Success      200 {object} dto.SessionWithMessagesResponse
// @Failure      404 {object} model.Response "Session not found"
// @Router       /chat/sessions/{sessionId} [get]
func (c *ChatController) GetSession(ctx *gin.Context) {
	resp, err := c.chatService.GetSession(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PostMessage godoc
// @Summary      Send a chat message
// @Description  Stores the message, relays the session history to the analysis backend and returns the assistant reply.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        sessionId path string true "Session ID"
// @Param        request body dto.MessageCreateRequest true "Message role and content"
// @Success      200 {object} dto.MessageResponse
// @Failure      400 {object} model.Response "Invalid request body"
// @Failure      404 {object} model.Response "Session not found"
// @Router       /chat/sessions/{sessionId}/message [post]
func (c *ChatController) PostMessage(ctx *gin.Context) {
	var req dto.MessageCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid chat message body")
		ctx.JSON(http.StatusBadRequest, model.NewResponse("Invalid request body: "+err.Error()))
		return
	}

	resp, err := c.chatService.PostMessage(ctx.Request.Context(), ctx.Param("sessionId"), req)
	if err != nil {
		c.handleError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

func (c *ChatController) handleError(ctx *gin.Context, err error) {
	if errors.Is(err, store.ErrSessionNotFound) {
		ctx.JSON(http.StatusNotFound, model.NewResponse("Session not found"))
		return
	}
	log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Internal error handling chat request")
	ctx.JSON(http.StatusInternalServerError, model.NewResponse(err.Error()))
}
