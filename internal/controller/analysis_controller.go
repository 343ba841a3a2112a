package controller

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"log-triage-backend/config"
	"log-triage-backend/internal/dto"
	"log-triage-backend/internal/llm"
	"log-triage-backend/internal/model"
	"log-triage-backend/internal/service"
	"log-triage-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// multipartOverhead is the allowance for boundaries, part headers and the
// sessionId field on top of UPLOAD_MAX_BYTES.
const multipartOverhead = 64 << 10

type AnalysisController struct {
	analysisService service.AnalysisService
	chatService     service.ChatService
	appName         string
	chatAPIURL      string
	maxUploadBytes  int64
}

func NewAnalysisController(analysisService service.AnalysisService, chatService service.ChatService, cfg *config.Config) *AnalysisController {
	return &AnalysisController{
		analysisService: analysisService,
		chatService:     chatService,
		appName:         cfg.App.Name,
		chatAPIURL:      cfg.ChatAPIURL,
		maxUploadBytes:  cfg.Server.MaxUploadBytes,
	}
}

func RegisterAnalysisRoutes(router *gin.Engine, controller *AnalysisController) {
	router.GET("/", controller.GetStatus)
	chat := router.Group("/chat")
	{
		chat.POST("/log-analyze", controller.AnalyzeLog)
	}
}

// GetStatus godoc
// @Summary      Service status
// @Description  Reports liveness, the active analysis backend and the chat gateway URL used by the UI.
// @Tags         health
// @Produce      json
// @Success      200 {object} dto.StatusResponse
// @Router       / [get]
func (c *AnalysisController) GetStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.StatusResponse{
		Status:     "ok",
		App:        c.appName,
		Backend:    c.analysisService.BackendName(),
		ChatAPIURL: c.chatAPIURL,
	})
}

// AnalyzeLog godoc
// @Summary      Analyze an uploaded log file
// @Description  Flags lines containing error, warn, exception or fail (at most 200, in file order) and returns a Findings/Fixes analysis from the configured backend. When sessionId is given, the upload and analysis are appended to that chat session.
// @Tags         analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file    true   "Plain-text log file"
// @Param        sessionId  formData  string  false  "Chat session to append the analysis to"
// @Success      200 {object} model.AnalysisResult
// @Failure      400 {object} model.Response "file is required"
// @Failure      404 {object} model.Response "Session not found"
// @Failure      413 {object} model.Response "File too large"
// @Failure      500 {object} model.Response "Analysis backend failure"
// @Router       /chat/log-analyze [post]
func (c *AnalysisController) AnalyzeLog(ctx *gin.Context) {
	if c.maxUploadBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes+multipartOverhead)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn().Int64("limit", c.maxUploadBytes).Msg("Upload body exceeded limit, stopped reading")
			c.rejectTooLarge(ctx)
			return
		}
		log.Warn().Err(err).Msg("Log analysis request without a file")
		ctx.JSON(http.StatusBadRequest, model.NewResponse("file is required"))
		return
	}
	if c.maxUploadBytes > 0 && fileHeader.Size > c.maxUploadBytes {
		log.Warn().Int64("size", fileHeader.Size).Int64("limit", c.maxUploadBytes).Msg("Uploaded log file too large")
		c.rejectTooLarge(ctx)
		return
	}

	sessionID := ctx.PostForm("sessionId")
	if sessionID != "" && !c.chatService.SessionExists(ctx.Request.Context(), sessionID) {
		ctx.JSON(http.StatusNotFound, model.NewResponse(store.ErrSessionNotFound.Error()))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Str("file", fileHeader.Filename).Msg("Failed to open uploaded file")
		ctx.JSON(http.StatusBadRequest, model.NewResponse("file could not be read"))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Str("file", fileHeader.Filename).Msg("Failed to read uploaded file")
		ctx.JSON(http.StatusBadRequest, model.NewResponse("file could not be read"))
		return
	}

	result, err := c.analysisService.AnalyzeLog(ctx.Request.Context(), fileHeader.Filename, raw)
	if err != nil {
		var backendErr *llm.Error
		if errors.As(err, &backendErr) {
			log.Error().Err(err).Str("backend", backendErr.Backend).Msg("Analysis backend call failed")
		} else {
			log.Error().Err(err).Msg("Internal error analyzing log")
		}
		ctx.JSON(http.StatusInternalServerError, model.NewResponse(err.Error()))
		return
	}

	if sessionID != "" {
		if err := c.chatService.AttachAnalysis(ctx.Request.Context(), sessionID, fileHeader.Filename, result); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("Could not attach analysis to chat session")
		}
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *AnalysisController) rejectTooLarge(ctx *gin.Context) {
	ctx.JSON(http.StatusRequestEntityTooLarge, model.NewResponse(fmt.Sprintf("file exceeds %d bytes", c.maxUploadBytes)))
}
