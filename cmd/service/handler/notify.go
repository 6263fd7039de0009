package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type EmployeeAddedRequest struct {
	AccountID      int64  `json:"account_id" binding:"required"`
	OrganizationID int64  `json:"organization_id" binding:"required"`
	EmployeeName   string `json:"employee_name"`
	Role           string `json:"role"`
}

// NotifyEmployeeAdded links the employee's chat to the organization and
// greets them with the main menu.
func (s *HttpSrv) NotifyEmployeeAdded(c *gin.Context) {
	var req EmployeeAddedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	state := v1.NewStateLogic(ctx, s.Core)
	user, err := state.GetByAccountID(req.AccountID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown account"})
		return
	}
	if err := state.LinkOrganization(user.TgChatID, req.OrganizationID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "link failed"})
		return
	}
	user.OrganizationID = req.OrganizationID

	slog.Info("employee linked",
		slog.Int64("account_id", req.AccountID),
		slog.Int64("organization_id", req.OrganizationID),
		slog.String("employee_name", req.EmployeeName),
		slog.String("role", req.Role),
	)

	if err := s.Bot.StartDialog(ctx, user, user.TgChatID, v1.StateMainMenu, nil, true); err != nil {
		slog.Error("welcome render failed",
			slog.Int64("chat_id", user.TgChatID), slog.Any("error", err))
	}
	c.Status(http.StatusOK)
}

type VizardGeneratedRequest struct {
	AccountID        int64  `json:"account_id" binding:"required"`
	YoutubeReference string `json:"youtube_reference" binding:"required"`
	VideoCount       int    `json:"video_count"`
}

func (s *HttpSrv) NotifyVizardGenerated(c *gin.Context) {
	ctx := c.Request.Context()

	var req VizardGeneratedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := v1.NewAlertLogic(ctx, s.Core).QueueVizard(req.AccountID, req.YoutubeReference, req.VideoCount)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "queue failed"})
		return
	}

	s.maybeDeliver(c, user)
}

type PublicationVerdictRequest struct {
	AccountID     int64  `json:"account_id" binding:"required"`
	PublicationID string `json:"publication_id" binding:"required"`
}

func (s *HttpSrv) NotifyPublicationApproved(c *gin.Context) {
	s.publicationVerdict(c, types.MODERATION_STATUS_PUBLISHED)
}

func (s *HttpSrv) NotifyPublicationRejected(c *gin.Context) {
	s.publicationVerdict(c, types.MODERATION_STATUS_REJECTED)
}

func (s *HttpSrv) publicationVerdict(c *gin.Context, status types.ModerationStatus) {
	ctx := c.Request.Context()

	var req PublicationVerdictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alerts := v1.NewAlertLogic(ctx, s.Core)

	var (
		user *types.UserState
		err  error
	)
	if status == types.MODERATION_STATUS_PUBLISHED {
		user, err = alerts.QueuePublicationApproved(req.AccountID, req.PublicationID)
	} else {
		user, err = alerts.QueuePublicationRejected(req.AccountID, req.PublicationID)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "queue failed"})
		return
	}

	s.maybeDeliver(c, user)
}

// maybeDeliver renders queued alerts right away when the chat allows it;
// otherwise they wait for the user's next interaction.
func (s *HttpSrv) maybeDeliver(c *gin.Context, user *types.UserState) {
	if user.CanShowAlerts {
		if err := v1.DeliverPending(c.Request.Context(), s.Core, s.Bot, user); err != nil {
			slog.Error("immediate alert delivery failed",
				slog.Int64("chat_id", user.TgChatID), slog.Any("error", err))
		}
	}
	c.Status(http.StatusOK)
}
