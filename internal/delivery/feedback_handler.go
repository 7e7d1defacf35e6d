package delivery

import (
	"net/http"

	"github.com/Canapean/Market/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FeedbackHandler struct {
	useCase usecase.FeedbackUseCase
	log     *logrus.Logger
}

func NewFeedbackHandler(uc usecase.FeedbackUseCase, logger *logrus.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *FeedbackHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/feedback", h.SubmitFeedback)
}

type feedbackRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Problem   string `json:"problem" binding:"required"`
}

func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for feedback: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.useCase.SubmitFeedback(req.FirstName, req.LastName, req.Email, req.Problem); err != nil {
		h.log.Warnf("Failed to submit feedback from %s: %v", req.Email, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to submit feedback: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusAccepted, "Feedback submitted successfully", nil)
}
