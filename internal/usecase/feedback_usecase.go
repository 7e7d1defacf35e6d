package usecase

import (
	"fmt"
	"strings"

	"github.com/Canapean/Market/internal/domain"
	"github.com/Canapean/Market/internal/notification"

	"github.com/sirupsen/logrus"
)

type FeedbackUseCase interface {
	SubmitFeedback(firstName, lastName, email, problem string) error
}

type feedbackUseCase struct {
	gateway notification.Gateway
	from    string
	to      []string
	log     *logrus.Logger
}

func NewFeedbackUseCase(gateway notification.Gateway, from string, to []string, logger *logrus.Logger) FeedbackUseCase {
	return &feedbackUseCase{
		gateway: gateway,
		from:    from,
		to:      to,
		log:     logger,
	}
}

// SubmitFeedback dispatches the support email and returns as soon as the
// message is handed off. Delivery failures are logged, never surfaced: the
// gateway is best-effort by contract.
func (uc *feedbackUseCase) SubmitFeedback(firstName, lastName, email, problem string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	problem = strings.TrimSpace(problem)

	if firstName == "" {
		uc.log.Warn("Use Case: Feedback rejected - empty first name")
		return fmt.Errorf("%w: first name cannot be empty", domain.ErrValidation)
	}
	if email == "" || !strings.Contains(email, "@") {
		uc.log.Warnf("Use Case: Feedback rejected - invalid email: %s", email)
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if problem == "" {
		uc.log.Warn("Use Case: Feedback rejected - empty message")
		return fmt.Errorf("%w: message cannot be empty", domain.ErrValidation)
	}

	subject := fmt.Sprintf("Support request from %s", firstName)
	body := fmt.Sprintf("%s %s sent a support request.\n\nMessage: %s\n\nReply to: %s",
		firstName, lastName, problem, email)

	go func() {
		if err := uc.gateway.Send(subject, body, uc.from, uc.to); err != nil {
			uc.log.Errorf("Use Case: Failed to deliver feedback email from %s: %v", email, err)
			return
		}
		uc.log.Infof("Use Case: Feedback email delivered for %s", email)
	}()

	return nil
}
