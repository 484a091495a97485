package session

import (
	"strings"

	"github.com/SaiNageswarS/docqa-boot/backend"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.uber.org/zap"
)

// SetDraft updates the pending question buffer. It is allowed while an answer
// is outstanding.
func (c *Controller) SetDraft(text string) error {
	return c.do(func() error {
		c.draft = text
		c.report(DraftChanged)
		return nil
	})
}

// SubmitDraft submits the pending question buffer.
func (c *Controller) SubmitDraft() error {
	return c.do(func() error {
		return c.submit(c.draft)
	})
}

// SubmitQuestion appends the question to the transcript and dispatches one
// answer call scoped to the current document.
func (c *Controller) SubmitQuestion(text string) error {
	return c.do(func() error {
		return c.submit(text)
	})
}

func (c *Controller) submit(text string) error {
	question := strings.TrimSpace(text)
	if question == "" {
		return ErrEmptyQuestion
	}
	if c.answering {
		return ErrAnswerInFlight
	}

	c.transcript.AddUserTurn(question)
	c.draft = ""
	c.answering = true

	// document scope is captured now, later resets do not affect it
	req := backend.AnswerRequest{
		DocumentID: c.pipeline.documentID(),
		Question:   question,
		Language:   c.pipeline.language,
	}

	logger.Info("Dispatching answer request",
		zap.String("documentId", req.DocumentID),
		zap.String("lang", string(req.Language)))

	task := async.Go(func() (string, error) {
		return c.backend.Answer(c.ctx, req)
	})
	go func() {
		answer, err := async.Await(task)
		c.post(func() { c.resolveAnswer(answer, err) })
	}()

	c.report(QuestionAsked)
	return nil
}

func (c *Controller) resolveAnswer(answer string, err error) {
	c.answering = false

	if err != nil {
		logger.Error("Answer failed", zap.Error(err))
		c.transcript.AddBotTurn(AnswerErrorPrefix + backend.Detail(err, AnswerFailedMessage))
		c.report(AnswerFailed)
		return
	}

	c.transcript.AddBotTurn(answer)
	c.report(AnswerReceived)
}
