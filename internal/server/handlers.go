package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khalari/khalari/internal/engine"
	"github.com/khalari/khalari/internal/payment"
	"github.com/khalari/khalari/internal/quiz"
	"github.com/khalari/khalari/internal/roadmap"
	"github.com/khalari/khalari/internal/store"
)

// maxWebhookBody caps the webhook payload read into memory.
const maxWebhookBody = 1 << 20

func (s *Server) handleProfile(c *gin.Context) {
	success(c, newProfileView(s.svc.Learner()))
}

func (s *Server) handleRoadmap(c *gin.Context) {
	snap := s.svc.Snapshot()
	if snap.Roadmap == nil {
		failErr(c, engine.ErrNoRoadmap)
		return
	}
	success(c, newRoadmapView(snap))
}

func (s *Server) handleActivity(c *gin.Context) {
	days := 7
	if d := c.Query("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 || n > 366 {
			fail(c, http.StatusBadRequest, "days must be between 1 and 366")
			return
		}
		days = n
	}
	success(c, newActivityViews(s.svc.LastDays(days)))
}

func moduleIndex(c *gin.Context) (int, error) {
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w: %q", roadmap.ErrModuleIndex, c.Param("index"))
	}
	return i, nil
}

type bypassRequest struct {
	Won *bool `json:"won" binding:"required"`
}

func (s *Server) handleBypass(c *gin.Context) {
	i, err := moduleIndex(c)
	if err != nil {
		failErr(c, err)
		return
	}
	var req bypassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "body must be {\"won\": true|false}")
		return
	}
	out, err := s.svc.Bypass(c.Request.Context(), i, *req.Won)
	if err != nil {
		failErr(c, err)
		return
	}
	success(c, newOutcomeView(out, s.svc.Learner()))
}

func (s *Server) handleQuizStart(c *gin.Context) {
	i, err := moduleIndex(c)
	if err != nil {
		failErr(c, err)
		return
	}
	m, _, err := s.svc.Module(i)
	if err != nil {
		failErr(c, err)
		return
	}
	if err := s.svc.CheckQuiz(i); err != nil {
		failErr(c, err)
		return
	}
	if s.quizzes == nil {
		fail(c, http.StatusServiceUnavailable, "quiz generation is not configured")
		return
	}
	qs, err := s.quizzes.GenerateQuiz(c.Request.Context(), m)
	if err != nil {
		s.logger.Warn("quiz generation failed", zap.Int("module", i), zap.Error(err))
		failErr(c, err)
		return
	}

	id := s.newQuiz(i, qs)
	v := quizView{
		SessionID:          id,
		Module:             i,
		SecondsPerQuestion: int(quiz.QuestionTime.Seconds()),
		Questions:          make([]questionView, len(qs)),
	}
	for k, q := range qs {
		v.Questions[k] = questionView{Question: q.Prompt, Options: q.Options}
	}
	success(c, v)
}

type quizSubmitRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	// Answers holds one option index per question; -1 or a missing entry
	// leaves the question unanswered.
	Answers []int `json:"answers"`
}

func (s *Server) handleQuizSubmit(c *gin.Context) {
	i, err := moduleIndex(c)
	if err != nil {
		failErr(c, err)
		return
	}
	var req quizSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "body must carry sessionId and answers")
		return
	}
	p, ok := s.takeQuiz(req.SessionID, i)
	if !ok {
		fail(c, http.StatusNotFound, "unknown quiz session")
		return
	}

	res := quiz.Grade(p.questions, req.Answers)
	out, err := s.svc.CompleteByQuiz(c.Request.Context(), i, res)
	if err != nil {
		failErr(c, err)
		return
	}
	success(c, gradedView{
		Correct: res.Correct,
		Total:   res.Total,
		Score:   res.Score,
		Passed:  res.Passed,
		Review:  newReview(p.questions, res),
		Outcome: newOutcomeView(out, s.svc.Learner()),
	})
}

func (s *Server) handleWebhook(c *gin.Context) {
	if s.cfg.WebhookSecret == "" {
		fail(c, http.StatusServiceUnavailable, "webhook secret is not configured")
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		fail(c, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := payment.VerifySignature([]byte(s.cfg.WebhookSecret), body, c.GetHeader(payment.SignatureHeader)); err != nil {
		s.logger.Warn("webhook signature rejected", zap.Error(err))
		failErr(c, err)
		return
	}

	captured, err := payment.ParseWebhook(body)
	if errors.Is(err, payment.ErrIgnoredEvent) {
		success(c, gin.H{"credited": false, "ignored": true})
		return
	}
	if err != nil {
		s.logger.Warn("webhook rejected", zap.Error(err))
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	credited, err := s.svc.Purchase(c.Request.Context(), store.PurchaseData{
		PaymentID:   captured.PaymentID,
		PackID:      captured.Pack.ID,
		Diamonds:    captured.Pack.Total(),
		AmountPaise: captured.AmountPaise,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	success(c, gin.H{
		"credited": credited,
		"diamonds": s.svc.Learner().Balance,
	})
}
