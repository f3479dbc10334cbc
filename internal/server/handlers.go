package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hanseo-dev/jasoseo-ai/internal/coverletter"
	"github.com/hanseo-dev/jasoseo-ai/internal/payment"
	"github.com/hanseo-dev/jasoseo-ai/internal/session"
)

const sessionCookie = "jasoseo_session"

// User-facing messages. Kept identical to what the product shows; internal
// error detail goes to the log, never to the client.
const (
	msgMissingInput   = "회사명과 직무는 필수입니다."
	msgGenerateFailed = "자소서 생성 중 오류가 발생했습니다."
	msgUnknownPlan    = "지원하지 않는 요금제입니다."
	msgPrepareFailed  = "결제 준비 중 오류가 발생했습니다."
	msgNoResult       = "생성된 자소서가 없습니다."
)

// session returns the live session for the request, creating one (and
// setting the cookie) when the client has none or it expired.
func (s *Server) session(c *gin.Context) session.Session {
	if id, err := c.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.Get(id); ok {
			return sess
		}
	}

	sess := s.sessions.New()
	c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
	return sess
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req coverletter.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingInput})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingInput})
		return
	}

	sess := s.session(c)

	result, err := s.writer.Write(c.Request.Context(), req)
	if err != nil {
		var extractionErr *coverletter.ExtractionError
		if errors.As(err, &extractionErr) {
			s.logger.Warn("could not extract sections from model output", zap.Error(err))
		} else {
			s.logger.Error("generation call failed", zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgGenerateFailed})
		return
	}

	sess.Request = req
	sess.Result = result
	s.sessions.Put(sess)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    coverletter.Gate(result, sess.Paid),
	})
}

// handleResult returns the session's stored letter, gated by its current
// payment state. A confirmed payment unlocks the letter the visitor already
// generated; no new generation call is made.
func (s *Server) handleResult(c *gin.Context) {
	sess := s.session(c)
	if sess.Result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNoResult})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    coverletter.Gate(sess.Result, sess.Paid),
		"request": sess.Request,
	})
}

type prepareRequest struct {
	Plan          string `json:"plan"`
	CustomerEmail string `json:"customerEmail"`
}

func (s *Server) handlePaymentPrepare(c *gin.Context) {
	var req prepareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUnknownPlan})
		return
	}

	plan, err := payment.ParsePlan(req.Plan)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUnknownPlan})
		return
	}

	order, err := payment.NewOrder(plan)
	if err != nil {
		s.logger.Error("building order failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgPrepareFailed})
		return
	}
	order.CustomerEmail = req.CustomerEmail

	s.logger.Info("payment prepared",
		zap.String("order_id", order.OrderID),
		zap.String("plan", string(plan)),
		zap.Int64("amount", order.Amount),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"clientKey":     s.cfg.ClientKey,
		"orderId":       order.OrderID,
		"amount":        order.Amount,
		"orderName":     order.OrderName,
		"customerName":  order.CustomerName,
		"customerEmail": order.CustomerEmail,
	})
}

type confirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

func (s *Server) handlePaymentConfirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": payment.MsgMalformedCallback})
		return
	}

	s.finishConfirmation(c, payment.CallbackParams{
		PaymentKey: req.PaymentKey,
		OrderID:    req.OrderID,
		Amount:     strconv.FormatInt(req.Amount, 10),
	})
}

// handlePaymentSuccess is the provider's success redirect target. The three
// query parameters are required; anything missing fails the flow before the
// confirmation endpoint is contacted.
func (s *Server) handlePaymentSuccess(c *gin.Context) {
	s.finishConfirmation(c, payment.CallbackParams{
		PaymentKey: c.Query("paymentKey"),
		OrderID:    c.Query("orderId"),
		Amount:     c.Query("amount"),
	})
}

func (s *Server) finishConfirmation(c *gin.Context, params payment.CallbackParams) {
	flow := payment.NewFlow(s.confirmer, s.logger)
	outcome := flow.Run(c.Request.Context(), params)

	if outcome.Kind != payment.OutcomeConfirmed {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   outcome.Message,
			"code":    outcome.Code,
		})
		return
	}

	sess := s.session(c)
	if !s.sessions.MarkPaid(sess.ID) {
		// session raced its own expiry; the payment itself still went through
		s.logger.Warn("confirmed payment for a vanished session",
			zap.String("order_id", params.OrderID),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": outcome.Payment,
	})
}

// handlePaymentFail is the provider's cancellation redirect target. Both
// parameters are optional.
func (s *Server) handlePaymentFail(c *gin.Context) {
	flow := payment.NewFlow(s.confirmer, s.logger)
	outcome := flow.Cancel(c.Query("code"), c.Query("message"))

	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"error":   outcome.Message,
		"code":    outcome.Code,
	})
}
