package restservice

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orbital-network/auction/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrUnauthorized, http.StatusForbidden, "UNAUTHORIZED"},
	{domain.ErrAuctionPhase, http.StatusConflict, "AUCTION_PHASE"},
	{domain.ErrAuctionNotExpired, http.StatusConflict, "AUCTION_NOT_EXPIRED"},
	{domain.ErrBidTooLow, http.StatusBadRequest, "BID_TOO_LOW"},
	{domain.ErrBondTooLow, http.StatusBadRequest, "BOND_TOO_LOW"},
	{domain.ErrBondNotFound, http.StatusNotFound, "BOND_NOT_FOUND"},
	{domain.ErrBondLocked, http.StatusConflict, "BOND_LOCKED"},
	{domain.ErrInvalidDenom, http.StatusBadRequest, "INVALID_DENOM"},
	{domain.ErrInvalidBond, http.StatusBadRequest, "INVALID_BOND"},
	{domain.ErrIntentNotFound, http.StatusNotFound, "INTENT_NOT_FOUND"},
	{domain.ErrQueueIsEmpty, http.StatusNotFound, "QUEUE_IS_EMPTY"},
	{domain.ErrInvalidSplit, http.StatusBadRequest, "INVALID_SPLIT"},
	{domain.ErrInvalidIntent, http.StatusBadRequest, "INVALID_INTENT"},
	{domain.ErrOverflow, http.StatusBadRequest, "AMOUNT_OVERFLOW"},
	{domain.ErrBatchNotFound, http.StatusNotFound, "BATCH_NOT_FOUND"},
	{domain.ErrSettlementNotFound, http.StatusNotFound, "SETTLEMENT_NOT_FOUND"},
	{domain.ErrSettlementNotPending, http.StatusConflict, "SETTLEMENT_NOT_PENDING"},
	{domain.ErrUnknownDomain, http.StatusBadRequest, "UNKNOWN_DOMAIN"},
	{domain.ErrInvalidConfig, http.StatusBadRequest, "INVALID_CONFIG"},
}

// abortWithError maps known errors to a status and a stable code. Anything
// else is logged and reported as an internal error.
func abortWithError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			c.AbortWithStatusJSON(m.status, gin.H{
				"error":   m.err.Error(),
				"message": err.Error(),
				"code":    m.code,
			})
			return
		}
	}

	log.WithError(err).Errorf("%s %s failed", c.Request.Method, c.FullPath())
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":   "internal error",
		"message": "internal error",
		"code":    "INTERNAL_ERROR",
	})
}

func abortWithBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "invalid request",
		"message": message,
		"code":    "INVALID_REQUEST",
	})
}
