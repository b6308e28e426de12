package restservice

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orbital-network/auction/internal/core/application"
	"github.com/orbital-network/auction/internal/core/domain"
)

const defaultOrderbookLimit = 100

type handler struct {
	svc application.Service
}

func newHandler(svc application.Service) *handler {
	return &handler{svc}
}

func (h *handler) addOrder(c *gin.Context) {
	var req addOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err.Error())
		return
	}

	intent, err := h.svc.AddOrder(c.Request.Context(), caller(c), application.Order{
		User:        req.User,
		Amount:      req.Amount,
		OfferDomain: req.OfferDomain,
		AskDomain:   req.AskDomain,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toIntents([]domain.Intent{*intent})[0])
}

func (h *handler) postBond(c *gin.Context) {
	var req postBondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err.Error())
		return
	}

	bond, err := h.svc.PostBond(
		c.Request.Context(), caller(c), domain.Coin{Denom: req.Denom, Amount: req.Amount},
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBond(bond))
}

func (h *handler) withdrawBond(c *gin.Context) {
	refund, err := h.svc.WithdrawBond(c.Request.Context(), caller(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"refund": toCoin(*refund)})
}

func (h *handler) bid(c *gin.Context) {
	var req bidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err.Error())
		return
	}

	bid, err := h.svc.Bid(c.Request.Context(), caller(c), req.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBid(*bid))
}

func (h *handler) tick(c *gin.Context) {
	var req tickRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBadRequest(c, err.Error())
			return
		}
	}

	var now *time.Time
	if req.Now != nil {
		t := time.Unix(*req.Now, 0)
		now = &t
	}

	result, err := h.svc.Tick(c.Request.Context(), now)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTickResult(result))
}

func (h *handler) confirmSettlement(c *gin.Context) {
	settlement, err := h.svc.ConfirmSettlement(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSettlement(settlement))
}

func (h *handler) slashSettlement(c *gin.Context) {
	var req slashRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithBadRequest(c, err.Error())
			return
		}
	}

	settlement, seized, err := h.svc.SlashSettlement(
		c.Request.Context(), caller(c), c.Param("id"), req.Reason,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SlashResult{
		Settlement: *toSettlement(settlement),
		Seized:     toCoin(*seized),
	})
}

func (h *handler) confirmAccount(c *gin.Context) {
	var req confirmAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err.Error())
		return
	}

	registration, err := h.svc.ConfirmAccountRegistration(
		c.Request.Context(), caller(c), c.Param("domain"), req.Address,
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAccountRegistration(*registration))
}

func (h *handler) getInfo(c *gin.Context) {
	info, err := h.svc.GetInfo(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toInfo(info))
}

func (h *handler) getAuctionConfig(c *gin.Context) {
	cfg, err := h.svc.GetAuctionConfig(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuctionConfig(cfg))
}

func (h *handler) getActiveBatch(c *gin.Context) {
	info, err := h.svc.GetActiveBatch(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	if info == nil {
		c.JSON(http.StatusOK, ActiveBatch{Phase: domain.NoActiveBatch.String()})
		return
	}
	c.JSON(http.StatusOK, ActiveBatch{
		Batch: toBatch(info.Batch),
		Phase: info.Phase.String(),
		Total: info.Total,
	})
}

func (h *handler) getBatch(c *gin.Context) {
	batch, err := h.svc.GetBatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBatch(batch))
}

func (h *handler) getOrderbook(c *gin.Context) {
	from, err := strconv.ParseInt(c.DefaultQuery("from", "0"), 10, 64)
	if err != nil || from < 0 {
		abortWithBadRequest(c, "invalid from")
		return
	}
	limit, err := strconv.ParseInt(
		c.DefaultQuery("limit", strconv.Itoa(defaultOrderbookLimit)), 10, 64,
	)
	if err != nil || limit <= 0 {
		abortWithBadRequest(c, "invalid limit")
		return
	}

	orderbook, err := h.svc.GetOrderbook(c.Request.Context(), from, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, Orderbook{
		Intents: toIntents(orderbook.Intents),
		Total:   orderbook.Total,
	})
}

func (h *handler) getBond(c *gin.Context) {
	bond, err := h.svc.GetPostedBond(c.Request.Context(), c.Param("solver"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBond(bond))
}

func (h *handler) getSettlement(c *gin.Context) {
	settlement, err := h.svc.GetSettlement(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSettlement(settlement))
}

func (h *handler) getAccounts(c *gin.Context) {
	registrations, err := h.svc.GetAccountRegistrations(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	list := make([]AccountRegistration, 0, len(registrations))
	for _, r := range registrations {
		list = append(list, toAccountRegistration(r))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": list})
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
