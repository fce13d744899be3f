package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/webhook"

	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/spec"
)

//
// 🔔 Stripe Webhook : confirmation du paiement
//

// StripeWebhook passe la commande en Paid quand Stripe confirme le
// paiement. L'id de commande voyage dans la metadata du PaymentIntent.
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lecture corps échouée"})
		return
	}

	event, err := webhook.ConstructEvent(payload,
		c.GetHeader("Stripe-Signature"),
		os.Getenv("STRIPE_WEBHOOK_SECRET"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			break
		}
		log.Printf("✅ Paiement confirmé : %s (%.2f€)", pi.ID, float64(pi.Amount)/100)
		if err := markOrderPaid(c, pi.Metadata["order_id"]); err != nil {
			log.Printf("❌ Impossible de passer la commande en Paid: %v", err)
			// 500 pour que Stripe rejoue le webhook
			c.Status(http.StatusInternalServerError)
			return
		}

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err == nil {
			log.Printf("⚠️ Paiement échoué : %s", pi.ID)
		}
	}

	c.Status(http.StatusOK)
}

func markOrderPaid(c *gin.Context, rawOrderID string) error {
	orderID, err := strconv.ParseInt(rawOrderID, 10, 64)
	if err != nil {
		return err
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	orders := repository.For(uow, repository.Orders)

	order, err := orders.GetWithSpec(ctx, spec.OrderByID(orderID))
	if err != nil {
		return err
	}
	if order == nil || order.Status != models.StatusDelivered {
		// Déjà payée ou dans un autre état : le webhook peut rejouer
		return nil
	}

	order.Status = models.StatusPaid
	order.UpdatedAt = time.Now().UTC()
	orders.Update(order)
	return uow.Complete(ctx)
}
