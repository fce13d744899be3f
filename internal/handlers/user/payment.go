package user

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"

	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/services"
)

// CreatePaymentIntent ouvre le paiement Stripe d'une commande livrée. Le
// montant vient de la commande, jamais du client ; l'id de commande part en
// metadata pour que le webhook retrouve la ligne à passer en Paid.
func CreatePaymentIntent(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	order, err := services.NewOrderService(database.DB).GetUserOrder(c.Request.Context(), orderID, c.GetString("user_id"))
	if err != nil {
		failOrder(c, err)
		return
	}
	if order.Status != models.StatusDelivered {
		c.JSON(http.StatusConflict, gin.H{"error": "Seule une commande livrée peut être payée"})
		return
	}
	if order.TotalPrice <= 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Rien à payer pour cette commande"})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(services.Cents(order.TotalPrice)),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("order_id", fmt.Sprintf("%d", order.ID))

	intent, err := paymentintent.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
}
