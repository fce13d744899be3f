package utils

import (
	"fmt"
	"log"

	"lavoir_back_end/internal/models"
)

// SendOrderStatusEmail prévient le client qu'une commande a changé de statut.
func SendOrderStatusEmail(order *models.Order, userEmail string) error {
	subject := statusEmailSubject(order.Status)
	html := statusEmailHTML(order)

	if err := SendEmail(userEmail, subject, html, nil); err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
		return err
	}

	log.Printf("📧 Email de statut envoyé: %s → %s", order.Status, userEmail)
	return nil
}

func statusEmailSubject(status models.OrderStatus) string {
	switch status {
	case models.StatusAccepted:
		return "✅ Commande acceptée - Le Lavoir"
	case models.StatusProcessing:
		return "🧺 Votre linge est en traitement - Le Lavoir"
	case models.StatusReadyForPickup:
		return "👕 Votre linge est prêt - Le Lavoir"
	case models.StatusOutForDelivery:
		return "🚚 Votre linge est en route - Le Lavoir"
	case models.StatusDelivered:
		return "🎉 Votre linge a été livré - Le Lavoir"
	case models.StatusPaid:
		return "💰 Paiement reçu - Le Lavoir"
	case models.StatusCancelled:
		return "❌ Commande annulée - Le Lavoir"
	default:
		return "📋 Mise à jour de votre commande - Le Lavoir"
	}
}

func statusMessage(status models.OrderStatus) string {
	switch status {
	case models.StatusAccepted:
		return "Votre commande a été acceptée. Nous passerons récupérer votre linge."
	case models.StatusProcessing:
		return "Votre linge est entre les mains de notre équipe."
	case models.StatusReadyForPickup:
		return "Votre linge est prêt ! Vous pouvez venir le récupérer en boutique."
	case models.StatusOutForDelivery:
		return "Bonne nouvelle ! Votre linge est en route vers vous."
	case models.StatusDelivered:
		return "Votre linge a été livré. Nous espérons que vous êtes satisfait !"
	case models.StatusPaid:
		return "Votre paiement a bien été reçu. Merci de votre confiance."
	case models.StatusCancelled:
		return "Votre commande a été annulée. Si vous avez des questions, n'hésitez pas à nous contacter."
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}

func statusColor(status models.OrderStatus) string {
	switch status {
	case models.StatusDelivered, models.StatusPaid:
		return "#10b981" // Green
	case models.StatusOutForDelivery:
		return "#3b82f6" // Blue
	case models.StatusReadyForPickup:
		return "#8b5cf6" // Purple
	case models.StatusCancelled:
		return "#ef4444" // Red
	default:
		return "#6b7280" // Gray
	}
}

func statusEmailHTML(order *models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Mise à jour de commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: %s;">Commande n°%d — %s</h2>
		<p>%s</p>
		<table style="width: 100%%; margin: 20px 0;">
			<tr>
				<td style="padding: 6px 0; color: #555;">Total</td>
				<td style="padding: 6px 0; text-align: right; font-weight: bold;">%.2f€</td>
			</tr>
			<tr>
				<td style="padding: 6px 0; color: #555;">Livraison</td>
				<td style="padding: 6px 0; text-align: right;">%.2f€</td>
			</tr>
		</table>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Le Lavoir</strong>
		</p>
	</div>
</body>
</html>`, statusColor(order.Status), order.ID, order.Status, statusMessage(order.Status),
		order.TotalPrice, order.DeliveryPrice)
}
