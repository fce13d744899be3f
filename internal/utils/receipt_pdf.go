package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"

	"lavoir_back_end/internal/models"
)

// GeneratePickupQR encode la référence de retrait en PNG base64, prête à
// mettre dans un <img src="...">.
func GeneratePickupQR(orderID int64) (string, error) {
	png, err := qrcode.Encode(fmt.Sprintf("lavoir:order:%d", orderID), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateReceiptPDF imprime le reçu d'une commande en PDF via Chrome
// headless. La commande doit porter son sous-arbre d'articles.
func GenerateReceiptPDF(order *models.Order, user *models.User) ([]byte, error) {
	qr, err := GeneratePickupQR(order.ID)
	if err != nil {
		return nil, err
	}
	html := receiptHTML(order, user, qr)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

func receiptHTML(order *models.Order, user *models.User, qrBase64 string) string {
	var rows strings.Builder
	for _, item := range order.Items {
		for _, p := range item.Products {
			name, price := "produit", 0.0
			if p.Product != nil {
				name, price = p.Product.Name, p.Product.Price
			}
			fmt.Fprintf(&rows, `<tr><td>%s</td><td>%d</td><td>%.2f€</td><td>%.2f€</td></tr>`,
				name, p.Quantity, price, price*float64(p.Quantity))
		}
		for _, sv := range item.Services {
			name, price := "service", 0.0
			if sv.TypeOfService != nil {
				name, price = sv.TypeOfService.Name, sv.TypeOfService.Price
			}
			fmt.Fprintf(&rows, `<tr><td>%s</td><td>1</td><td>%.2f€</td><td>%.2f€</td></tr>`,
				name, price, price)
		}
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Reçu</title></head>
<body style="font-family: Arial, sans-serif; padding: 30px;">
	<h1>Le Lavoir — Reçu</h1>
	<p>Commande n°%d — %s</p>
	<p>Client : %s</p>
	<table style="width: 100%%; border-collapse: collapse;" border="1" cellpadding="8">
		<thead>
			<tr style="background-color: #f0f0f0;">
				<th>Article</th><th>Quantité</th><th>Prix unitaire</th><th>Total</th>
			</tr>
		</thead>
		<tbody>%s</tbody>
	</table>
	<p>Livraison : %.2f€</p>
	<h3>Total : %.2f€</h3>
	<p>Présentez ce code au comptoir :</p>
	<img src="%s" alt="QR de retrait" width="180" height="180">
</body>
</html>`, order.ID, order.CreatedAt.Format("02/01/2006"), user.FullName(),
		rows.String(), order.DeliveryPrice, order.TotalPrice, qrBase64)
}
