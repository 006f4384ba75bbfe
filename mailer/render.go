package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/orientalessence/essence-api/models"
)

// Message is one outbound email, fully rendered.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// notesPlaceholder is shown when the customer left no notes.
const notesPlaceholder = "—"

const customerReceiptTemplate = `<h2>Thank you for your order, {{.CustomerName}}!</h2>
<p><strong>Order number:</strong> {{.OrderNumber}}</p>
<p><strong>Address:</strong> {{.Address}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<h3>Ordered items:</h3>
{{range .Items}}<div style="margin-bottom:10px;">
  {{if .ImageURL}}<img src="{{.ImageURL}}" width="50" style="vertical-align:middle;margin-right:10px;" />{{end}}
  <span>{{.Name}} x{{.Quantity}} - {{.Subtotal}}</span>
</div>
{{end}}<p><strong>Shipping:</strong> {{.Shipping}}</p>
<p><strong>Total:</strong> {{.Total}}</p>
<p><strong>Notes:</strong> {{.Notes}}</p>
<br>
<p>The Oriental Essence team</p>`

const merchantAlertTemplate = `<h2>New order received!</h2>
<p><strong>Customer:</strong> {{.CustomerName}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Address:</strong> {{.Address}}</p>
<p><strong>Order number:</strong> {{.OrderNumber}}</p>
<h3>Ordered items:</h3>
{{range .Items}}<div style="margin-bottom:10px;">
  {{if .ImageURL}}<img src="{{.ImageURL}}" width="50" style="vertical-align:middle;margin-right:10px;" />{{end}}
  <span>{{.Name}} x{{.Quantity}} - {{.Subtotal}}</span>
</div>
{{end}}<p><strong>Shipping:</strong> {{.Shipping}}</p>
<p><strong>Total:</strong> {{.Total}}</p>
<p><strong>Customer notes:</strong> {{.Notes}}</p>
<hr />
<p>Sent automatically by the Oriental Essence storefront.</p>`

const contactMessageTemplate = `<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Message:</strong><br>{{.Body}}</p>`

var (
	customerReceiptTmpl = template.Must(template.New("customerReceipt").Parse(customerReceiptTemplate))
	merchantAlertTmpl   = template.Must(template.New("merchantAlert").Parse(merchantAlertTemplate))
	contactMessageTmpl  = template.Must(template.New("contactMessage").Parse(contactMessageTemplate))
)

type itemView struct {
	Name     string
	Quantity int
	Subtotal string
	ImageURL string
}

type orderView struct {
	OrderNumber  string
	CustomerName string
	Email        string
	Phone        string
	Address      string
	Notes        string
	Items        []itemView
	Shipping     string
	Total        string
}

func newOrderView(draft models.OrderDraft) orderView {
	items := make([]itemView, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, itemView{
			Name:     item.Name,
			Quantity: item.Quantity,
			Subtotal: fmt.Sprintf("%.2f", item.UnitPrice*float64(item.Quantity)),
			ImageURL: item.ImageURL,
		})
	}

	notes := draft.Customer.Notes
	if notes == "" {
		notes = notesPlaceholder
	}

	return orderView{
		OrderNumber:  draft.OrderNumber,
		CustomerName: draft.Customer.Name,
		Email:        draft.Customer.Email,
		Phone:        draft.Customer.Phone,
		Address:      draft.Customer.Address,
		Notes:        notes,
		Items:        items,
		Shipping:     fmt.Sprintf("%.2f", draft.ShippingCost),
		Total:        fmt.Sprintf("%.2f", draft.GrandTotal),
	}
}

func render(tmpl *template.Template, view orderView) (string, error) {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, view); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

// BuildCustomerReceipt renders the receipt sent to the customer.
func BuildCustomerReceipt(draft models.OrderDraft) (Message, error) {
	body, err := render(customerReceiptTmpl, newOrderView(draft))
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:       draft.Customer.Email,
		Subject:  fmt.Sprintf("Your order %s", draft.OrderNumber),
		HTMLBody: body,
	}, nil
}

// BuildMerchantAlert renders the new-order alert sent to the store owner.
// Losing this message means the order is never fulfilled, so the checkout
// flow always attempts it even when the customer receipt failed.
func BuildMerchantAlert(draft models.OrderDraft, merchantEmail string) (Message, error) {
	body, err := render(merchantAlertTmpl, newOrderView(draft))
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:       merchantEmail,
		Subject:  fmt.Sprintf("New order %s from %s", draft.OrderNumber, draft.Customer.Name),
		HTMLBody: body,
	}, nil
}

// BuildContactMessage renders a contact-form submission addressed to the
// merchant.
func BuildContactMessage(name, email, body, merchantEmail string) (Message, error) {
	var rendered bytes.Buffer
	err := contactMessageTmpl.Execute(&rendered, struct {
		Name  string
		Email string
		Body  string
	}{Name: name, Email: email, Body: body})
	if err != nil {
		return Message{}, fmt.Errorf("template execution error: %w", err)
	}
	return Message{
		To:       merchantEmail,
		Subject:  fmt.Sprintf("Message from %s", name),
		HTMLBody: rendered.String(),
	}, nil
}
