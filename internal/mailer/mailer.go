package mailer

import (
	"fmt"
	"strings"
)

// Message is the payload handed to a Transport. Success from a transport
// means accepted for delivery, never "read by the recipient".
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
	// Attachment, when set, is included as a PDF file.
	AttachmentName string
	Attachment     []byte
}

// Transport delivers messages. Implementations may fail transiently;
// callers retry via SendWithRetry.
type Transport interface {
	Send(msg Message) error
}

// RenderConfirmation builds the quote-received confirmation email. Pure
// function of its inputs so a delivery retry re-renders the same message.
func RenderConfirmation(contactName, numero string) Message {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #262622;">`)
	b.WriteString(`<h2 style="color: #383e42;">Votre demande de devis est bien reçue</h2>`)
	fmt.Fprintf(&b, `<p>Bonjour %s,</p>`, htmlEscape(contactName))
	fmt.Fprintf(&b, `<p>Nous avons bien reçu votre demande de devis. Votre référence est <strong>%s</strong>.</p>`, htmlEscape(numero))
	b.WriteString(`<p>Notre atelier étudie votre configuration et revient vers vous sous 48&nbsp;heures ouvrées avec un devis détaillé.</p>`)
	b.WriteString(`<p>Le devis restera valable 30 jours à compter de sa date d'émission.</p>`)
	b.WriteString(`<p style="color: #8a8a8a; font-size: 13px;">Ferro Design — Ferronnerie &amp; Métallerie<br>12 rue des Forges, 95310 Saint-Ouen-l'Aumône</p>`)
	b.WriteString(`</div>`)
	return Message{
		Subject: fmt.Sprintf("Votre demande de devis %s", numero),
		HTML:    b.String(),
	}
}

// RenderDevisEnvoye builds the email carrying the formal quote PDF.
func RenderDevisEnvoye(contactName, numero string, pdfDocument []byte) Message {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #262622;">`)
	fmt.Fprintf(&b, `<h2 style="color: #383e42;">Votre devis %s</h2>`, htmlEscape(numero))
	fmt.Fprintf(&b, `<p>Bonjour %s,</p>`, htmlEscape(contactName))
	b.WriteString(`<p>Veuillez trouver ci-joint votre devis au format PDF.</p>`)
	b.WriteString(`<p>Pour l'accepter, répondez simplement à ce message ou contactez notre atelier.</p>`)
	b.WriteString(`</div>`)
	return Message{
		Subject:        fmt.Sprintf("Votre devis %s", numero),
		HTML:           b.String(),
		AttachmentName: fmt.Sprintf("devis-%s.pdf", numero),
		Attachment:     pdfDocument,
	}
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
