package notifications

import (
	"fmt"
	"net/url"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/saruni-spec/pin-registration/domain"
)

// TwilioServiceImpl implements domain.DocumentSender over the WhatsApp
// messaging channel.
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioService creates a new Twilio document sender
func NewTwilioService(accountSID, authToken, fromNumber string) domain.DocumentSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
	}
}

// SendDocument implements domain.DocumentSender
func (t *TwilioServiceImpl) SendDocument(to, documentURL, caption string) error {
	// If credentials are not configured, log instead of sending
	if t.fromNumber == "" {
		fmt.Printf("[MOCK DOCUMENT] To: %s, URL: %s, Caption: %s\n", to, documentURL, caption)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + to)
	params.SetFrom("whatsapp:" + t.fromNumber)
	params.SetBody(caption)
	params.SetMediaUrl([]string{documentURL})

	_, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send document: %w", err)
	}

	return nil
}

// SendText implements domain.DocumentSender
func (t *TwilioServiceImpl) SendText(to, message string) error {
	if t.fromNumber == "" {
		fmt.Printf("[MOCK MESSAGE] To: %s, Message: %s\n", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + to)
	params.SetFrom("whatsapp:" + t.fromNumber)
	params.SetBody(message)

	_, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// DeepLink builds the wa.me redirect used by the "contact support" and
// "main menu" affordances. It is a client-side navigation target, not
// an API call.
func DeepLink(number, text string) string {
	link := "https://wa.me/" + number
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}
