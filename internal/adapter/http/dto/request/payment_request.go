package request

import "strings"

// PaymentWebhookRequest accepts our own payload shape as well as the
// provider's notification envelope. Nothing in it is trusted: the reference
// is only used to re-query the gateway.
type PaymentWebhookRequest struct {
	ExternalID        string `json:"external_id"`
	ExternalReference string `json:"external_reference"`
	Type              string `json:"type"`
	Data              struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ResolveExternalID prefers the query string reference the checkout was
// opened with, then the body fields.
func (r PaymentWebhookRequest) ResolveExternalID(queryRef string) string {
	for _, v := range []string{queryRef, r.ExternalID, r.ExternalReference} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
