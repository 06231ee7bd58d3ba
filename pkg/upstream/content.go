package upstream

import (
	"context"
	"net/url"
)

// Testimonials fetches published customer testimonials.
func (c *Client) Testimonials(ctx context.Context) ([]Testimonial, error) {
	var testimonials []Testimonial
	if err := c.getJSON(ctx, "/api/testimonials", nil, &testimonials); err != nil {
		return nil, err
	}
	return testimonials, nil
}

// FAQs fetches the published FAQ entries.
func (c *Client) FAQs(ctx context.Context) ([]FAQ, error) {
	var faqs []FAQ
	if err := c.getJSON(ctx, "/api/faqs", nil, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

// SubmitContact posts a contact form message. The upstream endpoint accepts
// form-encoded fields rather than JSON.
func (c *Client) SubmitContact(ctx context.Context, msg ContactMessage) (Ack, error) {
	form := url.Values{}
	form.Set("name", msg.Name)
	form.Set("email", msg.Email)
	form.Set("phone", msg.Phone)
	form.Set("subject", msg.Subject)
	form.Set("message", msg.Message)

	return c.postFormAck(ctx, "/api/contact", form)
}
