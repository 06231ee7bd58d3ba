package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/upstream"
)

type fakeCatalogClient struct {
	searches     []string
	products     []upstream.Product
	testimonials []upstream.Testimonial
	faqs         []upstream.FAQ
	contacts     []upstream.ContactMessage
	contactAck   upstream.Ack
	err          error
}

func (f *fakeCatalogClient) SearchProducts(_ context.Context, search string) ([]upstream.Product, error) {
	f.searches = append(f.searches, search)
	return f.products, f.err
}

func (f *fakeCatalogClient) Testimonials(_ context.Context) ([]upstream.Testimonial, error) {
	return f.testimonials, f.err
}

func (f *fakeCatalogClient) FAQs(_ context.Context) ([]upstream.FAQ, error) {
	return f.faqs, f.err
}

func (f *fakeCatalogClient) SubmitContact(_ context.Context, msg upstream.ContactMessage) (upstream.Ack, error) {
	f.contacts = append(f.contacts, msg)
	return f.contactAck, f.err
}

type fakeCounter struct {
	gen int64
	err error
}

func (f *fakeCounter) IncrWithTTL(_ context.Context, _ string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.gen++
	return f.gen, nil
}

func (f *fakeCounter) SearchGenKey(sessionID string) string {
	return "sg:searchgen:" + sessionID
}

func TestSearchBumpsGenerationPerSession(t *testing.T) {
	client := &fakeCatalogClient{products: []upstream.Product{{Name: "Honey"}}}
	svc, err := NewService(client, &fakeCounter{}, nil, 2)
	require.NoError(t, err)

	first, err := svc.Search(context.Background(), "sess-1", "honey")
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), "sess-1", "honey jar")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Generation)
	assert.Equal(t, int64(2), second.Generation)
	assert.Greater(t, second.Generation, first.Generation)
}

func TestSearchShortQueryTreatedAsEmpty(t *testing.T) {
	client := &fakeCatalogClient{}
	svc, err := NewService(client, &fakeCounter{}, nil, 2)
	require.NoError(t, err)

	_, err = svc.Search(context.Background(), "sess-1", " h ")
	require.NoError(t, err)
	require.Len(t, client.searches, 1)
	assert.Equal(t, "", client.searches[0], "sub-minimum query falls back to the full catalog")
}

func TestSearchSurvivesBrokenCounter(t *testing.T) {
	client := &fakeCatalogClient{products: []upstream.Product{{Name: "Honey"}}}
	svc, err := NewService(client, &fakeCounter{err: errors.New("redis down")}, nil, 2)
	require.NoError(t, err)

	result, err := svc.Search(context.Background(), "sess-1", "honey")
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.Generation)
	assert.Len(t, result.Products, 1)
}

func TestContactValidatesBeforeSubmitting(t *testing.T) {
	client := &fakeCatalogClient{}
	svc, err := NewService(client, nil, nil, 2)
	require.NoError(t, err)

	_, err = svc.Contact(context.Background(), ContactInput{
		Name:    "J",
		Email:   "not-an-email",
		Message: "short",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	assert.Empty(t, client.contacts)
}

func TestContactForwardsAndReturnsMessage(t *testing.T) {
	client := &fakeCatalogClient{contactAck: upstream.Ack{Status: "success", Message: "Message sent successfully!"}}
	svc, err := NewService(client, nil, nil, 2)
	require.NoError(t, err)

	msg, err := svc.Contact(context.Background(), ContactInput{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Do you deliver upcountry?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Message sent successfully!", msg)
	require.Len(t, client.contacts, 1)
	assert.Equal(t, "Jane Doe", client.contacts[0].Name)
}

func TestContactUpstreamErrorAckRejected(t *testing.T) {
	client := &fakeCatalogClient{contactAck: upstream.Ack{Status: "error", Message: "There was an error sending your message. Please try again later."}}
	svc, err := NewService(client, nil, nil, 2)
	require.NoError(t, err)

	_, err = svc.Contact(context.Background(), ContactInput{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Do you deliver upcountry?",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUpstreamRejected, appErr.Code())
}
