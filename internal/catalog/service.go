package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/karibu-retail/storefront-gateway/internal/validation"
	pkgerrors "github.com/karibu-retail/storefront-gateway/pkg/errors"
	"github.com/karibu-retail/storefront-gateway/pkg/logger"
	"github.com/karibu-retail/storefront-gateway/pkg/upstream"
)

const generationTTL = time.Hour

type catalogClient interface {
	SearchProducts(ctx context.Context, search string) ([]upstream.Product, error)
	Testimonials(ctx context.Context) ([]upstream.Testimonial, error)
	FAQs(ctx context.Context) ([]upstream.FAQ, error)
	SubmitContact(ctx context.Context, msg upstream.ContactMessage) (upstream.Ack, error)
}

type generationCounter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	SearchGenKey(sessionID string) string
}

// Service serves storefront content: product search, testimonials, FAQs, and
// the contact form.
type Service interface {
	Search(ctx context.Context, sessionID, query string) (SearchResult, error)
	Testimonials(ctx context.Context) ([]upstream.Testimonial, error)
	FAQs(ctx context.Context) ([]upstream.FAQ, error)
	Contact(ctx context.Context, input ContactInput) (string, error)
}

type service struct {
	upstream       catalogClient
	generations    generationCounter
	logg           *logger.Logger
	minQueryLength int
}

// NewService builds the catalog service. The generation counter is optional;
// without it search responses carry generation zero.
func NewService(client catalogClient, generations generationCounter, logg *logger.Logger, minQueryLength int) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("catalog client required")
	}
	if minQueryLength < 1 {
		minQueryLength = 1
	}
	return &service{
		upstream:       client,
		generations:    generations,
		logg:           logg,
		minQueryLength: minQueryLength,
	}, nil
}

// SearchResult carries the matched products plus a per-session generation
// token. Each search bumps the session's generation, so a caller holding an
// earlier token knows its response was superseded and discards it.
type SearchResult struct {
	Generation int64              `json:"generation"`
	Query      string             `json:"query"`
	Products   []upstream.Product `json:"products"`
}

// Search runs a product search. Queries shorter than the minimum length are
// treated as empty and return the full catalog.
func (s *service) Search(ctx context.Context, sessionID, query string) (SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < s.minQueryLength {
		trimmed = ""
	}

	var generation int64
	if s.generations != nil && sessionID != "" {
		gen, err := s.generations.IncrWithTTL(ctx, s.generations.SearchGenKey(sessionID), generationTTL)
		if err != nil {
			// A broken counter degrades ordering, not search itself.
			if s.logg != nil {
				s.logg.Warn(ctx, "search generation counter unavailable")
			}
		} else {
			generation = gen
		}
	}

	products, err := s.upstream.SearchProducts(ctx, trimmed)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Generation: generation, Query: trimmed, Products: products}, nil
}

func (s *service) Testimonials(ctx context.Context) ([]upstream.Testimonial, error) {
	return s.upstream.Testimonials(ctx)
}

func (s *service) FAQs(ctx context.Context) ([]upstream.FAQ, error) {
	return s.upstream.FAQs(ctx)
}

// ContactInput is the shopper-facing contact form.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Contact validates the form locally and forwards it upstream. The upstream
// confirmation message is returned verbatim.
func (s *service) Contact(ctx context.Context, input ContactInput) (string, error) {
	violations := validation.Collect(
		validation.Name(input.Name),
		validation.Email(input.Email),
		validation.Phone(input.Phone),
		validation.Message(input.Message),
	)
	if strings.TrimSpace(input.Subject) != "" {
		if fe := validation.Subject(input.Subject); fe != nil {
			violations = append(violations, *fe)
		}
	}
	if err := violations.ErrOrNil(); err != nil {
		return "", err
	}

	ack, err := s.upstream.SubmitContact(ctx, upstream.ContactMessage{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	})
	if err != nil {
		return "", err
	}
	if !ack.OK() {
		return "", pkgerrors.New(pkgerrors.CodeUpstreamRejected, ack.Message)
	}
	return ack.Message, nil
}
