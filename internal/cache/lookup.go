package cache

import (
	"context"
	"time"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
)

type CardFinder interface {
	FindByCardNumber(ctx context.Context, cardNumber string) (*models.Card, error)
}

type OrganizationFinder interface {
	FindByID(ctx context.Context, id string) (*models.Organization, error)
}

// Lookup is a read-through cache for card and organization reads made before the row locks.
// Its results are snapshots and never decide an outcome on their own.
type Lookup struct {
	cache           Cache
	cards           CardFinder
	organizations   OrganizationFinder
	cardTTL         time.Duration
	organizationTTL time.Duration
}

func NewLookup(cache Cache, cards CardFinder, organizations OrganizationFinder, cardTTL, organizationTTL time.Duration) *Lookup {
	return &Lookup{
		cache:           cache,
		cards:           cards,
		organizations:   organizations,
		cardTTL:         cardTTL,
		organizationTTL: organizationTTL,
	}
}

func CardKey(cardNumber string) string {
	return "card:number:" + cardNumber
}

func OrganizationKey(id string) string {
	return "organization:" + id
}

// GetCard returns nil, nil for an unknown card number. Misses are not cached.
func (l *Lookup) GetCard(ctx context.Context, cardNumber string) (*models.Card, error) {
	var cached models.Card
	if l.cache.Get(ctx, CardKey(cardNumber), &cached) {
		return &cached, nil
	}

	card, err := l.cards.FindByCardNumber(ctx, cardNumber)
	if err != nil || card == nil {
		return nil, err
	}

	l.cache.Set(ctx, CardKey(cardNumber), card, l.cardTTL)
	return card, nil
}

// GetOrganization returns nil, nil for an unknown organization. Misses are not cached.
func (l *Lookup) GetOrganization(ctx context.Context, id string) (*models.Organization, error) {
	var cached models.Organization
	if l.cache.Get(ctx, OrganizationKey(id), &cached) {
		return &cached, nil
	}

	org, err := l.organizations.FindByID(ctx, id)
	if err != nil || org == nil {
		return nil, err
	}

	l.cache.Set(ctx, OrganizationKey(id), org, l.organizationTTL)
	return org, nil
}

// PutCard overwrites the cached card entry.
func (l *Lookup) PutCard(ctx context.Context, card *models.Card) {
	if card == nil {
		return
	}
	l.cache.Set(ctx, CardKey(card.CardNumber), card, l.cardTTL)
}

// PutOrganization overwrites the cached organization entry.
func (l *Lookup) PutOrganization(ctx context.Context, org *models.Organization) {
	if org == nil {
		return
	}
	l.cache.Set(ctx, OrganizationKey(org.ID), org, l.organizationTTL)
}
