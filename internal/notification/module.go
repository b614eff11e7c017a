// Package notification provides event handlers for sending notifications
// in response to domain events. The module subscribes to events and inverts
// the dependency: domain modules never need to know about email providers
// or templates.
package notification

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"lead_management_backend/internal/email"
	"lead_management_backend/internal/events"
	"lead_management_backend/platform/config"
	"lead_management_backend/platform/logger"
)

const (
	// maxConcurrentSends keeps a large assignment cycle from opening one
	// SMTP connection per assigned lead.
	maxConcurrentSends = 4

	sendTimeout = 30 * time.Second
)

// ContactReader resolves recipient details for a committed assignment.
type ContactReader interface {
	AssignmentContact(ctx context.Context, leadDocumentNumber, sellerDocumentNumber string) (AssignmentContact, error)
}

// Module handles all notification-related event subscriptions.
type Module struct {
	repo   ContactReader
	sender email.Sender
	cfg    config.NotificationConfig
	log    *logger.Logger
	sends  *errgroup.Group
}

// New creates a new notification module.
func New(pool *pgxpool.Pool, sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Module {
	sends := &errgroup.Group{}
	sends.SetLimit(maxConcurrentSends)

	return &Module{
		repo:   NewRepository(pool),
		sender: sender,
		cfg:    cfg,
		log:    log,
		sends:  sends,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// RegisterHandlers subscribes the module to the domain events it reacts to.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadAssigned{}.EventName(), m)

	m.log.Info("notification module registered event handlers")
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadAssigned:
		return m.handleLeadAssigned(ctx, e)
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

// Close drains in-flight email sends. Called during shutdown.
func (m *Module) Close() error {
	return m.sends.Wait()
}

func (m *Module) handleLeadAssigned(ctx context.Context, e events.LeadAssigned) error {
	// Delivery must outlive the publishing request: the cycle is already
	// committed when this event fires.
	sendCtx := context.WithoutCancel(ctx)
	m.sends.Go(func() error {
		m.deliverLeadAssigned(sendCtx, e)
		return nil
	})
	return nil
}

func (m *Module) deliverLeadAssigned(ctx context.Context, e events.LeadAssigned) {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	contact, err := m.repo.AssignmentContact(ctx, e.LeadDocumentNumber, e.SellerDocumentNumber)
	if err != nil {
		m.log.Warn("failed to resolve assignment contact",
			"leadDocumentNumber", e.LeadDocumentNumber,
			"sellerDocumentNumber", e.SellerDocumentNumber,
			"error", err)
		return
	}

	leadURL := m.cfg.GetAppBaseURL() + "/leads/" + e.LeadDocumentNumber
	sellerName := contact.SellerGivenName + " " + contact.SellerSurname
	leadName := contact.LeadGivenName + " " + contact.LeadSurname

	if err := m.sender.SendLeadAssignedEmail(ctx, contact.SellerEmail, sellerName, leadName, contact.BusinessLine, leadURL); err != nil {
		m.log.Warn("failed to send lead assigned email",
			"leadDocumentNumber", e.LeadDocumentNumber,
			"sellerDocumentNumber", e.SellerDocumentNumber,
			"error", err)
		return
	}

	m.log.Info("lead assigned email sent",
		"leadDocumentNumber", e.LeadDocumentNumber,
		"sellerDocumentNumber", e.SellerDocumentNumber)
}

// Compile-time check.
var _ events.Handler = (*Module)(nil)
