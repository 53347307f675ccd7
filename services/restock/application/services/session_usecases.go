package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	pkgcache "github.com/ghuser/restock/pkg/cache"
	"github.com/ghuser/restock/pkg/logger"
	"github.com/ghuser/restock/pkg/telemetry"
	"github.com/ghuser/restock/services/restock/application/email"
	"github.com/ghuser/restock/services/restock/domain"
	"github.com/ghuser/restock/services/restock/domain/models"
	"github.com/ghuser/restock/services/restock/domain/repositories"
	domainsvcs "github.com/ghuser/restock/services/restock/domain/services"
)

// SessionCache is the read-through cache for sessions. *cache.SessionCache
// satisfies it.
type SessionCache interface {
	Get(ctx context.Context, userID, sessionID string) (*pkgcache.CachedSession, error)
	Set(ctx context.Context, s *pkgcache.CachedSession) error
	Delete(ctx context.Context, userID, sessionID string) error
}

// SessionUseCaseDeps lists every collaborator of SessionUseCases. Cache,
// Metrics and Dispatcher are optional; a nil Dispatcher becomes a
// SyncDispatcher over Mailer.
type SessionUseCaseDeps struct {
	Sessions   repositories.SessionRepository
	Products   repositories.ProductRepository
	Suppliers  repositories.SupplierRepository
	Domain     *domainsvcs.SessionService
	Cache      SessionCache
	Renderer   email.Renderer
	Mailer     email.Mailer
	Dispatcher email.Dispatcher
	Metrics    *telemetry.RestockMetrics
	Logger     logger.Logger
	Sender     domainsvcs.Sender
	NewID      func() string
}

// SessionUseCases loads aggregates, runs the domain rules and persists the
// result. Every method is scoped by the authenticated user's id.
type SessionUseCases struct {
	sessions   repositories.SessionRepository
	products   repositories.ProductRepository
	suppliers  repositories.SupplierRepository
	domain     *domainsvcs.SessionService
	cache      SessionCache
	renderer   email.Renderer
	dispatcher email.Dispatcher
	metrics    *telemetry.RestockMetrics
	log        logger.Logger
	sender     domainsvcs.Sender
	newID      func() string
}

func NewSessionUseCases(d SessionUseCaseDeps) *SessionUseCases {
	uc := &SessionUseCases{
		sessions:   d.Sessions,
		products:   d.Products,
		suppliers:  d.Suppliers,
		domain:     d.Domain,
		cache:      d.Cache,
		renderer:   d.Renderer,
		dispatcher: d.Dispatcher,
		metrics:    d.Metrics,
		log:        d.Logger,
		sender:     d.Sender,
		newID:      d.NewID,
	}
	if uc.newID == nil {
		uc.newID = uuid.NewString
	}
	if uc.domain == nil {
		uc.domain = domainsvcs.NewSessionService(uc.newID, nil)
	}
	if uc.renderer == nil {
		uc.renderer = email.NewTemplateRenderer()
	}
	if uc.dispatcher == nil {
		mailer := d.Mailer
		if mailer == nil {
			mailer = email.NewLogMailer(d.Logger)
		}
		uc.dispatcher = email.NewSyncDispatcher(mailer, uc.completeByID)
	}
	return uc
}

// EmailsResult is a session together with its drafts and rendered emails.
type EmailsResult struct {
	Session models.RestockSession
	Drafts  []models.EmailDraft
	Emails  []email.Rendered
}

// SendResult reports a dispatched batch.
type SendResult struct {
	Session  models.RestockSession
	Dispatch email.DispatchResult
}

// AddProductInput adds an existing catalog product. An empty SupplierID falls
// back to the product's default supplier; a nil Quantity to its default quantity.
type AddProductInput struct {
	ProductID  string
	SupplierID string
	Quantity   *int
	Notes      string
}

func (uc *SessionUseCases) CreateSession(ctx context.Context, userID, name string) (models.RestockSession, error) {
	s, err := uc.domain.CreateSession(uc.newID(), userID, name)
	if err != nil {
		return models.RestockSession{}, err
	}
	if err := uc.save(ctx, s); err != nil {
		return models.RestockSession{}, err
	}
	uc.metrics.SessionCreated(ctx)
	uc.log.InfoContext(ctx, "restock session created", "session_id", s.ID)
	return s, nil
}

// GetSession serves from cache when possible and warms it on a miss.
func (uc *SessionUseCases) GetSession(ctx context.Context, userID, sessionID string) (models.RestockSession, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, userID, sessionID)
		switch {
		case err == nil:
			s, convErr := fromCached(cached)
			if convErr == nil {
				return s, nil
			}
			uc.log.WarnContext(ctx, "discarding unreadable cached session", "session_id", sessionID, "error", convErr)
		case !errors.Is(err, pkgcache.ErrCacheMiss):
			uc.log.WarnContext(ctx, "session cache read failed", "session_id", sessionID, "error", err)
		}
	}

	s, err := uc.load(ctx, userID, sessionID)
	if err != nil {
		return models.RestockSession{}, err
	}
	uc.cacheSet(ctx, s)
	return s, nil
}

func (uc *SessionUseCases) ListSessions(ctx context.Context, userID string) (domainsvcs.SessionsByStatus, error) {
	all, err := uc.sessions.FindByUserID(ctx, userID)
	if err != nil {
		return domainsvcs.SessionsByStatus{}, fmt.Errorf("list sessions: %w", err)
	}
	return domainsvcs.GroupSessionsByStatus(all), nil
}

func (uc *SessionUseCases) RenameSession(ctx context.Context, userID, sessionID, name string) (models.RestockSession, error) {
	return uc.mutate(ctx, userID, sessionID, func(s models.RestockSession) (models.RestockSession, error) {
		return uc.domain.RenameSession(s, name)
	})
}

func (uc *SessionUseCases) DeleteSession(ctx context.Context, userID, sessionID string) error {
	if err := uc.sessions.Delete(ctx, userID, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	uc.cacheDelete(ctx, userID, sessionID)
	uc.log.InfoContext(ctx, "restock session deleted", "session_id", sessionID)
	return nil
}

// AddItem adds a free-form line, creating catalog records the user has not
// entered before. New suppliers are saved before new products, and both before
// the session, so every stored reference resolves.
func (uc *SessionUseCases) AddItem(ctx context.Context, userID, sessionID string, req domainsvcs.AddItemRequest) (domainsvcs.AddItemResult, error) {
	s, err := uc.load(ctx, userID, sessionID)
	if err != nil {
		return domainsvcs.AddItemResult{}, err
	}
	products, err := uc.products.FindByUserID(ctx, userID)
	if err != nil {
		return domainsvcs.AddItemResult{}, fmt.Errorf("load products: %w", err)
	}
	suppliers, err := uc.suppliers.FindByUserID(ctx, userID)
	if err != nil {
		return domainsvcs.AddItemResult{}, fmt.Errorf("load suppliers: %w", err)
	}

	res, err := uc.domain.AddItemToSession(s, req, products, suppliers)
	if err != nil {
		return domainsvcs.AddItemResult{}, err
	}

	if res.NewSupplier != nil {
		if err := uc.suppliers.Save(ctx, *res.NewSupplier); err != nil {
			return domainsvcs.AddItemResult{}, fmt.Errorf("save supplier: %w", err)
		}
	}
	if res.NewProduct != nil {
		if err := uc.products.Save(ctx, *res.NewProduct); err != nil {
			return domainsvcs.AddItemResult{}, fmt.Errorf("save product: %w", err)
		}
	}
	if err := uc.save(ctx, res.Session); err != nil {
		return domainsvcs.AddItemResult{}, err
	}

	uc.metrics.ItemAdded(ctx, res.NewProduct != nil, res.NewSupplier != nil)
	uc.log.InfoContext(ctx, "restock item added",
		"session_id", sessionID,
		"product_id", res.Item.ProductID,
		"supplier_id", res.Item.SupplierID,
		"new_product", res.NewProduct != nil,
		"new_supplier", res.NewSupplier != nil,
	)
	return res, nil
}

// AddProduct adds a line for a product already in the user's catalog.
func (uc *SessionUseCases) AddProduct(ctx context.Context, userID, sessionID string, in AddProductInput) (models.RestockSession, models.RestockItem, error) {
	s, err := uc.load(ctx, userID, sessionID)
	if err != nil {
		return models.RestockSession{}, models.RestockItem{}, err
	}
	product, err := uc.products.FindByID(ctx, userID, in.ProductID)
	if err != nil {
		return models.RestockSession{}, models.RestockItem{}, fmt.Errorf("load product: %w", err)
	}

	supplierID := in.SupplierID
	if supplierID == "" {
		supplierID = product.DefaultSupplierID
	}
	if supplierID == "" {
		return models.RestockSession{}, models.RestockItem{}, domain.NewValidationError("supplier_id", "Product has no default supplier; choose one")
	}
	supplier, err := uc.suppliers.FindByID(ctx, userID, supplierID)
	if err != nil {
		return models.RestockSession{}, models.RestockItem{}, fmt.Errorf("load supplier: %w", err)
	}

	qty := product.DefaultQuantity
	if in.Quantity != nil {
		qty = *in.Quantity
	}

	next, item, err := uc.domain.AddProductToSession(s, product, supplier, qty, in.Notes)
	if err != nil {
		return models.RestockSession{}, models.RestockItem{}, err
	}
	if err := uc.save(ctx, next); err != nil {
		return models.RestockSession{}, models.RestockItem{}, err
	}
	uc.metrics.ItemAdded(ctx, false, false)
	uc.log.InfoContext(ctx, "restock item added", "session_id", sessionID, "product_id", item.ProductID, "supplier_id", item.SupplierID)
	return next, item, nil
}

func (uc *SessionUseCases) RemoveItem(ctx context.Context, userID, sessionID, productID string) (models.RestockSession, error) {
	return uc.mutate(ctx, userID, sessionID, func(s models.RestockSession) (models.RestockSession, error) {
		return uc.domain.RemoveItemFromSession(s, productID)
	})
}

func (uc *SessionUseCases) UpdateItem(ctx context.Context, userID, sessionID, productID string, patch models.ItemPatch) (models.RestockSession, error) {
	return uc.mutate(ctx, userID, sessionID, func(s models.RestockSession) (models.RestockSession, error) {
		return uc.domain.UpdateItemInSession(s, productID, patch)
	})
}

// GenerateEmails moves a draft to email_generated and returns its rendered emails.
func (uc *SessionUseCases) GenerateEmails(ctx context.Context, userID, sessionID string) (EmailsResult, error) {
	s, err := uc.mutate(ctx, userID, sessionID, uc.domain.MarkSessionReadyForEmails)
	if err != nil {
		return EmailsResult{}, err
	}
	res, err := uc.render(ctx, s)
	if err != nil {
		return EmailsResult{}, err
	}
	uc.metrics.EmailsGenerated(ctx, len(res.Drafts))
	uc.log.InfoContext(ctx, "supplier emails generated", "session_id", sessionID, "drafts", len(res.Drafts))
	return res, nil
}

// PreviewEmails renders the emails of an email_generated session without
// changing it.
func (uc *SessionUseCases) PreviewEmails(ctx context.Context, userID, sessionID string) (EmailsResult, error) {
	s, err := uc.load(ctx, userID, sessionID)
	if err != nil {
		return EmailsResult{}, err
	}
	return uc.render(ctx, s)
}

// SendEmails hands the rendered emails to the dispatcher, which completes the
// session once delivery succeeds.
func (uc *SessionUseCases) SendEmails(ctx context.Context, userID, sessionID string) (SendResult, error) {
	s, err := uc.load(ctx, userID, sessionID)
	if err != nil {
		return SendResult{}, err
	}
	rendered, err := uc.render(ctx, s)
	if err != nil {
		return SendResult{}, err
	}

	dispatch, err := uc.dispatcher.Dispatch(ctx, userID, sessionID, rendered.Emails)
	if err != nil {
		return SendResult{}, fmt.Errorf("dispatch emails: %w", err)
	}
	if !dispatch.Async {
		for range dispatch.Sent {
			uc.metrics.EmailSent(ctx, true)
		}
		if s, err = uc.load(ctx, userID, sessionID); err != nil {
			return SendResult{}, err
		}
	}
	uc.log.InfoContext(ctx, "supplier emails dispatched",
		"session_id", sessionID, "emails", len(rendered.Emails), "async", dispatch.Async, "reference", dispatch.Reference)
	return SendResult{Session: s, Dispatch: dispatch}, nil
}

// CompleteSession moves an email_generated session to sent.
func (uc *SessionUseCases) CompleteSession(ctx context.Context, userID, sessionID string) (models.RestockSession, error) {
	s, err := uc.mutate(ctx, userID, sessionID, uc.domain.MarkSessionCompleted)
	if err != nil {
		return models.RestockSession{}, err
	}
	uc.metrics.SessionCompleted(ctx)
	uc.log.InfoContext(ctx, "restock session completed", "session_id", sessionID)
	return s, nil
}

// Complete adapts CompleteSession to email.CompleteFunc for dispatchers and
// workflow activities.
func (uc *SessionUseCases) Complete() email.CompleteFunc {
	return uc.completeByID
}

func (uc *SessionUseCases) completeByID(ctx context.Context, userID, sessionID string) error {
	_, err := uc.CompleteSession(ctx, userID, sessionID)
	return err
}

func (uc *SessionUseCases) ListProducts(ctx context.Context, userID string) ([]models.Product, error) {
	out, err := uc.products.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (uc *SessionUseCases) ListSuppliers(ctx context.Context, userID string) ([]models.Supplier, error) {
	out, err := uc.suppliers.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return out, nil
}

// mutate loads a session, applies fn and saves the result.
func (uc *SessionUseCases) mutate(
	ctx context.Context,
	userID, sessionID string,
	fn func(models.RestockSession) (models.RestockSession, error),
) (models.RestockSession, error) {
	s, err := uc.load(ctx, userID, sessionID)
	if err != nil {
		return models.RestockSession{}, err
	}
	next, err := fn(s)
	if err != nil {
		return models.RestockSession{}, err
	}
	if err := uc.save(ctx, next); err != nil {
		return models.RestockSession{}, err
	}
	return next, nil
}

func (uc *SessionUseCases) render(ctx context.Context, s models.RestockSession) (EmailsResult, error) {
	drafts, err := uc.domain.GenerateEmailDrafts(s, uc.sender)
	if err != nil {
		return EmailsResult{}, err
	}
	emails, err := email.RenderAll(ctx, uc.renderer, drafts)
	if err != nil {
		return EmailsResult{}, fmt.Errorf("render emails: %w", err)
	}
	return EmailsResult{Session: s, Drafts: drafts, Emails: emails}, nil
}

func (uc *SessionUseCases) load(ctx context.Context, userID, sessionID string) (models.RestockSession, error) {
	s, err := uc.sessions.FindByID(ctx, userID, sessionID)
	if err != nil {
		return models.RestockSession{}, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

func (uc *SessionUseCases) save(ctx context.Context, s models.RestockSession) error {
	if err := uc.sessions.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	uc.cacheSet(ctx, s)
	return nil
}

// Cache writes are best effort; the repository is the source of truth.
func (uc *SessionUseCases) cacheSet(ctx context.Context, s models.RestockSession) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, toCached(s)); err != nil {
		uc.log.WarnContext(ctx, "session cache write failed", "session_id", s.ID, "error", err)
	}
}

func (uc *SessionUseCases) cacheDelete(ctx context.Context, userID, sessionID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Delete(ctx, userID, sessionID); err != nil {
		uc.log.WarnContext(ctx, "session cache delete failed", "session_id", sessionID, "error", err)
	}
}
