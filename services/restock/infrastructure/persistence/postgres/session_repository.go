package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/restock/pkg/database"
	"github.com/ghuser/restock/pkg/events"
	"github.com/ghuser/restock/services/restock/domain"
	domainevents "github.com/ghuser/restock/services/restock/domain/events"
	"github.com/ghuser/restock/services/restock/domain/models"
	"github.com/ghuser/restock/services/restock/domain/repositories"
	"github.com/ghuser/restock/services/restock/infrastructure/persistence/postgres/db"
)

var _ repositories.SessionRepository = (*SessionRepository)(nil)

// SessionRepository implements repositories.SessionRepository against PostgreSQL.
// Line items live in a JSONB column next to the session row.
type SessionRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewSessionRepository returns a SessionRepository backed by the given pool and
// event bus. A nil bus disables event publication.
func NewSessionRepository(database *database.Database, bus *events.EventBus) *SessionRepository {
	return &SessionRepository{db: database, bus: bus}
}

// itemRecord is the JSONB shape of a line item.
type itemRecord struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	SupplierID    string `json:"supplier_id"`
	SupplierName  string `json:"supplier_name"`
	SupplierEmail string `json:"supplier_email"`
	Notes         string `json:"notes,omitempty"`
}

// Save inserts or updates the session and, in the same transaction, publishes
// SessionCreated for a new row or SessionStatusChanged when the status moved.
// Returns ErrSessionConflict when the id is already taken by another user.
func (r *SessionRepository) Save(ctx context.Context, s models.RestockSession) error {
	items, err := encodeItems(s.Items)
	if err != nil {
		return err
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		prev, err := q.GetSessionStatusForUpdate(ctx, db.GetSessionStatusForUpdateParams{ID: s.ID, UserID: s.UserID})
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if err := q.InsertSession(ctx, db.InsertSessionParams{
				ID:        s.ID,
				UserID:    s.UserID,
				Name:      s.Name,
				Status:    s.Status.String(),
				Items:     items,
				CreatedAt: s.CreatedAt,
				UpdatedAt: s.UpdatedAt,
			}); err != nil {
				if database.IsUniqueViolation(err) {
					return domain.ErrSessionConflict
				}
				return fmt.Errorf("insert session: %w", err)
			}
			return r.publishCreated(ctx, tx, s)

		case err != nil:
			return fmt.Errorf("lock session: %w", err)
		}

		if err := q.UpdateSession(ctx, db.UpdateSessionParams{
			ID:        s.ID,
			UserID:    s.UserID,
			Name:      s.Name,
			Status:    s.Status.String(),
			Items:     items,
			UpdatedAt: s.UpdatedAt,
		}); err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		if prev != s.Status.String() {
			return r.publishStatusChanged(ctx, tx, s, prev)
		}
		return nil
	})
}

// FindByID returns ErrSessionNotFound when the session does not exist for userID.
func (r *SessionRepository) FindByID(ctx context.Context, userID, id string) (models.RestockSession, error) {
	q := db.New(r.db.DB())
	row, err := q.GetSession(ctx, db.GetSessionParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RestockSession{}, domain.ErrSessionNotFound
		}
		return models.RestockSession{}, fmt.Errorf("query session: %w", err)
	}
	return rowToSession(row)
}

// FindByUserID returns the user's sessions, most recently updated first.
func (r *SessionRepository) FindByUserID(ctx context.Context, userID string) ([]models.RestockSession, error) {
	q := db.New(r.db.DB())
	rows, err := q.ListSessionsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	out := make([]models.RestockSession, 0, len(rows))
	for _, row := range rows {
		s, err := rowToSession(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Delete removes a session scoped to userID.
func (r *SessionRepository) Delete(ctx context.Context, userID, id string) error {
	q := db.New(r.db.DB())
	n, err := q.DeleteSession(ctx, db.DeleteSessionParams{ID: id, UserID: userID})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) publishCreated(ctx context.Context, tx *sql.Tx, s models.RestockSession) error {
	evt := domainevents.SessionCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		SessionID:  s.ID,
		UserID:     s.UserID,
		Name:       s.Name,
		OccurredAt: s.CreatedAt,
	}
	return r.publish(ctx, tx, domainevents.TopicSessionCreated, evt.EventID, evt.Version, evt)
}

func (r *SessionRepository) publishStatusChanged(ctx context.Context, tx *sql.Tx, s models.RestockSession, from string) error {
	evt := domainevents.SessionStatusChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		SessionID:  s.ID,
		UserID:     s.UserID,
		FromStatus: from,
		ToStatus:   s.Status.String(),
		ItemCount:  s.ItemCount(),
		OccurredAt: s.UpdatedAt,
	}
	return r.publish(ctx, tx, domainevents.TopicSessionStatusChanged, evt.EventID, evt.Version, evt)
}

func (r *SessionRepository) publish(ctx context.Context, tx *sql.Tx, topic string, eventID uuid.UUID, version int, payload any) error {
	if r.bus == nil {
		return nil
	}
	msg, err := events.NewJSONMessage(eventID.String(), version, payload)
	if err != nil {
		return err
	}
	events.InjectTrace(ctx, msg)
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	if err := p.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func encodeItems(items []models.RestockItem) (json.RawMessage, error) {
	recs := make([]itemRecord, len(items))
	for i, it := range items {
		recs[i] = itemRecord{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			SupplierID:    it.SupplierID,
			SupplierName:  it.SupplierName,
			SupplierEmail: it.SupplierEmail,
			Notes:         it.Notes,
		}
	}
	b, err := json.Marshal(recs)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return b, nil
}

func decodeItems(raw json.RawMessage) ([]models.RestockItem, error) {
	var recs []itemRecord
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &recs); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
	}
	items := make([]models.RestockItem, len(recs))
	for i, rec := range recs {
		items[i] = models.RestockItem{
			ProductID:     rec.ProductID,
			ProductName:   rec.ProductName,
			Quantity:      rec.Quantity,
			SupplierID:    rec.SupplierID,
			SupplierName:  rec.SupplierName,
			SupplierEmail: rec.SupplierEmail,
			Notes:         rec.Notes,
		}
	}
	return items, nil
}

// rowToSession maps a db.RestockSession to the domain aggregate.
func rowToSession(row db.RestockSession) (models.RestockSession, error) {
	status, err := models.ParseStatus(row.Status)
	if err != nil {
		return models.RestockSession{}, fmt.Errorf("session %s: %w", row.ID, err)
	}
	items, err := decodeItems(row.Items)
	if err != nil {
		return models.RestockSession{}, fmt.Errorf("session %s: %w", row.ID, err)
	}
	return models.RestockSession{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Status:    status,
		Items:     items,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}
