package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nvoskov/teamplan/internal/models"
)

// CreateClient inserts a new client with an initial hourly rate.
func (s *Store) CreateClient(ctx context.Context, name string, hourlyRate float64) (models.Client, error) {
	client := models.Client{
		ID:                uuid.NewString(),
		Name:              name,
		HourlyRate:        hourlyRate,
		RateEffectiveFrom: time.Now().Format("2006-01-02"),
	}
	if err := s.Put(ctx, ColClients, client.ID, client); err != nil {
		return models.Client{}, err
	}
	return client, nil
}

// GetClient fetches one client by id.
func (s *Store) GetClient(ctx context.Context, id string) (models.Client, error) {
	var c models.Client
	err := s.Get(ctx, ColClients, id, &c)
	return c, err
}

// ListClients returns every client.
func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	docs, err := s.Run(ctx, NewQuery(ColClients))
	if err != nil {
		return nil, err
	}
	clients := make([]models.Client, 0, len(docs))
	for _, doc := range docs {
		var c models.Client
		if err := decodeInto(doc, &c); err != nil {
			return nil, wrapErr("decode", ColClients, doc.ID, err)
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// SetHourlyRate changes a client's rate, first appending the outgoing rate
// to the audit history. History rows are never mutated in place.
func (s *Store) SetHourlyRate(ctx context.Context, id string, rate float64) (models.Client, error) {
	client, err := s.GetClient(ctx, id)
	if err != nil {
		return models.Client{}, err
	}
	today := time.Now().Format("2006-01-02")
	client.RateHistory = append(client.RateHistory, models.RateChange{
		Rate:           client.HourlyRate,
		EffectiveFrom:  client.RateEffectiveFrom,
		EffectiveUntil: today,
	})
	client.HourlyRate = rate
	client.RateEffectiveFrom = today
	if err := s.Put(ctx, ColClients, id, client); err != nil {
		return models.Client{}, err
	}
	return client, nil
}
