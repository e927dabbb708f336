package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"compliance-llm/internal/domain"
)

// ErrDecisionNotFound se devuelve al buscar una decisión inexistente.
var ErrDecisionNotFound = errors.New("decision not found")

// DecisionStore guarda las decisiones procesadas para consulta posterior.
type DecisionStore interface {
	Save(ctx context.Context, decision domain.Decision) error
	Get(ctx context.Context, decisionID string) (domain.Decision, error)
	List(ctx context.Context) ([]domain.Decision, error)
}

type memoryDecisionStore struct {
	mu        sync.Mutex
	decisions map[string]domain.Decision
	order     []string
}

func NewMemoryDecisionStore() DecisionStore {
	return &memoryDecisionStore{decisions: make(map[string]domain.Decision)}
}

func (s *memoryDecisionStore) Save(_ context.Context, decision domain.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.decisions[decision.DecisionID]; !exists {
		s.order = append(s.order, decision.DecisionID)
	}
	s.decisions[decision.DecisionID] = decision
	return nil
}

func (s *memoryDecisionStore) Get(_ context.Context, decisionID string) (domain.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	decision, ok := s.decisions[decisionID]
	if !ok {
		return domain.Decision{}, ErrDecisionNotFound
	}
	return decision, nil
}

func (s *memoryDecisionStore) List(_ context.Context) ([]domain.Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Decision, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.decisions[id])
	}
	return out, nil
}

type redisDecisionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisDecisionStore guarda decisiones como JSON con TTL, más un set
// índice para poder listarlas.
func NewRedisDecisionStore(client *redis.Client, ttl time.Duration) DecisionStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisDecisionStore{
		client: client,
		prefix: "compliance:decision:",
		ttl:    ttl,
	}
}

func (s *redisDecisionStore) indexKey() string {
	return s.prefix + "index"
}

func (s *redisDecisionStore) Save(ctx context.Context, decision domain.Decision) error {
	payload, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("marshal decision: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+decision.DecisionID, payload, s.ttl).Err(); err != nil {
		return err
	}
	return s.client.SAdd(ctx, s.indexKey(), decision.DecisionID).Err()
}

func (s *redisDecisionStore) Get(ctx context.Context, decisionID string) (domain.Decision, error) {
	payload, err := s.client.Get(ctx, s.prefix+decisionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Decision{}, ErrDecisionNotFound
	}
	if err != nil {
		return domain.Decision{}, err
	}
	var decision domain.Decision
	if err := json.Unmarshal(payload, &decision); err != nil {
		return domain.Decision{}, fmt.Errorf("unmarshal decision: %w", err)
	}
	return decision, nil
}

func (s *redisDecisionStore) List(ctx context.Context) ([]domain.Decision, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, err
	}
	decisions := make([]domain.Decision, 0, len(ids))
	for _, id := range ids {
		decision, err := s.Get(ctx, id)
		if errors.Is(err, ErrDecisionNotFound) {
			// Expiró el valor pero quedó el índice; se limpia perezosamente.
			_ = s.client.SRem(ctx, s.indexKey(), id).Err()
			continue
		}
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, decision)
	}
	return decisions, nil
}
