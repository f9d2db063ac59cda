// Package metering settles usage charges whose cost was not known when the
// generation finished. It polls pending charges, asks the LLM gateway for the
// final cost of each generation and bills it through the usage service.
package metering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/creditmeter/internal/config"
	"github.com/GlebRadaev/creditmeter/internal/currency"
	"github.com/GlebRadaev/creditmeter/internal/domain"
	"github.com/GlebRadaev/creditmeter/pkg/clients"
	"github.com/GlebRadaev/creditmeter/pkg/validate"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
	batchLimit    = 100

	generationPath = "/api/v1/generation"
)

// errNotReady means the gateway has no stats for the generation yet.
var errNotReady = errors.New("generation stats not ready")

//go:generate mockgen -source=metering.go -destination=mock_metering.go -package=metering
type UsageService interface {
	Pending(ctx context.Context, limit uint32) ([]domain.UsageCharge, error)
	Settle(ctx context.Context, chargeID int64, costUsd string) (*domain.UsageCharge, error)
	Reject(ctx context.Context, chargeID int64, costUsd *string) error
}

// GenerationResponse is the part of the gateway generation stats we rely on.
// Cost is kept as json.Number so it never passes through a float.
type GenerationResponse struct {
	Data *GenerationData `json:"data" validate:"required"`
}

type GenerationData struct {
	ID        string      `json:"id" validate:"required,max=255"`
	Model     string      `json:"model"`
	TotalCost json.Number `json:"total_cost"`
}

type Service struct {
	url            string
	apiKey         string
	usage          UsageService
	client         clients.HTTPClientI
	locker         Locker
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
	retryInterval  time.Duration
	done           chan struct{}
}

func New(cfg *config.Config, usage UsageService, client clients.HTTPClientI, locker Locker) *Service {
	interval := cfg.MeteringInterval
	if interval <= 0 {
		interval = time.Second * 2
	}
	return &Service{
		url:            cfg.GatewayAddress,
		apiKey:         cfg.GatewayAPIKey,
		usage:          usage,
		client:         client,
		locker:         locker,
		limit:          batchLimit,
		workerPool:     NewWorkerPool(cfg.MeteringWorkers),
		updateInterval: interval,
		retryInterval:  retryInterval,
		done:           make(chan struct{}),
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Metering service started", zap.Duration("interval", s.updateInterval))
	go s.run(ctx)
}

// Done is closed once the poll loop has exited and queued work has drained.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)
	defer s.workerPool.Close()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping metering")
			return
		case <-ticker.C:
			s.processCharges(ctx)
		}
	}
}

func (s *Service) processCharges(ctx context.Context) {
	charges, err := s.usage.Pending(ctx, s.limit)
	if err != nil {
		zap.L().Error("Failed to fetch usage charges for processing", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, charge := range charges {
		charge := charge

		locked, err := s.locker.TryLock(ctx, charge.GenerationID)
		if err != nil {
			zap.L().Error("Failed to lock generation", zap.String("generation_id", charge.GenerationID), zap.Error(err))
			continue
		}
		if !locked {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.unlock(charge.GenerationID)
				return s.handleCharge(ctx, charge)
			})
			if err != nil {
				s.unlock(charge.GenerationID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing usage charges", zap.Error(err))
	}
}

func (s *Service) unlock(generationID string) {
	if err := s.locker.Unlock(context.Background(), generationID); err != nil {
		zap.L().Warn("Failed to release generation lock", zap.String("generation_id", generationID), zap.Error(err))
	}
}

func (s *Service) handleCharge(ctx context.Context, charge domain.UsageCharge) error {
	body, err := s.fetchGeneration(ctx, charge.GenerationID)
	if errors.Is(err, errNotReady) {
		zap.L().Debug("Generation stats not ready yet", zap.String("generation_id", charge.GenerationID))
		return nil
	}
	if err != nil {
		return err
	}
	return s.settle(ctx, charge, body)
}

func (s *Service) fetchGeneration(ctx context.Context, generationID string) ([]byte, error) {
	endpoint := s.url + generationPath + "?id=" + url.QueryEscape(generationID)
	headers := http.Header{}
	if s.apiKey != "" {
		headers.Set("Authorization", "Bearer "+s.apiKey)
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		statusCode, respBody, respHeaders, err := s.client.Get(ctx, endpoint, headers)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				if err := s.sleep(ctx, s.retryInterval*time.Duration(attempt)); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("failed to fetch generation %s after %d retries: %w", generationID, maxRetries, lastErr)
		}

		switch {
		case statusCode == http.StatusOK:
			return respBody, nil
		case statusCode == http.StatusNotFound:
			return nil, errNotReady
		case statusCode == http.StatusTooManyRequests:
			lastErr = errors.New("rate limited")
			if err := s.sleep(ctx, s.retryAfter(respHeaders, attempt)); err != nil {
				return nil, err
			}
		case statusCode >= http.StatusInternalServerError:
			lastErr = fmt.Errorf("gateway status %d", statusCode)
			zap.L().Warn("Gateway error, retrying",
				zap.String("generation_id", generationID),
				zap.Int("status", statusCode),
				zap.Int("attempt", attempt),
			)
			if attempt < maxRetries {
				if err := s.sleep(ctx, s.retryInterval*time.Duration(attempt)); err != nil {
					return nil, err
				}
			}
		default:
			zap.L().Error("Unexpected status code", zap.Int("status", statusCode), zap.String("generation_id", generationID))
			return nil, fmt.Errorf("unexpected status code %d", statusCode)
		}
	}
	return nil, fmt.Errorf("failed to fetch generation %s after %d retries: %w", generationID, maxRetries, lastErr)
}

func (s *Service) retryAfter(respHeaders http.Header, attempt int) time.Duration {
	retryAfter := s.retryInterval * time.Duration(attempt)
	if header := respHeaders.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn("Rate limit detected, retrying", zap.Int("attempt", attempt), zap.Duration("retryAfter", retryAfter))
	return retryAfter
}

func (s *Service) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ParseGeneration decodes and validates a gateway payload. A syntax error is
// returned as is; anything that decodes but breaks the schema wraps
// validate.ErrInvalid.
func ParseGeneration(body []byte) (*GenerationResponse, error) {
	var response GenerationResponse
	if err := json.Unmarshal(body, &response); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("failed to parse response body: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", validate.ErrInvalid, err.Error())
	}
	if err := validate.Struct(response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (s *Service) settle(ctx context.Context, charge domain.UsageCharge, body []byte) error {
	response, err := ParseGeneration(body)
	if err != nil {
		if !errors.Is(err, validate.ErrInvalid) {
			return err
		}
		zap.L().Warn("Gateway payload failed validation, marking usage invalid",
			zap.String("generation_id", charge.GenerationID), zap.Error(err))
		return s.usage.Reject(ctx, charge.ID, nil)
	}

	// A mismatching answer will not change on refetch.
	if response.Data.ID != charge.GenerationID {
		zap.L().Warn("Gateway answered for another generation, marking usage invalid",
			zap.String("generation_id", charge.GenerationID), zap.String("gateway_id", response.Data.ID))
		return s.usage.Reject(ctx, charge.ID, nil)
	}

	cost := response.Data.TotalCost.String()
	if _, ok := currency.SafeParseUsdToMicrocents(response.Data.TotalCost); !ok {
		zap.L().Warn("Gateway reported no usable cost, marking usage invalid",
			zap.String("generation_id", charge.GenerationID), zap.String("total_cost", cost))
		var reported *string
		if cost != "" {
			reported = &cost
		}
		return s.usage.Reject(ctx, charge.ID, reported)
	}

	settled, err := s.usage.Settle(ctx, charge.ID, cost)
	if err != nil {
		return fmt.Errorf("failed to settle generation %s: %w", charge.GenerationID, err)
	}
	zap.L().Info("Usage settled",
		zap.String("generation_id", charge.GenerationID),
		zap.String("user_id", charge.UserID),
		zap.String("cost_usd", cost),
		zap.String("status", string(settled.Status)),
	)
	return nil
}
