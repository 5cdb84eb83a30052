package identity

import (
	"context"
	"fmt"
	"slices"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/resilience"
	"storefront-be/internal/utils"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Entitlements answers whether a user holds a subscription plan.
type Entitlements interface {
	HasPlan(ctx context.Context, userID, plan string) (bool, error)
}

// ClaimEntitlements trusts the plans carried in the caller's token.
type ClaimEntitlements struct{}

func (ClaimEntitlements) HasPlan(ctx context.Context, userID, plan string) (bool, error) {
	if id, ok := utils.GetUserIDFromContext(ctx); !ok || id != userID {
		return false, nil
	}
	return utils.HasPlanInContext(ctx, plan), nil
}

type plansResponse struct {
	Plans []string `json:"plans"`
}

// RemoteEntitlements asks the billing service and falls back to the token
// claims when the call fails or the breaker is open.
type RemoteEntitlements struct {
	client   *resty.Client
	breaker  *resilience.Breaker
	fallback Entitlements
}

func NewRemoteEntitlements(baseURL string, timeout time.Duration) *RemoteEntitlements {
	return &RemoteEntitlements{
		client: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetRetryCount(0),
		breaker:  resilience.NewBreaker("entitlements", resilience.DefaultBreakerSettings()),
		fallback: ClaimEntitlements{},
	}
}

func (e *RemoteEntitlements) HasPlan(ctx context.Context, userID, plan string) (bool, error) {
	var plans []string
	err := e.breaker.Do(func() error {
		var out plansResponse
		resp, err := e.client.R().
			SetContext(ctx).
			SetPathParam("id", userID).
			SetResult(&out).
			Get("/users/{id}/plans")
		if err != nil {
			return err
		}
		if resp.IsError() {
			return fmt.Errorf("entitlement service returned %d", resp.StatusCode())
		}
		plans = out.Plans
		return nil
	})
	if err != nil {
		logger.FromCtx(ctx).Warn("entitlement lookup failed, using token claims",
			zap.String("layer", "identity"),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return e.fallback.HasPlan(ctx, userID, plan)
	}

	return slices.Contains(plans, plan), nil
}

// New returns remote entitlements when baseURL is set, claim-based otherwise.
func New(baseURL string, timeout time.Duration) Entitlements {
	if baseURL == "" {
		return ClaimEntitlements{}
	}
	return NewRemoteEntitlements(baseURL, timeout)
}
