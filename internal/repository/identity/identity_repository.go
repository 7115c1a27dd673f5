package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sukiMarket/domain"

	"github.com/go-resty/resty/v2"
)

const lookupTimeout = 8 * time.Second

type IdentityConfig struct {
	BaseURL string
}

// IdentityRepository talks to the marketplace backend that owns sessions.
// It forwards the caller's bearer credential verbatim and never retries;
// a failed lookup fails the whole request.
type IdentityRepository struct {
	baseURL string
	client  *resty.Client
}

func NewIdentityRepository(cfg IdentityConfig) *IdentityRepository {
	client := resty.New()
	client.SetTimeout(lookupTimeout)

	return &IdentityRepository{
		baseURL: cfg.BaseURL,
		client:  client,
	}
}

type userEnvelope struct {
	User *domain.IdentityUser `json:"user"`
}

// CurrentUser resolves the profile behind the Authorization header via
// GET /user/me on the identity service.
func (r *IdentityRepository) CurrentUser(ctx context.Context, authorization string) (domain.IdentityUser, error) {
	if err := ctx.Err(); err != nil {
		return domain.IdentityUser{}, fmt.Errorf("context error: %w", err)
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetHeader("Authorization", authorization).
		Get(r.baseURL + "/user/me")
	if err != nil {
		return domain.IdentityUser{}, &domain.UpstreamError{}
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return domain.IdentityUser{}, &domain.UpstreamError{
			Status: resp.StatusCode(),
			Body:   string(resp.Body()),
		}
	}

	var envelope userEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return domain.IdentityUser{}, domain.ErrInvalidUser
	}
	if envelope.User == nil || envelope.User.ID == 0 {
		return domain.IdentityUser{}, domain.ErrInvalidUser
	}

	return *envelope.User, nil
}
