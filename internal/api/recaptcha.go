package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"squad-builder/internal/config"
	"squad-builder/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// RecaptchaClient verifies bot-challenge tokens against the siteverify API.
type RecaptchaClient struct {
	secret    string
	verifyURL string
	client    *fasthttp.Client
	logger    zerolog.Logger
}

type VerifyResponse struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

func NewRecaptchaClient(cfg *config.Config, logger zerolog.Logger) *RecaptchaClient {
	return &RecaptchaClient{
		secret:    cfg.RecaptchaSecretKey,
		verifyURL: cfg.RecaptchaVerifyURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
	}
}

// Verify checks token with the verification service. A token the service
// rejects yields domain.ErrCaptchaInvalid.
func (c *RecaptchaClient) Verify(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrCaptchaRequired
	}
	if c.secret == "" {
		return domain.ErrCaptchaMisconfigured
	}

	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	args.Set("secret", c.secret)
	args.Set("response", token)

	result, err := doForm[VerifyResponse](ctx, c, c.verifyURL, args)
	if err != nil {
		c.logger.Error().Err(err).Msg("captcha verification request failed")
		return fmt.Errorf("failed to verify captcha: %w", err)
	}
	if !result.Success {
		c.logger.Debug().Strs("error_codes", result.ErrorCodes).Msg("captcha rejected")
		return domain.ErrCaptchaInvalid
	}
	return nil
}

func doForm[T any](ctx context.Context, client *RecaptchaClient, url string, args *fasthttp.Args) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.SetBody(args.QueryString())

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
