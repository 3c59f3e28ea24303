// Package planapi is the HTTP client of the learning plan server.
package planapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/at-ishikawa/vocadrill/internal/config"
	"github.com/at-ishikawa/vocadrill/internal/learning"
)

// Plan is a learner's vocabulary schedule.
type Plan struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	BookName       string `json:"bookName"`
	DailyWordCount int    `json:"dailyWordCount"`
}

// Progress summarizes how far a plan has come.
type Progress struct {
	PlanID         int64 `json:"planId"`
	LearnedWords   int   `json:"learnedWords"`
	ReviewingWords int   `json:"reviewingWords"`
	TotalWords     int   `json:"totalWords"`
}

// Client talks JSON to the plan server. Every call is attempted once.
type Client struct {
	client *resty.Client
}

// NewClient creates a Client for the configured server.
func NewClient(cfg config.PlanAPIConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}
	return &Client{client: client}
}

// ListPlans returns the learner's plans.
func (c *Client) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	res, err := c.client.R().
		SetContext(ctx).
		SetResult(&plans).
		Get("/plans")
	if err := checkResponse(res, err); err != nil {
		return nil, fmt.Errorf("GET /plans > %w", err)
	}
	return plans, nil
}

// GetDailySession returns today's new and review words of a plan.
func (c *Client) GetDailySession(ctx context.Context, planID int64) (learning.DailySession, error) {
	var session learning.DailySession
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("planID", strconv.FormatInt(planID, 10)).
		SetResult(&session).
		Get("/plans/{planID}/daily-session")
	if err := checkResponse(res, err); err != nil {
		return learning.DailySession{}, fmt.Errorf("GET /plans/%d/daily-session > %w", planID, err)
	}
	return session, nil
}

// GetProgress returns the progress of a plan.
func (c *Client) GetProgress(ctx context.Context, planID int64) (Progress, error) {
	var progress Progress
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("planID", strconv.FormatInt(planID, 10)).
		SetResult(&progress).
		Get("/plans/{planID}/progress")
	if err := checkResponse(res, err); err != nil {
		return Progress{}, fmt.Errorf("GET /plans/%d/progress > %w", planID, err)
	}
	return progress, nil
}

// UpdateWordStatus reports the outcome of a word.
func (c *Client) UpdateWordStatus(ctx context.Context, update learning.WordStatusUpdate) error {
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("planID", strconv.FormatInt(update.PlanID, 10)).
		SetBody(update).
		Post("/plans/{planID}/word-status")
	if err := checkResponse(res, err); err != nil {
		return fmt.Errorf("POST /plans/%d/word-status(%s) > %w", update.PlanID, update.Word, err)
	}
	return nil
}

func checkResponse(res *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("client.R() > %w", err)
	}
	if res.StatusCode() < http.StatusOK || res.StatusCode() >= http.StatusMultipleChoices {
		return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return nil
}
