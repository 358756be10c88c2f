// Package congress is a rate-limited client for the Congress.gov v3
// API. All outbound requests share a single pacing clock so a bulk run
// never exceeds the upstream request budget, and a 429 response is
// retried exactly once after a fixed cooldown.
package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dcbills/tracker/internal/billnum"
	"github.com/dcbills/tracker/internal/metrics"
	"github.com/dcbills/tracker/pkg/config"
	"github.com/dcbills/tracker/pkg/logger"
	"github.com/dcbills/tracker/pkg/retry"
)

type Client struct {
	baseURL     string
	apiKey      string
	congress    int
	session     int
	minInterval time.Duration
	cooldown    time.Duration
	httpClient  *http.Client

	mu          sync.Mutex
	lastRequest time.Time
}

func NewClient(cfg config.CongressConfig) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		congress:    cfg.Number,
		session:     cfg.Session,
		minInterval: time.Duration(cfg.RateLimitMS) * time.Millisecond,
		cooldown:    time.Duration(cfg.CooldownMS) * time.Millisecond,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
	}
}

// Congress returns the congress number this client queries.
func (c *Client) Congress() int {
	return c.congress
}

// pace blocks until at least minInterval has elapsed since the previous
// request, process-wide.
func (c *Client) pace() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.minInterval {
		time.Sleep(c.minInterval - elapsed)
	}
	c.lastRequest = time.Now()
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, result interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)
	fullURL := c.baseURL + path + "?" + query.Encode()

	cfg := retry.Config{
		MaxAttempts:     2,
		Delay:           c.cooldown,
		Multiplier:      1.0,
		RetryableErrors: []error{ErrRateLimited},
		Logger:          logger.Log,
	}

	return retry.Do(ctx, cfg, func() error {
		return c.doOnce(ctx, endpoint, fullURL, result)
	})
}

func (c *Client) doOnce(ctx context.Context, endpoint, fullURL string, result interface{}) error {
	c.pace()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.APIRequests.WithLabelValues(endpoint, "network_error").Inc()
		return &NetworkError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequests.WithLabelValues(endpoint, "network_error").Inc()
		return &NetworkError{URL: fullURL, Err: err}
	}

	metrics.APIRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusTooManyRequests {
			metrics.RateLimitHits.Inc()
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			URL:        fullURL,
		}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// CommitteeBills lists bills referred to the given committee.
func (c *Client) CommitteeBills(ctx context.Context, committeeCode string, limit int) ([]BillSummary, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var resp billListResponse
	err := c.get(ctx, "committee_bills", "/committee/"+committeeCode+"/bills", q, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Bills, nil
}

// ListBills returns one page of bills of the given type in the current
// congress, sorted most-recently-updated first. fromDate, when
// non-empty (YYYY-MM-DD), restricts the page to bills updated since
// that date.
func (c *Client) ListBills(ctx context.Context, billType string, offset, limit int, fromDate string) ([]BillSummary, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	// Encodes as sort=updateDate+desc, which is how the API spells it.
	q.Set("sort", "updateDate desc")
	if fromDate != "" {
		q.Set("fromDateTime", fromDate+"T00:00:00Z")
	}

	var resp billListResponse
	err := c.get(ctx, "bill_list", fmt.Sprintf("/bill/%d/%s", c.congress, billType), q, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Bills, nil
}

// BillDetail fetches the core record for one bill.
func (c *Client) BillDetail(ctx context.Context, ref billnum.Ref) (*BillDetail, error) {
	var resp billDetailResponse
	err := c.get(ctx, "bill_detail", c.billPath(ref, ""), nil, &resp)
	if err != nil {
		return nil, err
	}

	detail := &BillDetail{
		Title:          resp.Bill.Title,
		LatestAction:   resp.Bill.LatestAction,
		IntroducedDate: resp.Bill.IntroducedDate,
		URL:            resp.Bill.URL,
	}
	for _, s := range resp.Bill.Sponsors {
		detail.Sponsors = append(detail.Sponsors, s.FullName)
	}
	return detail, nil
}

// Actions fetches ordered action records for one bill.
func (c *Client) Actions(ctx context.Context, ref billnum.Ref) ([]Action, error) {
	var resp actionsResponse
	err := c.get(ctx, "bill_actions", c.billPath(ref, "/actions"), nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Actions, nil
}

// CosponsorCount returns the number of cosponsors via the pagination
// count, avoiding a full page fetch.
func (c *Client) CosponsorCount(ctx context.Context, ref billnum.Ref) (int, error) {
	var resp cosponsorsResponse
	err := c.get(ctx, "bill_cosponsors", c.billPath(ref, "/cosponsors"), nil, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Pagination.Count, nil
}

// Subjects returns the legislative subject names plus the policy area,
// when present.
func (c *Client) Subjects(ctx context.Context, ref billnum.Ref) ([]string, error) {
	var resp subjectsResponse
	err := c.get(ctx, "bill_subjects", c.billPath(ref, "/subjects"), nil, &resp)
	if err != nil {
		return nil, err
	}

	var subjects []string
	for _, s := range resp.Subjects.LegislativeSubjects {
		subjects = append(subjects, s.Name)
	}
	if resp.Subjects.PolicyArea.Name != "" {
		subjects = append(subjects, resp.Subjects.PolicyArea.Name)
	}
	return subjects, nil
}

// Summary returns the most recent bill summary with HTML markup
// stripped, or "" when none has been published.
func (c *Client) Summary(ctx context.Context, ref billnum.Ref) (string, error) {
	var resp summariesResponse
	err := c.get(ctx, "bill_summaries", c.billPath(ref, "/summaries"), nil, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Summaries) == 0 {
		return "", nil
	}
	return stripHTML(resp.Summaries[len(resp.Summaries)-1].Text), nil
}

// Committees returns the committee names a bill has been referred to.
// The main bill endpoint only carries a reference object, so this uses
// the sub-resource.
func (c *Client) Committees(ctx context.Context, ref billnum.Ref) ([]string, error) {
	var resp committeesResponse
	err := c.get(ctx, "bill_committees", c.billPath(ref, "/committees"), nil, &resp)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, committee := range resp.Committees {
		if committee.Name != "" {
			names = append(names, committee.Name)
		}
	}
	return names, nil
}

// RollCallVote fetches the tally for a numbered roll-call vote in the
// given chamber ("house" or "senate").
func (c *Client) RollCallVote(ctx context.Context, chamber, rollNumber string) (*VoteTally, error) {
	path := fmt.Sprintf("/%s-vote/%d/%d/%s", chamber, c.congress, c.session, rollNumber)

	var resp voteResponse
	err := c.get(ctx, chamber+"_vote", path, nil, &resp)
	if err != nil {
		return nil, err
	}

	vote := resp.HouseRollCallVote
	if vote == nil {
		vote = resp.SenateRollCallVote
	}
	if vote == nil {
		return nil, fmt.Errorf("vote %s/%s: empty response", chamber, rollNumber)
	}

	tally := &VoteTally{}
	for _, party := range vote.VotePartyTotal {
		name := party.VoteParty
		if name == "" {
			name = party.Party.Type
		}
		tally.Yeas += party.YeaTotal
		tally.Nays += party.NayTotal

		switch {
		case strings.HasPrefix(strings.ToLower(name), "r"):
			tally.RepYeas += party.YeaTotal
			tally.RepNays += party.NayTotal
		case strings.HasPrefix(strings.ToLower(name), "d"):
			tally.DemYeas += party.YeaTotal
			tally.DemNays += party.NayTotal
		}
	}
	return tally, nil
}

func (c *Client) billPath(ref billnum.Ref, suffix string) string {
	return fmt.Sprintf("/bill/%d/%s/%s%s", c.congress, ref.Type, ref.Number, suffix)
}

func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
