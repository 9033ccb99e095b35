package datasource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/seenimoa/finratios/internal/infra"
	"github.com/seenimoa/finratios/pkg/models"
)

const (
	// DefaultBaseURL is the Yahoo Finance API host serving fundamentals.
	DefaultBaseURL = "https://query2.finance.yahoo.com"

	// DefaultCookieURL hands out the session cookie required for a crumb.
	DefaultCookieURL = "https://fc.yahoo.com"

	// seriesStart is the earliest period requested (1985-08-23).
	seriesStart = 493590046
)

// YFinance implements StatementSource using Yahoo Finance's
// fundamentals-timeseries API.
type YFinance struct {
	client    *http.Client
	baseURL   string
	cookieURL string
	limiter   *infra.RateLimiter
	logger    *zap.Logger
	now       func() time.Time

	session bool
	crumb   string
	ready   bool
}

// Option configures a YFinance source.
type Option func(*YFinance)

// WithBaseURL overrides the API host.
func WithBaseURL(u string) Option {
	return func(y *YFinance) { y.baseURL = strings.TrimRight(u, "/") }
}

// WithCookieURL overrides the session cookie endpoint.
func WithCookieURL(u string) Option {
	return func(y *YFinance) { y.cookieURL = u }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(y *YFinance) { y.client.Timeout = d }
}

// WithRateLimit caps requests per second; 0 disables pacing.
func WithRateLimit(perSecond int) Option {
	return func(y *YFinance) { y.limiter = infra.NewRateLimiter(perSecond) }
}

// WithSession toggles the cookie + crumb handshake.
func WithSession(enabled bool) Option {
	return func(y *YFinance) { y.session = enabled }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(y *YFinance) { y.logger = l }
}

// NewYFinance creates a new Yahoo Finance statement source.
func NewYFinance(opts ...Option) *YFinance {
	jar, _ := cookiejar.New(nil)
	y := &YFinance{
		client:    infra.NewHTTPClient(30*time.Second, jar),
		baseURL:   DefaultBaseURL,
		cookieURL: DefaultCookieURL,
		limiter:   infra.NewRateLimiter(5),
		logger:    zap.NewNop(),
		now:       time.Now,
		session:   true,
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// Name returns the data source name.
func (y *YFinance) Name() string { return "Yahoo Finance" }

// GetStatement returns one annual statement with line items as rows and
// period dates as columns.
func (y *YFinance) GetStatement(ctx context.Context, ticker string, kind models.StatementKind) (*models.Statement, error) {
	keys := statementKeys(kind)
	if len(keys) == 0 {
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}

	y.ensureSession(ctx)

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	data, err := infra.GetBytes(ctx, y.client, y.timeseriesURL(ticker, keys), map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yfinance %s statement %s: %w", kind, ticker, err)
	}

	stmt, err := parseTimeseries(data, ticker, kind)
	if err != nil {
		return nil, fmt.Errorf("yfinance %s statement %s: %w", kind, ticker, err)
	}

	y.logger.Debug("statement fetched",
		zap.String("ticker", ticker),
		zap.String("statement", string(kind)),
		zap.Int("line_items", len(stmt.LineItems)))
	return stmt, nil
}

func (y *YFinance) timeseriesURL(ticker string, keys []string) string {
	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("type", strings.Join(keys, ","))
	q.Set("period1", fmt.Sprint(seriesStart))
	q.Set("period2", fmt.Sprint(y.now().Unix()))
	if y.crumb != "" {
		q.Set("crumb", y.crumb)
	}
	return fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?%s",
		y.baseURL, url.PathEscape(ticker), q.Encode())
}

// ensureSession performs the cookie + crumb handshake once. Failures are
// logged and the fetch continues without a crumb.
func (y *YFinance) ensureSession(ctx context.Context) {
	if !y.session || y.ready {
		return
	}
	y.ready = true

	// The cookie endpoint typically answers 404 while still setting the cookie.
	if body, err := infra.DoGet(ctx, y.client, y.cookieURL, nil); err == nil {
		body.Close()
	} else {
		y.logger.Debug("cookie request", zap.Error(err))
	}

	data, err := infra.GetBytes(ctx, y.client, y.baseURL+"/v1/test/getcrumb", map[string]string{
		"Accept": "text/plain",
	})
	if err != nil {
		y.logger.Warn("crumb unavailable, continuing without it", zap.Error(err))
		return
	}
	crumb := strings.TrimSpace(string(data))
	if crumb == "" || strings.ContainsAny(crumb, "<{ ") {
		y.logger.Warn("unexpected crumb response, continuing without it")
		return
	}
	y.crumb = crumb
}

// parseTimeseries decodes a fundamentals-timeseries response. Each result
// carries one line item under a key named after meta.type[0].
func parseTimeseries(data []byte, ticker string, kind models.StatementKind) (*models.Statement, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("parse JSON: malformed response")
	}

	root := gjson.ParseBytes(data)
	if apiErr := root.Get("timeseries.error"); apiErr.Exists() && apiErr.Type != gjson.Null {
		desc := apiErr.Get("description").String()
		if desc == "" {
			desc = apiErr.Raw
		}
		return nil, fmt.Errorf("yfinance API error: %s", desc)
	}

	results := root.Get("timeseries.result")
	if !results.IsArray() || len(results.Array()) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	stmt := &models.Statement{
		Kind:   kind,
		Ticker: ticker,
		Values: make(map[string][]models.LineItemValue),
	}
	for _, r := range results.Array() {
		key := r.Get("meta.type.0").String()
		if key == "" {
			continue
		}
		var values []models.LineItemValue
		for _, v := range r.Get(gjsonEscape(key)).Array() {
			raw := v.Get("reportedValue.raw")
			if v.Type == gjson.Null || !raw.Exists() {
				continue
			}
			values = append(values, models.LineItemValue{
				AsOfDate: v.Get("asOfDate").String(),
				Currency: v.Get("currencyCode").String(),
				Value:    raw.Float(),
			})
		}
		if len(values) == 0 {
			continue
		}
		label := lineItemLabel(key)
		if _, dup := stmt.Values[label]; !dup {
			stmt.LineItems = append(stmt.LineItems, label)
		}
		stmt.Values[label] = append(stmt.Values[label], values...)
	}

	if len(stmt.LineItems) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, ticker)
	}
	return stmt, nil
}

// gjsonEscape escapes gjson path metacharacters in a literal key.
func gjsonEscape(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
