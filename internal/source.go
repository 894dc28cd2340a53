package pooltop

import (
	"fmt"
	"net/url"
)

const (
	DEFAULT_API_URL   = "https://np-api.monerod.org"
	DEFAULT_BONUS_URL = "https://bonus-api.monerod.org/2/summary"
	DEFAULT_PRICE_URL = "https://api.coingecko.com/api/v3/coins/markets?vs_currency=USD&ids=monero&order=market_cap_desc&per_page=1&page=1&sparkline=false&price_change_percentage=1h"
)

// Sources holds the remote endpoints the dashboard reads from
type Sources struct {
	API   *url.URL
	Bonus *url.URL
	Price *url.URL
}

// ParseSources validates the three base URLs. Only http and https are accepted.
func ParseSources(apiURL, bonusURL, priceURL string) (Sources, error) {
	var s Sources
	var err error
	if s.API, err = parseHTTPURL("api", apiURL); err != nil {
		return Sources{}, err
	}
	if s.Bonus, err = parseHTTPURL("bonus", bonusURL); err != nil {
		return Sources{}, err
	}
	if s.Price, err = parseHTTPURL("price", priceURL); err != nil {
		return Sources{}, err
	}
	return s, nil
}

func parseHTTPURL(name, raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s url %q: %w", name, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid %s url %q: scheme must be http or https", name, raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid %s url %q: missing host", name, raw)
	}
	return u, nil
}

// endpoint joins path segments onto the API base, escaping each segment
func (s Sources) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return s.API.JoinPath(escaped...).String()
}
