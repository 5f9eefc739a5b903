package signal

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/veracity/internal/model"
)

// authoritySuffixes are public-sector and academic suffixes scored as primary sources
var authoritySuffixes = []string{".gov", ".edu", ".mil", ".ac.uk", ".gov.uk"}

// AuthorityTable maps a host to a domain trust score
type AuthorityTable struct {
	scores    map[string]float64
	primary   []string
	secondary []string
}

// NewAuthorityTable builds the table from configuration, merging in
// cfg.DomainsFile when set. Entries in the file override DomainScores.
func NewAuthorityTable(cfg model.AuthorityConfig) (*AuthorityTable, error) {
	t := &AuthorityTable{
		scores:    make(map[string]float64, len(cfg.DomainScores)),
		primary:   normalizeDomains(cfg.PrimaryDomains),
		secondary: normalizeDomains(cfg.SecondaryDomains),
	}

	for _, ds := range cfg.DomainScores {
		if err := t.set(ds.Domain, ds.Score); err != nil {
			return nil, err
		}
	}

	if cfg.DomainsFile != "" {
		fromFile, err := LoadDomainScores(cfg.DomainsFile)
		if err != nil {
			return nil, err
		}
		for host, v := range fromFile {
			if err := t.set(host, v); err != nil {
				return nil, fmt.Errorf("%s: %w", cfg.DomainsFile, err)
			}
		}
	}

	return t, nil
}

// LoadDomainScores reads a YAML mapping of host to score
func LoadDomainScores(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read domains file: %w", err)
	}

	var scores map[string]float64
	if err := yaml.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("parse domains file: %w", err)
	}
	return scores, nil
}

func (t *AuthorityTable) set(host string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return fmt.Errorf("domain score for %q out of range: %v", host, v)
	}
	t.scores[normalizeHost(host)] = v
	return nil
}

// Resolve returns the trust score for rawURL and the rule that produced it.
// ok is false when no rule matched and the default was used.
func (t *AuthorityTable) Resolve(rawURL string) (score float64, rule string, ok bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return DefaultDomainTrust, "unparseable URL", false
	}
	host := normalizeHost(parsed.Hostname())

	// Exact host first, then each parent domain
	for h := host; h != ""; h = parentDomain(h) {
		if v, found := t.scores[h]; found {
			return v, "domain score for " + h, true
		}
	}

	if d, found := matchDomain(host, t.primary); found {
		return PrimaryDomainTrust, "primary domain " + d, true
	}
	if d, found := matchDomain(host, t.secondary); found {
		return SecondaryDomainTrust, "secondary domain " + d, true
	}

	for _, suffix := range authoritySuffixes {
		if strings.HasSuffix(host, suffix) || host == suffix[1:] {
			return PrimaryDomainTrust, "authority suffix " + suffix, true
		}
	}

	return DefaultDomainTrust, "no authority rule for " + host, false
}

// DomainTrust scores the URL's host against an AuthorityTable
type DomainTrust struct {
	table *AuthorityTable
}

// NewDomainTrust creates the domain trust provider
func NewDomainTrust(table *AuthorityTable) *DomainTrust {
	return &DomainTrust{table: table}
}

func (p *DomainTrust) Dimension() model.Dimension { return model.DimensionDomainTrust }

func (p *DomainTrust) Score(_ context.Context, in Input) Outcome {
	if p.table == nil {
		return defaulted(DefaultDomainTrust, "no authority table")
	}
	v, rule, ok := p.table.Resolve(in.URL)
	if !ok {
		return defaulted(v, rule)
	}
	return scored(v, rule)
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(host), "."))
	return strings.TrimPrefix(host, "www.")
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		if d = normalizeHost(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}

func parentDomain(host string) string {
	idx := strings.Index(host, ".")
	if idx < 0 {
		return ""
	}
	return host[idx+1:]
}

func matchDomain(host string, domains []string) (string, bool) {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return d, true
		}
	}
	return "", false
}
