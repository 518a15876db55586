package tenant

import (
	"context"
	"strconv"

	"github.com/travelsuite/tenancy/pkg/slug"
)

// DefaultSuggestions is the number of subdomains SuggestSubdomains returns
// when asked for none.
const DefaultSuggestions = 3

// suggestionWords extend a base name that is taken or too short.
var suggestionWords = []string{"travel", "tours", "trip"}

// SuggestSubdomains proposes up to n available subdomains derived from an
// agency name. Candidates are tried in a fixed order (the plain slug, the
// slug with a travel word, numbered variants) and finally with random
// suffixes. It returns fewer than n only when the name yields nothing usable.
func (d *Directory) SuggestSubdomains(ctx context.Context, name string, n int) ([]string, error) {
	if n <= 0 {
		n = DefaultSuggestions
	}
	base := slug.Make(name, slug.MaxLength(MaxSubdomainLength-8))
	if base == "" {
		return []string{}, nil
	}

	candidates := []string{base}
	for _, w := range suggestionWords {
		candidates = append(candidates, base+"-"+w)
	}
	for i := 2; i <= 9; i++ {
		candidates = append(candidates, base+"-"+strconv.Itoa(i))
	}

	out := make([]string, 0, n)
	seen := make(map[string]struct{}, len(candidates))
	try := func(candidate string) error {
		if _, dup := seen[candidate]; dup || ValidateSubdomain(candidate) != nil {
			return nil
		}
		seen[candidate] = struct{}{}
		ok, err := d.IsSubdomainAvailable(ctx, candidate)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, candidate)
		}
		return nil
	}

	for _, c := range candidates {
		if len(out) == n {
			return out, nil
		}
		if err := try(c); err != nil {
			return nil, err
		}
	}
	for attempt := 0; len(out) < n && attempt < 2*n; attempt++ {
		if err := try(slug.Make(base, slug.WithSuffix(4), slug.MaxLength(MaxSubdomainLength))); err != nil {
			return nil, err
		}
	}
	return out, nil
}
