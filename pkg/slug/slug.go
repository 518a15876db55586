package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Option func(*config)

type config struct {
	maxLength    int
	separator    string
	replacements map[string]string
	suffixLength int
}

// MaxLength truncates the slug to n runes. Zero means no limit.
func MaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// Separator replaces the default "-" between words.
func Separator(s string) Option {
	return func(c *config) { c.separator = s }
}

// Replace applies string replacements before slugging, for example
// {"&": "and"}.
func Replace(replacements map[string]string) Option {
	return func(c *config) { c.replacements = replacements }
}

// WithSuffix appends a random lowercase alphanumeric suffix of length n,
// shortening the slug when needed to honour MaxLength.
func WithSuffix(n int) Option {
	return func(c *config) { c.suffixLength = n }
}

// Letters and ligatures that do not decompose into a base letter plus marks.
var foldExtra = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "ae", "œ", "oe", "Œ", "oe",
	"ø", "o", "Ø", "o", "ł", "l", "Ł", "l", "đ", "d", "Đ", "d",
)

// Make returns a lowercase ASCII slug of s. Diacritics are folded to their
// base letters and every other run of non-alphanumeric characters becomes a
// single separator.
func Make(s string, opts ...Option) string {
	cfg := config{separator: "-"}
	for _, opt := range opts {
		opt(&cfg)
	}

	for old, repl := range cfg.replacements {
		s = strings.ReplaceAll(s, old, " "+repl+" ")
	}
	s = fold(s)

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	out := b.String()

	limit := cfg.maxLength
	if cfg.suffixLength > 0 && limit > 0 {
		limit -= cfg.suffixLength + len(cfg.separator)
	}
	if cfg.maxLength > 0 {
		out = truncate(out, max(limit, 0), cfg.separator)
	}

	if cfg.suffixLength > 0 {
		n := cfg.suffixLength
		if cfg.maxLength > 0 {
			n = min(n, cfg.maxLength)
		}
		suffix := randomSuffix(n)
		if out == "" {
			return suffix
		}
		return out + cfg.separator + suffix
	}
	return out
}

func fold(s string) string {
	s = foldExtra.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

// truncate cuts s to at most n bytes and drops a dangling separator. The slug
// is ASCII at this point, so bytes and runes coincide.
func truncate(s string, n int, sep string) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for sep != "" && strings.HasSuffix(s, sep) {
		s = strings.TrimSuffix(s, sep)
	}
	return s
}

func randomSuffix(n int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}
