// Package i18n renders user-facing game messages (robot anomalies and word
// rejection reasons) in the player's language.
//
// Catalogs are embedded YAML files under locales/, one per language, and are
// loaded into an x/text message catalog. Keys are stable identifiers such as
// "robot.boundary"; message strings use explicit argument indexes so each
// language can drop or reorder arguments.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/games/apps/go-server/internal/chain"
	"github.com/robalobadob/games/apps/go-server/internal/robot"
)

// LangParam is the query parameter that overrides Accept-Language.
const LangParam = "lang"

//go:embed locales/*.yaml
var embedded embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale.
type Bundle struct {
	cat       *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
	fallback  language.Tag
}

// Load reads the embedded catalogs. fallback names the language used when
// nothing in the request matches; it must be one of the loaded locales.
func Load(fallback string) (*Bundle, error) {
	return LoadFS(embedded, fallback)
}

// LoadFS reads locales/*.yaml from fsys.
func LoadFS(fsys fs.FS, fallback string) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	b := &Bundle{cat: catalog.NewBuilder()}
	for _, p := range paths {
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		var lf localeFile
		if err := yaml.Unmarshal(raw, &lf); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
		locale := strings.TrimSpace(lf.Locale)
		if locale == "" {
			locale = strings.TrimSuffix(path.Base(p), path.Ext(p))
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		for key, msg := range lf.Messages {
			if err := b.cat.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
		b.supported = append(b.supported, tag)
	}

	fb, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("parse fallback %q: %w", fallback, err)
	}
	found := false
	for i, t := range b.supported {
		if t == fb {
			// the matcher prefers its first entry when nothing matches
			b.supported[0], b.supported[i] = b.supported[i], b.supported[0]
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("fallback locale %q not loaded", fallback)
	}
	b.fallback = fb
	b.matcher = language.NewMatcher(b.supported)
	return b, nil
}

// Supported returns the loaded languages, fallback first.
func (b *Bundle) Supported() []language.Tag {
	return append([]language.Tag(nil), b.supported...)
}

// Match picks the best supported language for a list of preferences. Each
// entry may be a single tag ("es") or a full Accept-Language header.
func (b *Bundle) Match(prefs ...string) language.Tag {
	if tag, ok := b.match(prefs...); ok {
		return tag
	}
	return b.fallback
}

func (b *Bundle) match(prefs ...string) (language.Tag, bool) {
	var tags []language.Tag
	for _, p := range prefs {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return language.Und, false
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return language.Und, false
	}
	return b.supported[idx], true
}

// Resolve chooses the language for r: ?lang= first, then Accept-Language,
// then the fallback.
func (b *Bundle) Resolve(r *http.Request) language.Tag {
	if r == nil {
		return b.fallback
	}
	if tag, ok := b.match(r.URL.Query().Get(LangParam)); ok {
		return tag
	}
	return b.Match(r.Header.Get("Accept-Language"))
}

// Translator returns a message printer bound to tag.
func (b *Bundle) Translator(tag language.Tag) *Translator {
	return &Translator{tag: tag, p: message.NewPrinter(tag, message.Catalog(b.cat))}
}

// Translator renders domain values as localized strings. Not safe for
// concurrent use; create one per request.
type Translator struct {
	tag language.Tag
	p   *message.Printer
}

// Tag is the language this translator renders.
func (t *Translator) Tag() language.Tag { return t.tag }

// Heading returns the localized heading name.
func (t *Translator) Heading(h robot.Heading) string {
	return t.p.Sprintf("heading." + h.String())
}

// Anomaly renders one robot anomaly.
func (t *Translator) Anomaly(a robot.Anomaly) string {
	switch a.Kind {
	case robot.AnomalyBoundary:
		return t.p.Sprintf("robot.boundary", t.Heading(a.Heading))
	case robot.AnomalyUnknownCommand:
		return t.p.Sprintf("robot.unknown_command", a.Token)
	default:
		return string(a.Kind)
	}
}

// Anomalies renders a list, preserving order. Never returns nil.
func (t *Translator) Anomalies(as []robot.Anomaly) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, t.Anomaly(a))
	}
	return out
}

// Reason renders a rejection reason. required is the letter that was
// demanded and word the normalized candidate; languages use either, both or
// neither.
func (t *Translator) Reason(r chain.Reason, required, word string) string {
	if r == chain.ReasonNone {
		return ""
	}
	return t.p.Sprintf("chain."+string(r), required, word)
}
