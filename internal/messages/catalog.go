package messages

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/muurk/userdeck/internal/logging"
)

// BaseLocale is the source locale. Its catalog defines every message id and
// is the fallback for ids missing from other catalogs.
var BaseLocale = language.English

//go:embed locales/*.toml
var embeddedLocales embed.FS

// Catalog resolves message ids to text for a single locale.
type Catalog struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	tag       language.Tag
}

var (
	bundleOnce    sync.Once
	bundleDefault *i18n.Bundle
	bundleErr     error
)

// LoadEmbedded parses the catalogs compiled into the binary.
func LoadEmbedded() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		bundleDefault, bundleErr = LoadFromFS(embeddedLocales)
	})
	return bundleDefault, bundleErr
}

// LoadFromFS parses every locales/*.toml file in fsys. The file name
// (without extension) is the locale tag.
func LoadFromFS(fsys fs.FS) (*i18n.Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.toml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := i18n.NewBundle(BaseLocale)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	// NewBundle always lists the base tag, so check the parsed files instead.
	hasBase := false
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		mf, err := bundle.ParseMessageFileBytes(data, path.Base(p))
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if mf.Tag == BaseLocale && len(mf.Messages) > 0 {
			hasBase = true
		}
	}
	if !hasBase {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}

	return bundle, nil
}

// Supported returns the locales with a catalog, base locale first.
func Supported() []language.Tag {
	bundle, err := LoadEmbedded()
	if err != nil {
		return []language.Tag{BaseLocale}
	}
	return bundle.LanguageTags()
}

// Match picks the supported locale closest to value ("pt_BR", "pt-br",
// "pt" all select pt-BR). Unknown or empty values select the base locale.
func Match(value string) language.Tag {
	return matchIn(Supported(), value)
}

func matchIn(supported []language.Tag, value string) language.Tag {
	value = strings.TrimSpace(strings.ReplaceAll(value, "_", "-"))
	if value == "" {
		return BaseLocale
	}
	// POSIX locales may carry an encoding suffix (pt_BR.UTF-8)
	if i := strings.IndexByte(value, '.'); i > 0 {
		value = value[:i]
	}

	tag, err := language.Parse(value)
	if err != nil {
		return BaseLocale
	}

	_, index, confidence := language.NewMatcher(supported).Match(tag)
	if confidence == language.No {
		return BaseLocale
	}
	return supported[index]
}

// New returns a catalog for the locale closest to value.
func New(value string) (*Catalog, error) {
	bundle, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}
	return newCatalog(bundle, matchIn(bundle.LanguageTags(), value)), nil
}

// Default returns the base locale catalog. It panics only if the embedded
// catalogs are broken, which the package tests rule out.
func Default() *Catalog {
	c, err := New("")
	if err != nil {
		panic(err)
	}
	return c
}

func newCatalog(bundle *i18n.Bundle, tag language.Tag) *Catalog {
	return &Catalog{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, tag.String(), BaseLocale.String()),
		tag:       tag,
	}
}

// Locale returns the tag the catalog resolved to.
func (c *Catalog) Locale() language.Tag {
	return c.tag
}

// Text resolves id with optional template data. Unknown ids resolve to
// the id itself so a missing translation is visible rather than blank.
func (c *Catalog) Text(id string, data map[string]any) string {
	return c.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
}

// Count resolves a pluralized id. The count is available to the template
// as {{.Count}}.
func (c *Catalog) Count(id string, count int) string {
	return c.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (c *Catalog) localize(cfg *i18n.LocalizeConfig) string {
	msg, err := c.localizer.Localize(cfg)
	if err != nil {
		logging.Debug("Message lookup failed",
			zap.String("id", cfg.MessageID),
			zap.String("locale", c.tag.String()),
			zap.Error(err),
		)
	}
	if msg == "" {
		return cfg.MessageID
	}
	return msg
}
