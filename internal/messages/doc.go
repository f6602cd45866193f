// Package messages holds the user-facing text of userdeck.
//
// Catalogs are TOML files under locales/, embedded at build time and parsed
// with go-i18n. English is the base locale; Brazilian Portuguese is also
// shipped. The active locale comes from the ui.locale setting:
//
//	cat, err := messages.New(cfg.UI.Locale)
//	title := cat.Text(messages.UserConfirmTitle, nil)
//	body := cat.Text(messages.UserConfirmBody, map[string]any{"Name": u.Name})
package messages
