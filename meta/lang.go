package meta

import (
	"context"
	"strings"
	"sync"
)

//nolint:gochecknoglobals // set once at startup
var (
	messagesOnce sync.Once
	messages     map[string]map[string]string // lang -> code -> message
	defaultLang  = "en"
)

// SetMessages registers the localized messages shown to clients for error codes.
// Only the first call has an effect.
func SetMessages(m map[string]map[string]string, defLang string) {
	messagesOnce.Do(func() {
		messages = m
		if defLang != "" {
			defaultLang = defLang
		}
	})
}

// Tr returns the message for code in lang. It falls back to the default
// language and finally to the code itself.
func Tr(code, lang string) string {
	lang = primaryLang(lang)
	if msg := messages[lang][code]; msg != "" {
		return msg
	}
	if msg := messages[defaultLang][code]; msg != "" {
		return msg
	}
	return code
}

// TrCtx is Tr with the language taken from the request context.
func TrCtx(ctx context.Context, code string) string {
	return Tr(code, Find(ctx, AcceptLanguage))
}

// primaryLang reduces an Accept-Language header such as "ru-RU,ru;q=0.9" to "ru".
func primaryLang(header string) string {
	lang, _, _ := strings.Cut(header, ",")
	lang, _, _ = strings.Cut(lang, ";")
	lang, _, _ = strings.Cut(lang, "-")
	return strings.ToLower(strings.TrimSpace(lang))
}
