package build

import (
	"encoding/json"
	"fmt"

	"github.com/simfoundry/simpack/internal/html"
	"github.com/simfoundry/simpack/internal/locale"
)

// Shared string-accessor script. Embedded ahead of the main code artifact,
// which reads every translated string through it at startup. Also honors a
// ?locale= query parameter when the requested locale's table is embedded.
const stringAccessorScript = `(function() {
  var match = /[?&]locale=([^&]+)/.exec(window.location.search);
  if (match && window.simEnv.strings[decodeURIComponent(match[1])]) {
    window.simEnv.locale = decodeURIComponent(match[1]);
  }
  window.simEnv.getString = function(key) {
    var table = window.simEnv.strings[window.simEnv.locale] || {};
    if (Object.prototype.hasOwnProperty.call(table, key)) {
      return table[key];
    }
    return (window.simEnv.strings["en"] || {})[key];
  };
})();`

// Initialization payload embedded as the first script of every artifact.
// Field order is fixed by the struct, so identical builds serialize
// identically.
type initPayload struct {
	Simulation     string             `json:"simulation"`
	Version        string             `json:"version"`
	Brand          string             `json:"brand"`
	Locale         string             `json:"locale"`
	AllLocales     bool               `json:"allLocales"`
	Debug          bool               `json:"debug"`
	Instrumented   bool               `json:"instrumented"`
	BuildTimestamp string             `json:"buildTimestamp"`
	Strings        locale.Tables      `json:"strings"`
	Dependencies   json.RawMessage    `json:"dependencies"`
	LicenseEntries map[string]license `json:"licenseEntries"`
}

// Builds the fixed, ordered script list for one composed artifact and hands
// it to the packaging templates.
//
// Order is load-bearing: the initialization and splash scripts define the
// globals later scripts reference, and the string accessor must precede the
// main code artifact.
func (p *pipeline) compose(target outputTarget, xhtml bool) (string, error) {
	init, err := p.initScript(target)
	if err != nil {
		return "", err
	}

	splash := p.frags.SplashProduction
	preloads := p.frags.Production
	code := p.production
	if target.debug {
		splash = p.frags.SplashDebug
		preloads = p.frags.Debug
		code = p.debug
	}

	scripts := make([]string, 0, len(preloads)+5)
	scripts = append(scripts, init, splash, p.frags.Mipmaps)
	scripts = append(scripts, preloads...)
	scripts = append(scripts, stringAccessorScript, code)

	doc := html.Document{
		Title:   p.title,
		Lang:    documentLang(target.locale),
		Banner:  p.banner,
		Scripts: scripts,
	}
	if xhtml {
		return html.ComposeXHTML(doc), nil
	}
	return html.Compose(doc), nil
}

// Renders the initialization script for one artifact.
//
// A fixed-locale artifact embeds its own strings plus the fallback locale;
// an all-locales artifact embeds every resolved table. The dependency block
// is the same bytes captured once for the whole build, so it is identical
// across artifacts and to dependencies.json.
func (p *pipeline) initScript(target outputTarget) (string, error) {
	payload := initPayload{
		Simulation:     p.req.Target,
		Version:        p.meta.Version,
		Brand:          p.req.Brand.String(),
		Locale:         target.locale,
		AllLocales:     target.locale == "all",
		Debug:          target.debug,
		Instrumented:   p.req.Instrument,
		BuildTimestamp: p.timestamp,
		Strings:        p.embeddedStrings(target),
		Dependencies:   p.manifestJSON,
		LicenseEntries: p.licenses,
	}

	if payload.AllLocales {
		payload.Locale = locale.Fallback
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("init script: %w", err)
	}
	return fmt.Sprintf("window.simEnv = %s;", encoded), nil
}

func (p *pipeline) embeddedStrings(target outputTarget) locale.Tables {
	if target.locale == "all" {
		return p.strings
	}

	tables := locale.Tables{locale.Fallback: p.strings[locale.Fallback]}
	if table, ok := p.strings[target.locale]; ok {
		tables[target.locale] = table
	}
	return tables
}

// HTML lang attribute for an artifact. The all-locales artifact starts in
// the fallback locale.
func documentLang(code string) string {
	if code == "all" {
		return locale.Fallback
	}
	return code
}
