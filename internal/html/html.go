// Package html renders the final distributable documents.
//
// Composition is plain placeholder substitution over embedded shell
// templates: the caller supplies an ordered script list, a license banner,
// and document metadata, and gets back the full document text. Script order
// is preserved exactly as given; this package never reorders or rewrites
// scripts.
package html

import (
	"embed"
	"strings"
)

//go:embed templates/*
var templates embed.FS

// Inputs for one composed document. Scripts are embedded in order.
type Document struct {
	Title   string
	Lang    string
	Banner  string
	Scripts []string
}

// Renders the standard HTML shell around the document's scripts.
func Compose(doc Document) string {
	return render("templates/shell.html", doc, false)
}

// Renders the XHTML (ePub-compatible) shell around the document's scripts.
// Script bodies are wrapped in CDATA so XML parsing survives raw code.
func ComposeXHTML(doc Document) string {
	return render("templates/shell.xhtml", doc, true)
}

// Renders the iframe test wrapper pointing at an already-built artifact.
func IframeWrapper(title, src string) string {
	return replaceAll("templates/iframe.html", map[string]string{
		"{{TITLE}}": escape(title),
		"{{SRC}}":   src,
	})
}

// Renders the accessibility viewer for a built artifact. The built-mode
// marker tells the viewer it is inspecting a packaged simulation rather
// than a development server.
func AccessibilityViewer(title, src string) string {
	return replaceAll("templates/a11y-view.html", map[string]string{
		"{{TITLE}}": escape(title),
		"{{SRC}}":   src,
		"{{BUILT}}": "true",
	})
}

func render(template string, doc Document, cdata bool) string {
	var scripts strings.Builder
	for _, script := range doc.Scripts {
		scripts.WriteString("<script type=\"text/javascript\">")
		if cdata {
			scripts.WriteString("//<![CDATA[\n")
		}
		scripts.WriteString(script)
		if cdata {
			scripts.WriteString("\n//]]>")
		}
		scripts.WriteString("</script>\n")
	}

	return replaceAll(template, map[string]string{
		"{{BANNER}}":  doc.Banner,
		"{{LANG}}":    doc.Lang,
		"{{TITLE}}":   escape(doc.Title),
		"{{SCRIPTS}}": scripts.String(),
	})
}

func replaceAll(template string, subs map[string]string) string {
	data, err := templates.ReadFile(template)
	if err != nil {
		panic(err) // Embedded templates are part of the binary.
	}

	pairs := make([]string, 0, len(subs)*2)
	for placeholder, value := range subs {
		pairs = append(pairs, placeholder, value)
	}
	return strings.NewReplacer(pairs...).Replace(string(data))
}

// Minimal escaping for text interpolated into markup.
func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
