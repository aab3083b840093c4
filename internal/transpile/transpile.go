// Package transpile converts modern simulation source into syntax supported
// by the oldest browsers the published simulations still run on.
//
// The target matrix is fixed: transpilation always lowers to the same set of
// browser engines regardless of build flags, so a given input string always
// produces the same output string. Syntactically invalid input is a fatal
// build error.
package transpile

import (
	"errors"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
)

var ErrTransform = errors.New("transpile failed")

// Browser engines the emitted code must parse on. Chrome 51 and Safari 10
// are the floor for the tablet deployments still in the field; IE is gone.
var engines = []api.Engine{
	{Name: api.EngineChrome, Version: "51"},
	{Name: api.EngineFirefox, Version: "54"},
	{Name: api.EngineSafari, Version: "10"},
	{Name: api.EngineEdge, Version: "15"},
	{Name: api.EngineIOS, Version: "10"},
}

// Lowers the given source string to the fixed engine matrix.
//
// Pure and deterministic: no minification, no identifier renaming, no
// side effects. Returns [ErrTransform] wrapping the parser's message when
// the input is not valid source.
func Transform(code string) (string, error) {
	result := api.Transform(code, api.TransformOptions{
		Loader:  api.LoaderJS,
		Engines: engines,
	})
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("%w: %s", ErrTransform, messageText(result.Errors[0]))
	}
	return string(result.Code), nil
}

// Formats an esbuild message with its source location when one is attached.
func messageText(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%s (line %d, column %d)", msg.Text, msg.Location.Line, msg.Location.Column)
}
