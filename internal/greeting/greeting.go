// Package greeting builds the greeting messages served by go-helloapi.
// Everything here is a pure computation: no I/O, no shared state.
package greeting

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// MaxNameLen caps the greeting name path parameter in bytes.
const MaxNameLen = 64

// Greet returns the English greeting. An empty name yields the fixed
// hello-world message, any other name is interpolated unmodified.
func Greet(name string) string {
	if name == "" {
		return "Hello World"
	}
	return fmt.Sprintf("Hello, %s!", name)
}

// supported greeting languages. English must stay first: it is the
// matcher's fallback for clients that send no or unknown Accept-Language.
var supported = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Portuguese,
	language.Italian,
	language.Dutch,
}

// greetWords is indexed in lockstep with supported.
var greetWords = []string{
	"Hello",
	"Hola",
	"Bonjour",
	"Hallo",
	"Olá",
	"Ciao",
	"Hallo",
}

// Greeter localizes the greeting word by Accept-Language matching.
// The name passed by the caller is never translated or altered.
type Greeter struct {
	matcher language.Matcher
}

// NewGreeter returns a Greeter over the built-in language table.
func NewGreeter() *Greeter {
	return &Greeter{matcher: language.NewMatcher(supported)}
}

// GreetIn returns the greeting in the best-matching language for the
// given Accept-Language header value. An empty or unmatched header
// falls back to English, so GreetIn("", name) == Greet(name).
func (g *Greeter) GreetIn(acceptLanguage, name string) string {
	word := greetWords[0]
	if acceptLanguage != "" {
		// the matcher falls back to index 0 (English) for unmatched headers
		_, index := language.MatchStrings(g.matcher, acceptLanguage)
		word = greetWords[index]
	}
	if name == "" {
		return word + " World"
	}
	return fmt.Sprintf("%s, %s!", word, name)
}

// ValidationError reports a malformed path parameter. Handlers surface
// it as HTTP 422.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Reason)
}

// ValidateName checks the greeting name path parameter. Any valid UTF-8
// string up to MaxNameLen bytes passes.
func ValidateName(name string) error {
	if name == "" {
		return &ValidationError{Param: "name", Reason: "must not be empty"}
	}
	if len(name) > MaxNameLen {
		return &ValidationError{Param: "name", Reason: fmt.Sprintf("must not exceed %d bytes", MaxNameLen)}
	}
	if !utf8.ValidString(name) {
		return &ValidationError{Param: "name", Reason: "must be valid UTF-8"}
	}
	return nil
}
