// Package css keeps inline CSS produced from untrusted block style attributes
// safe to put into an HTML style attribute.
package css

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

var (
	ErrEmpty         = errors.New("empty declaration")
	ErrMalformed     = errors.New("malformed declaration")
	ErrCharacter     = errors.New("disallowed character")
	ErrProperty      = errors.New("property is not allowed")
	ErrFunction      = errors.New("function is not allowed")
	ErrToken         = errors.New("disallowed token")
	ErrURL           = errors.New("url is not allowed")
	forbiddenSymbols = `\&={}<>;`

	// html.EscapeString uses numeric references for quotes, esc_html does not
	quoteEntities = strings.NewReplacer("&#34;", "&quot;", "&#39;", "&#039;")
)

// Filterer returns safe form of a single "property: value" declaration or
// empty string when declaration must not be emitted.
type Filterer interface {
	Filter(declaration string) string
}

// Sanitizer checks single CSS declarations against allow-list policy.
// It is safe for concurrent use once created.
type Sanitizer struct {
	log        *zap.Logger
	properties map[string]bool
	functions  map[string]bool
	protocols  map[string]bool
}

type SanitizerOption func(*Sanitizer)

// WithExtraProperties adds properties to the allow-list.
func WithExtraProperties(props ...string) SanitizerOption {
	return func(s *Sanitizer) {
		for _, p := range props {
			s.properties[strings.ToLower(strings.TrimSpace(p))] = true
		}
	}
}

// WithExtraFunctions allows additional CSS functions in any property value.
func WithExtraFunctions(names ...string) SanitizerOption {
	return func(s *Sanitizer) {
		for _, n := range names {
			s.functions[strings.ToLower(strings.TrimSpace(n))] = true
		}
	}
}

// WithURLProtocols replaces set of protocols allowed in url() references.
func WithURLProtocols(protocols ...string) SanitizerOption {
	return func(s *Sanitizer) {
		s.protocols = make(map[string]bool, len(protocols))
		for _, p := range protocols {
			s.protocols[strings.ToLower(strings.TrimSpace(p))] = true
		}
	}
}

// NewSanitizer creates a new declaration sanitizer.
func NewSanitizer(log *zap.Logger, opts ...SanitizerOption) *Sanitizer {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Sanitizer{
		log:        log.Named("css-sanitizer"),
		properties: set(safeProperties, urlProperties),
		functions:  set(defaultFunctions),
		protocols:  set(defaultURLProtocols),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Filter returns normalized and HTML escaped declaration or empty string when
// declaration was rejected.
func (s *Sanitizer) Filter(declaration string) string {
	out, err := s.Check(declaration)
	if err != nil {
		s.log.Debug("Declaration rejected", zap.String("declaration", declaration), zap.Error(err))
		return ""
	}
	return out
}

// Check is Filter which reports the reason of rejection.
func (s *Sanitizer) Check(declaration string) (string, error) {
	declaration = strings.TrimSpace(declaration)
	if len(declaration) == 0 {
		return "", ErrEmpty
	}
	if i := strings.IndexAny(declaration, forbiddenSymbols); i >= 0 {
		return "", fmt.Errorf("%w: '%c'", ErrCharacter, declaration[i])
	}
	if strings.Contains(declaration, "/*") {
		return "", fmt.Errorf("%w: comment", ErrCharacter)
	}

	name, value, found := strings.Cut(declaration, ":")
	if !found {
		return "", fmt.Errorf("%w: no colon", ErrMalformed)
	}
	property := strings.ToLower(strings.TrimSpace(name))
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return "", fmt.Errorf("%w: empty value", ErrMalformed)
	}
	if !s.properties[property] {
		return "", fmt.Errorf("%w: %s", ErrProperty, property)
	}

	parser := css.NewParser(parse.NewInputString(declaration), true)

	count := 0
loop:
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := parser.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			break loop
		case css.DeclarationGrammar:
			count++
			if count > 1 || string(data) != property {
				return "", fmt.Errorf("%w: unexpected declaration %q", ErrMalformed, string(data))
			}
			if err := s.checkValue(property, parser.Values()); err != nil {
				return "", err
			}
		default:
			return "", fmt.Errorf("%w: unexpected %s", ErrMalformed, gt)
		}
	}
	if count != 1 {
		return "", fmt.Errorf("%w: no declaration", ErrMalformed)
	}
	return escapeHTML(property + ": " + value), nil
}

// escapeHTML escapes text for an HTML attribute the same way WordPress
// esc_html does: &amp; &lt; &gt; &quot; &#039;.
func escapeHTML(s string) string {
	return quoteEntities.Replace(html.EscapeString(s))
}

func (s *Sanitizer) checkValue(property string, tokens []css.Token) error {
	// names of currently open functions, "(" for plain parentheses
	var open []string

	for _, t := range tokens {
		switch t.TokenType {
		case css.FunctionToken:
			name := strings.ToLower(strings.TrimSuffix(string(t.Data), "("))
			if !s.functionAllowed(property, name, open) {
				return fmt.Errorf("%w: %s()", ErrFunction, name)
			}
			open = append(open, name)
		case css.LeftParenthesisToken:
			if len(open) == 0 {
				return fmt.Errorf("%w: '('", ErrToken)
			}
			open = append(open, "(")
		case css.RightParenthesisToken:
			if len(open) == 0 {
				return fmt.Errorf("%w: unbalanced ')'", ErrMalformed)
			}
			open = open[:len(open)-1]
		case css.URLToken:
			if err := s.checkURL(property, string(t.Data)); err != nil {
				return err
			}
		case css.CustomPropertyNameToken:
			if !slices.Contains(open, "var") {
				return fmt.Errorf("%w: %s outside of var()", ErrToken, string(t.Data))
			}
		case css.ErrorToken, css.BadStringToken, css.BadURLToken, css.AtKeywordToken,
			css.CDOToken, css.CDCToken, css.ColonToken, css.SemicolonToken,
			css.LeftBraceToken, css.RightBraceToken, css.LeftBracketToken, css.RightBracketToken,
			css.CommentToken, css.CustomPropertyValueToken:
			return fmt.Errorf("%w: %s", ErrToken, t.TokenType)
		}
	}
	if len(open) != 0 {
		return fmt.Errorf("%w: unclosed %s", ErrMalformed, open[len(open)-1])
	}
	return nil
}

func (s *Sanitizer) functionAllowed(property, name string, open []string) bool {
	if s.functions[name] {
		return true
	}
	if !slices.Contains(gradientProperties, property) {
		return false
	}
	if slices.Contains(gradientFunctions, name) {
		return true
	}
	if slices.Contains(gradientColorFunctions, name) {
		return slices.ContainsFunc(open, func(f string) bool {
			return slices.Contains(gradientFunctions, f)
		})
	}
	return false
}

func (s *Sanitizer) checkURL(property, token string) error {
	if !slices.Contains(urlProperties, property) {
		return fmt.Errorf("%w: for %s", ErrURL, property)
	}
	// url( ... ), closing parenthesis may be missing at the end of input
	ref := strings.TrimSpace(strings.TrimSuffix(token[4:], ")"))
	if len(ref) >= 2 && (ref[0] == '"' || ref[0] == '\'') && ref[len(ref)-1] == ref[0] {
		ref = ref[1 : len(ref)-1]
	}
	u, err := url.Parse(ref)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrURL, err)
	}
	if len(u.Scheme) > 0 && !s.protocols[strings.ToLower(u.Scheme)] {
		return fmt.Errorf("%w: protocol %s", ErrURL, u.Scheme)
	}
	return nil
}
