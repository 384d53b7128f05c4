package badgerindex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/poiesic/tasklens/backend"
)

// The keyword query grammar, recursive descent:
//
//	expr    := or
//	or      := and { "OR" and }
//	and     := unary { "AND" unary }
//	unary   := "NOT" unary | primary
//	primary := "(" expr ")"
//	         | "TASK"
//	         | "FROM" string | "NOTE" string
//	         | "TAG" hashtag | "PAGETAG" hashtag
//
// Keywords are case-insensitive; hashtags are written bare: TAG #urgent.

type predicate func(rec backend.RawRecord) bool

type tokenKind int

const (
	tokKeyword tokenKind = iota
	tokString
	tokHashtag
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	text string
}

func lex(query string) ([]token, error) {
	var toks []token
	runes := []rune(query)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen})
			i++
		case r == '"':
			j := i + 1
			for j < len(runes) && runes[j] != '"' {
				if runes[j] == '\\' {
					j++
				}
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("%w: unterminated string", backend.ErrMalformedQuery)
			}
			lit, err := strconv.Unquote(string(runes[i : j+1]))
			if err != nil {
				return nil, fmt.Errorf("%w: bad string literal", backend.ErrMalformedQuery)
			}
			toks = append(toks, token{kind: tokString, text: lit})
			i = j + 1
		case r == '#':
			j := i + 1
			for j < len(runes) && !unicode.IsSpace(runes[j]) && runes[j] != ')' && runes[j] != '(' {
				j++
			}
			if j == i+1 {
				return nil, fmt.Errorf("%w: empty hashtag", backend.ErrMalformedQuery)
			}
			toks = append(toks, token{kind: tokHashtag, text: string(runes[i+1 : j])})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			toks = append(toks, token{kind: tokKeyword, text: strings.ToUpper(string(runes[i:j]))})
			i = j
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", backend.ErrMalformedQuery, string(r))
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

type parser struct {
	toks     []token
	pos      int
	pageTags map[string][]string
}

// parseQuery compiles a query string into a predicate over raw records.
func parseQuery(query string, pageTags map[string][]string) (predicate, error) {
	toks, err := lex(query)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, pageTags: pageTags}
	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("%w: trailing input", backend.ErrMalformedQuery)
	}
	return pred, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) atKeyword(word string) bool {
	t := p.peek()
	return t.kind == tokKeyword && t.text == word
}

func (p *parser) parseOr() (predicate, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("OR") {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l, r := left, right
		left = func(rec backend.RawRecord) bool { return l(rec) || r(rec) }
	}
	return left, nil
}

func (p *parser) parseAnd() (predicate, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("AND") {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l, r := left, right
		left = func(rec backend.RawRecord) bool { return l(rec) && r(rec) }
	}
	return left, nil
}

func (p *parser) parseUnary() (predicate, error) {
	if p.atKeyword("NOT") {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return func(rec backend.RawRecord) bool { return !inner(rec) }, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (predicate, error) {
	t := p.peek()
	if t.kind == tokLParen {
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, fmt.Errorf("%w: missing closing parenthesis", backend.ErrMalformedQuery)
		}
		return inner, nil
	}
	if t.kind != tokKeyword {
		return nil, fmt.Errorf("%w: expected predicate", backend.ErrMalformedQuery)
	}

	word := p.next().text
	switch word {
	case "TASK":
		return func(backend.RawRecord) bool { return true }, nil
	case "FROM":
		arg, err := p.stringArg(word)
		if err != nil {
			return nil, err
		}
		return func(rec backend.RawRecord) bool { return backend.PathInFolder(rec.Path, arg) }, nil
	case "NOTE":
		arg, err := p.stringArg(word)
		if err != nil {
			return nil, err
		}
		return func(rec backend.RawRecord) bool { return backend.PathMatchesNote(rec.Path, arg) }, nil
	case "TAG":
		arg, err := p.hashtagArg(word)
		if err != nil {
			return nil, err
		}
		return func(rec backend.RawRecord) bool { return backend.TagsContain(rec.Tags, arg) }, nil
	case "PAGETAG":
		arg, err := p.hashtagArg(word)
		if err != nil {
			return nil, err
		}
		tags := p.pageTags
		return func(rec backend.RawRecord) bool { return backend.TagsContain(tags[rec.Path], arg) }, nil
	default:
		return nil, fmt.Errorf("%w: unknown keyword %q", backend.ErrMalformedQuery, word)
	}
}

func (p *parser) stringArg(keyword string) (string, error) {
	t := p.next()
	if t.kind != tokString {
		return "", fmt.Errorf("%w: %s requires a quoted argument", backend.ErrMalformedQuery, keyword)
	}
	return t.text, nil
}

func (p *parser) hashtagArg(keyword string) (string, error) {
	t := p.next()
	if t.kind != tokHashtag {
		return "", fmt.Errorf("%w: %s requires a hashtag argument", backend.ErrMalformedQuery, keyword)
	}
	return t.text, nil
}
