package memindex

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/poiesic/tasklens/backend"
)

// The query grammar, recursive descent:
//
//	expr    := or
//	or      := and { "or" and }
//	and     := unary { "and" unary }
//	unary   := "!" unary | primary
//	primary := "(" expr ")" | call
//	call    := ident "(" [ string ] ")"
//
// Calls: tasks(), path("prefix"), note("name"), tag("t"), pagetag("t").

// predicate decides membership of one raw record.
type predicate func(rec backend.RawRecord) bool

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokLParen
	tokRParen
	tokBang
	tokAnd
	tokOr
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
		case r == '!':
			toks = append(toks, token{kind: tokBang})
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
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j])) {
				j++
			}
			word := string(runes[i:j])
			switch strings.ToLower(word) {
			case "and":
				toks = append(toks, token{kind: tokAnd})
			case "or":
				toks = append(toks, token{kind: tokOr})
			default:
				toks = append(toks, token{kind: tokIdent, text: word})
			}
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
// pageTags supplies document tags for the pagetag() call.
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

func (p *parser) parseOr() (predicate, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
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
	for p.peek().kind == tokAnd {
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
	if p.peek().kind == tokBang {
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
	switch p.peek().kind {
	case tokLParen:
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.next().kind != tokRParen {
			return nil, fmt.Errorf("%w: missing closing parenthesis", backend.ErrMalformedQuery)
		}
		return inner, nil
	case tokIdent:
		return p.parseCall()
	default:
		return nil, fmt.Errorf("%w: expected predicate", backend.ErrMalformedQuery)
	}
}

func (p *parser) parseCall() (predicate, error) {
	name := strings.ToLower(p.next().text)
	if p.next().kind != tokLParen {
		return nil, fmt.Errorf("%w: expected '(' after %s", backend.ErrMalformedQuery, name)
	}
	var arg string
	var hasArg bool
	if p.peek().kind == tokString {
		arg = p.next().text
		hasArg = true
	}
	if p.next().kind != tokRParen {
		return nil, fmt.Errorf("%w: expected ')' after %s argument", backend.ErrMalformedQuery, name)
	}

	switch name {
	case "tasks":
		if hasArg {
			return nil, fmt.Errorf("%w: tasks() takes no argument", backend.ErrMalformedQuery)
		}
		return func(backend.RawRecord) bool { return true }, nil
	case "path":
		if !hasArg {
			return nil, fmt.Errorf("%w: path() requires an argument", backend.ErrMalformedQuery)
		}
		return func(rec backend.RawRecord) bool { return backend.PathInFolder(rec.Path, arg) }, nil
	case "note":
		if !hasArg {
			return nil, fmt.Errorf("%w: note() requires an argument", backend.ErrMalformedQuery)
		}
		return func(rec backend.RawRecord) bool { return backend.PathMatchesNote(rec.Path, arg) }, nil
	case "tag":
		if !hasArg {
			return nil, fmt.Errorf("%w: tag() requires an argument", backend.ErrMalformedQuery)
		}
		return func(rec backend.RawRecord) bool { return backend.TagsContain(rec.Tags, arg) }, nil
	case "pagetag":
		if !hasArg {
			return nil, fmt.Errorf("%w: pagetag() requires an argument", backend.ErrMalformedQuery)
		}
		tags := p.pageTags
		return func(rec backend.RawRecord) bool { return backend.TagsContain(tags[rec.Path], arg) }, nil
	default:
		return nil, fmt.Errorf("%w: unknown predicate %q", backend.ErrMalformedQuery, name)
	}
}
