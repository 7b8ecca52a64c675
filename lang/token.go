package lang

//go:generate go tool stringer --linecomment --type TokenKind,Operator,Direction --output lang_string.go

import "regexp"

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	TokenPlus   TokenKind = iota // +
	TokenMinus                   // -
	TokenMul                     // *
	TokenDiv                     // /
	TokenName                    // name
	TokenNumber                  // number
	TokenLParen                  // (
	TokenRParen                  // )
)

// Token is a single lexeme of a definition body.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Offset int // byte offset of Lexeme in the body
}

// tokenRules are tried in order at each position. Each pattern captures the
// lexeme in group 1 and consumes the whitespace surrounding it.
var tokenRules = []struct {
	kind    TokenKind
	pattern *regexp.Regexp
}{
	{TokenName, regexp.MustCompile(`^\s*([a-zA-Z]\w*)\s*`)},
	{TokenNumber, regexp.MustCompile(`^\s*((?:\d*\.)?\d+)\s*`)},
	{TokenPlus, regexp.MustCompile(`^\s*(\+)\s*`)},
	{TokenMinus, regexp.MustCompile(`^\s*(-)\s*`)},
	{TokenMul, regexp.MustCompile(`^\s*(\*)\s*`)},
	{TokenDiv, regexp.MustCompile(`^\s*(/)\s*`)},
	{TokenLParen, regexp.MustCompile(`^\s*(\()\s*`)},
	{TokenRParen, regexp.MustCompile(`^\s*(\))\s*`)},
}

// Tokenize splits an expression body into tokens.
// It fails with a [*TokenError] at the first position where no token
// pattern matches.
func Tokenize(body string) ([]Token, error) {
	var tokens []Token

	for pos := 0; pos < len(body); {
		rest := body[pos:]
		matched := false

		for _, rule := range tokenRules {
			loc := rule.pattern.FindStringSubmatchIndex(rest)
			if loc == nil {
				continue
			}

			tokens = append(tokens, Token{
				Kind:   rule.kind,
				Lexeme: rest[loc[2]:loc[3]],
				Offset: pos + loc[2],
			})

			pos += loc[1]
			matched = true

			break
		}

		if !matched {
			return nil, &TokenError{Offset: pos}
		}
	}

	return tokens, nil
}
