package calc

import (
	"errors"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Token is a lexical unit of an expression.
type Token struct {
	// Kind is the type of the token.
	Kind TokenKind
	// Value is the value of a TokenNumber. It is zero for other kinds.
	Value float64
	// Text is the source text of the token. It is empty for TokenEOF.
	Text string
	// Pos is the byte offset of the start of the token in the source.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind identifies the type of a token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenNumber is a decimal number literal.
	TokenNumber
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenLParen
	TokenRParen
	// TokenEOF marks the end of the input. It is always the last token.
	TokenEOF
)

var tokenNames = [...]string{
	tokenNone:   "NONE",
	TokenNumber: "NUMBER",
	TokenPlus:   "PLUS",
	TokenMinus:  "MINUS",
	TokenStar:   "STAR",
	TokenSlash:  "SLASH",
	TokenLParen: "LPAREN",
	TokenRParen: "RPAREN",
	TokenEOF:    "END_OF_INPUT",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// Tokenize scans an entire expression. The result always ends with exactly
// one TokenEOF. Scanning stops at the first invalid token, in which case the
// error is a *LexError.
func Tokenize(src string) ([]Token, error) {
	l := lexer{src: src}
	return l.scan()
}

// lexer holds the cursor of a single call to Tokenize.
type lexer struct {
	src  string
	pos  int
	toks []Token
}

func (l *lexer) scan() ([]Token, error) {
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		switch {
		case unicode.IsSpace(r):
			l.pos += sz
		case isDigit(r), r == '.' && l.digitAt(l.pos+1):
			if err := l.scanNum(); err != nil {
				return nil, err
			}
		default:
			kind := opKind(r)
			if kind == tokenNone {
				return nil, l.error(l.pos, "unexpected character: "+string(r))
			}
			l.emit(kind, l.pos, l.pos+sz)
		}
	}
	l.toks = append(l.toks, Token{Kind: TokenEOF, Pos: l.pos})
	return l.toks, nil
}

// scanNum scans a number literal starting at the cursor: digits with at most
// one period.
func (l *lexer) scanNum() error {
	start := l.pos
	dot := false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == '.' {
			if dot {
				return l.error(l.pos, "multiple decimal points")
			}
			dot = true
		} else if !isDigit(rune(c)) {
			break
		}
		l.pos++
	}
	text := l.src[start:l.pos]
	if text == "" || text == "." {
		return l.error(start, "invalid number")
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		// Literals are only digits and one period, which always parse.
		panic("calc: invalid number literal " + strconv.Quote(text) + ": " + err.Error())
	}
	// Out-of-range literals saturate to infinity.
	l.toks = append(l.toks, Token{Kind: TokenNumber, Value: v, Text: text, Pos: start})
	return nil
}

// emit appends a token spanning src[start:end] and moves the cursor to end.
func (l *lexer) emit(kind TokenKind, start, end int) {
	l.toks = append(l.toks, Token{Kind: kind, Text: l.src[start:end], Pos: start})
	l.pos = end
}

// digitAt reports whether the byte at i is an ASCII digit.
func (l *lexer) digitAt(i int) bool {
	return i < len(l.src) && isDigit(rune(l.src[i]))
}

func (l *lexer) error(pos int, reason string) error {
	return &LexError{Col: pos, Reason: reason}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// opKind gets the token kind for a single-character operator or parenthesis,
// or tokenNone if r is neither.
func opKind(r rune) TokenKind {
	switch r {
	case '+':
		return TokenPlus
	case '-':
		return TokenMinus
	case '*':
		return TokenStar
	case '/':
		return TokenSlash
	case '(':
		return TokenLParen
	case ')':
		return TokenRParen
	default:
		return tokenNone
	}
}
