package calc

// expression = term { ('+' | '-') term }
// term       = factor { ('*' | '/') factor }
// factor     = ('+' | '-') factor | number | '(' expression ')'

// Parse builds the syntax tree for a token sequence as produced by Tokenize.
// If the sequence does not end with TokenEOF, Parse behaves as though one
// followed the last token. Parsing stops at the first error, which is a
// *ParseError.
func Parse(tokens []Token) (Node, error) {
	p := parser{toks: terminate(tokens)}
	n, err := p.expression()
	if err != nil {
		return nil, err
	}
	if tok := p.cur(); tok.Kind != TokenEOF {
		return nil, p.error(TokenEOF.String())
	}
	return n, nil
}

// terminate ensures that tokens ends with TokenEOF.
func terminate(tokens []Token) []Token {
	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == TokenEOF {
		return tokens
	}
	pos := 0
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		pos = last.Pos + len(last.Text)
	}
	r := make([]Token, len(tokens), len(tokens)+1)
	copy(r, tokens)
	return append(r, Token{Kind: TokenEOF, Pos: pos})
}

// parser holds the cursor of a single call to Parse. The token slice always
// ends with TokenEOF, and the cursor never moves past it.
type parser struct {
	toks  []Token
	pos   int
	depth int
}

// maxDepth bounds nested signs and parentheses so that deep input fails
// with an error instead of exhausting the stack.
const maxDepth = 10000

func (p *parser) cur() Token {
	return p.toks[p.pos]
}

// advance moves to the next token. It is the only way the cursor changes.
func (p *parser) advance() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

func (p *parser) expression() (Node, error) {
	n, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.cur()
		var op ArithOp
		switch tok.Kind {
		case TokenPlus:
			op = OpAdd
		case TokenMinus:
			op = OpSub
		default:
			return n, nil
		}
		p.advance()
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		n = &BinaryOp{Op: op, Left: n, Right: rhs, Pos: tok.Pos}
	}
}

func (p *parser) term() (Node, error) {
	n, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.cur()
		var op ArithOp
		switch tok.Kind {
		case TokenStar:
			op = OpMul
		case TokenSlash:
			op = OpDiv
		default:
			return n, nil
		}
		p.advance()
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		n = &BinaryOp{Op: op, Left: n, Right: rhs, Pos: tok.Pos}
	}
}

func (p *parser) factor() (Node, error) {
	tok := p.cur()
	if tok.Kind == TokenPlus || tok.Kind == TokenMinus || tok.Kind == TokenLParen {
		p.depth++
		defer func() { p.depth-- }()
		if p.depth > maxDepth {
			return nil, &ParseError{Col: tok.Pos, Found: tok.Kind, Text: tok.Text, Reason: "expression nested too deeply"}
		}
	}
	switch tok.Kind {
	case TokenPlus, TokenMinus:
		p.advance()
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		sign := SignPlus
		if tok.Kind == TokenMinus {
			sign = SignMinus
		}
		return &UnaryOp{Op: sign, Operand: operand, Pos: tok.Pos}, nil
	case TokenNumber:
		p.advance()
		return &Number{Value: tok.Value, Pos: tok.Pos}, nil
	case TokenLParen:
		p.advance()
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		if p.cur().Kind != TokenRParen {
			return nil, p.error(TokenRParen.String())
		}
		p.advance()
		return n, nil
	default:
		return nil, p.error(factorConstruct)
	}
}

// factorConstruct is the name of the construct the parser expects when it
// needs a number, sign, or parenthesized expression.
const factorConstruct = "factor"

// error creates an error for the current token, which does not match the
// expected construct.
func (p *parser) error(expected string) error {
	tok := p.cur()
	return &ParseError{Col: tok.Pos, Expected: expected, Found: tok.Kind, Text: tok.Text}
}
