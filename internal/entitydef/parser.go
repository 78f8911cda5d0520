// Package entitydef implements the entity-definition file tokenizer and
// parser: point/brush/base definitions, spawn-flag bit
// assignment, and the choice/model/default/base property statements.
package entitydef

import (
	"strconv"
	"strings"
)

// Parser turns entity-definition source text into a list of Definitions.
type Parser struct {
	tok *Tokenizer
}

// NewParser returns a parser over data.
func NewParser(data []byte) *Parser {
	return &Parser{tok: NewTokenizer(data)}
}

// Parse scans every "/* ... */" definition in the file.
func (p *Parser) Parse() ([]*Definition, []error) {
	var defs []*Definition
	var errs []error

	for {
		tok, err := p.tok.Next()
		if err != nil {
			errs = append(errs, err)
			break
		}
		switch tok.Kind {
		case TokEOF:
			return defs, errs
		case TokDefStart:
			def, err := p.parseDefinition()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			defs = append(defs, def)
		}
	}
	return defs, errs
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.tok.Next()
	if err != nil {
		return tok, err
	}
	if tok.Kind != kind {
		return tok, &ParseError{Line: tok.Line, Column: tok.Column, Got: tok.Kind.String(), Expected: kind.String()}
	}
	return tok, nil
}

func (p *Parser) parseDefinition() (*Definition, error) {
	nameTok, err := p.expect(TokWord)
	if err != nil {
		return nil, err
	}
	def := &Definition{Name: nameTok.Lexeme, Kind: KindBase}

	next, err := p.tok.Peek()
	if err != nil {
		return nil, err
	}
	if next.Kind == TokParenOpen {
		r, g, b, err := p.parseTriple()
		if err != nil {
			return nil, err
		}
		def.Color = [3]float64{r, g, b}
		def.Kind = KindBrush

		next, err = p.tok.Peek()
		if err != nil {
			return nil, err
		}
		if next.Kind == TokParenOpen {
			min, err := p.parseTriple3()
			if err != nil {
				return nil, err
			}
			max, err := p.parseTriple3()
			if err != nil {
				return nil, err
			}
			def.BoundsMin, def.BoundsMax = min, max
			def.Kind = KindPoint
		}
	}

	for {
		tok, err := p.tok.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokWord {
			break
		}
		p.tok.Next()
		def.Flags = append(def.Flags, SpawnFlag{Name: tok.Lexeme, Bit: 1 << len(def.Flags)})
	}

	if _, err := p.expect(TokNewline); err != nil {
		return nil, err
	}

	next, err = p.tok.Peek()
	if err != nil {
		return nil, err
	}
	if next.Kind == TokBraceOpen {
		p.tok.Next()
		if err := p.parsePropertyBlock(def); err != nil {
			return nil, err
		}
	}

	desc, err := p.parseDescription()
	if err != nil {
		return nil, err
	}
	def.Description = desc
	return def, nil
}

// parsePropertyBlock parses the brace-delimited block of choice/model/
// default/base statements that may follow a definition's flags line.
func (p *Parser) parsePropertyBlock(def *Definition) error {
	for {
		tok, err := p.tok.Peek()
		if err != nil {
			return err
		}
		if tok.Kind == TokNewline {
			p.tok.Next()
			continue
		}
		if tok.Kind != TokWord {
			break
		}
		switch tok.Lexeme {
		case "choice":
			p.tok.Next()
			c, err := p.parseChoice()
			if err != nil {
				return err
			}
			def.Choices = append(def.Choices, c)
		case "model":
			p.tok.Next()
			m, err := p.parseModel()
			if err != nil {
				return err
			}
			def.Models = append(def.Models, m)
		case "default":
			p.tok.Next()
			d, err := p.parseDefault()
			if err != nil {
				return err
			}
			def.Defaults = append(def.Defaults, d)
		case "base":
			p.tok.Next()
			base, err := p.parseBase()
			if err != nil {
				return err
			}
			def.Bases = append(def.Bases, base)
		default:
			return &ParseError{Line: tok.Line, Column: tok.Column, Got: tok.Lexeme, Expected: "choice, model, default or base"}
		}
	}
	_, err := p.expect(TokBraceClose)
	return err
}

func (p *Parser) parseTriple() (float64, float64, float64, error) {
	xyz, err := p.parseTriple3()
	if err != nil {
		return 0, 0, 0, err
	}
	return xyz[0], xyz[1], xyz[2], nil
}

func (p *Parser) parseTriple3() ([3]float64, error) {
	if _, err := p.expect(TokParenOpen); err != nil {
		return [3]float64{}, err
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		n, err := p.parseNumber()
		if err != nil {
			return [3]float64{}, err
		}
		v[i] = n
	}
	if _, err := p.expect(TokParenClose); err != nil {
		return [3]float64{}, err
	}
	return v, nil
}

func (p *Parser) parseNumber() (float64, error) {
	tok, err := p.tok.Next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != TokInteger && tok.Kind != TokFraction {
		return 0, &ParseError{Line: tok.Line, Column: tok.Column, Got: tok.Kind.String(), Expected: "number"}
	}
	f, _ := strconv.ParseFloat(tok.Lexeme, 64)
	return f, nil
}

func (p *Parser) parseChoice() (ChoiceProperty, error) {
	nameTok, err := p.expect(TokString)
	if err != nil {
		return ChoiceProperty{}, err
	}
	if _, err := p.expect(TokParenOpen); err != nil {
		return ChoiceProperty{}, err
	}
	c := ChoiceProperty{Name: nameTok.Lexeme}
	for {
		tok, err := p.tok.Peek()
		if err != nil {
			return ChoiceProperty{}, err
		}
		if tok.Kind == TokNewline {
			p.tok.Next()
			continue
		}
		if tok.Kind != TokParenOpen {
			break
		}
		p.tok.Next()
		valTok, err := p.tok.Next()
		if err != nil {
			return ChoiceProperty{}, err
		}
		if valTok.Kind != TokInteger {
			return ChoiceProperty{}, &ParseError{Line: valTok.Line, Column: valTok.Column, Got: valTok.Kind.String(), Expected: "integer"}
		}
		value, _ := strconv.Atoi(valTok.Lexeme)
		if _, err := p.expect(TokComma); err != nil {
			return ChoiceProperty{}, err
		}
		descTok, err := p.expect(TokString)
		if err != nil {
			return ChoiceProperty{}, err
		}
		if _, err := p.expect(TokParenClose); err != nil {
			return ChoiceProperty{}, err
		}
		c.Options = append(c.Options, ChoiceOption{Value: value, Description: descTok.Lexeme})
	}
	if _, err := p.expect(TokParenClose); err != nil {
		return ChoiceProperty{}, err
	}
	if _, err := p.expect(TokSemicolon); err != nil {
		return ChoiceProperty{}, err
	}
	return c, nil
}

func (p *Parser) parseModel() (ModelProperty, error) {
	if _, err := p.expect(TokParenOpen); err != nil {
		return ModelProperty{}, err
	}
	pathTok, err := p.expect(TokString)
	if err != nil {
		return ModelProperty{}, err
	}
	m := ModelProperty{}
	m.Path, m.Skin, m.HasSkin = splitSkinIndex(pathTok.Lexeme)

	next, err := p.tok.Peek()
	if err != nil {
		return ModelProperty{}, err
	}
	if next.Kind == TokComma {
		p.tok.Next()
		extraTok, err := p.expect(TokString)
		if err != nil {
			return ModelProperty{}, err
		}
		m.Extra = extraTok.Lexeme
		m.HasExtra = true
	}
	if _, err := p.expect(TokParenClose); err != nil {
		return ModelProperty{}, err
	}
	if _, err := p.expect(TokSemicolon); err != nil {
		return ModelProperty{}, err
	}
	return m, nil
}

// splitSkinIndex extracts a trailing ":N" skin index from a model path.
func splitSkinIndex(path string) (string, int, bool) {
	idx := strings.LastIndexByte(path, ':')
	if idx < 0 {
		return path, 0, false
	}
	n, err := strconv.Atoi(path[idx+1:])
	if err != nil {
		return path, 0, false
	}
	return path[:idx], n, true
}

func (p *Parser) parseDefault() (DefaultProperty, error) {
	if _, err := p.expect(TokParenOpen); err != nil {
		return DefaultProperty{}, err
	}
	nameTok, err := p.expect(TokString)
	if err != nil {
		return DefaultProperty{}, err
	}
	if _, err := p.expect(TokComma); err != nil {
		return DefaultProperty{}, err
	}
	valTok, err := p.expect(TokString)
	if err != nil {
		return DefaultProperty{}, err
	}
	if _, err := p.expect(TokParenClose); err != nil {
		return DefaultProperty{}, err
	}
	if _, err := p.expect(TokSemicolon); err != nil {
		return DefaultProperty{}, err
	}
	return DefaultProperty{Name: nameTok.Lexeme, Value: valTok.Lexeme}, nil
}

func (p *Parser) parseBase() (string, error) {
	if _, err := p.expect(TokParenOpen); err != nil {
		return "", err
	}
	nameTok, err := p.expect(TokString)
	if err != nil {
		return "", err
	}
	if _, err := p.expect(TokParenClose); err != nil {
		return "", err
	}
	if _, err := p.expect(TokSemicolon); err != nil {
		return "", err
	}
	return nameTok.Lexeme, nil
}

func (p *Parser) parseDescription() (string, error) {
	var sb strings.Builder
	for {
		tok, err := p.tok.Next()
		if err != nil {
			return "", err
		}
		if tok.Kind == TokDefEnd || tok.Kind == TokEOF {
			break
		}
		if tok.Kind == TokNewline {
			sb.WriteByte('\n')
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Lexeme)
	}
	return strings.TrimSpace(sb.String()), nil
}
