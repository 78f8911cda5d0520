// Package mapfile implements the ASCII map-format tokenizer and
// recursive-descent parser, parsing entities of key/value properties and
// brushes, each brush a list of face planes with either Standard or
// Valve-220 texture parameters.
package mapfile

import (
	"math"

	"trenchcore/internal/brush"
	"trenchcore/internal/mathx"
)

// Parser turns a tokenizer into a sequence of Entity values, recovering
// from a bad entity by resuming at the next top-level '{'.
type Parser struct {
	tok        *Tokenizer
	format     brush.TextureFormat
	formatSet  bool
	onProgress func(bytesRead int)
	totalBytes int
}

// NewParser returns a parser over data. onProgress, if non-nil, is invoked
// after each successfully parsed entity with the number of bytes consumed
// so far.
func NewParser(data []byte, onProgress func(bytesRead int)) *Parser {
	return &Parser{tok: NewTokenizer(data), onProgress: onProgress, totalBytes: len(data)}
}

// Parse scans the whole file into a list of entities, recovering from
// individual bad entities rather than aborting the whole file: each
// failed entity contributes its error to the returned slice and parsing
// resumes at the next top-level '{'. Entities that parsed
// successfully, including ones after a recovered failure, are returned.
func (p *Parser) Parse() ([]*Entity, []error) {
	var entities []*Entity
	var errs []error

	for {
		tok, err := p.tok.Peek()
		if err != nil {
			errs = append(errs, err)
			break
		}
		if tok.Kind == TokenEOF {
			break
		}

		entity, err := p.parseEntity()
		if err != nil {
			errs = append(errs, err)
			p.recoverToNextEntity()
			continue
		}
		entities = append(entities, entity)
		if p.onProgress != nil {
			if t, peekErr := p.tok.Peek(); peekErr == nil {
				p.onProgress(t.ByteOffset)
			}
		}
	}

	return entities, errs
}

func (p *Parser) recoverToNextEntity() {
	for {
		tok, err := p.tok.Next()
		if err != nil || tok.Kind == TokenEOF {
			return
		}
		if tok.Kind == TokenBraceOpen {
			p.tok.PushBack(tok)
			return
		}
	}
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

func (p *Parser) parseEntity() (*Entity, error) {
	if _, err := p.expect(TokenBraceOpen); err != nil {
		return nil, err
	}

	entity := &Entity{Properties: make(map[string]string)}

	for {
		tok, err := p.tok.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenString {
			key, value, err := p.parseProperty()
			if err != nil {
				return nil, err
			}
			entity.Properties[key] = value
			continue
		}
		break
	}

	for {
		tok, err := p.tok.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenBraceOpen {
			break
		}
		b, err := p.parseBrush()
		if err != nil {
			return nil, err
		}
		entity.Brushes = append(entity.Brushes, b)
	}

	if _, err := p.expect(TokenBraceClose); err != nil {
		return nil, err
	}
	return entity, nil
}

func (p *Parser) parseProperty() (string, string, error) {
	keyTok, err := p.expect(TokenString)
	if err != nil {
		return "", "", err
	}
	valTok, err := p.expect(TokenString)
	if err != nil {
		return "", "", err
	}
	return keyTok.Lexeme, valTok.Lexeme, nil
}

func (p *Parser) parseBrush() (*Brush, error) {
	if _, err := p.expect(TokenBraceOpen); err != nil {
		return nil, err
	}

	b := &Brush{}
	for {
		tok, err := p.tok.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenParenOpen {
			break
		}
		face, err := p.parseFace()
		if err != nil {
			return nil, err
		}
		b.Faces = append(b.Faces, face)
	}

	if _, err := p.expect(TokenBraceClose); err != nil {
		return nil, err
	}
	return b, nil
}

func (p *Parser) parseFace() (Face, error) {
	p1, err := p.parsePlanePoint()
	if err != nil {
		return Face{}, err
	}
	p2, err := p.parsePlanePoint()
	if err != nil {
		return Face{}, err
	}
	p3, err := p.parsePlanePoint()
	if err != nil {
		return Face{}, err
	}

	texNameTok, err := p.expect(TokenString)
	if err != nil {
		return Face{}, err
	}

	next, err := p.tok.Peek()
	if err != nil {
		return Face{}, err
	}

	var tex brush.TexCoord
	if next.Kind == TokenSBraceOpen {
		if p.formatSet && p.format != brush.FormatValve220 {
			return Face{}, &ErrMixedFormats{Line: next.Line, Column: next.Column}
		}
		p.format = brush.FormatValve220
		p.formatSet = true
		tex, err = p.parseValve220Params()
	} else {
		if p.formatSet && p.format != brush.FormatStandard {
			return Face{}, &ErrMixedFormats{Line: next.Line, Column: next.Column}
		}
		p.format = brush.FormatStandard
		p.formatSet = true
		tex, err = p.parseStandardParams()
	}
	if err != nil {
		return Face{}, err
	}
	tex.Name = texNameTok.Lexeme

	return Face{P1: p1, P2: p2, P3: p3, Texture: texNameTok.Lexeme, Tex: tex}, nil
}

func (p *Parser) parsePlanePoint() (mathx.Vec3, error) {
	if _, err := p.expect(TokenParenOpen); err != nil {
		return mathx.Vec3{}, err
	}
	x, err := p.parseNumber()
	if err != nil {
		return mathx.Vec3{}, err
	}
	y, err := p.parseNumber()
	if err != nil {
		return mathx.Vec3{}, err
	}
	z, err := p.parseNumber()
	if err != nil {
		return mathx.Vec3{}, err
	}
	if _, err := p.expect(TokenParenClose); err != nil {
		return mathx.Vec3{}, err
	}
	return mathx.Vec3{x, y, z}, nil
}

func (p *Parser) parseNumber() (float64, error) {
	tok, err := p.tok.Next()
	if err != nil {
		return 0, err
	}
	if tok.Kind != TokenInteger && tok.Kind != TokenFraction {
		return 0, &ParseError{Line: tok.Line, Column: tok.Column, Got: tok.Kind.String(), Expected: "number"}
	}
	return parseFloatLexeme(tok.Lexeme), nil
}

func parseFloatLexeme(s string) float64 {
	var v float64
	neg := false
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		v = v*10 + float64(s[i]-'0')
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		frac := 0.1
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			v += float64(s[i]-'0') * frac
			frac /= 10
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		expNeg := false
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			expNeg = s[i] == '-'
			i++
		}
		exp := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			exp = exp*10 + int(s[i]-'0')
			i++
		}
		if expNeg {
			exp = -exp
		}
		v *= math.Pow(10, float64(exp))
	}
	if neg {
		v = -v
	}
	return v
}

// parseStandardParams reads "xoff yoff rot xs ys". Integer texture offsets
// are silently rounded.
func (p *Parser) parseStandardParams() (brush.TexCoord, error) {
	xoff, err := p.parseNumber()
	if err != nil {
		return brush.TexCoord{}, err
	}
	yoff, err := p.parseNumber()
	if err != nil {
		return brush.TexCoord{}, err
	}
	rot, err := p.parseNumber()
	if err != nil {
		return brush.TexCoord{}, err
	}
	xs, err := p.parseNumber()
	if err != nil {
		return brush.TexCoord{}, err
	}
	ys, err := p.parseNumber()
	if err != nil {
		return brush.TexCoord{}, err
	}
	return brush.TexCoord{
		Format:  brush.FormatStandard,
		XOffset: math.Round(xoff),
		YOffset: math.Round(yoff),
		Rotation: rot,
		XScale:  xs,
		YScale:  ys,
	}, nil
}

// parseValve220Params reads "[ax ay az off] [bx by bz off] rot xs ys".
func (p *Parser) parseValve220Params() (brush.TexCoord, error) {
	xAxis, xOff, err := p.parseValveAxis()
	if err != nil {
		return brush.TexCoord{}, err
	}
	yAxis, yOff, err := p.parseValveAxis()
	if err != nil {
		return brush.TexCoord{}, err
	}
	rot, err := p.parseNumber()
	if err != nil {
		return brush.TexCoord{}, err
	}
	xs, err := p.parseNumber()
	if err != nil {
		return brush.TexCoord{}, err
	}
	ys, err := p.parseNumber()
	if err != nil {
		return brush.TexCoord{}, err
	}
	return brush.TexCoord{
		Format:            brush.FormatValve220,
		ValveXAxis:        xAxis,
		ValveYAxis:        yAxis,
		ValveXAxisOffset:  xOff,
		ValveYAxisOffset:  yOff,
		Rotation:          rot,
		XScale:            xs,
		YScale:            ys,
	}, nil
}

func (p *Parser) parseValveAxis() (mathx.Vec3, float64, error) {
	if _, err := p.expect(TokenSBraceOpen); err != nil {
		return mathx.Vec3{}, 0, err
	}
	x, err := p.parseNumber()
	if err != nil {
		return mathx.Vec3{}, 0, err
	}
	y, err := p.parseNumber()
	if err != nil {
		return mathx.Vec3{}, 0, err
	}
	z, err := p.parseNumber()
	if err != nil {
		return mathx.Vec3{}, 0, err
	}
	off, err := p.parseNumber()
	if err != nil {
		return mathx.Vec3{}, 0, err
	}
	if _, err := p.expect(TokenSBraceClose); err != nil {
		return mathx.Vec3{}, 0, err
	}
	return mathx.Vec3{x, y, z}, off, nil
}
