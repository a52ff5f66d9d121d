package declarative

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"gosurvey/domain/core"
	"gosurvey/domain/frame"
	"gosurvey/domain/survey"
)

// Filter expressions give survey definition files a small, closed
// predicate language over a single response value:
//
//	value == "N/A"
//	value != 3
//	value >= 2.5
//	value in ["eng", "ops"]
//
// The left side is always the literal word "value". Operators are the
// six comparisons plus "in" with a bracketed list. Literals are quoted
// strings or numbers. Nothing else parses, so definition files cannot
// run code.

type exprOp int

const (
	opEq exprOp = iota
	opNe
	opGt
	opGe
	opLt
	opLe
	opIn
)

type exprToken struct {
	kind string // "word", "op", "string", "number", "lbracket", "rbracket", "comma"
	text string
}

// CompileFilter parses a filter expression into a column filter.
func CompileFilter(input string) (survey.Filter, error) {
	tokens, err := lexFilter(input)
	if err != nil {
		return nil, err
	}
	return parseFilter(input, tokens)
}

func lexFilter(input string) ([]exprToken, error) {
	var tokens []exprToken
	runes := []rune(input)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '[':
			tokens = append(tokens, exprToken{kind: "lbracket"})
			i++
		case r == ']':
			tokens = append(tokens, exprToken{kind: "rbracket"})
			i++
		case r == ',':
			tokens = append(tokens, exprToken{kind: "comma"})
			i++
		case r == '"' || r == '\'':
			quote := r
			j := i + 1
			for j < len(runes) && runes[j] != quote {
				j++
			}
			if j >= len(runes) {
				return nil, core.NewConfigurationError(fmt.Sprintf("unterminated string in filter %q", input))
			}
			tokens = append(tokens, exprToken{kind: "string", text: string(runes[i+1 : j])})
			i = j + 1
		case r == '=' || r == '!' || r == '<' || r == '>':
			j := i + 1
			if j < len(runes) && runes[j] == '=' {
				j++
			}
			tokens = append(tokens, exprToken{kind: "op", text: string(runes[i:j])})
			i = j
		case unicode.IsDigit(r) || r == '-' || r == '.':
			j := i + 1
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.') {
				j++
			}
			text := string(runes[i:j])
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				return nil, core.NewConfigurationError(fmt.Sprintf("bad number %q in filter %q", text, input))
			}
			tokens = append(tokens, exprToken{kind: "number", text: text})
			i = j
		case unicode.IsLetter(r) || r == '_':
			j := i + 1
			for j < len(runes) && (unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j]) || runes[j] == '_') {
				j++
			}
			tokens = append(tokens, exprToken{kind: "word", text: string(runes[i:j])})
			i = j
		default:
			return nil, core.NewConfigurationError(fmt.Sprintf("unexpected character %q in filter %q", string(r), input))
		}
	}
	return tokens, nil
}

func parseFilter(input string, tokens []exprToken) (survey.Filter, error) {
	bad := func(reason string) error {
		return core.NewConfigurationError(fmt.Sprintf("%s in filter %q", reason, input))
	}

	if len(tokens) < 3 || tokens[0].kind != "word" || tokens[0].text != "value" {
		return nil, bad("expression must start with 'value'")
	}

	head := tokens[1]
	if head.kind == "word" && head.text == "in" {
		members, err := parseList(tokens[2:])
		if err != nil {
			return nil, bad(err.Error())
		}
		return membershipFilter(members), nil
	}

	if head.kind != "op" {
		return nil, bad(fmt.Sprintf("expected an operator, got %q", head.text))
	}
	op, ok := map[string]exprOp{
		"==": opEq, "!=": opNe, ">": opGt, ">=": opGe, "<": opLt, "<=": opLe,
	}[head.text]
	if !ok {
		return nil, bad(fmt.Sprintf("unknown operator %q", head.text))
	}

	if len(tokens) != 3 {
		return nil, bad("expected a single literal after the operator")
	}
	lit := tokens[2]
	switch lit.kind {
	case "string":
		if op != opEq && op != opNe {
			return nil, bad("strings only support == and !=")
		}
		return stringFilter(op, lit.text), nil
	case "number":
		n, _ := strconv.ParseFloat(lit.text, 64)
		return numberFilter(op, n), nil
	default:
		return nil, bad(fmt.Sprintf("expected a literal, got %q", lit.text))
	}
}

func parseList(tokens []exprToken) ([]string, error) {
	if len(tokens) < 2 || tokens[0].kind != "lbracket" || tokens[len(tokens)-1].kind != "rbracket" {
		return nil, fmt.Errorf("'in' needs a bracketed list")
	}
	var members []string
	expectLiteral := true
	for _, tok := range tokens[1 : len(tokens)-1] {
		switch {
		case expectLiteral && (tok.kind == "string" || tok.kind == "number"):
			members = append(members, tok.text)
			expectLiteral = false
		case !expectLiteral && tok.kind == "comma":
			expectLiteral = true
		default:
			return nil, fmt.Errorf("malformed list")
		}
	}
	if expectLiteral && len(members) == 0 {
		return nil, fmt.Errorf("'in' list cannot be empty")
	}
	if expectLiteral {
		return nil, fmt.Errorf("trailing comma in list")
	}
	return members, nil
}

func stringFilter(op exprOp, want string) survey.Filter {
	return func(v frame.Value) bool {
		eq := v != nil && frame.Label(v) == want
		if op == opNe {
			return !eq
		}
		return eq
	}
}

func numberFilter(op exprOp, want float64) survey.Filter {
	return func(v frame.Value) bool {
		got, ok := frame.Float(v)
		if !ok {
			// non-numeric values only pass inequality
			return op == opNe
		}
		switch op {
		case opEq:
			return got == want
		case opNe:
			return got != want
		case opGt:
			return got > want
		case opGe:
			return got >= want
		case opLt:
			return got < want
		default:
			return got <= want
		}
	}
}

func membershipFilter(members []string) survey.Filter {
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[strings.TrimSpace(m)] = true
	}
	return func(v frame.Value) bool {
		return v != nil && set[frame.Label(v)]
	}
}
