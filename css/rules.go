package css // import "github.com/tdewolff/svgclean/css"

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is a property and its raw value inside a rule.
type Declaration struct {
	Property, Value string
}

// Rule is a ruleset, or the declaration block of an at-rule such as @font-face.
type Rule struct {
	Selector     string
	Declarations []Declaration
}

// Get returns the value of the last declaration of property.
func (r Rule) Get(property string) (string, bool) {
	for i := len(r.Declarations) - 1; 0 <= i; i-- {
		if r.Declarations[i].Property == property {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

type block struct {
	selector string
	rule     int // index into rules, -1 until the block has a declaration
}

// ParseRules parses the content of a style element. Rulesets nested inside at-rules are returned as well, in source order. Parsing stops silently at the first syntax error.
func ParseRules(b []byte) []Rule {
	rules := []Rule{}
	stack := []block{}

	p := css.NewParser(parse.NewInputBytes(b), false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return rules
		case css.BeginRulesetGrammar:
			stack = append(stack, block{tokensString(p.Values()), -1})
		case css.BeginAtRuleGrammar:
			selector := string(data)
			if prelude := tokensString(p.Values()); prelude != "" {
				selector += " " + prelude
			}
			stack = append(stack, block{selector, -1})
		case css.EndRulesetGrammar, css.EndAtRuleGrammar:
			if 0 < len(stack) {
				stack = stack[:len(stack)-1]
			}
		case css.DeclarationGrammar:
			if len(stack) == 0 {
				continue
			}
			top := &stack[len(stack)-1]
			if top.rule == -1 {
				rules = append(rules, Rule{Selector: top.selector})
				top.rule = len(rules) - 1
			}
			decl := Declaration{
				Property: strings.ToLower(string(data)),
				Value:    tokensString(p.Values()),
			}
			rules[top.rule].Declarations = append(rules[top.rule].Declarations, decl)
		}
	}
}

func tokensString(tokens []css.Token) string {
	sb := strings.Builder{}
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}
