package langdef

import (
	"github.com/ava12/nabu/feeder"
	"github.com/ava12/nabu/grammar"
	"github.com/ava12/nabu/ret"
	"github.com/ava12/nabu/rules"
)

const exprTag = "expr"

// Rule expression notation:
//
//	choice   = sequence {"|" sequence}
//	sequence = postfix {postfix}
//	postfix  = primary {"*" | "?" | "+" | "{" uint "}"}
//	primary  = name | "(" choice ")"
//
// Postfix operators must follow the operand without spaces. Name "void" matches nothing.
var exprRules = newExprRules()

func box(e *grammar.Expr) ret.Value {
	return ret.NewBox(exprTag, e)
}

func unbox(v ret.Value) *grammar.Expr {
	e, err := ret.Unbox[*grammar.Expr](v, exprTag)
	if err != nil {
		panic(err)
	}
	return e
}

func unboxAll(v ret.Value) []*grammar.Expr {
	s := ret.Must[ret.Seq](v)
	result := make([]*grammar.Expr, s.Len())
	s.Each(func(i int, item ret.Value) {
		result[i] = unbox(item)
	})
	return result
}

func compound(kind grammar.ExprKind, items []*grammar.Expr) ret.Value {
	if len(items) == 1 {
		return box(items[0])
	}
	return box(&grammar.Expr{Kind: kind, Items: items})
}

func newExprRules() *rules.Registry {
	r := rules.NewRegistry()

	name := rules.Map(rules.Identifier, func(v ret.Value) (ret.Value, bool) {
		n := string(ret.Must[ret.String](v))
		if n == grammar.EmptyName {
			return box(&grammar.Expr{Kind: grammar.Empty}), true
		}
		return box(&grammar.Expr{Kind: grammar.Name, Name: n}), true
	})
	group := rules.Pick(rules.Seq(rules.Lit('('), r.Ref("choice"), rules.Lit(')')), 1)
	suffix := rules.Tagged(
		rules.Lit('*'),
		rules.Lit('?'),
		rules.Lit('+'),
		rules.Pick(rules.SeqNoSkip(rules.Lit('{'), rules.Uint, rules.Lit('}')), 1),
	)

	postfix := rules.Map(rules.SeqNoSkip(rules.Alt(name, group), rules.Star(suffix)), func(v ret.Value) (ret.Value, bool) {
		s := ret.Must[ret.Seq](v)
		e := unbox(s.At(0))
		ret.Must[ret.Seq](s.At(1)).Each(func(_ int, x ret.Value) {
			t := ret.Must[ret.Tagged](x)
			wrapped := &grammar.Expr{Kind: grammar.Repeat, Count: -1, Items: []*grammar.Expr{e}}
			switch t.Index {
			case 1:
				wrapped.Kind = grammar.Optional
			case 2:
				wrapped.Kind = grammar.Some
			case 3:
				wrapped.Count = int(ret.Must[ret.Int](t.Value))
			}
			e = wrapped
		})
		return box(e), true
	})

	sequence := rules.Map(rules.Plus(rules.Skip(postfix)), func(v ret.Value) (ret.Value, bool) {
		return compound(grammar.Sequence, unboxAll(v)), true
	})

	alternative := rules.Pick(rules.Seq(rules.Lit('|'), sequence), 1)
	choice := rules.Map(rules.Seq(sequence, rules.Star(alternative)), func(v ret.Value) (ret.Value, bool) {
		s := ret.Must[ret.Seq](v)
		items := append([]*grammar.Expr{unbox(s.At(0))}, unboxAll(s.At(1))...)
		return compound(grammar.Choice, items), true
	})

	r.Define("choice", choice)
	return r
}

// ParseExpr parses rule expression.
func ParseExpr(text string) (*grammar.Expr, error) {
	return parseRuleExpr("", text)
}

func parseRuleExpr(rule, text string) (*grammar.Expr, error) {
	fd := feeder.New(rule, text)
	v, ok := rules.ParseChar(exprRules, "choice", fd)
	fd.SkipSpace()
	if !ok || !fd.AtEnd() {
		return nil, badExprError(rule, text, fd.Index()+1)
	}
	return unbox(v), nil
}
