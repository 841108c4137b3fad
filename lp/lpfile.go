package lp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/splx/vec"
)

// The serialized form is a small LP-format subset in the lp_solve
// style: an objective statement ("min:"/"max:"), one statement per
// constraint row with one- or two-sided ranges, a "bounds:" section
// with free/fixed/one-sided/two-sided entries, and a closing "end".
// Statements terminate with ';', "//" comments run to end of line.
//
//	min: + 1 x0 + 2 x1;
//	r0: 1 <= + 1 x0 + 1 x1 <= 4;
//	r1: + 1 x0 - 1 x1 >= 0;
//	bounds:
//	x0 >= 0;
//	0 <= x1 <= 5;
//	end
//
// The writer mentions every variable in the objective (zero
// coefficients included) so a re-read reproduces the column order, and
// writes a bounds entry per variable; Read(Write(m)) is exact.
// Hand-authored files may use implicit unit coefficients, omit labels,
// and rely on the default bounds [0, inf).

// infWord is the token for an absent bound.
const infWord = "inf"

// formatNum renders a float, mapping the infinity sentinel to infWord.
func formatNum(x float64) string {
	if IsInfinite(x) {
		if x < 0 {
			return "-" + infWord
		}

		return infWord
	}

	return strconv.FormatFloat(x, 'g', -1, 64)
}

// lpTerm is one parsed coefficient·variable product.
type lpTerm struct {
	coef float64
	v    int
}

// ---------- writing ----------

// writeExpr emits a linear expression with explicit signs and
// coefficients; an empty expression is the literal 0.
func writeExpr(bw *bufio.Writer, terms []lpTerm) {
	if len(terms) == 0 {
		bw.WriteString(" 0")

		return
	}
	for _, t := range terms {
		if t.coef < 0 {
			fmt.Fprintf(bw, " - %s x%d", formatNum(-t.coef), t.v)
		} else {
			fmt.Fprintf(bw, " + %s x%d", formatNum(t.coef), t.v)
		}
	}
}

// Write serializes the model in the LP-subset format above. The round
// trip is exact: Read(Write(m)) reproduces m.
func (m *Model) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if m.sense == Maximize {
		bw.WriteString("max:")
	} else {
		bw.WriteString("min:")
	}
	objTerms := make([]lpTerm, m.NumCols())
	for j := range objTerms {
		objTerms[j] = lpTerm{coef: m.obj.At(j), v: j}
	}
	writeExpr(bw, objTerms)
	bw.WriteString(";\n")

	// Gather the rows from the column-wise storage in one sweep.
	rows := make([][]lpTerm, m.NumRows())
	for j := 0; j < m.NumCols(); j++ {
		view, err := m.ColView(j)
		if err != nil {
			return err
		}
		for k := 0; k < view.Size(); k++ {
			r := view.Index(k)
			rows[r] = append(rows[r], lpTerm{coef: view.Value(k), v: j})
		}
	}
	for r := 0; r < m.NumRows(); r++ {
		lhs, rhs := m.lhs.At(r), m.rhs.At(r)
		fmt.Fprintf(bw, "r%d:", r)
		switch {
		case len(rows[r]) == 0 || (IsInfinite(lhs) && IsInfinite(rhs)):
			// Empty or unbounded rows keep the unambiguous ranged form.
			fmt.Fprintf(bw, " %s <=", formatNum(lhs))
			writeExpr(bw, rows[r])
			fmt.Fprintf(bw, " <= %s;\n", formatNum(rhs))
		case lhs == rhs:
			writeExpr(bw, rows[r])
			fmt.Fprintf(bw, " = %s;\n", formatNum(rhs))
		case IsInfinite(lhs):
			writeExpr(bw, rows[r])
			fmt.Fprintf(bw, " <= %s;\n", formatNum(rhs))
		case IsInfinite(rhs):
			writeExpr(bw, rows[r])
			fmt.Fprintf(bw, " >= %s;\n", formatNum(lhs))
		default:
			fmt.Fprintf(bw, " %s <=", formatNum(lhs))
			writeExpr(bw, rows[r])
			fmt.Fprintf(bw, " <= %s;\n", formatNum(rhs))
		}
	}

	bw.WriteString("bounds:\n")
	for j := 0; j < m.NumCols(); j++ {
		lo, up := m.lower.At(j), m.upper.At(j)
		switch {
		case IsInfinite(lo) && IsInfinite(up):
			fmt.Fprintf(bw, "x%d free;\n", j)
		case lo == up:
			fmt.Fprintf(bw, "x%d = %s;\n", j, formatNum(lo))
		case IsInfinite(up):
			fmt.Fprintf(bw, "x%d >= %s;\n", j, formatNum(lo))
		default:
			// The two-sided form also carries a -inf lower bound, which
			// the one-sided "<=" form would lose to the [0, inf) default.
			fmt.Fprintf(bw, "%s <= x%d <= %s;\n", formatNum(lo), j, formatNum(up))
		}
	}
	bw.WriteString("end\n")

	return bw.Flush()
}

// ---------- tokenizing ----------

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// reserved words may not name variables.
func isReserved(tok string) bool {
	switch tok {
	case infWord, "free", "bounds", "end", "min", "max", "minimize", "maximize":
		return true
	}

	return false
}

// isIdentTok reports whether tok can name a variable.
func isIdentTok(tok string) bool {
	return tok != "" && isIdentStart(tok[0]) && !isReserved(tok)
}

// tokenizeLP splits one statement into identifiers, numbers and the
// operator tokens <=, >=, =, <, >, :, + and -. Numbers keep their
// exponent part together ("1e-5" is one token); signs are always
// separate tokens and folded back by the parser.
func tokenizeLP(s string) []string {
	var toks []string
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++
		case c == '<' || c == '>':
			if i+1 < len(s) && s[i+1] == '=' {
				toks = append(toks, s[i:i+2])
				i += 2
			} else {
				toks = append(toks, string(c))
				i++
			}
		case c == '=' || c == ':' || c == '+' || c == '-':
			toks = append(toks, string(c))
			i++
		case isDigit(c) || c == '.':
			j := i + 1
			for j < len(s) {
				cc := s[j]
				if isDigit(cc) || cc == '.' {
					j++

					continue
				}
				if (cc == 'e' || cc == 'E') && j+1 < len(s) &&
					(isDigit(s[j+1]) ||
						((s[j+1] == '+' || s[j+1] == '-') && j+2 < len(s) && isDigit(s[j+2]))) {
					j += 2

					continue
				}

				break
			}
			toks = append(toks, s[i:j])
			i = j
		case isIdentStart(c):
			j := i + 1
			for j < len(s) && (isIdentStart(s[j]) || isDigit(s[j])) {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		default:
			// An unknown byte becomes its own token; the parser rejects it.
			toks = append(toks, string(c))
			i++
		}
	}

	return toks
}

// splitStatements strips // comments and splits the input on ';'.
func splitStatements(text string) []string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if k := strings.Index(line, "//"); k >= 0 {
			line = line[:k]
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	parts := strings.Split(b.String(), ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}

	return out
}

// ---------- parsing ----------

// lpRow is one parsed constraint.
type lpRow struct {
	lhs, rhs float64
	terms    []lpTerm
}

// lpParser accumulates the parsed problem before model construction.
// Variables index in order of first appearance; bounds default to
// [0, inf) as is conventional for the format.
type lpParser struct {
	sense Sense
	names []string
	index map[string]int
	obj   []float64
	lb    []float64
	ub    []float64
	rows  []lpRow
}

func newLPParser() *lpParser {
	return &lpParser{index: make(map[string]int)}
}

// varIndex returns the index of name, appending it with defaults on
// first sight.
func (p *lpParser) varIndex(name string) int {
	if j, seen := p.index[name]; seen {
		return j
	}
	j := len(p.names)
	p.index[name] = j
	p.names = append(p.names, name)
	p.obj = append(p.obj, 0)
	p.lb = append(p.lb, 0)
	p.ub = append(p.ub, Infinity)

	return j
}

// parseSignedNumber folds leading sign tokens into the following
// numeric or inf token.
func parseSignedNumber(toks []string, pos *int) (float64, error) {
	sign := 1.0
	for *pos < len(toks) && (toks[*pos] == "+" || toks[*pos] == "-") {
		if toks[*pos] == "-" {
			sign = -sign
		}
		*pos++
	}
	if *pos >= len(toks) {
		return 0, ErrBadFormat
	}
	tok := toks[*pos]
	*pos++
	if tok == infWord {
		return sign * Infinity, nil
	}
	x, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(x) {
		return 0, ErrBadFormat
	}

	return sign * x, nil
}

// segNumber reports whether the whole segment is one signed number.
func segNumber(seg []string) (float64, bool) {
	pos := 0
	x, err := parseSignedNumber(seg, &pos)
	if err != nil || pos != len(seg) {
		return 0, false
	}

	return x, true
}

// parseExpr parses a sum of [sign] [coefficient] name terms. The
// literal 0 stands for the empty expression.
func (p *lpParser) parseExpr(seg []string) ([]lpTerm, error) {
	if len(seg) == 1 && seg[0] == "0" {
		return nil, nil
	}
	var terms []lpTerm
	pos := 0
	for pos < len(seg) {
		sign := 1.0
		for pos < len(seg) && (seg[pos] == "+" || seg[pos] == "-") {
			if seg[pos] == "-" {
				sign = -sign
			}
			pos++
		}
		if pos >= len(seg) {
			return nil, ErrBadFormat
		}
		coef := 1.0
		if !isIdentTok(seg[pos]) {
			x, err := strconv.ParseFloat(seg[pos], 64)
			if err != nil || math.IsNaN(x) {
				return nil, ErrBadFormat
			}
			coef = x
			pos++
		}
		if pos >= len(seg) || !isIdentTok(seg[pos]) {
			return nil, ErrBadFormat
		}
		terms = append(terms, lpTerm{coef: sign * coef, v: p.varIndex(seg[pos])})
		pos++
	}

	return terms, nil
}

// splitOnOps cuts a token list at its comparison operators, mapping the
// strict forms onto the inclusive ones.
func splitOnOps(toks []string) (segs [][]string, ops []string) {
	start := 0
	for i, tok := range toks {
		switch tok {
		case "<=", "<":
			segs = append(segs, toks[start:i])
			ops = append(ops, "<=")
			start = i + 1
		case ">=", ">":
			segs = append(segs, toks[start:i])
			ops = append(ops, ">=")
			start = i + 1
		case "=":
			segs = append(segs, toks[start:i])
			ops = append(ops, "=")
			start = i + 1
		}
	}
	segs = append(segs, toks[start:])

	return segs, ops
}

// parseConstraint parses one constraint statement, label included.
func (p *lpParser) parseConstraint(toks []string) error {
	if len(toks) >= 2 && isIdentTok(toks[0]) && toks[1] == ":" {
		toks = toks[2:]
	}
	segs, ops := splitOnOps(toks)
	switch len(ops) {
	case 2:
		// lhs <= expr <= rhs
		if ops[0] != "<=" || ops[1] != "<=" {
			return ErrBadFormat
		}
		lhs, okL := segNumber(segs[0])
		rhs, okR := segNumber(segs[2])
		if !okL || !okR {
			return ErrBadFormat
		}
		terms, err := p.parseExpr(segs[1])
		if err != nil {
			return err
		}
		p.rows = append(p.rows, lpRow{lhs: lhs, rhs: rhs, terms: terms})

		return nil
	case 1:
		lhs, rhs := -Infinity, Infinity
		numFirst := false
		bound, ok := segNumber(segs[0])
		if ok {
			numFirst = true
		} else if bound, ok = segNumber(segs[1]); !ok {
			return ErrBadFormat
		}
		exprSeg := segs[1]
		if !numFirst {
			exprSeg = segs[0]
		}
		terms, err := p.parseExpr(exprSeg)
		if err != nil {
			return err
		}
		// "num <= expr" reads as "expr >= num"; likewise for ">=".
		op := ops[0]
		if numFirst && op == "<=" {
			op = ">="
		} else if numFirst && op == ">=" {
			op = "<="
		}
		switch op {
		case "<=":
			rhs = bound
		case ">=":
			lhs = bound
		case "=":
			lhs, rhs = bound, bound
		}
		p.rows = append(p.rows, lpRow{lhs: lhs, rhs: rhs, terms: terms})

		return nil
	}

	return ErrBadFormat
}

// parseBoundStmt parses one bounds-section statement.
func (p *lpParser) parseBoundStmt(toks []string) error {
	if len(toks) == 2 && isIdentTok(toks[0]) && toks[1] == "free" {
		j := p.varIndex(toks[0])
		p.lb[j] = -Infinity
		p.ub[j] = Infinity

		return nil
	}
	segs, ops := splitOnOps(toks)
	nameSeg := func(seg []string) (int, bool) {
		if len(seg) == 1 && isIdentTok(seg[0]) {
			return p.varIndex(seg[0]), true
		}

		return 0, false
	}
	switch len(ops) {
	case 2:
		// lo <= name <= up
		if ops[0] != "<=" || ops[1] != "<=" {
			return ErrBadFormat
		}
		lo, okL := segNumber(segs[0])
		up, okU := segNumber(segs[2])
		j, okN := nameSeg(segs[1])
		if !okL || !okU || !okN {
			return ErrBadFormat
		}
		p.lb[j] = lo
		p.ub[j] = up

		return nil
	case 1:
		j, okN := nameSeg(segs[0])
		seg := segs[1]
		op := ops[0]
		if !okN {
			// num op name: mirror the operator.
			var okB bool
			if j, okB = nameSeg(segs[1]); !okB {
				return ErrBadFormat
			}
			seg = segs[0]
			if op == "<=" {
				op = ">="
			} else if op == ">=" {
				op = "<="
			}
		}
		bound, ok := segNumber(seg)
		if !ok {
			return ErrBadFormat
		}
		switch op {
		case "<=":
			p.ub[j] = bound
		case ">=":
			p.lb[j] = bound
		case "=":
			p.lb[j] = bound
			p.ub[j] = bound
		}

		return nil
	}

	return ErrBadFormat
}

// parseObjective parses the opening min:/max: statement and returns
// the expression tokens.
func (p *lpParser) parseObjective(toks []string) ([]string, error) {
	if len(toks) == 0 {
		return nil, ErrBadFormat
	}
	switch toks[0] {
	case "min", "minimize":
		p.sense = Minimize
	case "max", "maximize":
		p.sense = Maximize
	default:
		return nil, ErrBadFormat
	}
	toks = toks[1:]
	if len(toks) > 0 && toks[0] == ":" {
		toks = toks[1:]
	}

	return toks, nil
}

// Read parses a model in the LP-subset format written by Write;
// hand-authored files within the subset parse as well.
func Read(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("lp: reading model: %w", err)
	}
	stmts := splitStatements(string(data))
	if len(stmts) == 0 {
		return nil, ErrBadFormat
	}

	p := newLPParser()
	objSeg, err := p.parseObjective(tokenizeLP(stmts[0]))
	if err != nil {
		return nil, err
	}
	objTerms, err := p.parseExpr(objSeg)
	if err != nil {
		return nil, err
	}
	for _, t := range objTerms {
		p.obj[t.v] = t.coef
	}

	inBounds := false
	for _, st := range stmts[1:] {
		toks := tokenizeLP(st)
		if len(toks) == 0 {
			continue
		}
		if toks[0] == "bounds" {
			inBounds = true
			toks = toks[1:]
			if len(toks) > 0 && toks[0] == ":" {
				toks = toks[1:]
			}
			if len(toks) == 0 {
				continue
			}
		}
		if toks[0] == "end" {
			break
		}
		if inBounds {
			err = p.parseBoundStmt(toks)
		} else {
			err = p.parseConstraint(toks)
		}
		if err != nil {
			return nil, err
		}
	}

	m := New()
	m.ChangeSense(p.sense)
	for j := range p.names {
		if _, err = m.AddCol(p.obj[j], p.lb[j], vec.NewSparse(0), p.ub[j]); err != nil {
			return nil, err
		}
	}
	for _, row := range p.rows {
		sv := vec.NewSparse(len(row.terms))
		for _, t := range row.terms {
			if err = sv.Add(t.v, t.coef); err != nil {
				return nil, err
			}
		}
		if _, err = m.AddRow(row.lhs, sv, row.rhs); err != nil {
			return nil, err
		}
	}

	return m, nil
}
