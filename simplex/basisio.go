package simplex

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteBasisFile persists the current basis: one human-readable status
// token per line, structural variables first (column order), then
// logical variables (row order).
func (s *Solver) WriteBasisFile(w io.Writer) error {
	if s.model == nil {
		return ErrNoProblem
	}
	bw := bufio.NewWriter(w)
	for j := 0; j < s.basis.Total(); j++ {
		fmt.Fprintln(bw, s.basis.Status(j).String())
	}

	return bw.Flush()
}

// parseVarStatus maps a basis-file token back to a status.
func parseVarStatus(tok string) (VarStatus, error) {
	switch tok {
	case "basic":
		return VarBasic, nil
	case "lower":
		return VarOnLower, nil
	case "upper":
		return VarOnUpper, nil
	case "fixed":
		return VarFixed, nil
	case "zero":
		return VarZero, nil
	case "undefined":
		return VarUndefined, nil
	}

	return VarUndefined, ErrBadBasisFile
}

// ReadBasisFile installs a persisted basis as the warm start of the
// next Optimize call. The file must carry exactly one token per
// variable in column-then-row order, and the resulting basis must
// satisfy the basis invariants against the loaded problem.
func (s *Solver) ReadBasisFile(r io.Reader) error {
	if s.model == nil {
		return ErrNoProblem
	}
	sc := bufio.NewScanner(r)
	statuses := make([]VarStatus, 0, s.basis.Total())
	for sc.Scan() {
		tok := strings.TrimSpace(sc.Text())
		if tok == "" {
			continue
		}
		st, err := parseVarStatus(tok)
		if err != nil {
			return err
		}
		statuses = append(statuses, st)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("simplex: reading basis: %w", err)
	}
	if len(statuses) != s.basis.Total() {
		return ErrBadBasisFile
	}
	if err := s.basis.Install(statuses, s.lb, s.ub, s.params.Infinity); err != nil {
		return err
	}
	s.factorFresh = false
	s.status = StatusUnknown

	return nil
}
