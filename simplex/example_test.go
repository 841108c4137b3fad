package simplex_test

import (
	"fmt"

	"github.com/katalvlaran/splx/lp"
	"github.com/katalvlaran/splx/simplex"
	"github.com/katalvlaran/splx/vec"
)

// ExampleSolver_Optimize builds the diet-sized problem
//
//	minimize    x + y
//	subject to  x + y >= 1
//	            x, y >= 0
//
// and solves it to optimality.
func ExampleSolver_Optimize() {
	m := lp.New()
	x, _ := m.AddCol(1, 0, vec.NewSparse(0), lp.Infinity)
	y, _ := m.AddCol(1, 0, vec.NewSparse(0), lp.Infinity)

	row := vec.NewSparse(2)
	_ = row.Add(x, 1)
	_ = row.Add(y, 1)
	_, _ = m.AddRow(1, row, lp.Infinity)

	s := simplex.New()
	_ = s.Load(m)
	status, _ := s.Optimize()

	fmt.Println(status)
	fmt.Println(s.ObjValue())
	// Output:
	// OPTIMAL
	// 1
}

// ExampleSolver_Optimize_unbounded shows the unboundedness verdict with
// its primal ray.
func ExampleSolver_Optimize_unbounded() {
	m := lp.New()
	x, _ := m.AddCol(-1, 0, vec.NewSparse(0), lp.Infinity)

	row := vec.NewSparse(1)
	_ = row.Add(x, 1)
	_, _ = m.AddRow(0, row, lp.Infinity)

	s := simplex.New()
	_ = s.Load(m)
	status, _ := s.Optimize()

	fmt.Println(status)
	fmt.Println(s.HasPrimalRay())
	// Output:
	// UNBOUNDED
	// true
}
