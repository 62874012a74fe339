// presolverun is a small interactive exerciser for the cqm and presolve
// packages. It builds a handful of example constrained quadratic models,
// runs the presolver over each one, and prints before/after statistics plus
// a sample restored back into the original variable space.
package main

import (
	"fmt"
	"os"

	"github.com/arcondello/dwave-preprocessing/cqm"
	"github.com/arcondello/dwave-preprocessing/presolve"
)

// printOptions displays the available examples.
func printOptions() {
	fmt.Println("\nAvailable Options:")
	fmt.Println(" 0 - EXIT program")
	fmt.Println(" 1 - presolve a knapsack-style binary CQM")
	fmt.Println(" 2 - presolve a CQM with a self-loop in the objective")
	fmt.Println(" 3 - presolve a CQM with a SPIN variable and a pre-fixed BINARY variable")
	fmt.Println(" 4 - run all of the above")
}

// printModel writes a short summary of a model's shape to stdout.
func printModel(label string, m *cqm.ConstrainedQuadraticModel) {
	fmt.Printf("%s: %d variables, %d constraints\n", label, m.NumVariables(), m.NumConstraints())
	for v := 0; v < m.NumVariables(); v++ {
		fmt.Printf("  x%-3d %-8s [%g, %g]\n", v, m.Vartype(v), m.LowerBound(v), m.UpperBound(v))
	}
	for i, c := range m.Constraints() {
		fmt.Printf("  c%-3d %d vars, sense %s, rhs %g, discrete=%v\n", i, c.NumVariables(), c.Sense, c.Rhs, c.MarkedDiscrete())
	}
}

// runExample builds a model, presolves it, and reports the result. It then
// restores a reduced-space sample made of each reduced variable's lower
// bound (not necessarily feasible) back into the original variable space,
// so the demo shows Restore working end to end without a real solver.
func runExample(label string, build func() *cqm.ConstrainedQuadraticModel, flags presolve.TechniqueFlags) {
	fmt.Printf("\n=== %s ===\n", label)

	model := build()
	printModel("before presolve", model)

	p := presolve.NewPresolver(model, flags)
	changed, err := p.Apply()
	if err != nil {
		fmt.Printf("presolve failed: %v\n", err)
		return
	}
	fmt.Printf("presolve changed the model: %v, feasibility: %s\n", changed, p.Feasibility())

	reduced := p.DetachModel()
	printModel("after presolve", reduced)

	sample := make([]float64, reduced.NumVariables())
	for v := range sample {
		sample[v] = reduced.LowerBound(v)
	}
	restored := p.Restore(sample)
	fmt.Printf("sample in reduced space:  %v\n", sample)
	fmt.Printf("sample in original space: %v\n", restored)
}

func knapsackExample() *cqm.ConstrainedQuadraticModel {
	m := cqm.NewConstrainedQuadraticModel()
	x0 := m.AddVariable(cqm.Binary, 0, 1)
	x1 := m.AddVariable(cqm.Binary, 0, 1)
	x2 := m.AddVariable(cqm.Binary, 0, 1)

	m.Objective().SetLinear(x0, -5)
	m.Objective().SetLinear(x1, -4)
	m.Objective().SetLinear(x2, 0) // dropped by zero-bias removal

	m.AddLinearConstraint([]int{x0, x1, x2}, []float64{2, 3, 0}, cqm.LE, 4)
	return m
}

func selfLoopExample() *cqm.ConstrainedQuadraticModel {
	m := cqm.NewConstrainedQuadraticModel()
	x0 := m.AddVariable(cqm.Binary, 0, 1)
	m.Objective().SetQuadratic(x0, x0, 3)
	return m
}

func fixedSpinExample() *cqm.ConstrainedQuadraticModel {
	m := cqm.NewConstrainedQuadraticModel()
	s := m.AddVariable(cqm.Spin, -1, 1)
	b := m.AddVariable(cqm.Binary, 1, 1) // already fixed to 1

	m.Objective().SetLinear(s, 1)
	m.Objective().SetLinear(b, 2)
	return m
}

func main() {
	examples := []struct {
		label string
		build func() *cqm.ConstrainedQuadraticModel
	}{
		{"knapsack-style binary CQM", knapsackExample},
		{"CQM with a self-loop in the objective", selfLoopExample},
		{"CQM with a SPIN variable and a pre-fixed BINARY variable", fixedSpinExample},
	}

	if len(os.Args) > 1 {
		runAllFlag(examples)
		return
	}

	var choice string
	for {
		printOptions()
		fmt.Print("\nSelect an option: ")
		if _, err := fmt.Scanln(&choice); err != nil {
			choice = "0"
		}

		switch choice {
		case "0":
			return
		case "1":
			runExample(examples[0].label, examples[0].build, presolve.FlagAll)
		case "2":
			runExample(examples[1].label, examples[1].build, presolve.FlagAll)
		case "3":
			runExample(examples[2].label, examples[2].build, presolve.FlagAll)
		case "4":
			runAllFlag(examples)
		default:
			fmt.Println("unrecognized option")
		}
	}
}

func runAllFlag(examples []struct {
	label string
	build func() *cqm.ConstrainedQuadraticModel
}) {
	for _, ex := range examples {
		runExample(ex.label, ex.build, presolve.FlagAll)
	}
}
