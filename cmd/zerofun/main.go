// Command zerofun finds a zero of a scalar function given as an expression.
//
//	zerofun solve -f data.yaml
//	zerofun solve --method Newton --expr '0.5 - exp(pi*x)' --deriv '-pi*exp(pi*x)'
//	zerofun bracket --expr 'x**3 - 2*x - 5' --set bracket.x1=0
//	zerofun methods
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
