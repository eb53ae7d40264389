/*
Package intcode implements the Intcode virtual machine.

An Intcode program is a flat list of integers which is loaded as the initial
contents of an auto-growing memory. Each instruction word encodes an opcode in
its two low decimal digits and one addressing mode per parameter in the
digits above them:

	ABCDE
	 1002

	DE - two-digit opcode,      02 == multiply
	 C - mode of 1st parameter,  0 == position
	 B - mode of 2nd parameter,  1 == immediate
	 A - mode of 3rd parameter,  0 == position (omitted leading zero)

Position mode parameters name an address, immediate mode parameters are
literal values, and relative mode parameters name an address offset from the
machine's relative base (adjusted by opcode 9).

A Machine runs until it produces an output, needs input it does not have, or
halts; in each case control returns to the caller, who may supply more input
and call Run again. This lets many machines be composed into pipelines, see
the network package, or be driven by an interactive Device.
*/
package intcode
