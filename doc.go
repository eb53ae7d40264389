/* Command intcode runs Intcode programs.

An Intcode program is a single line of comma separated integers; see the
intcode package for the instruction set.

Commands:

	run [-in 1,2] [-in-file FILE] [-noun N -verb V] [-mem] [-out FILE] PROGRAM
		Runs the program to halt, printing every output on its own line.
		Input is taken from -in, then any -in-file, then standard input.

	gravity [-target N] PROGRAM
		Searches every noun and verb in [0, 99] for the pair that leaves
		the target value at address 0, printing 100*noun+verb.

	amp [-feedback] [-concurrent] [-phases 0,1,2,3,4] PROGRAM
		Chains one amplifier machine per phase setting and prints the
		highest signal over every phase ordering.

	paint [-start 0|1] [-render] PROGRAM
		Runs a hull painting robot, printing how many panels it painted.

	dump PROGRAM
		Disassembles the program.

Global flags -timeout, -trace, -step-limit and -mem-limit apply to every
command; -trace logs each executed instruction at debug level.
*/
package main
