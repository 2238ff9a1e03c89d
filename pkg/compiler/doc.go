// Package compiler turns source programs of a small imperative language
// into an executable IR graph.
//
// Pipeline: source → Lexer → Lookahead → Parser → Program (node arena + symbol table)
//
// A program is a declaration section followed by one statement block:
//
//	a, b;
//	{
//	    a = 10;
//	    b = 1;
//	    while a > 0 {
//	        b = b * a;
//	        a = a - 1;
//	    }
//	    print b;
//	}
//
// while, if, for and switch are lowered to conditionals, unconditional
// jumps and no-op join nodes, so the resulting graph can be walked by a
// simple interpreter (see package machine).
package compiler
