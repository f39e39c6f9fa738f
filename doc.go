// Package calc implements a double-precision calculator.
//
// Expressions look like C arithmetic with a few twists. Integer literals may
// be written in decimal, hex (0xff), octal (0o17), or binary (0b101). The
// operators are + - * / % for arithmetic, ** for exponentiation, & | ^ ~ for
// bitwise logic, ! for logical negation, and << >> for shifts. Shifts bind
// more loosely than anything else, so "2*2<<11>>1" is "((2*2) << 11) >> 1",
// which is 4096.
//
// Variables are assigned inline, with statements separated by semicolons:
// "a=100;b=1.234;a/b". A Calculator remembers variables across calls to Eval,
// so a shell can evaluate one line at a time.
package calc
