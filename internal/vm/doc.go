/*
Package vm emulates the LC-3: a little computer with a 16-bit word, eight
general purpose registers, a program counter, a one-hot condition register
and 65,536 words of memory.

The package is three layers, leaves first. A [Console] supplies the host's
keyboard and display: a non-blocking key poll, blocking byte reads, and
buffered byte writes. [Memory] is a flat array of words with two magic
addresses, KBSR and KBDR, that service the keyboard when the status
register is read. The [CPU] holds the register file and executes one
instruction per [CPU.Step]: fetch the word at PC, increment PC, decode,
and apply the operation's semantics against the borrowed memory handle.

[Machine] wires the three together: it loads big-endian program images at
their origin address and drives the fetch-execute loop until the HALT trap
clears the running flag. Trap service routines (GETC, OUT, PUTS, IN,
PUTSP, HALT) are implemented natively against the console rather than as
machine code.

The core is single threaded and fully synchronous: the only blocking
points are console reads and writes, and instructions commit in program
order.
*/
package vm
