// Package servo42 encodes commands for and decodes replies from MKS SERVO42
// closed-loop stepper controllers.
package servo42

// The protocol is a plain byte protocol over a shared serial bus. A command
// frame is the slave address, an opcode, zero to seven payload bytes and an
// 8-bit wraparound sum of everything before it. Reply frames carry no length
// byte; the caller knows the expected shape from the command it sent and
// picks the matching Parse function.
//
// Nothing in this package performs I/O. Driver builds frames into a buffer it
// owns, the Parse functions scan whatever bytes the transport produced.
// Leading garbage in a reply is skipped, corruption inside a frame is not.
