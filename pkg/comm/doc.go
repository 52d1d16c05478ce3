// Package comm exchanges SERVO42 frames over a byte stream.
package comm

// The controller is a passive slave: it only talks when asked. A Link writes
// one command frame and collects reply bytes until the caller recognizes a
// complete frame or the reply window closes. There is no retry here; callers
// decide what to do with ErrNoReply.
//
// Serial adapters tend to deliver stray bytes (line noise at power up, the
// tail of an earlier reply that arrived late). Bytes received between
// exchanges are dropped before the next command is written, and the frame
// decoders in package servo42 skip any garbage before a valid frame.
