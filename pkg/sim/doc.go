// Package sim provides a simulated SERVO42 controller which speaks the
// serial protocol over an in-memory io.ReadWriteCloser.
//
// Motion is modeled at a constant pulse rate per speed gear and advances
// with the Controller's time source, so tests can drive it with a fake clock.
package sim
