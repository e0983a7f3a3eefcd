// Package delivery implements the delivery preference engine: a pure
// decision function mapping (incoming message, preference profile, current
// time) to deliver-now or hold-with-trigger, plus the held-message queue
// drained when a trigger condition becomes true.
package delivery
