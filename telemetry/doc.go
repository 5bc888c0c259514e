// Package telemetry wires OpenTelemetry tracing for flytrap services. It is
// optional: when disabled, the global no-op tracer is left in place and the
// spans recorded elsewhere in the module cost nothing.
package telemetry
