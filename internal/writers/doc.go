// Package writers turns a filtered alignment graph into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (delta, coords TSV, JSON/JSONL).
//   - The graph stays domain-only; the app only picks a format by name.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
